package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tradeviz/tradeviz/src/api"
	"github.com/tradeviz/tradeviz/src/calendar"
	"github.com/tradeviz/tradeviz/src/datasources"
	"github.com/tradeviz/tradeviz/src/eventmodels"
	"github.com/tradeviz/tradeviz/src/pipeline"
	"github.com/tradeviz/tradeviz/src/utils"
)

func loadCalendar(path string) (*calendar.SessionCalendar, error) {
	if path == "" {
		return calendar.Default(), nil
	}
	return calendar.LoadYAML(path)
}

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Time-series analytics for futures and crypto OHLCV data",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one pipeline pass and print the plot-ready table",
	Run: func(cmd *cobra.Command, args []string) {
		dataDir, _ := cmd.Flags().GetString("dataDir")
		calendarPath, _ := cmd.Flags().GetString("calendar")
		instrument, _ := cmd.Flags().GetString("instrument")
		timeframe, _ := cmd.Flags().GetString("timeframe")
		metrics, _ := cmd.Flags().GetStringSlice("metric")
		groupBy, _ := cmd.Flags().GetString("groupBy")
		function, _ := cmd.Flags().GetString("function")
		unit, _ := cmd.Flags().GetString("unit")
		periodYears, _ := cmd.Flags().GetInt("periodYears")
		maxRows, _ := cmd.Flags().GetInt("maxRows")
		dateStart, _ := cmd.Flags().GetString("dateStart")
		dateEnd, _ := cmd.Flags().GetString("dateEnd")

		cal, err := loadCalendar(calendarPath)
		if err != nil {
			log.Fatalf("failed to load calendar: %v", err)
		}

		var spec eventmodels.FilterSpec
		if dateStart != "" {
			t, err := time.Parse("2006-01-02", dateStart)
			if err != nil {
				log.Fatalf("invalid --dateStart: %v", err)
			}
			spec.DateStart = t
		}
		if dateEnd != "" {
			t, err := time.Parse("2006-01-02", dateEnd)
			if err != nil {
				log.Fatalf("invalid --dateEnd: %v", err)
			}
			spec.DateEnd = t
		}

		req := &eventmodels.AggregationRequest{
			Instrument:  instrument,
			Timeframe:   eventmodels.Timeframe(timeframe),
			GroupBy:     eventmodels.GroupBy(groupBy),
			Func:        eventmodels.AggregateFunc(function),
			Unit:        eventmodels.Unit(unit),
			PeriodYears: periodYears,
			MaxRows:     maxRows,
		}
		for _, m := range metrics {
			req.Metrics = append(req.Metrics, eventmodels.Metric(m))
		}

		bars, err := datasources.NewCSVBarSource(dataDir).LoadBars(instrument)
		if err != nil {
			log.Fatalf("failed to load bars: %v", err)
		}

		table, err := pipeline.NewPipeline(cal).Run(bars, spec, req)
		if err != nil {
			log.Fatalf("pipeline run failed: %v", err)
		}

		printTable(table)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pipeline over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		dataDir, _ := cmd.Flags().GetString("dataDir")
		calendarPath, _ := cmd.Flags().GetString("calendar")

		cal, err := loadCalendar(calendarPath)
		if err != nil {
			log.Fatalf("failed to load calendar: %v", err)
		}

		router := mux.NewRouter()
		handler := api.NewHandler(cal, datasources.NewCSVBarSource(dataDir))
		handler.Register(router.PathPrefix("/api").Subrouter())

		log.Infof("listening on %s", addr)
		if err := http.ListenAndServe(addr, router); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	},
}

func printTable(table *eventmodels.ResultTable) {
	writer := tablewriter.NewWriter(os.Stdout)

	header := []string{table.XLabel}
	if table.BreakdownLabel != "" {
		header = append(header, table.BreakdownLabel)
	}
	header = append(header, table.MetricLabels...)
	writer.SetHeader(header)

	formatMetric := func(v *float64, digits int) string {
		if v == nil {
			return ""
		}
		return fmt.Sprintf("%.*f", digits, *v)
	}

	for _, row := range table.Rows {
		record := []string{row.X}
		if table.BreakdownLabel != "" {
			record = append(record, row.Breakdown)
		}
		record = append(record, formatMetric(row.Metric, table.Precision[0]))
		if len(table.MetricLabels) == 2 {
			record = append(record, formatMetric(row.Metric2, table.Precision[1]))
		}
		writer.Append(record)
	}

	writer.Render()

	for _, warning := range table.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}
}

func main() {
	utils.InitEnvironmentVariables()

	runCmd.Flags().String("dataDir", "./data", "directory holding data_<SYMBOL>.csv files")
	runCmd.Flags().String("calendar", "", "optional session calendar YAML override")
	runCmd.Flags().String("instrument", "", "instrument symbol")
	runCmd.Flags().String("timeframe", "1m", "bar size: 1m 5m 15m 30m 60m 120m 240m 480m Daily Weekly")
	runCmd.Flags().StringSlice("metric", []string{string(eventmodels.MetricClose)}, "metric name(s), up to two")
	runCmd.Flags().String("groupBy", string(eventmodels.GroupByNone), fmt.Sprintf("grouping: %s", strings.Join([]string{
		string(eventmodels.GroupByNone), string(eventmodels.GroupByTime), string(eventmodels.GroupByWeekdayTime),
		string(eventmodels.GroupByDayOfMonthTime), string(eventmodels.GroupByMonthTime), string(eventmodels.GroupByMonthDayOfMonthTime),
		string(eventmodels.GroupByHistory), string(eventmodels.GroupByWeekdayHistory), string(eventmodels.GroupByDayOfMonthHistory),
		string(eventmodels.GroupByMonthHistory),
	}, " | ")))
	runCmd.Flags().String("function", string(eventmodels.AggregateMean), "aggregation: Mean Median Sum Cumsum Count Std")
	runCmd.Flags().String("unit", string(eventmodels.UnitPoint), "unit: Point or $")
	runCmd.Flags().Int("periodYears", 0, "split calendar years into buckets of this size")
	runCmd.Flags().Int("maxRows", eventmodels.DefaultMaxRows, "row budget before the timeframe is escalated")
	runCmd.Flags().String("dateStart", "", "start date YYYY-MM-DD")
	runCmd.Flags().String("dateEnd", "", "end date YYYY-MM-DD")
	runCmd.MarkFlagRequired("instrument")

	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("dataDir", "./data", "directory holding data_<SYMBOL>.csv files")
	serveCmd.Flags().String("calendar", "", "optional session calendar YAML override")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("error executing command: %v", err)
	}
}
