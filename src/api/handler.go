package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	log "github.com/sirupsen/logrus"

	"github.com/tradeviz/tradeviz/src/calendar"
	"github.com/tradeviz/tradeviz/src/datasources"
	"github.com/tradeviz/tradeviz/src/eventmodels"
	"github.com/tradeviz/tradeviz/src/pipeline"
)

// RunRequestDTO carries the dashboard form fields. Every field arrives as a
// string-valued option selection; decoding and validation happen here so the
// pipeline only ever sees well-formed requests.
type RunRequestDTO struct {
	Instrument  string   `schema:"instrument,required"`
	Timeframe   string   `schema:"timeframe,required"`
	Metrics     []string `schema:"metric,required"`
	GroupBy     string   `schema:"group_by"`
	Func        string   `schema:"function"`
	Unit        string   `schema:"unit"`
	PeriodYears int      `schema:"period_years"`
	MaxRows     int      `schema:"max_rows"`

	DateStart string `schema:"date_start"`
	DateEnd   string `schema:"date_end"`
	TimeStart string `schema:"time_start"`
	TimeEnd   string `schema:"time_end"`

	ExcludeMonths   []int `schema:"exclude_month"`
	ExcludeDays     []int `schema:"exclude_day"`
	ExcludeWeekdays []int `schema:"exclude_weekday"`
}

func (dto *RunRequestDTO) toRequests() (eventmodels.FilterSpec, *eventmodels.AggregationRequest, error) {
	var spec eventmodels.FilterSpec

	if dto.DateStart != "" {
		t, err := time.Parse("2006-01-02", dto.DateStart)
		if err != nil {
			return spec, nil, fmt.Errorf("toRequests: invalid date_start: %w", err)
		}
		spec.DateStart = t
	}

	if dto.DateEnd != "" {
		t, err := time.Parse("2006-01-02", dto.DateEnd)
		if err != nil {
			return spec, nil, fmt.Errorf("toRequests: invalid date_end: %w", err)
		}
		spec.DateEnd = t
	}

	if dto.TimeStart != "" && dto.TimeEnd != "" {
		start, err := eventmodels.ParseTimeOfDay(dto.TimeStart)
		if err != nil {
			return spec, nil, fmt.Errorf("toRequests: invalid time_start: %w", err)
		}
		end, err := eventmodels.ParseTimeOfDay(dto.TimeEnd)
		if err != nil {
			return spec, nil, fmt.Errorf("toRequests: invalid time_end: %w", err)
		}
		spec.TimeStart = &start
		spec.TimeEnd = &end
	}

	for _, m := range dto.ExcludeMonths {
		spec.ExcludeMonths = append(spec.ExcludeMonths, time.Month(m))
	}
	spec.ExcludeDaysOfMonth = append(spec.ExcludeDaysOfMonth, dto.ExcludeDays...)
	for _, wd := range dto.ExcludeWeekdays {
		spec.ExcludeWeekdays = append(spec.ExcludeWeekdays, time.Weekday(wd))
	}

	req := &eventmodels.AggregationRequest{
		Instrument:  dto.Instrument,
		Timeframe:   eventmodels.Timeframe(dto.Timeframe),
		GroupBy:     eventmodels.GroupByNone,
		Func:        eventmodels.AggregateMean,
		Unit:        eventmodels.UnitPoint,
		PeriodYears: dto.PeriodYears,
		MaxRows:     eventmodels.DefaultMaxRows,
	}

	for _, m := range dto.Metrics {
		req.Metrics = append(req.Metrics, eventmodels.Metric(m))
	}
	if dto.GroupBy != "" {
		req.GroupBy = eventmodels.GroupBy(dto.GroupBy)
	}
	if dto.Func != "" {
		req.Func = eventmodels.AggregateFunc(dto.Func)
	}
	if dto.Unit != "" {
		req.Unit = eventmodels.Unit(dto.Unit)
	}
	if dto.MaxRows > 0 {
		req.MaxRows = dto.MaxRows
	}

	if err := req.Validate(); err != nil {
		return spec, nil, err
	}

	return spec, req, nil
}

type RunResponseDTO struct {
	XLabel         string                   `json:"xLabel"`
	BreakdownLabel string                   `json:"breakdownLabel,omitempty"`
	MetricLabels   []string                 `json:"metricLabels"`
	Precision      []int                    `json:"precision"`
	Rows           []OutputRowDTO           `json:"rows"`
	Annotations    []eventmodels.Annotation `json:"annotations,omitempty"`
	Warnings       []string                 `json:"warnings,omitempty"`
}

type OutputRowDTO struct {
	X         string   `json:"x"`
	Breakdown string   `json:"breakdown,omitempty"`
	Metric    *float64 `json:"metric"`
	Metric2   *float64 `json:"metric2,omitempty"`
}

// Handler exposes the pipeline over HTTP for the dashboard UI.
type Handler struct {
	calendar *calendar.SessionCalendar
	bars     datasources.BarSource
	pipeline *pipeline.Pipeline
	decoder  *schema.Decoder
}

func NewHandler(cal *calendar.SessionCalendar, bars datasources.BarSource) *Handler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Handler{
		calendar: cal,
		bars:     bars,
		pipeline: pipeline.NewPipeline(cal),
		decoder:  decoder,
	}
}

func (h *Handler) Register(router *mux.Router) {
	router.HandleFunc("/instruments", h.handleInstruments).Methods(http.MethodGet)
	router.HandleFunc("/instruments/{symbol}/times", h.handleTimes).Methods(http.MethodGet)
	router.HandleFunc("/run", h.handleRun).Methods(http.MethodPost)
}

func (h *Handler) handleInstruments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"instruments": h.calendar.Instruments(),
	})
}

// handleTimes serves the selectable time-filter domain for an instrument:
// session times of day at five-minute granularity.
func (h *Handler) handleTimes(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	times, err := h.calendar.EnumerateTimes(symbol)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"times": times})
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("handleRun: failed to parse form: %w", err))
		return
	}

	var dto RunRequestDTO
	if err := h.decoder.Decode(&dto, r.PostForm); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("handleRun: failed to decode form: %w", err))
		return
	}

	spec, req, err := dto.toRequests()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	bars, err := h.bars.LoadBars(req.Instrument)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	table, err := h.pipeline.Run(bars, spec, req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := RunResponseDTO{
		XLabel:         table.XLabel,
		BreakdownLabel: table.BreakdownLabel,
		MetricLabels:   table.MetricLabels,
		Precision:      table.Precision,
		Annotations:    table.Annotations,
		Warnings:       table.Warnings,
	}
	for _, row := range table.Rows {
		resp.Rows = append(resp.Rows, OutputRowDTO{
			X:         row.X,
			Breakdown: row.Breakdown,
			Metric:    row.Metric,
			Metric2:   row.Metric2,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("writeJSON: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	log.Warnf("api: request failed: %v", err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
