package datasources

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/tradeviz/tradeviz/src/eventmodels"
)

const barTimestampLayout = "2006-01-02 15:04:05"

// BarSource provides the per-instrument bar series the pipeline consumes.
type BarSource interface {
	LoadBars(instrument string) (eventmodels.Bars, error)
}

type barDTO struct {
	Date         string  `csv:"date"`
	Open         float64 `csv:"open"`
	High         float64 `csv:"high"`
	Low          float64 `csv:"low"`
	Close        float64 `csv:"close"`
	Volume       float64 `csv:"vol"`
	BPV          float64 `csv:"bpv"`
	SessionStart int     `csv:"session_start"`
}

func (dto *barDTO) toBar() (eventmodels.Bar, error) {
	ts, err := time.Parse(barTimestampLayout, dto.Date)
	if err != nil {
		return eventmodels.Bar{}, fmt.Errorf("barDTO.toBar: failed to parse timestamp %q: %w", dto.Date, err)
	}

	return eventmodels.Bar{
		Timestamp:    ts,
		Open:         dto.Open,
		High:         dto.High,
		Low:          dto.Low,
		Close:        dto.Close,
		Volume:       dto.Volume,
		BPV:          dto.BPV,
		SessionStart: dto.SessionStart,
	}, nil
}

// CSVBarSource loads bars from per-instrument CSV files named
// data_<SYMBOL>.csv under a data directory.
type CSVBarSource struct {
	Dir string
}

func NewCSVBarSource(dir string) *CSVBarSource {
	return &CSVBarSource{Dir: dir}
}

func (s *CSVBarSource) LoadBars(instrument string) (eventmodels.Bars, error) {
	path := filepath.Join(s.Dir, fmt.Sprintf("data_%s.csv", instrument))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("CSVBarSource.LoadBars: failed to open %s: %w", path, err)
	}
	defer f.Close()

	var dtos []*barDTO
	if err := gocsv.UnmarshalFile(f, &dtos); err != nil {
		return nil, fmt.Errorf("CSVBarSource.LoadBars: failed to parse %s: %w", path, err)
	}

	bars, err := ConvertBarDTOs(dtos)
	if err != nil {
		return nil, fmt.Errorf("CSVBarSource.LoadBars: %s: %w", path, err)
	}

	log.Infof("CSVBarSource.LoadBars: loaded %d bars for %s", len(bars), instrument)

	return bars, nil
}

// ConvertBarDTOs maps parsed CSV rows to bars and checks the ordering
// invariant.
func ConvertBarDTOs(dtos []*barDTO) (eventmodels.Bars, error) {
	bars := make(eventmodels.Bars, 0, len(dtos))
	for _, dto := range dtos {
		bar, err := dto.toBar()
		if err != nil {
			return nil, err
		}
		bars = append(bars, bar)
	}

	if err := bars.Validate(); err != nil {
		return nil, err
	}

	return bars, nil
}
