package report

import (
	"github.com/montanaflynn/stats"

	"supstats/internal/dataset"
	"supstats/internal/normalize"
)

// Summary aggregates the metric columns across every dated row. The
// averages only cover rows where the metric was present, so a sheet of
// blanks reports zero samples rather than a misleading mean.
type Summary struct {
	TotalSessions int64   `json:"total_sessions"`
	AvgSLA        float64 `json:"avg_sla,omitempty"`
	AvgCSAT       float64 `json:"avg_csat,omitempty"`
	AvgFR         float64 `json:"avg_fr,omitempty"`
	SLASamples    int     `json:"sla_samples"`
	CSATSamples   int     `json:"csat_samples"`
	FRSamples     int     `json:"fr_samples"`
}

func summarize(ds *dataset.Dataset, rows []int) Summary {
	var s Summary
	var slaVals, csatVals, frVals []float64
	for _, i := range rows {
		s.TotalSessions += sessionCount(ds.Cell(i, normalize.ColSessions))
		if v, ok := ds.Cell(i, normalize.ColSLA).Float(); ok {
			slaVals = append(slaVals, v)
		}
		if v, ok := ds.Cell(i, normalize.ColCSAT).Float(); ok {
			csatVals = append(csatVals, v)
		}
		if v, ok := ds.Cell(i, normalize.ColFR).Float(); ok {
			frVals = append(frVals, v)
		}
	}
	s.SLASamples = len(slaVals)
	s.CSATSamples = len(csatVals)
	s.FRSamples = len(frVals)
	if mean, err := stats.Mean(slaVals); err == nil {
		s.AvgSLA = mean
	}
	if mean, err := stats.Mean(csatVals); err == nil {
		s.AvgCSAT = mean
	}
	if mean, err := stats.Mean(frVals); err == nil {
		s.AvgFR = mean
	}
	return s
}
