package report

import (
	"strconv"
	"strings"

	"cdvtrack/internal/models"
)

// Stats holds mean/min/max of a temperature group. All nil when the group
// has no qualifying readings.
type Stats struct {
	Mean *float64
	Min  *float64
	Max  *float64
}

// TypeRatio is the per-maintenance-type ratio breakdown.
type TypeRatio struct {
	Type  string
	Count int
	Mean  float64
}

// Summary aggregates the already-filtered report rows. The in-between count
// uses exclusive bounds (strictly above 60% and strictly below 80%), unlike
// the inclusive green highlight rule on the sheet.
type Summary struct {
	RatioCount     int
	RatioMean      *float64
	Below60        int
	Between60And80 int
	Above80        int
	ByType         []TypeRatio
	TXTemp         Stats
	RXTemp         Stats
	AllTemp        Stats
}

// RatioFraction converts a stored "72.35%" ratio string to 0.7235. A comma
// decimal separator is tolerated.
func RatioFraction(ratio *string) (float64, bool) {
	if ratio == nil {
		return 0, false
	}
	s := strings.TrimSpace(*ratio)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v / 100.0, true
}

// Summarize computes the Resumo blocks from the filtered row sets.
func Summarize(transmitters []models.Transmitter, receivers []models.Receiver) Summary {
	var sum Summary

	var ratios []float64
	byType := map[string][]float64{}
	var typeOrder []string
	for _, r := range receivers {
		v, ok := RatioFraction(r.Ratio)
		if !ok {
			continue
		}
		ratios = append(ratios, v)
		key := string(r.MaintenanceType)
		if _, seen := byType[key]; !seen {
			typeOrder = append(typeOrder, key)
		}
		byType[key] = append(byType[key], v)
	}

	sum.RatioCount = len(ratios)
	sum.RatioMean = mean(ratios)
	for _, v := range ratios {
		switch {
		case v < 0.60:
			sum.Below60++
		case v > 0.80:
			sum.Above80++
		case v > 0.60 && v < 0.80:
			sum.Between60And80++
		}
	}

	for _, key := range typeOrder {
		vals := byType[key]
		m := mean(vals)
		sum.ByType = append(sum.ByType, TypeRatio{Type: key, Count: len(vals), Mean: *m})
	}

	var txTemps, rxTemps []float64
	for _, t := range transmitters {
		if t.TempCelsius != nil {
			txTemps = append(txTemps, *t.TempCelsius)
		}
	}
	for _, r := range receivers {
		if r.TempCelsius != nil {
			rxTemps = append(rxTemps, *r.TempCelsius)
		}
	}
	allTemps := append(append([]float64{}, txTemps...), rxTemps...)

	sum.TXTemp = stats(txTemps)
	sum.RXTemp = stats(rxTemps)
	sum.AllTemp = stats(allTemps)
	return sum
}

func mean(vals []float64) *float64 {
	if len(vals) == 0 {
		return nil
	}
	total := 0.0
	for _, v := range vals {
		total += v
	}
	m := total / float64(len(vals))
	return &m
}

func stats(vals []float64) Stats {
	if len(vals) == 0 {
		return Stats{}
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return Stats{Mean: mean(vals), Min: &lo, Max: &hi}
}
