package forecast

import (
	"math"
	"sort"
	"time"
)

type accumulator struct {
	date         string
	tempMax      float64
	tempMin      float64
	descriptions []string
	seen         map[string]struct{}
	humiditySum  float64
	windSum      float64
	count        int
}

func newAccumulator(date string, first Sample) *accumulator {
	acc := &accumulator{
		date:    date,
		tempMax: first.High(),
		tempMin: first.Low(),
		seen:    make(map[string]struct{}),
	}
	acc.add(first, false)
	return acc
}

func (a *accumulator) add(s Sample, fold bool) {
	if fold {
		a.tempMax = math.Max(a.tempMax, s.High())
		a.tempMin = math.Min(a.tempMin, s.Low())
	}
	for _, desc := range s.Descriptions {
		if desc == "" {
			continue
		}
		if _, ok := a.seen[desc]; ok {
			continue
		}
		a.seen[desc] = struct{}{}
		a.descriptions = append(a.descriptions, desc)
	}
	a.humiditySum += s.Humidity
	a.windSum += s.WindSpeed
	a.count++
}

func (a *accumulator) summary() DailySummary {
	n := float64(a.count)
	descs := make([]string, len(a.descriptions))
	copy(descs, a.descriptions)
	return DailySummary{
		Date:         a.date,
		TempMax:      a.tempMax,
		TempMin:      a.tempMin,
		Descriptions: descs,
		Humidity:     int(math.RoundToEven(a.humiditySum / n)),
		WindSpeed:    roundTo(a.windSum/n, 1),
		Samples:      a.count,
	}
}

// Summarize groups forecast samples by calendar date in loc (time.Local when nil) and
// folds each group into a DailySummary. The result is sorted by date and capped at
// MaxForecastDays entries. Descriptions keep first-seen order.
func Summarize(series Series, loc *time.Location) []DailySummary {
	if loc == nil {
		loc = time.Local
	}
	groups := make(map[string]*accumulator)
	order := make([]string, 0, MaxForecastDays+1)

	for _, sample := range series.Samples {
		date := time.Unix(sample.Timestamp, 0).In(loc).Format(DateLayout)
		acc, ok := groups[date]
		if !ok {
			groups[date] = newAccumulator(date, sample)
			order = append(order, date)
			continue
		}
		acc.add(sample, true)
	}

	sort.Strings(order)
	if len(order) > MaxForecastDays {
		order = order[:MaxForecastDays]
	}

	out := make([]DailySummary, 0, len(order))
	for _, date := range order {
		out = append(out, groups[date].summary())
	}
	return out
}

func roundTo(value float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.RoundToEven(value*scale) / scale
}
