package forecast

import (
	"math"
	"strings"
)

// MaxForecastDays caps the number of daily summaries returned by Summarize.
const MaxForecastDays = 5

// DateLayout is the calendar date key of a DailySummary.
const DateLayout = "2006-01-02"

// Current is a point-in-time reading from the current weather endpoint.
type Current struct {
	City         string
	Temperature  float64
	FeelsLike    float64
	Humidity     float64
	WindSpeed    float64
	Descriptions []string
	Timestamp    int64
	RawJSON      []byte
}

// Description returns the first condition description, matching what the report prints.
func (c Current) Description() string {
	if len(c.Descriptions) == 0 {
		return ""
	}
	return c.Descriptions[0]
}

// Sample is one 3-hour forecast point.
type Sample struct {
	Timestamp    int64
	Temperature  float64
	TempMax      float64
	TempMin      float64
	Humidity     float64
	WindSpeed    float64
	Descriptions []string
}

// Series is the forecast time series as received from upstream.
type Series struct {
	City    string
	Samples []Sample
	RawJSON []byte
}

// DailySummary aggregates every sample sharing a calendar date.
type DailySummary struct {
	Date         string
	TempMax      float64
	TempMin      float64
	Descriptions []string
	Humidity     int
	WindSpeed    float64
	Samples      int
}

// Conditions renders the distinct descriptions in first-seen order.
func (d DailySummary) Conditions() string {
	return strings.Join(d.Descriptions, ", ")
}

// High is the warmest reading carried by the sample.
func (s Sample) High() float64 {
	return math.Max(s.Temperature, s.TempMax)
}

// Low is the coolest reading carried by the sample.
func (s Sample) Low() float64 {
	return math.Min(s.Temperature, s.TempMin)
}
