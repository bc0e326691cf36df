package forecast

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyCurrent is returned for a current weather payload that carries no fields.
var ErrEmptyCurrent = errors.New("current weather payload is empty")

type mainWire struct {
	Temp      float64  `json:"temp"`
	FeelsLike float64  `json:"feels_like"`
	TempMin   *float64 `json:"temp_min"`
	TempMax   *float64 `json:"temp_max"`
	Humidity  float64  `json:"humidity"`
}

type conditionWire struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type windWire struct {
	Speed float64 `json:"speed"`
}

type currentWire struct {
	Dt      int64           `json:"dt"`
	Name    string          `json:"name"`
	Main    mainWire        `json:"main"`
	Weather []conditionWire `json:"weather"`
	Wind    windWire        `json:"wind"`
}

type sampleWire struct {
	Dt      int64           `json:"dt"`
	Main    mainWire        `json:"main"`
	Weather []conditionWire `json:"weather"`
	Wind    windWire        `json:"wind"`
}

type forecastWire struct {
	List []sampleWire `json:"list"`
	City struct {
		Name string `json:"name"`
	} `json:"city"`
}

// ParseCurrent decodes a current weather payload. The raw bytes are kept for archiving.
// An empty object or null is rejected with ErrEmptyCurrent.
func ParseCurrent(raw []byte) (Current, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Current{}, fmt.Errorf("decode current weather: %w", err)
	}
	if len(fields) == 0 {
		return Current{}, ErrEmptyCurrent
	}
	var wire currentWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Current{}, fmt.Errorf("decode current weather: %w", err)
	}
	return Current{
		City:         wire.Name,
		Temperature:  wire.Main.Temp,
		FeelsLike:    wire.Main.FeelsLike,
		Humidity:     wire.Main.Humidity,
		WindSpeed:    wire.Wind.Speed,
		Descriptions: descriptions(wire.Weather),
		Timestamp:    wire.Dt,
		RawJSON:      raw,
	}, nil
}

// ParseForecast decodes a forecast payload. A payload without a list yields an empty series.
func ParseForecast(raw []byte) (Series, error) {
	var wire forecastWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Series{}, fmt.Errorf("decode forecast: %w", err)
	}
	samples := make([]Sample, 0, len(wire.List))
	for _, item := range wire.List {
		samples = append(samples, Sample{
			Timestamp:    item.Dt,
			Temperature:  item.Main.Temp,
			TempMax:      valueOr(item.Main.TempMax, item.Main.Temp),
			TempMin:      valueOr(item.Main.TempMin, item.Main.Temp),
			Humidity:     item.Main.Humidity,
			WindSpeed:    item.Wind.Speed,
			Descriptions: descriptions(item.Weather),
		})
	}
	return Series{
		City:    wire.City.Name,
		Samples: samples,
		RawJSON: raw,
	}, nil
}

func descriptions(items []conditionWire) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item.Description != "" {
			out = append(out, item.Description)
		}
	}
	return out
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
