package dashboard

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yanqian/weatherly/internal/domain/forecast"
)

type unitSymbols struct {
	temp  string
	speed string
}

func symbolsFor(units string) unitSymbols {
	switch strings.ToLower(strings.TrimSpace(units)) {
	case "metric":
		return unitSymbols{temp: "°C", speed: "m/s"}
	case "standard":
		return unitSymbols{temp: "K", speed: "m/s"}
	default:
		return unitSymbols{temp: "°F", speed: "mph"}
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeCityHeader(w io.Writer, city string) {
	fmt.Fprintf(w, "\n=== Weather Report for %s ===\n", city)
}

func writeCurrent(w io.Writer, cur forecast.Current, sym unitSymbols) {
	fmt.Fprintf(w, "Temperature: %s%s\n", formatNumber(cur.Temperature), sym.temp)
	fmt.Fprintf(w, "Feels like: %s%s\n", formatNumber(cur.FeelsLike), sym.temp)
	fmt.Fprintf(w, "Humidity: %s%%\n", formatNumber(cur.Humidity))
	fmt.Fprintf(w, "Conditions: %s\n", cur.Description())
}

// Daily highs and lows are shown as whole degrees; the summary keeps full precision.
func writeForecast(w io.Writer, days []forecast.DailySummary, sym unitSymbols) {
	for _, day := range days {
		fmt.Fprintf(w, "\n%s:\n", day.Date)
		fmt.Fprintf(w, "  High: %.0f%s\n", day.TempMax, sym.temp)
		fmt.Fprintf(w, "  Low: %.0f%s\n", day.TempMin, sym.temp)
		fmt.Fprintf(w, "  Conditions: %s\n", day.Conditions())
		fmt.Fprintf(w, "  Humidity: %d%%\n", day.Humidity)
		fmt.Fprintf(w, "  Wind Speed: %.1f %s\n", day.WindSpeed, sym.speed)
	}
}
