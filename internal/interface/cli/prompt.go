package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yanqian/weatherly/internal/domain/dashboard"
)

const (
	askMoreCities = "Would you like to enter additional cities? (yes/no)"
	askCityList   = "Enter city names separated by commas (e.g., Tokyo, Berlin):"
)

// Prompter asks the user for extra cities on a terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter reads answers from in and writes questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// ExtraCities asks whether to add cities and parses the comma separated answer.
// End of input is treated as "no". Reads block; ctx is only checked between questions.
func (p *Prompter) ExtraCities(ctx context.Context) ([]string, error) {
	fmt.Fprintln(p.out, askMoreCities)
	answer, err := p.readLine()
	if err != nil {
		return nil, err
	}
	if !isYes(answer) {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fmt.Fprintln(p.out, askCityList)
	line, err := p.readLine()
	if err != nil {
		return nil, err
	}
	return ParseCityList(line), nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read prompt answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y":
		return true
	default:
		return false
	}
}

// ParseCityList splits a comma separated list, dropping blank entries.
func ParseCityList(input string) []string {
	parts := strings.Split(input, ",")
	cities := make([]string, 0, len(parts))
	for _, part := range parts {
		if city := strings.TrimSpace(part); city != "" {
			cities = append(cities, city)
		}
	}
	return cities
}

// NoPrompt is used for non-interactive runs.
type NoPrompt struct{}

// ExtraCities never adds cities.
func (NoPrompt) ExtraCities(context.Context) ([]string, error) {
	return nil, nil
}

var (
	_ dashboard.CitySource = (*Prompter)(nil)
	_ dashboard.CitySource = NoPrompt{}
)
