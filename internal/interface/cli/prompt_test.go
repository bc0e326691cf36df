package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtraCitiesYes(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("YES\n Tokyo, Berlin ,, São Paulo\n"), &out)

	cities, err := p.ExtraCities(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Tokyo", "Berlin", "São Paulo"}, cities)
	require.Equal(t, askMoreCities+"\n"+askCityList+"\n", out.String())
}

func TestExtraCitiesNo(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("no\nTokyo\n"), &out)

	cities, err := p.ExtraCities(context.Background())
	require.NoError(t, err)
	require.Empty(t, cities)
	require.NotContains(t, out.String(), askCityList)
}

func TestExtraCitiesEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})
	cities, err := p.ExtraCities(context.Background())
	require.NoError(t, err)
	require.Empty(t, cities)

	// Last line without a trailing newline still counts.
	p = NewPrompter(strings.NewReader("y\nOslo"), &bytes.Buffer{})
	cities, err = p.ExtraCities(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Oslo"}, cities)
}

func TestExtraCitiesReadError(t *testing.T) {
	p := NewPrompter(failingReader{}, &bytes.Buffer{})
	_, err := p.ExtraCities(context.Background())
	require.Error(t, err)
}

func TestParseCityList(t *testing.T) {
	require.Equal(t, []string{"Accra"}, ParseCityList("  Accra  "))
	require.Empty(t, ParseCityList(" , ,"))
}

func TestNoPrompt(t *testing.T) {
	cities, err := NoPrompt{}.ExtraCities(context.Background())
	require.NoError(t, err)
	require.Nil(t, cities)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("tty closed")
}
