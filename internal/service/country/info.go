package country

import (
	"context"
	"fmt"

	"github.com/evateli/globetalk/internal/service/weather"
)

// Geographer resolves country facts via the model.
type Geographer interface {
	CapitalCity(ctx context.Context, name string) (string, error)
	CountrySummary(ctx context.Context, name string) (string, error)
}

// WeatherLookup fetches current conditions for a city.
type WeatherLookup interface {
	Current(ctx context.Context, city string) (weather.Report, error)
}

// Info is the combined capital-weather-summary payload.
type Info struct {
	Weather     weather.Report `json:"weather"`
	CountryInfo string         `json:"country_info"`
}

// InfoService resolves a country's capital, its current weather and a short
// factual summary. Results are not cached.
type InfoService struct {
	geo     Geographer
	weather WeatherLookup
}

// NewInfoService wires the country info pipeline.
func NewInfoService(geo Geographer, lookup WeatherLookup) *InfoService {
	return &InfoService{geo: geo, weather: lookup}
}

// Info derives the capital city, queries current weather there and asks the
// model for a factual summary. Any upstream failure aborts the whole call.
func (s *InfoService) Info(ctx context.Context, name string) (Info, error) {
	capital, err := s.geo.CapitalCity(ctx, name)
	if err != nil {
		return Info{}, fmt.Errorf("resolve capital of %q: %w", name, err)
	}

	report, err := s.weather.Current(ctx, capital)
	if err != nil {
		return Info{}, err
	}

	summary, err := s.geo.CountrySummary(ctx, name)
	if err != nil {
		return Info{}, fmt.Errorf("summarize %q: %w", name, err)
	}

	return Info{Weather: report, CountryInfo: summary}, nil
}
