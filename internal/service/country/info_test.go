package country_test

import (
	"context"
	"errors"
	"testing"

	country "github.com/evateli/globetalk/internal/service/country"
	"github.com/evateli/globetalk/internal/service/weather"
)

type stubGeographer struct {
	capital    string
	summary    string
	capitalErr error
	summaryErr error
}

func (s *stubGeographer) CapitalCity(context.Context, string) (string, error) {
	return s.capital, s.capitalErr
}

func (s *stubGeographer) CountrySummary(context.Context, string) (string, error) {
	return s.summary, s.summaryErr
}

type stubWeather struct {
	report weather.Report
	err    error
	city   string
}

func (s *stubWeather) Current(_ context.Context, city string) (weather.Report, error) {
	s.city = city
	return s.report, s.err
}

func TestInfoQueriesCapitalWeather(t *testing.T) {
	geo := &stubGeographer{capital: "Bangkok", summary: "Population about 70 million."}
	lookup := &stubWeather{report: weather.Report{City: "Bangkok", Temperature: 31.5}}
	svc := country.NewInfoService(geo, lookup)

	info, err := svc.Info(context.Background(), "Thailand")
	if err != nil {
		t.Fatalf("Info err: %v", err)
	}

	if lookup.city != "Bangkok" {
		t.Fatalf("expected weather lookup for the capital, got %q", lookup.city)
	}
	if info.Weather.Temperature != 31.5 {
		t.Fatalf("unexpected temperature: %v", info.Weather.Temperature)
	}
	if info.CountryInfo != "Population about 70 million." {
		t.Fatalf("unexpected summary: %q", info.CountryInfo)
	}
}

func TestInfoPropagatesWeatherStatusError(t *testing.T) {
	geo := &stubGeographer{capital: "Bangkok", summary: "..."}
	lookup := &stubWeather{err: &weather.StatusError{StatusCode: 404}}
	svc := country.NewInfoService(geo, lookup)

	_, err := svc.Info(context.Background(), "Thailand")

	var statusErr *weather.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != 404 {
		t.Fatalf("unexpected status code: %d", statusErr.StatusCode)
	}
}

func TestInfoAbortsOnCapitalFailure(t *testing.T) {
	geo := &stubGeographer{capitalErr: errors.New("model down")}
	lookup := &stubWeather{}
	svc := country.NewInfoService(geo, lookup)

	if _, err := svc.Info(context.Background(), "Thailand"); err == nil {
		t.Fatal("expected error when capital resolution fails")
	}
	if lookup.city != "" {
		t.Fatal("weather must not be queried when capital resolution fails")
	}
}
