package country

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	countryservice "github.com/evateli/globetalk/internal/service/country"
	"github.com/evateli/globetalk/internal/service/weather"
)

type stubVerifier struct {
	reply string
	err   error
}

func (s *stubVerifier) VerifyCountry(context.Context, string) (string, error) {
	return s.reply, s.err
}

type stubGeographer struct {
	capital string
	summary string
}

func (s *stubGeographer) CapitalCity(context.Context, string) (string, error) {
	return s.capital, nil
}

func (s *stubGeographer) CountrySummary(context.Context, string) (string, error) {
	return s.summary, nil
}

type stubWeather struct {
	report weather.Report
	err    error
}

func (s *stubWeather) Current(context.Context, string) (weather.Report, error) {
	return s.report, s.err
}

func setupRouter(verifier countryservice.Verifier, lookup countryservice.WeatherLookup) *chi.Mux {
	var countries *countryservice.Service
	if verifier != nil {
		countries = countryservice.NewService(verifier, time.Hour)
	}

	var info *countryservice.InfoService
	if lookup != nil {
		info = countryservice.NewInfoService(&stubGeographer{capital: "Bangkok", summary: "Facts."}, lookup)
	}

	handler := New(countries, info)
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)
	return resp
}

func TestVerifyCountrySuccess(t *testing.T) {
	r := setupRouter(&stubVerifier{reply: "🇹🇭 Thailand"}, nil)

	resp := postJSON(t, r, "/verify_country", map[string]string{"country": "Thailand"})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Verification string `json:"verification"`
		Result       struct {
			Kind        string `json:"kind"`
			CountryName string `json:"countryName"`
		} `json:"result"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if body.Verification != "🇹🇭 Thailand" {
		t.Fatalf("unexpected verification: %q", body.Verification)
	}
	if body.Result.Kind != "valid" || body.Result.CountryName != "Thailand" {
		t.Fatalf("unexpected structured result: %+v", body.Result)
	}
}

func TestVerifyCountryMissingField(t *testing.T) {
	r := setupRouter(&stubVerifier{reply: "🇹🇭 Thailand"}, nil)

	resp := postJSON(t, r, "/verify_country", map[string]string{})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestVerifyCountryUpstreamFailure(t *testing.T) {
	r := setupRouter(&stubVerifier{err: errors.New("model down")}, nil)

	resp := postJSON(t, r, "/verify_country", map[string]string{"country": "Thailand"})

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestGetCountryInfoSuccess(t *testing.T) {
	lookup := &stubWeather{report: weather.Report{
		Temperature: 31.4,
		Condition:   "scattered clouds",
		Icon:        "03d",
		Humidity:    62,
		City:        "Bangkok",
		LocalTime:   "12:00",
	}}
	r := setupRouter(nil, lookup)

	resp := postJSON(t, r, "/get_country_info", map[string]string{"country": "Thailand"})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Weather     weather.Report `json:"weather"`
		CountryInfo string         `json:"country_info"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Weather.City != "Bangkok" || body.Weather.LocalTime != "12:00" {
		t.Fatalf("unexpected weather: %+v", body.Weather)
	}
	if body.CountryInfo != "Facts." {
		t.Fatalf("unexpected summary: %q", body.CountryInfo)
	}
}

func TestGetCountryInfoWeatherFailure(t *testing.T) {
	lookup := &stubWeather{err: &weather.StatusError{StatusCode: 404}}
	r := setupRouter(nil, lookup)

	resp := postJSON(t, r, "/get_country_info", map[string]string{"country": "Thailand"})

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}

	var body struct {
		Error  string `json:"error"`
		Status int    `json:"status"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != 404 {
		t.Fatalf("expected upstream status 404, got %d", body.Status)
	}
}

func TestVerifyCountryUnavailableWithoutAI(t *testing.T) {
	r := setupRouter(nil, nil)

	resp := postJSON(t, r, "/verify_country", map[string]string{"country": "Thailand"})

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}
