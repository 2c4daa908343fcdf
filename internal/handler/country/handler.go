package country

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	countryService "github.com/evateli/globetalk/internal/service/country"
	"github.com/evateli/globetalk/internal/service/weather"
	"github.com/evateli/globetalk/pkg/utils"
)

// Handler serves country verification and country info.
type Handler struct {
	countries *countryService.Service
	info      *countryService.InfoService
}

// New creates the country handler. Either service may be nil when its
// upstream is not configured; the matching endpoint then reports 503.
func New(countries *countryService.Service, info *countryService.InfoService) *Handler {
	return &Handler{
		countries: countries,
		info:      info,
	}
}

// RegisterRoutes mounts the country endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/verify_country", h.handleVerify)
	r.Post("/get_country_info", h.handleInfo)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Country string `json:"country"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Country == "" {
		utils.RespondError(w, http.StatusBadRequest, "No country provided")
		return
	}

	if h.countries == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "ai unavailable")
		return
	}

	result, err := h.countries.Verify(r.Context(), payload.Country)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"verification": result.Verification,
		"result":       result.Parsed,
	})
}

func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Country string `json:"country"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Country == "" {
		utils.RespondError(w, http.StatusBadRequest, "No country provided")
		return
	}

	if h.info == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "country info unavailable")
		return
	}

	info, err := h.info.Info(r.Context(), payload.Country)
	if err != nil {
		var statusErr *weather.StatusError
		if errors.As(err, &statusErr) {
			utils.RespondJSON(w, http.StatusBadGateway, map[string]any{
				"error":  err.Error(),
				"status": statusErr.StatusCode,
			})
			return
		}
		utils.RespondJSON(w, http.StatusInternalServerError, map[string]any{
			"error":  err.Error(),
			"status": "error",
		})
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"weather":      info.Weather,
		"country_info": info.CountryInfo,
	})
}
