package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/evateli/globetalk/internal/handler/chat"
	countryHandler "github.com/evateli/globetalk/internal/handler/country"
	"github.com/evateli/globetalk/internal/handler/static"
	"github.com/evateli/globetalk/internal/handler/stream"
	middlewarePkg "github.com/evateli/globetalk/internal/middleware"
	aiService "github.com/evateli/globetalk/internal/service/ai"
	"github.com/evateli/globetalk/internal/service/avatar"
	chatService "github.com/evateli/globetalk/internal/service/chat"
	countryService "github.com/evateli/globetalk/internal/service/country"
	"github.com/evateli/globetalk/pkg/utils"
)

// NewRouter wires HTTP routes to core services. aiSvc, avatars, countries
// and info may be nil when their upstream credentials are not configured;
// the affected endpoints then report unavailability instead of panicking.
func NewRouter(chatSvc *chatService.Service, aiSvc *aiService.Service, avatars *avatar.Client, countries *countryService.Service, info *countryService.InfoService) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	var llm chatHandler.LLM
	var avatarGen chatHandler.AvatarGenerator
	if aiSvc != nil {
		llm = aiSvc
	}
	if avatars != nil {
		avatarGen = avatars
	}

	chatH := chatHandler.New(chatSvc, llm, avatarGen)
	countryH := countryHandler.New(countries, info)

	var streamH *stream.Handler
	if aiSvc != nil {
		streamH = stream.New(aiSvc, chatSvc)
	}

	r.Get("/", static.Index)
	chatH.RegisterRoutes(r)
	countryH.RegisterRoutes(r)

	r.Get("/chat/stream/{sessionID}", func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")
		userMessage := r.URL.Query().Get("message")

		if streamH == nil {
			utils.RespondError(w, http.StatusServiceUnavailable, "ai streaming unavailable")
			return
		}
		if userMessage == "" {
			utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
			return
		}

		if err := streamH.HandleStreamRequest(r.Context(), w, sessionID, userMessage); err != nil {
			log.Printf("[stream] error handling request: %v", err)
		}
	})

	return r
}
