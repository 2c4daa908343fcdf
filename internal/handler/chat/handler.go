package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evateli/globetalk/internal/model/chat"
	"github.com/evateli/globetalk/internal/model/persona"
	"github.com/evateli/globetalk/internal/service/ai"
	"github.com/evateli/globetalk/internal/service/avatar"
	chatService "github.com/evateli/globetalk/internal/service/chat"
	"github.com/evateli/globetalk/pkg/utils"
)

// LLM is the slice of the AI service the chat handler needs.
type LLM interface {
	FlagEmoji(ctx context.Context, country string) (string, error)
	Opening(ctx context.Context, systemPrompt string) (string, error)
	Reply(ctx context.Context, sessionID string, turns []chat.Turn, userInput string) (string, error)
}

// AvatarGenerator renders a persona portrait.
type AvatarGenerator interface {
	Generate(ctx context.Context, country, gender string) (string, error)
}

// Handler serves the chat endpoints.
type Handler struct {
	chatSvc *chatService.Service
	llm     LLM
	avatars AvatarGenerator
}

// New creates the chat handler. avatars may be nil; the placeholder is
// used in that case.
func New(chatSvc *chatService.Service, llm LLM, avatars AvatarGenerator) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		llm:     llm,
		avatars: avatars,
	}
}

// RegisterRoutes mounts the chat endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/start_chat", h.handleStartChat)
	r.Post("/chat", h.handleChat)
}

func (h *Handler) handleStartChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"session_id"`
		Country   string `json:"country"`
		Gender    string `json:"gender"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.Country == "" {
		utils.RespondError(w, http.StatusBadRequest, "No country provided")
		return
	}

	if h.llm == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "ai unavailable")
		return
	}

	ctx := r.Context()

	flag, err := h.llm.FlagEmoji(ctx, payload.Country)
	if err != nil {
		h.respondUpstreamError(w, err)
		return
	}

	local := persona.Random(payload.Country, payload.Gender)
	systemPrompt := ai.PersonaSystemPrompt(local, flag)

	greeting, err := h.llm.Opening(ctx, systemPrompt)
	if err != nil {
		h.respondUpstreamError(w, err)
		return
	}

	// Avatar failure is deliberately non-fatal.
	avatarURL := avatar.PlaceholderURL
	if h.avatars != nil {
		url, err := h.avatars.Generate(ctx, payload.Country, local.Gender)
		if err != nil {
			log.Printf("[chat] avatar generation failed, using placeholder: %v", err)
		} else {
			avatarURL = url
		}
	}

	session, created, err := h.chatSvc.Start(ctx, payload.SessionID, payload.Country, local.Gender)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !created {
		log.Printf("[chat] reusing session=%s, history preserved", session.ID)
	}

	if err := h.chatSvc.AppendTurns(ctx, session.ID, chat.SystemTurn(systemPrompt), chat.AssistantTurn(greeting)); err != nil {
		h.respondUpstreamError(w, err)
		return
	}

	history, err := h.chatSvc.History(ctx, session.ID)
	if err != nil {
		h.respondUpstreamError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message":    greeting,
		"messages":   history,
		"avatar_url": avatarURL,
		"session_id": session.ID,
		"status":     "success",
	})
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"session_id"`
		UserInput string `json:"user_input"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()

	// Session validity is checked before the input, so a request that is
	// wrong on both counts reports the unknown session.
	if !h.chatSvc.Exists(ctx, payload.SessionID) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid session ID")
		return
	}

	if payload.UserInput == "" {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	if h.llm == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "ai unavailable")
		return
	}
	reply, history, err := h.chatSvc.Exchange(ctx, payload.SessionID, payload.UserInput,
		func(ctx context.Context, turns []chat.Turn) (string, error) {
			return h.llm.Reply(ctx, payload.SessionID, turns, payload.UserInput)
		})
	if err != nil {
		if errors.Is(err, chatService.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusBadRequest, "Invalid session ID")
			return
		}
		h.respondUpstreamError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"reply":    reply,
		"messages": history,
		"status":   "success",
	})
}

func (h *Handler) respondUpstreamError(w http.ResponseWriter, err error) {
	utils.RespondJSON(w, http.StatusInternalServerError, map[string]string{
		"error":  err.Error(),
		"status": "error",
	})
}
