package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/cloudwego/eino/schema"

	"github.com/evateli/globetalk/internal/model/chat"
	aiService "github.com/evateli/globetalk/internal/service/ai"
	chatService "github.com/evateli/globetalk/internal/service/chat"
	"github.com/evateli/globetalk/pkg/utils"
)

// Handler relays chat replies over Server-Sent Events.
type Handler struct {
	aiService *aiService.Service
	chatSvc   *chatService.Service
}

// New creates the stream handler.
func New(aiSvc *aiService.Service, chatSvc *chatService.Service) *Handler {
	return &Handler{
		aiService: aiSvc,
		chatSvc:   chatSvc,
	}
}

// StreamResponse is a single SSE frame.
type StreamResponse struct {
	Event     string `json:"event"`
	Content   string `json:"content,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Finished  bool   `json:"finished,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HandleStreamRequest streams one chat turn for a session. The exchange
// runs under the same per-session lock as the REST endpoint, so the stored
// transcript stays consistent between the two paths.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	h.sendSSE(w, flusher, StreamResponse{
		Event:     "start",
		SessionID: sessionID,
	})

	reply, _, err := h.chatSvc.Exchange(ctx, sessionID, userMessage,
		func(ctx context.Context, turns []chat.Turn) (string, error) {
			return h.generate(ctx, w, flusher, sessionID, turns, userMessage)
		})
	if err != nil {
		h.sendSSEError(w, flusher, fmt.Sprintf("AI generation failed: %v", err))
		return err
	}

	h.sendSSE(w, flusher, StreamResponse{
		Event:     "message",
		SessionID: sessionID,
		Content:   reply,
	})
	h.sendSSE(w, flusher, StreamResponse{
		Event:     "end",
		SessionID: sessionID,
		Finished:  true,
	})

	log.Printf("[stream] completed response for session=%s", sessionID)
	return nil
}

// generate produces the reply, emitting delta frames while the model
// streams. With streaming disabled it falls back to a single generation.
func (h *Handler) generate(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, sessionID string, turns []chat.Turn, userMessage string) (string, error) {
	if !h.aiService.StreamingEnabled() {
		return h.aiService.Reply(ctx, sessionID, turns, userMessage)
	}

	stream, err := h.aiService.StreamReply(ctx, sessionID, turns, userMessage)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	chunks := make([]*schema.Message, 0, 8)

	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			return "", recvErr
		}
		if chunk == nil {
			continue
		}

		chunks = append(chunks, chunk)
		if chunk.Content != "" {
			h.sendSSE(w, flusher, StreamResponse{
				Event:     "delta",
				SessionID: sessionID,
				Content:   chunk.Content,
			})
		}
	}

	response, err := schema.ConcatMessages(chunks)
	if err != nil {
		return "", err
	}

	return response.Content, nil
}

func (h *Handler) sendSSE(w http.ResponseWriter, flusher http.Flusher, response StreamResponse) {
	utils.SendSSEChunk(w, flusher, response)
}

func (h *Handler) sendSSEError(w http.ResponseWriter, flusher http.Flusher, errorMsg string) {
	h.sendSSE(w, flusher, StreamResponse{
		Event: "error",
		Error: errorMsg,
	})
}
