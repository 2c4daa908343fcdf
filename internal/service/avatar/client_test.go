package avatar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evateli/globetalk/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(
		config.AIConfig{APIKey: "key", BaseURL: baseURL},
		config.ImageConfig{Model: "dall-e-2", Size: "1024x1024", Quality: "standard"},
	)
}

func TestGenerateReturnsImageURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Fatalf("unexpected authorization header: %q", got)
		}

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		prompt, _ := payload["prompt"].(string)
		if !strings.Contains(prompt, "Thailand") || !strings.Contains(prompt, "woman") {
			t.Fatalf("prompt must mention country and gender, got %q", prompt)
		}

		w.Write([]byte(`{"data":[{"url":"https://img.test/avatar.png"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	url, err := client.Generate(context.Background(), "Thailand", "woman")
	if err != nil {
		t.Fatalf("Generate err: %v", err)
	}
	if url != "https://img.test/avatar.png" {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestGenerateNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	if _, err := client.Generate(context.Background(), "Thailand", "woman"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestGenerateEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	if _, err := client.Generate(context.Background(), "Thailand", "woman"); err == nil {
		t.Fatal("expected error for empty image data")
	}
}
