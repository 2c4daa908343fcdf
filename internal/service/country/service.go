package country

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/evateli/globetalk/internal/model/country"
)

// Verifier is the model-backed lookup the cache sits in front of.
type Verifier interface {
	VerifyCountry(ctx context.Context, name string) (string, error)
}

// Result carries both the verbatim model reply and its structured form.
type Result struct {
	Verification string               `json:"verification"`
	Parsed       country.Verification `json:"result"`
}

// Service caches verification replies by the exact submitted string.
// Entries expire after the configured TTL and are swept in the background,
// so stale text is never served and dead entries do not pile up.
type Service struct {
	verifier Verifier
	cache    *gocache.Cache
}

// NewService builds the verification service with the given cache TTL.
// A non-positive ttl disables caching, so every request goes upstream.
func NewService(verifier Verifier, ttl time.Duration) *Service {
	s := &Service{verifier: verifier}

	if ttl > 0 {
		cleanup := time.Hour
		if ttl < cleanup {
			cleanup = ttl
		}
		s.cache = gocache.New(ttl, cleanup)
	}

	return s
}

// Verify returns the verification text for a country name, consulting the
// cache first. Failed upstream calls are never cached.
func (s *Service) Verify(ctx context.Context, name string) (Result, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(name); ok {
			text := cached.(string)
			return Result{Verification: text, Parsed: country.Parse(text)}, nil
		}
	}

	text, err := s.verifier.VerifyCountry(ctx, name)
	if err != nil {
		return Result{}, fmt.Errorf("verify country %q: %w", name, err)
	}

	if s.cache != nil {
		s.cache.Set(name, text, gocache.DefaultExpiration)
	}
	return Result{Verification: text, Parsed: country.Parse(text)}, nil
}
