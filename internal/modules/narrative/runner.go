// Package narrative runs prompts through the external narrator with a
// per-attempt timeout, a single retry and a response cache.
package narrative

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aristath/productpulse/internal/domain"
	"github.com/aristath/productpulse/internal/utils"
	"github.com/rs/zerolog"
)

// ErrDisabled is returned when no narrator is configured
var ErrDisabled = errors.New("narrative generation disabled")

// ErrEmptyResponse is returned when the narrator answers with blank text
var ErrEmptyResponse = errors.New("narrator returned an empty response")

// Cache stores narrator responses keyed by prompt hash
type Cache interface {
	Get(key string) (string, bool, error)
	Put(key, text string, ttl time.Duration) error
}

// Config controls timeouts, retries and caching of narrator calls
type Config struct {
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
	CacheTTL   time.Duration
}

// DefaultConfig returns a 20 second timeout, one retry and a 24 hour cache
func DefaultConfig() Config {
	return Config{
		Timeout:    20 * time.Second,
		Retries:    1,
		RetryDelay: 500 * time.Millisecond,
		CacheTTL:   24 * time.Hour,
	}
}

// Runner wraps a Narrator with retry, timeout and caching
type Runner struct {
	narrator domain.Narrator
	cache    Cache
	cfg      Config
	log      zerolog.Logger
}

// NewRunner creates a runner. A nil narrator disables generation; a nil cache disables caching.
func NewRunner(narrator domain.Narrator, cache Cache, cfg Config, log zerolog.Logger) *Runner {
	return &Runner{
		narrator: narrator,
		cache:    cache,
		cfg:      cfg,
		log:      log.With().Str("component", "narrative").Logger(),
	}
}

// Enabled reports whether the runner has a narrator to call
func (r *Runner) Enabled() bool {
	return r != nil && r.narrator != nil
}

// Generate returns the narrator's response for prompt.
// Cached responses are served without calling the narrator. Cache errors are
// logged and otherwise ignored.
func (r *Runner) Generate(ctx context.Context, prompt string) (string, error) {
	if !r.Enabled() {
		return "", ErrDisabled
	}

	key := CacheKey(prompt)
	if text, ok := r.fromCache(key); ok {
		return text, nil
	}

	var text string
	retry := utils.RetryConfig{
		MaxAttempts:    1 + r.cfg.Retries,
		BaseDelay:      r.cfg.RetryDelay,
		AttemptTimeout: r.cfg.Timeout,
		Log:            r.log,
	}
	err := retry.Do(ctx, "narrative generation", func(ctx context.Context) error {
		out, err := r.narrator.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		if strings.TrimSpace(out) == "" {
			return ErrEmptyResponse
		}
		text = out
		return nil
	})
	if err != nil {
		return "", err
	}

	r.toCache(key, text)
	return text, nil
}

func (r *Runner) fromCache(key string) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	text, ok, err := r.cache.Get(key)
	if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("Narrative cache read failed")
		return "", false
	}
	if ok {
		r.log.Debug().Str("key", key).Msg("Narrative cache hit")
	}
	return text, ok
}

func (r *Runner) toCache(key, text string) {
	if r.cache == nil || r.cfg.CacheTTL <= 0 {
		return
	}
	if err := r.cache.Put(key, text, r.cfg.CacheTTL); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("Narrative cache write failed")
	}
}

// CacheKey is the hex SHA-256 of the prompt
func CacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

// Describe formats a narrator failure for inclusion in fallback text
func Describe(err error) string {
	switch {
	case errors.Is(err, ErrDisabled):
		return "narrator disabled"
	case errors.Is(err, context.DeadlineExceeded):
		return "narrator timed out"
	default:
		return fmt.Sprintf("%v", err)
	}
}
