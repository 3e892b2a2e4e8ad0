package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/soochol/searchgate/internal/serper"
)

// Upstream is the subset of *serper.Client the catalog depends on.
type Upstream interface {
	Configured() bool
	Call(ctx context.Context, endpoint string, payload map[string]any) serper.Result
	BaseURL() string
	Timeout() time.Duration
}

// SearchTool serves one vertical: it validates arguments, builds the payload,
// calls the provider once and reshapes the response.
type SearchTool struct {
	vertical  Vertical
	upstream  Upstream
	validator *argValidator
}

// NewSearchTool compiles the vertical's input schema and binds it to up.
func NewSearchTool(v Vertical, up Upstream) (*SearchTool, error) {
	validator, err := newArgValidator(v.InputSchema())
	if err != nil {
		return nil, fmt.Errorf("vertical %q: %w", v.Name, err)
	}
	return &SearchTool{vertical: v, upstream: up, validator: validator}, nil
}

func (s *SearchTool) Name() string                { return s.vertical.Name }
func (s *SearchTool) Description() string         { return s.vertical.Description }
func (s *SearchTool) InputSchema() map[string]any { return s.vertical.InputSchema() }

// Vertical returns the catalog entry this tool serves.
func (s *SearchTool) Vertical() Vertical { return s.vertical }

func (s *SearchTool) Execute(ctx context.Context, args map[string]any) Result {
	if !s.upstream.Configured() {
		return s.vertical.failure(serper.ErrMissingCredential.Error())
	}

	payload, err := buildPayload(s.vertical, s.validator, args)
	if err != nil {
		return s.vertical.failure(err.Error())
	}

	res := s.upstream.Call(ctx, s.vertical.Endpoint, payload)
	if res.Failed() {
		return s.vertical.failure(res.Err.Error())
	}
	if msg, ok := Result(res.Body).ErrorMessage(); ok {
		slog.Warn("upstream reported an error", "vertical", s.vertical.Name, "err", msg)
		return s.vertical.failure(msg)
	}

	query, _ := payload[QueryField].(string)
	return s.vertical.reshape(query, res.Body)
}
