package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/soochol/searchgate/internal/tools"
)

// maxRequestBody caps inbound tool arguments.
const maxRequestBody = 1 << 20 // 1 MiB

// listTools returns every tool with its input schema, in catalog order.
func (s *Server) listTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.toolReg.AllTools())
}

// callTool runs one tool. Tool failures are returned as 200 with an "error"
// key; only an unknown tool or an unreadable body change the status code.
func (s *Server) callTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	t, ok := s.toolReg.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, tools.ErrorResult(fmt.Sprintf("unknown tool: %q", name)))
		return
	}

	args, err := decodeArgs(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, tools.ErrorResult("invalid request body: "+err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, s.invoke(r.Context(), t, args, "http"))
}

// decodeArgs reads a JSON object body. An empty body or a JSON null means no
// arguments.
func decodeArgs(body io.Reader) (map[string]any, error) {
	raw, err := io.ReadAll(io.LimitReader(body, maxRequestBody+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > maxRequestBody {
		return nil, fmt.Errorf("body exceeds %d bytes", maxRequestBody)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("expected a JSON object: %w", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// invoke executes t and logs the outcome under a fresh call id.
func (s *Server) invoke(ctx context.Context, t tools.Tool, args map[string]any, via string) tools.Result {
	callID := uuid.NewString()
	start := time.Now()
	res := t.Execute(ctx, args)

	attrs := []any{
		"call_id", callID,
		"tool", t.Name(),
		"via", via,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if msg, failed := res.ErrorMessage(); failed {
		slog.Warn("tool call failed", append(attrs, "err", msg)...)
	} else {
		slog.Info("tool call", attrs...)
	}
	return res
}
