package api

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/a2aproject/a2a-go/a2asrv/eventqueue"
	"github.com/go-chi/chi/v5"

	"github.com/soochol/searchgate/internal/tools"
)

// toolA2AExecutor implements a2asrv.AgentExecutor so that every catalog tool
// is callable as an A2A skill.
type toolA2AExecutor struct {
	srv *Server
}

func (e *toolA2AExecutor) Execute(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	toolName, args, err := parseA2AMessage(reqCtx.Message)
	if err != nil {
		return writeFailEvent(ctx, reqCtx, queue, err)
	}

	t, ok := e.srv.toolReg.Get(toolName)
	if !ok {
		return writeFailEvent(ctx, reqCtx, queue, fmt.Errorf("unknown tool: %q", toolName))
	}

	if reqCtx.StoredTask == nil {
		event := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateSubmitted, nil)
		if err := queue.Write(ctx, event); err != nil {
			return fmt.Errorf("failed to write submitted: %w", err)
		}
	}

	workingEvent := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateWorking, nil)
	if err := queue.Write(ctx, workingEvent); err != nil {
		return fmt.Errorf("failed to write working: %w", err)
	}

	res := e.srv.invoke(ctx, t, args, "a2a")
	text, err := json.Marshal(res)
	if err != nil {
		return writeFailEvent(ctx, reqCtx, queue, fmt.Errorf("encoding result: %w", err))
	}
	if msg, failed := res.ErrorMessage(); failed {
		return writeFailEvent(ctx, reqCtx, queue, fmt.Errorf("%s", msg))
	}

	artEvent := a2a.NewArtifactEvent(reqCtx, a2a.TextPart{Text: string(text)})
	if err := queue.Write(ctx, artEvent); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	doneEvent := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateCompleted, nil)
	doneEvent.Final = true
	if err := queue.Write(ctx, doneEvent); err != nil {
		return fmt.Errorf("failed to write completed: %w", err)
	}
	return nil
}

func (e *toolA2AExecutor) Cancel(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	event := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateCanceled, nil)
	event.Final = true
	return queue.Write(ctx, event)
}

// writeFailEvent sends a TaskStateFailed event with the error message.
func writeFailEvent(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue, err error) error {
	msg := a2a.NewMessage(a2a.MessageRoleAgent, a2a.TextPart{Text: err.Error()})
	event := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateFailed, msg)
	event.Final = true
	if writeErr := queue.Write(ctx, event); writeErr != nil {
		return fmt.Errorf("failed to write failure event: %w (original: %v)", writeErr, err)
	}
	return nil
}

// parseA2AMessage extracts a tool name and arguments from an A2A message.
// Supported formats:
//   - JSON text part {"tool": "search", "arguments": {"q": "..."}}
//   - metadata {"tool": "search"} with a plain text part used as q, or
//     metadata "arguments" holding the full argument object
func parseA2AMessage(msg *a2a.Message) (string, map[string]any, error) {
	if msg == nil || len(msg.Parts) == 0 {
		return "", nil, fmt.Errorf("empty message")
	}

	var text string
	for _, part := range msg.Parts {
		if tp, ok := part.(a2a.TextPart); ok {
			text = tp.Text
			break
		}
	}

	var structured struct {
		Tool      string         `json:"tool"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.Unmarshal([]byte(text), &structured); err == nil && structured.Tool != "" {
		if structured.Arguments == nil {
			structured.Arguments = map[string]any{}
		}
		return structured.Tool, structured.Arguments, nil
	}

	if msg.Metadata != nil {
		if name, ok := msg.Metadata["tool"].(string); ok && name != "" {
			args := map[string]any{}
			if m, ok := msg.Metadata["arguments"].(map[string]any); ok {
				for k, v := range m {
					args[k] = v
				}
			}
			if _, has := args[tools.QueryField]; !has && strings.TrimSpace(text) != "" {
				args[tools.QueryField] = text
			}
			return name, args, nil
		}
	}

	return "", nil, fmt.Errorf("could not determine tool; send JSON: {\"tool\": \"name\", \"arguments\": {...}}")
}

// buildAgentCard generates an AgentCard with one skill per catalog tool.
func (s *Server) buildAgentCard(ctx context.Context) *a2a.AgentCard {
	list := s.toolReg.List()
	skills := make([]a2a.AgentSkill, 0, len(list))
	for _, t := range list {
		tags := []string{"reference"}
		if _, ok := t.(*tools.SearchTool); ok {
			tags = []string{"search", "serper"}
		}
		skills = append(skills, a2a.AgentSkill{
			ID:          t.Name(),
			Name:        t.Name(),
			Description: t.Description(),
			Tags:        tags,
			Examples:    []string{buildExample(t)},
		})
	}

	return &a2a.AgentCard{
		Name:               "searchgate",
		Description:        "Google search verticals via Serper.dev. Each skill is one tool.",
		URL:                s.a2aBaseURL + "/a2a",
		Version:            s.version,
		ProtocolVersion:    "0.2",
		DefaultInputModes:  []string{"application/json", "text/plain"},
		DefaultOutputModes: []string{"application/json"},
		Capabilities:       a2a.AgentCapabilities{Streaming: true},
		Skills:             skills,
	}
}

// buildExample renders a request for t with placeholders for its required
// arguments.
func buildExample(t tools.Tool) string {
	var required []string
	if req, ok := t.InputSchema()["required"].([]any); ok {
		for _, r := range req {
			if name, ok := r.(string); ok {
				required = append(required, name)
			}
		}
	}
	sort.Strings(required)

	parts := make([]string, len(required))
	for i, name := range required {
		parts[i] = fmt.Sprintf(`"%s": "..."`, name)
	}
	return fmt.Sprintf(`{"tool": "%s", "arguments": {%s}}`, t.Name(), strings.Join(parts, ", "))
}

// setupA2ARoutes registers A2A protocol endpoints on the Chi router.
func (s *Server) setupA2ARoutes(r chi.Router) {
	executor := &toolA2AExecutor{srv: s}

	reqHandler := a2asrv.NewHandler(executor)

	cardProducer := a2asrv.AgentCardProducerFn(func(ctx context.Context) (*a2a.AgentCard, error) {
		return s.buildAgentCard(ctx), nil
	})
	r.Handle(a2asrv.WellKnownAgentCardPath, a2asrv.NewAgentCardHandler(cardProducer))

	r.Handle("/a2a", a2asrv.NewJSONRPCHandler(reqHandler))
}
