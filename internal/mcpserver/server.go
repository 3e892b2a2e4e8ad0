// Package mcpserver publishes the tool catalog over the Model Context Protocol.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/soochol/searchgate/internal/tools"
)

// Name is the implementation name reported during the MCP handshake.
const Name = "searchgate"

// New creates an MCP server exposing every tool in reg.
func New(reg *tools.Registry, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    Name,
		Version: version,
	}, nil)
	for _, t := range reg.List() {
		server.AddTool(&mcp.Tool{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.InputSchema(),
		}, handler(t))
	}
	return server
}

// HTTPHandler serves the MCP server over streamable HTTP.
func HTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}

// ServeStdio runs the server over stdin/stdout until ctx is done or the
// client disconnects.
func ServeStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

func handler(t tools.Tool) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := map[string]any{}
		if req.Params != nil && len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return toCallResult(tools.ErrorResult(fmt.Sprintf("invalid arguments: %v", err))), nil
			}
			if args == nil {
				args = map[string]any{}
			}
		}
		res := t.Execute(ctx, args)
		if msg, failed := res.ErrorMessage(); failed {
			slog.Info("mcp tool call failed", "tool", t.Name(), "err", msg)
		}
		return toCallResult(res), nil
	}
}

// toCallResult carries the result both as JSON text, for clients that only
// read content blocks, and as structured content.
func toCallResult(res tools.Result) *mcp.CallToolResult {
	text, err := json.Marshal(res)
	if err != nil {
		res = tools.ErrorResult(fmt.Sprintf("encoding result: %v", err))
		text, _ = json.Marshal(res)
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(text)}},
		StructuredContent: map[string]any(res),
		IsError:           res.Failed(),
	}
}
