package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/soochol/searchgate/internal/agents"
	"github.com/soochol/searchgate/internal/mcpserver"
	"github.com/soochol/searchgate/internal/tools"
)

type Server struct {
	toolReg    *tools.Registry
	upstream   tools.Upstream
	mcpServer  *mcp.Server
	a2aBaseURL string
	version    string
}

func NewServer(toolReg *tools.Registry, upstream tools.Upstream) *Server {
	return &Server{
		toolReg:  toolReg,
		upstream: upstream,
		version:  "dev",
	}
}

// SetVersion sets the version reported in discovery documents.
func (s *Server) SetVersion(v string) {
	s.version = v
}

// SetMCPServer mounts the MCP streamable-HTTP endpoint at /mcp.
func (s *Server) SetMCPServer(srv *mcp.Server) {
	s.mcpServer = srv
}

// SetA2ABaseURL enables A2A protocol endpoints on the server.
// The URL is used in the AgentCard to advertise the invoke endpoint.
func (s *Server) SetA2ABaseURL(url string) {
	s.a2aBaseURL = url
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
	}))

	r.Get("/health", s.health)
	r.Get("/.well-known/ai-plugin.json", s.pluginManifest)
	r.Get("/functions", s.listFunctions)
	r.Route("/tools", func(r chi.Router) {
		r.Get("/", s.listTools)
		r.Post("/{name}", s.callTool)
	})

	if s.mcpServer != nil {
		r.Handle("/mcp", mcpserver.HTTPHandler(s.mcpServer))
	}

	// A2A protocol endpoints (agent card + JSON-RPC).
	if s.a2aBaseURL != "" {
		s.setupA2ARoutes(r)
	}

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":                "ok",
		"version":               s.version,
		"credential_configured": s.upstream != nil && s.upstream.Configured(),
		"tools":                 len(s.toolReg.Names()),
	})
}

// listFunctions returns the catalog as genai function declarations.
func (s *Server) listFunctions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, agents.FunctionDeclarations(s.toolReg))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
