package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/soochol/searchgate/internal/api"
	"github.com/soochol/searchgate/internal/config"
	"github.com/soochol/searchgate/internal/mcpserver"
	"github.com/soochol/searchgate/internal/serper"
	"github.com/soochol/searchgate/internal/tools"
)

const shutdownTimeout = 10 * time.Second

// setup resolves configuration, installs the default logger and builds the
// catalog. Logs always go to stderr so stdout stays clean for MCP and JSON
// output.
func setup() (*config.Config, *serper.Client, *tools.Registry, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("config: %w", err)
	}
	slog.SetDefault(cfg.Log.NewLogger(os.Stderr))

	client := serper.NewClient(cfg.Serper.APIKey,
		serper.WithBaseURL(cfg.Serper.BaseURL),
		serper.WithTimeout(cfg.Serper.Timeout),
	)
	if !client.Configured() {
		slog.Warn("SERPER_API_KEY is not set; search tools will return \"missing credential\"")
	}

	reg, err := tools.NewCatalog(client)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("building catalog: %w", err)
	}
	return cfg, client, reg, nil
}

func runServe(ctx context.Context) error {
	cfg, client, reg, err := setup()
	if err != nil {
		return err
	}

	srv := api.NewServer(reg, client)
	srv.SetVersion(version)
	srv.SetMCPServer(mcpserver.New(reg, version))
	if cfg.A2A.BaseURL != "" {
		srv.SetA2ABaseURL(cfg.A2A.BaseURL)
		slog.Info("A2A endpoints enabled", "base_url", cfg.A2A.BaseURL)
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting searchgate server", "addr", httpSrv.Addr, "tools", len(reg.Names()))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("shutting down searchgate server")
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func runMCP(ctx context.Context) error {
	_, _, reg, err := setup()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("serving MCP over stdio", "tools", len(reg.Names()))
	return mcpserver.ServeStdio(ctx, mcpserver.New(reg, version))
}

func runTools(w io.Writer) error {
	_, _, reg, err := setup()
	if err != nil {
		return err
	}
	return printJSON(w, api.BuildManifest(reg))
}

func runCall(ctx context.Context, w io.Writer, name, raw string) error {
	_, _, reg, err := setup()
	if err != nil {
		return err
	}

	args := map[string]any{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return fmt.Errorf("arguments must be a JSON object: %w", err)
		}
	}

	res, err := reg.Execute(ctx, name, args)
	if err != nil {
		return err
	}
	if err := printJSON(w, res); err != nil {
		return err
	}
	if msg, failed := res.ErrorMessage(); failed {
		return fmt.Errorf("%s failed: %s", name, msg)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
