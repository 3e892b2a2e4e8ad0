package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a2aproject/a2a-go/a2a"
)

func TestAgentCardEndpoint(t *testing.T) {
	srv := newTestServer(t, "http://unused.local", "k")
	srv.SetA2ABaseURL("http://localhost:8080")
	srv.SetVersion("1.2.3")

	req := httptest.NewRequest("GET", "/.well-known/agent-card.json", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var card a2a.AgentCard
	if err := json.Unmarshal(w.Body.Bytes(), &card); err != nil {
		t.Fatalf("failed to decode agent card: %v", err)
	}

	if card.Name != "searchgate" {
		t.Errorf("expected card name 'searchgate', got %q", card.Name)
	}
	if card.URL != "http://localhost:8080/a2a" {
		t.Errorf("expected URL 'http://localhost:8080/a2a', got %q", card.URL)
	}
	if card.Version != "1.2.3" {
		t.Errorf("expected version '1.2.3', got %q", card.Version)
	}
	if len(card.Skills) != 15 {
		t.Fatalf("expected 15 skills, got %d", len(card.Skills))
	}
	skill := card.Skills[0]
	if skill.ID != "search" {
		t.Errorf("expected skill ID 'search', got %q", skill.ID)
	}
	if len(skill.Tags) == 0 || skill.Tags[0] != "search" {
		t.Errorf("expected search tags, got %v", skill.Tags)
	}
}

func TestAgentCardDisabledWithoutBaseURL(t *testing.T) {
	srv := newTestServer(t, "http://unused.local", "k")

	req := httptest.NewRequest("GET", "/.well-known/agent-card.json", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestBuildAgentCardReferenceTags(t *testing.T) {
	srv := newTestServer(t, "http://unused.local", "k")
	srv.SetA2ABaseURL("http://localhost:8080")

	card := srv.buildAgentCard(context.Background())
	last := card.Skills[len(card.Skills)-1]
	if len(last.Tags) != 1 || last.Tags[0] != "reference" {
		t.Errorf("expected reference tag on %q, got %v", last.ID, last.Tags)
	}
}

func TestParseA2AMessageJSON(t *testing.T) {
	msg := a2a.NewMessage(a2a.MessageRoleUser,
		a2a.TextPart{Text: `{"tool": "news", "arguments": {"q": "golang", "num": 5}}`},
	)

	name, args, err := parseA2AMessage(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "news" {
		t.Errorf("expected tool 'news', got %q", name)
	}
	if args["q"] != "golang" {
		t.Errorf("expected q='golang', got %v", args["q"])
	}
}

func TestParseA2AMessageJSONWithoutArguments(t *testing.T) {
	msg := a2a.NewMessage(a2a.MessageRoleUser,
		a2a.TextPart{Text: `{"tool": "get_time_filters"}`},
	)

	name, args, err := parseA2AMessage(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "get_time_filters" {
		t.Errorf("expected tool 'get_time_filters', got %q", name)
	}
	if args == nil {
		t.Error("expected non-nil arguments")
	}
}

func TestParseA2AMessageMetadata(t *testing.T) {
	msg := a2a.NewMessage(a2a.MessageRoleUser,
		a2a.TextPart{Text: "coffee near me"},
	)
	msg.Metadata = map[string]any{"tool": "places"}

	name, args, err := parseA2AMessage(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "places" {
		t.Errorf("expected tool 'places', got %q", name)
	}
	if args["q"] != "coffee near me" {
		t.Errorf("expected text used as q, got %v", args["q"])
	}
}

func TestParseA2AMessageMetadataArguments(t *testing.T) {
	msg := a2a.NewMessage(a2a.MessageRoleUser,
		a2a.TextPart{Text: "ignored"},
	)
	msg.Metadata = map[string]any{
		"tool":      "images",
		"arguments": map[string]any{"q": "cats", "num": 3},
	}

	_, args, err := parseA2AMessage(msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args["q"] != "cats" {
		t.Errorf("expected metadata q to win, got %v", args["q"])
	}
}

func TestParseA2AMessageEmpty(t *testing.T) {
	_, _, err := parseA2AMessage(nil)
	if err == nil {
		t.Fatal("expected error for nil message")
	}

	msg := a2a.NewMessage(a2a.MessageRoleUser)
	_, _, err = parseA2AMessage(msg)
	if err == nil {
		t.Fatal("expected error for empty parts")
	}
}

func TestParseA2AMessageNoTool(t *testing.T) {
	msg := a2a.NewMessage(a2a.MessageRoleUser,
		a2a.TextPart{Text: "just some text without tool info"},
	)

	_, _, err := parseA2AMessage(msg)
	if err == nil {
		t.Fatal("expected error when no tool specified")
	}
}

func TestBuildExample(t *testing.T) {
	srv := newTestServer(t, "http://unused.local", "k")

	search, _ := srv.toolReg.Get("search")
	if got, want := buildExample(search), `{"tool": "search", "arguments": {"q": "..."}}`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	ref, _ := srv.toolReg.Get("get_supported_languages")
	if got, want := buildExample(ref), `{"tool": "get_supported_languages", "arguments": {}}`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
