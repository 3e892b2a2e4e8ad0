package agents

import (
	"context"
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/soochol/searchgate/internal/serper"
	"github.com/soochol/searchgate/internal/tools"
)

type mockTool struct{}

func (m *mockTool) Name() string        { return "test_tool" }
func (m *mockTool) Description() string { return "A test tool" }
func (m *mockTool) InputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"q":   map[string]any{"type": "string"},
			"num": map[string]any{"type": "integer", "default": 10, "minimum": 1, "maximum": 100},
		},
		"required": []any{"q"},
	}
}
func (m *mockTool) Execute(ctx context.Context, args map[string]any) tools.Result {
	return tools.Result{"echo": args["q"]}
}

func newCatalog(t *testing.T) *tools.Registry {
	t.Helper()
	reg, err := tools.NewCatalog(serper.NewClient(""))
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return reg
}

func TestADKToolAdapter(t *testing.T) {
	adapter, err := NewADKTool(&mockTool{})
	if err != nil {
		t.Fatalf("NewADKTool: %v", err)
	}
	if adapter.Name() != "test_tool" {
		t.Fatalf("expected 'test_tool', got %q", adapter.Name())
	}
	if !strings.HasPrefix(adapter.Description(), "A test tool") {
		t.Fatalf("wrong description: %q", adapter.Description())
	}
	if adapter.IsLongRunning() {
		t.Fatal("expected not long running")
	}
}

func TestToolset(t *testing.T) {
	reg := newCatalog(t)
	set, err := Toolset(reg)
	if err != nil {
		t.Fatalf("Toolset: %v", err)
	}
	names := reg.Names()
	if len(set) != len(names) {
		t.Fatalf("toolset: got %d tools, want %d", len(set), len(names))
	}
	for i, tool := range set {
		if tool.Name() != names[i] {
			t.Errorf("tool %d: got %q, want %q", i, tool.Name(), names[i])
		}
	}
}

func TestRun(t *testing.T) {
	out := run(context.Background(), &mockTool{}, map[string]any{"q": "hi"})
	if out["echo"] != "hi" {
		t.Errorf("run: got %v", out)
	}
	reg := newCatalog(t)
	search, _ := reg.Get("search")
	out = run(context.Background(), search, nil)
	if out["error"] != "missing credential" {
		t.Errorf("run without credential: got %v", out)
	}
}

func TestDescribe(t *testing.T) {
	got := describe(&mockTool{})
	want := "A test tool Parameters: q (string, required), num (integer, default 10)."
	if got != want {
		t.Errorf("describe:\n got %q\nwant %q", got, want)
	}
}

func TestFunctionDeclarations(t *testing.T) {
	reg := newCatalog(t)
	decls := FunctionDeclarations(reg)
	if len(decls) != len(reg.Names()) {
		t.Fatalf("declarations: got %d", len(decls))
	}
	search := decls[0]
	if search.Name != "search" {
		t.Fatalf("first declaration: got %q", search.Name)
	}
	if len(search.Parameters.Required) != 1 || search.Parameters.Required[0] != "q" {
		t.Errorf("required: got %v", search.Parameters.Required)
	}
	num := search.Parameters.Properties["num"]
	if num == nil || num.Type != genai.TypeInteger {
		t.Fatalf("num: got %+v", num)
	}
	if num.Minimum == nil || *num.Minimum != 1 || num.Maximum == nil || *num.Maximum != 100 {
		t.Errorf("num bounds: got %v..%v", num.Minimum, num.Maximum)
	}
	if search.Parameters.Properties["autocorrect"].Type != genai.TypeBoolean {
		t.Errorf("autocorrect should be boolean")
	}
}
