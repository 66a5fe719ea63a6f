package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

// stubTool 测试用工具
type stubTool struct {
	name     string
	result   string
	err      error
	lastArgs string
}

func (t *stubTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name:        t.name,
		Desc:        "stub",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	}, nil
}

func (t *stubTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	t.lastArgs = argumentsInJSON
	if t.err != nil {
		return "", t.err
	}
	return t.result, nil
}

func TestNewRegistryRejectsDuplicateNames(t *testing.T) {
	_, err := NewRegistry(
		&stubTool{name: "echo"},
		&stubTool{name: "echo"},
	)
	if err == nil {
		t.Fatal("NewRegistry() expected error for duplicate names")
	}
}

func TestNewRegistryRejectsEmptyName(t *testing.T) {
	if _, err := NewRegistry(&stubTool{name: ""}); err == nil {
		t.Fatal("NewRegistry() expected error for empty name")
	}
}

func TestRegistryInfosPreserveOrder(t *testing.T) {
	r, err := NewRegistry(
		&stubTool{name: "alpha"},
		&stubTool{name: "beta"},
		&stubTool{name: "gamma"},
	)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	infos, err := r.Infos(context.Background())
	if err != nil {
		t.Fatalf("Infos() error = %v", err)
	}

	want := []string{"alpha", "beta", "gamma"}
	if len(infos) != len(want) {
		t.Fatalf("Infos() length = %d, want %d", len(infos), len(want))
	}
	for i, info := range infos {
		if info.Name != want[i] {
			t.Errorf("Infos()[%d].Name = %q, want %q", i, info.Name, want[i])
		}
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	r, err := NewRegistry(&stubTool{name: "echo", result: "{}"})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	got := r.Execute(context.Background(), "nope", "{}")

	var payload map[string]string
	if err := json.Unmarshal([]byte(got), &payload); err != nil {
		t.Fatalf("result is not valid JSON: %q", got)
	}
	if payload["error"] != "Unknown tool: nope" {
		t.Errorf("error = %q, want %q", payload["error"], "Unknown tool: nope")
	}
}

func TestExecuteConvertsToolErrorToResult(t *testing.T) {
	r, err := NewRegistry(&stubTool{name: "boom", err: errors.New("backend down")})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	got := r.Execute(context.Background(), "boom", "{}")

	var payload map[string]string
	if err := json.Unmarshal([]byte(got), &payload); err != nil {
		t.Fatalf("result is not valid JSON: %q", got)
	}
	if payload["error"] != "backend down" {
		t.Errorf("error = %q, want %q", payload["error"], "backend down")
	}
}

func TestExecuteRepairsArgumentsBeforeDispatch(t *testing.T) {
	echo := &stubTool{name: "echo", result: "{}"}
	r, err := NewRegistry(echo)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	r.Execute(context.Background(), "echo", "```json\n{\"query\":\"tax\"}\n```")

	if echo.lastArgs != `{"query":"tax"}` {
		t.Errorf("dispatched arguments = %q, want repaired JSON", echo.lastArgs)
	}
}

func TestExecuteIsIdempotentForReads(t *testing.T) {
	r, err := NewRegistry(&stubTool{name: "list", result: `[{"id":"1"}]`})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	first := r.Execute(context.Background(), "list", "{}")
	second := r.Execute(context.Background(), "list", "{}")
	if first != second {
		t.Errorf("repeated read differs: %q vs %q", first, second)
	}
}
