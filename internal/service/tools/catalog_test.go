package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/opsdeck/opsdeck/internal/model"
	"github.com/opsdeck/opsdeck/internal/service/project"
	"github.com/opsdeck/opsdeck/internal/service/sop"
	"github.com/opsdeck/opsdeck/internal/service/workspace"
)

// ========== 测试替身 ==========

type fakeWorkspace struct{}

func (f *fakeWorkspace) GetSummary(ctx context.Context) (*workspace.Summary, error) {
	return &workspace.Summary{SOPCount: 2, ProjectCount: 1, ActiveProjects: []string{"Relaunch"}}, nil
}

type fakeSOPs struct {
	items   []*model.SOP
	counter int
}

func (f *fakeSOPs) List(ctx context.Context) ([]*model.SOP, error) {
	return f.items, nil
}

func (f *fakeSOPs) Search(ctx context.Context, q string) ([]*model.SOP, error) {
	var out []*model.SOP
	for _, s := range f.items {
		if strings.Contains(strings.ToLower(s.Title), strings.ToLower(q)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSOPs) Create(ctx context.Context, req *sop.CreateRequest) (*model.SOP, error) {
	f.counter++
	created := &model.SOP{
		ID:       fmt.Sprintf("sop-%d", f.counter),
		Title:    req.Title,
		Category: req.Category,
		Content:  req.Content,
	}
	f.items = append(f.items, created)
	return created, nil
}

type fakeProjects struct {
	items   []*model.Project
	counter int
}

func (f *fakeProjects) List(ctx context.Context) ([]*model.Project, error) {
	return f.items, nil
}

func (f *fakeProjects) Search(ctx context.Context, q string) ([]*model.Project, error) {
	var out []*model.Project
	for _, p := range f.items {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjects) Create(ctx context.Context, req *project.CreateRequest) (*model.Project, error) {
	f.counter++
	created := &model.Project{
		ID:      fmt.Sprintf("proj-%d", f.counter),
		Name:    req.Name,
		Status:  req.Status,
		DueDate: req.DueDate,
	}
	f.items = append(f.items, created)
	return created, nil
}

func (f *fakeProjects) AddTask(ctx context.Context, projectID, title string) (*model.ProjectTask, error) {
	for _, p := range f.items {
		if p.ID == projectID {
			f.counter++
			return &model.ProjectTask{ID: fmt.Sprintf("task-%d", f.counter), ProjectID: projectID, Title: title}, nil
		}
	}
	return nil, fmt.Errorf("project not found: %s", projectID)
}

type fakeExpenses struct {
	items []*model.Expense
}

func (f *fakeExpenses) List(ctx context.Context) ([]*model.Expense, error) {
	return f.items, nil
}

func (f *fakeExpenses) Search(ctx context.Context, q string) ([]*model.Expense, error) {
	return f.items, nil
}

type fakeInitiatives struct {
	items []*model.Initiative
}

func (f *fakeInitiatives) List(ctx context.Context) ([]*model.Initiative, error) {
	return f.items, nil
}

func (f *fakeInitiatives) Search(ctx context.Context, q string) ([]*model.Initiative, error) {
	return f.items, nil
}

func newTestRegistry(t *testing.T) (*Registry, *fakeSOPs, *fakeProjects) {
	t.Helper()

	sops := &fakeSOPs{items: []*model.SOP{
		{ID: "s1", Title: "Client onboarding", Category: "sales", Content: "long body", Tags: `["a"]`},
	}}
	projects := &fakeProjects{items: []*model.Project{
		{ID: "p1", Name: "Website relaunch", Status: "active", Color: "#3b82f6", Description: "internal"},
	}}

	r, err := NewRegistry(NewCatalog(Catalog{
		Workspace:   &fakeWorkspace{},
		SOPs:        sops,
		Projects:    projects,
		Expenses:    &fakeExpenses{items: []*model.Expense{{ID: "e1", Name: "Figma", Amount: 15, BillingCycle: "monthly", Category: "software", Notes: "design seat"}}},
		Initiatives: &fakeInitiatives{items: []*model.Initiative{{ID: "i1", Title: "Expand EU", Quarter: "Q2", Status: "planned"}}},
	})...)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return r, sops, projects
}

// ========== 测试 ==========

func TestCatalogPublishesAllTools(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	infos, err := r.Infos(context.Background())
	if err != nil {
		t.Fatalf("Infos() error = %v", err)
	}

	want := []string{
		ToolGetContext,
		ToolListSOPs, ToolSearchSOPs, ToolCreateSOP,
		ToolListProjects, ToolSearchProjects, ToolCreateProject, ToolAddTask,
		ToolListExpenses, ToolSearchExpenses,
		ToolListInitiatives, ToolSearchInitiatives,
	}
	if len(infos) != len(want) {
		t.Fatalf("catalog size = %d, want %d", len(infos), len(want))
	}
	for i, info := range infos {
		if info.Name != want[i] {
			t.Errorf("catalog[%d] = %q, want %q", i, info.Name, want[i])
		}
	}
}

func TestListSOPsReturnsTrimmedProjection(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	result := r.Execute(context.Background(), ToolListSOPs, "{}")

	var views []map[string]interface{}
	if err := json.Unmarshal([]byte(result), &views); err != nil {
		t.Fatalf("result is not a JSON array: %q", result)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d, want 1", len(views))
	}
	for _, key := range []string{"id", "title", "category"} {
		if _, ok := views[0][key]; !ok {
			t.Errorf("projection missing %q", key)
		}
	}
	if _, ok := views[0]["content"]; ok {
		t.Error("projection leaked full record field content")
	}
	if _, ok := views[0]["tags"]; ok {
		t.Error("projection leaked full record field tags")
	}
}

func TestSearchExpensesProjection(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	result := r.Execute(context.Background(), ToolSearchExpenses, `{"query":"figma"}`)

	var views []map[string]interface{}
	if err := json.Unmarshal([]byte(result), &views); err != nil {
		t.Fatalf("result is not a JSON array: %q", result)
	}
	for _, key := range []string{"id", "name", "amount", "billingCycle", "category"} {
		if _, ok := views[0][key]; !ok {
			t.Errorf("projection missing %q", key)
		}
	}
	if _, ok := views[0]["notes"]; ok {
		t.Error("projection leaked full record field notes")
	}
}

func TestCreateSOPIsNotIdempotent(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	args := `{"title":"Weekly review","category":"ops"}`
	first := r.Execute(context.Background(), ToolCreateSOP, args)
	second := r.Execute(context.Background(), ToolCreateSOP, args)

	var a, b struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal([]byte(first), &a); err != nil {
		t.Fatalf("first result invalid: %q", first)
	}
	if err := json.Unmarshal([]byte(second), &b); err != nil {
		t.Fatalf("second result invalid: %q", second)
	}
	if !a.Success || !b.Success {
		t.Fatal("create_sop did not report success")
	}
	if a.ID == b.ID {
		t.Errorf("both creates returned id %q, want distinct records", a.ID)
	}
}

func TestCreateSOPRequiresTitle(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	result := r.Execute(context.Background(), ToolCreateSOP, `{"category":"ops"}`)

	var payload map[string]string
	if err := json.Unmarshal([]byte(result), &payload); err != nil {
		t.Fatalf("result invalid: %q", result)
	}
	if payload["error"] == "" {
		t.Errorf("expected error result, got %q", result)
	}
}

func TestCreateProjectParsesDueDate(t *testing.T) {
	r, _, projects := newTestRegistry(t)

	result := r.Execute(context.Background(), ToolCreateProject, `{"name":"Launch","due_date":"2025-06-30"}`)

	var payload struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal([]byte(result), &payload); err != nil || !payload.Success {
		t.Fatalf("create_project failed: %q", result)
	}

	var found *model.Project
	for _, p := range projects.items {
		if p.ID == payload.ID {
			found = p
		}
	}
	if found == nil || found.DueDate == nil {
		t.Fatal("created project missing due date")
	}
	if got := found.DueDate.Format("2006-01-02"); got != "2025-06-30" {
		t.Errorf("due date = %s, want 2025-06-30", got)
	}
}

func TestCreateProjectRejectsBadDueDate(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	result := r.Execute(context.Background(), ToolCreateProject, `{"name":"Launch","due_date":"soon"}`)

	var payload map[string]string
	if err := json.Unmarshal([]byte(result), &payload); err != nil {
		t.Fatalf("result invalid: %q", result)
	}
	if payload["error"] == "" {
		t.Errorf("expected error result, got %q", result)
	}
}

func TestAddTaskForUnknownProject(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	result := r.Execute(context.Background(), ToolAddTask, `{"project_id":"missing","title":"Do it"}`)

	var payload map[string]string
	if err := json.Unmarshal([]byte(result), &payload); err != nil {
		t.Fatalf("result invalid: %q", result)
	}
	if !strings.Contains(payload["error"], "missing") {
		t.Errorf("error = %q, want mention of project id", payload["error"])
	}
}

func TestAddTaskReturnsTask(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	result := r.Execute(context.Background(), ToolAddTask, `{"project_id":"p1","title":"Write copy"}`)

	var payload struct {
		Success bool              `json:"success"`
		Task    map[string]string `json:"task"`
	}
	if err := json.Unmarshal([]byte(result), &payload); err != nil || !payload.Success {
		t.Fatalf("add_task failed: %q", result)
	}
	if payload.Task["title"] != "Write copy" {
		t.Errorf("task title = %q, want %q", payload.Task["title"], "Write copy")
	}
}

func TestGetContextSummary(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	result := r.Execute(context.Background(), ToolGetContext, "")

	var summary workspace.Summary
	if err := json.Unmarshal([]byte(result), &summary); err != nil {
		t.Fatalf("result invalid: %q", result)
	}
	if summary.SOPCount != 2 || len(summary.ActiveProjects) != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}
