package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/opsdeck/opsdeck/internal/model"
	"github.com/opsdeck/opsdeck/internal/service/project"
	"github.com/opsdeck/opsdeck/internal/service/sop"
	"github.com/opsdeck/opsdeck/internal/service/workspace"
)

// 工具目录名称，进程生命周期内固定
const (
	ToolGetContext        = "get_context"
	ToolListSOPs          = "list_sops"
	ToolSearchSOPs        = "search_sops"
	ToolCreateSOP         = "create_sop"
	ToolListProjects      = "list_projects"
	ToolSearchProjects    = "search_projects"
	ToolCreateProject     = "create_project"
	ToolAddTask           = "add_task"
	ToolListExpenses      = "list_expenses"
	ToolSearchExpenses    = "search_expenses"
	ToolListInitiatives   = "list_initiatives"
	ToolSearchInitiatives = "search_initiatives"
)

// WorkspaceReader 工作台总览能力
type WorkspaceReader interface {
	GetSummary(ctx context.Context) (*workspace.Summary, error)
}

// SOPDirectory SOP 读写能力
type SOPDirectory interface {
	List(ctx context.Context) ([]*model.SOP, error)
	Search(ctx context.Context, q string) ([]*model.SOP, error)
	Create(ctx context.Context, req *sop.CreateRequest) (*model.SOP, error)
}

// ProjectBoard 项目读写能力
type ProjectBoard interface {
	List(ctx context.Context) ([]*model.Project, error)
	Search(ctx context.Context, q string) ([]*model.Project, error)
	Create(ctx context.Context, req *project.CreateRequest) (*model.Project, error)
	AddTask(ctx context.Context, projectID, title string) (*model.ProjectTask, error)
}

// ExpenseBook 支出只读能力
type ExpenseBook interface {
	List(ctx context.Context) ([]*model.Expense, error)
	Search(ctx context.Context, q string) ([]*model.Expense, error)
}

// InitiativeBoard 战略计划只读能力
type InitiativeBoard interface {
	List(ctx context.Context) ([]*model.Initiative, error)
	Search(ctx context.Context, q string) ([]*model.Initiative, error)
}

// Catalog 依赖的业务服务集合
type Catalog struct {
	Workspace   WorkspaceReader
	SOPs        SOPDirectory
	Projects    ProjectBoard
	Expenses    ExpenseBook
	Initiatives InitiativeBoard
}

// NewCatalog 构建固定的 12 个工具
func NewCatalog(c Catalog) []tool.InvokableTool {
	return []tool.InvokableTool{
		&getContextTool{workspace: c.Workspace},
		&listSOPsTool{sops: c.SOPs},
		&searchSOPsTool{sops: c.SOPs},
		&createSOPTool{sops: c.SOPs},
		&listProjectsTool{projects: c.Projects},
		&searchProjectsTool{projects: c.Projects},
		&createProjectTool{projects: c.Projects},
		&addTaskTool{projects: c.Projects},
		&listExpensesTool{expenses: c.Expenses},
		&searchExpensesTool{expenses: c.Expenses},
		&listInitiativesTool{initiatives: c.Initiatives},
		&searchInitiativesTool{initiatives: c.Initiatives},
	}
}

// 只读工具的裁剪投影，避免把完整记录回传给模型

type sopView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

type projectView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	DueDate string `json:"due_date,omitempty"`
}

type expenseView struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	BillingCycle string  `json:"billingCycle"`
	Category     string  `json:"category"`
}

type initiativeView struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Quarter string `json:"quarter"`
	Status  string `json:"status"`
}

func sopViews(items []*model.SOP) []sopView {
	views := make([]sopView, 0, len(items))
	for _, s := range items {
		views = append(views, sopView{ID: s.ID, Title: s.Title, Category: s.Category})
	}
	return views
}

func projectViews(items []*model.Project) []projectView {
	views := make([]projectView, 0, len(items))
	for _, p := range items {
		v := projectView{ID: p.ID, Name: p.Name, Status: p.Status}
		if p.DueDate != nil {
			v.DueDate = p.DueDate.Format("2006-01-02")
		}
		views = append(views, v)
	}
	return views
}

func expenseViews(items []*model.Expense) []expenseView {
	views := make([]expenseView, 0, len(items))
	for _, e := range items {
		views = append(views, expenseView{
			ID: e.ID, Name: e.Name, Amount: e.Amount,
			BillingCycle: e.BillingCycle, Category: e.Category,
		})
	}
	return views
}

func initiativeViews(items []*model.Initiative) []initiativeView {
	views := make([]initiativeView, 0, len(items))
	for _, i := range items {
		views = append(views, initiativeView{ID: i.ID, Title: i.Title, Quarter: i.Quarter, Status: i.Status})
	}
	return views
}

func jsonResult(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(data), nil
}

func queryParams() *schema.ParamsOneOf {
	return schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
		"query": {
			Type:     schema.String,
			Desc:     "Search keywords",
			Required: true,
		},
	})
}

type searchInput struct {
	Query string `json:"query"`
}

// ========== get_context ==========

type getContextTool struct {
	workspace WorkspaceReader
}

func (t *getContextTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name:        ToolGetContext,
		Desc:        "Get a summary of the current workspace: record counts, active projects, monthly expense total, open deals and unpaid invoices. Call this first when the user asks about overall state.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	}, nil
}

func (t *getContextTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	summary, err := t.workspace.GetSummary(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get workspace summary: %v", err)
	}
	return jsonResult(summary)
}

// ========== list_sops / search_sops / create_sop ==========

type listSOPsTool struct {
	sops SOPDirectory
}

func (t *listSOPsTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name:        ToolListSOPs,
		Desc:        "List all standard operating procedures (id, title and category only).",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	}, nil
}

func (t *listSOPsTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	items, err := t.sops.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list sops: %v", err)
	}
	return jsonResult(sopViews(items))
}

type searchSOPsTool struct {
	sops SOPDirectory
}

func (t *searchSOPsTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name:        ToolSearchSOPs,
		Desc:        "Search standard operating procedures by keywords in title or category.",
		ParamsOneOf: queryParams(),
	}, nil
}

func (t *searchSOPsTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	var input searchInput
	if err := json.Unmarshal([]byte(argumentsInJSON), &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %v", err)
	}

	items, err := t.sops.Search(ctx, input.Query)
	if err != nil {
		return "", fmt.Errorf("failed to search sops: %v", err)
	}
	return jsonResult(sopViews(items))
}

type createSOPTool struct {
	sops SOPDirectory
}

func (t *createSOPTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: ToolCreateSOP,
		Desc: "Create a new standard operating procedure.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"title": {
				Type:     schema.String,
				Desc:     "SOP title",
				Required: true,
			},
			"category": {
				Type: schema.String,
				Desc: "SOP category, e.g. marketing, operations",
			},
			"content": {
				Type: schema.String,
				Desc: "SOP body in markdown",
			},
		}),
	}, nil
}

func (t *createSOPTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	var input struct {
		Title    string `json:"title"`
		Category string `json:"category"`
		Content  string `json:"content"`
	}
	if err := json.Unmarshal([]byte(argumentsInJSON), &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %v", err)
	}
	if input.Title == "" {
		return "", fmt.Errorf("title is required")
	}

	created, err := t.sops.Create(ctx, &sop.CreateRequest{
		Title:    input.Title,
		Category: input.Category,
		Content:  input.Content,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create sop: %v", err)
	}

	return jsonResult(map[string]interface{}{
		"success": true,
		"id":      created.ID,
		"message": fmt.Sprintf("SOP %q created", created.Title),
	})
}

// ========== list_projects / search_projects / create_project / add_task ==========

type listProjectsTool struct {
	projects ProjectBoard
}

func (t *listProjectsTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name:        ToolListProjects,
		Desc:        "List all projects (id, name, status and due date only).",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	}, nil
}

func (t *listProjectsTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	items, err := t.projects.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list projects: %v", err)
	}
	return jsonResult(projectViews(items))
}

type searchProjectsTool struct {
	projects ProjectBoard
}

func (t *searchProjectsTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name:        ToolSearchProjects,
		Desc:        "Search projects by keywords in the project name.",
		ParamsOneOf: queryParams(),
	}, nil
}

func (t *searchProjectsTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	var input searchInput
	if err := json.Unmarshal([]byte(argumentsInJSON), &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %v", err)
	}

	items, err := t.projects.Search(ctx, input.Query)
	if err != nil {
		return "", fmt.Errorf("failed to search projects: %v", err)
	}
	return jsonResult(projectViews(items))
}

type createProjectTool struct {
	projects ProjectBoard
}

func (t *createProjectTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: ToolCreateProject,
		Desc: "Create a new project. A display color is assigned automatically.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"name": {
				Type:     schema.String,
				Desc:     "Project name",
				Required: true,
			},
			"description": {
				Type: schema.String,
				Desc: "What the project is about",
			},
			"status": {
				Type: schema.String,
				Desc: "Project status: active, paused or done. Defaults to active.",
			},
			"due_date": {
				Type: schema.String,
				Desc: "Due date in YYYY-MM-DD format",
			},
		}),
	}, nil
}

func (t *createProjectTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Status      string `json:"status"`
		DueDate     string `json:"due_date"`
	}
	if err := json.Unmarshal([]byte(argumentsInJSON), &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %v", err)
	}
	if input.Name == "" {
		return "", fmt.Errorf("name is required")
	}

	req := &project.CreateRequest{
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
	}
	if input.DueDate != "" {
		due, err := time.Parse("2006-01-02", input.DueDate)
		if err != nil {
			return "", fmt.Errorf("invalid due_date: %v", err)
		}
		req.DueDate = &due
	}

	created, err := t.projects.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create project: %v", err)
	}

	return jsonResult(map[string]interface{}{
		"success": true,
		"id":      created.ID,
		"message": fmt.Sprintf("Project %q created", created.Name),
	})
}

type addTaskTool struct {
	projects ProjectBoard
}

func (t *addTaskTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: ToolAddTask,
		Desc: "Add a task to an existing project. Use list_projects or search_projects first to find the project id.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"project_id": {
				Type:     schema.String,
				Desc:     "ID of the project",
				Required: true,
			},
			"title": {
				Type:     schema.String,
				Desc:     "Task title",
				Required: true,
			},
		}),
	}, nil
}

func (t *addTaskTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	var input struct {
		ProjectID string `json:"project_id"`
		Title     string `json:"title"`
	}
	if err := json.Unmarshal([]byte(argumentsInJSON), &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %v", err)
	}
	if input.ProjectID == "" || input.Title == "" {
		return "", fmt.Errorf("project_id and title are required")
	}

	task, err := t.projects.AddTask(ctx, input.ProjectID, input.Title)
	if err != nil {
		return "", fmt.Errorf("failed to add task: %v", err)
	}

	return jsonResult(map[string]interface{}{
		"success": true,
		"task":    map[string]string{"id": task.ID, "title": task.Title},
		"message": fmt.Sprintf("Task %q added", task.Title),
	})
}

// ========== list_expenses / search_expenses ==========

type listExpensesTool struct {
	expenses ExpenseBook
}

func (t *listExpensesTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name:        ToolListExpenses,
		Desc:        "List all recurring and one-off expenses (id, name, amount, billing cycle and category only).",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	}, nil
}

func (t *listExpensesTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	items, err := t.expenses.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list expenses: %v", err)
	}
	return jsonResult(expenseViews(items))
}

type searchExpensesTool struct {
	expenses ExpenseBook
}

func (t *searchExpensesTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name:        ToolSearchExpenses,
		Desc:        "Search expenses by keywords in name or category.",
		ParamsOneOf: queryParams(),
	}, nil
}

func (t *searchExpensesTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	var input searchInput
	if err := json.Unmarshal([]byte(argumentsInJSON), &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %v", err)
	}

	items, err := t.expenses.Search(ctx, input.Query)
	if err != nil {
		return "", fmt.Errorf("failed to search expenses: %v", err)
	}
	return jsonResult(expenseViews(items))
}

// ========== list_initiatives / search_initiatives ==========

type listInitiativesTool struct {
	initiatives InitiativeBoard
}

func (t *listInitiativesTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name:        ToolListInitiatives,
		Desc:        "List all strategic initiatives (id, title, quarter and status only).",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	}, nil
}

func (t *listInitiativesTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	items, err := t.initiatives.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list initiatives: %v", err)
	}
	return jsonResult(initiativeViews(items))
}

type searchInitiativesTool struct {
	initiatives InitiativeBoard
}

func (t *searchInitiativesTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name:        ToolSearchInitiatives,
		Desc:        "Search strategic initiatives by keywords in title or quarter.",
		ParamsOneOf: queryParams(),
	}, nil
}

func (t *searchInitiativesTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	var input searchInput
	if err := json.Unmarshal([]byte(argumentsInJSON), &input); err != nil {
		return "", fmt.Errorf("invalid arguments: %v", err)
	}

	items, err := t.initiatives.Search(ctx, input.Query)
	if err != nil {
		return "", fmt.Errorf("failed to search initiatives: %v", err)
	}
	return jsonResult(initiativeViews(items))
}
