// Package tools 提供助手可调用的固定工具目录
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

// Registry 工具注册表，按名称分发工具调用
type Registry struct {
	tools map[string]tool.InvokableTool
	order []string
}

// NewRegistry 创建注册表，名称为空或重复时立即失败
func NewRegistry(list ...tool.InvokableTool) (*Registry, error) {
	r := &Registry{tools: make(map[string]tool.InvokableTool, len(list))}

	for _, t := range list {
		info, err := t.Info(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to get tool info: %w", err)
		}
		if info.Name == "" {
			return nil, fmt.Errorf("tool has empty name")
		}
		if _, ok := r.tools[info.Name]; ok {
			return nil, fmt.Errorf("duplicate tool name: %s", info.Name)
		}
		r.tools[info.Name] = t
		r.order = append(r.order, info.Name)
	}

	return r, nil
}

// Infos 返回注册顺序的工具描述，用于绑定到聊天模型
func (r *Registry) Infos(ctx context.Context) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		info, err := r.tools[name].Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get tool info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Execute 执行一次工具调用
// 任何失败都转换为 JSON 错误结果返回给模型，不中断对话
func (r *Registry) Execute(ctx context.Context, name, arguments string) string {
	t, ok := r.tools[name]
	if !ok {
		return errorResult(fmt.Sprintf("Unknown tool: %s", name))
	}

	result, err := t.InvokableRun(ctx, repairArguments(arguments))
	if err != nil {
		return errorResult(err.Error())
	}
	return result
}

func errorResult(msg string) string {
	data, _ := json.Marshal(map[string]string{"error": msg})
	return string(data)
}
