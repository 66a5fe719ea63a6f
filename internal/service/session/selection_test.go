// Package session 提供选中状态管理器单元测试
package session

import (
	"context"
	"testing"
)

func TestSelectAndSelected(t *testing.T) {
	m := NewManager(nil)
	ctx := context.Background()

	if got := m.Selected(ctx, "u1"); got != "" {
		t.Errorf("Selected() = %q, want empty before any select", got)
	}

	m.Select(ctx, "u1", "conv-1")
	if got := m.Selected(ctx, "u1"); got != "conv-1" {
		t.Errorf("Selected() = %q, want conv-1", got)
	}

	// 不同客户端互不影响
	if got := m.Selected(ctx, "u2"); got != "" {
		t.Errorf("Selected() for other client = %q, want empty", got)
	}
}

func TestClearIfSelected(t *testing.T) {
	m := NewManager(nil)
	ctx := context.Background()
	m.Select(ctx, "u1", "conv-1")

	// 归档别的会话不影响选中
	m.ClearIfSelected(ctx, "u1", "conv-2")
	if got := m.Selected(ctx, "u1"); got != "conv-1" {
		t.Errorf("Selected() = %q, want conv-1 untouched", got)
	}

	// 归档当前选中的会话清除选中
	m.ClearIfSelected(ctx, "u1", "conv-1")
	if got := m.Selected(ctx, "u1"); got != "" {
		t.Errorf("Selected() = %q, want empty after clearing", got)
	}
}

func TestClearConversation(t *testing.T) {
	m := NewManager(nil)
	ctx := context.Background()
	m.Select(ctx, "u1", "conv-1")
	m.Select(ctx, "u2", "conv-1")
	m.Select(ctx, "u3", "conv-2")

	m.ClearConversation(ctx, "conv-1")

	if got := m.Selected(ctx, "u1"); got != "" {
		t.Errorf("u1 Selected() = %q, want empty", got)
	}
	if got := m.Selected(ctx, "u2"); got != "" {
		t.Errorf("u2 Selected() = %q, want empty", got)
	}
	if got := m.Selected(ctx, "u3"); got != "conv-2" {
		t.Errorf("u3 Selected() = %q, want conv-2", got)
	}
}

func TestSelectOverwrites(t *testing.T) {
	m := NewManager(nil)
	ctx := context.Background()

	m.Select(ctx, "u1", "conv-1")
	m.Select(ctx, "u1", "conv-2")
	if got := m.Selected(ctx, "u1"); got != "conv-2" {
		t.Errorf("Selected() = %q, want conv-2", got)
	}
}
