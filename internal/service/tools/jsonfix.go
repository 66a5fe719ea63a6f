package tools

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// repairArguments 修复 LLM 生成的工具参数 JSON
// 策略：先走快速路径（有效 JSON 直接返回），再逐步修复
func repairArguments(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "{}"
	}

	// 快速路径：已经是有效的 JSON 对象
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") && json.Valid([]byte(s)) {
		return s
	}

	// 尝试提取 JSON 对象区域
	if i, j := strings.IndexByte(s, '{'), strings.LastIndexByte(s, '}'); i >= 0 && j > i {
		sub := s[i : j+1]
		if json.Valid([]byte(sub)) {
			return sub
		}
		s = sub
	}

	// 移除常见的模型输出伪影
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	if json.Valid([]byte(s)) {
		return s
	}

	// 补全缺失的大括号
	if !strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		s = "{" + s
	} else if strings.HasPrefix(s, "{") && !strings.HasSuffix(s, "}") {
		s = s + "}"
	}

	out, err := jsonrepair.JSONRepair(s)
	if err != nil {
		// 修复失败，交给工具自行报错
		return s
	}
	return out
}
