package tools

import "testing"

func TestRepairArguments(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "valid object passes through",
			input:    `{"query":"tax"}`,
			expected: `{"query":"tax"}`,
		},
		{
			name:     "empty input becomes empty object",
			input:    "",
			expected: "{}",
		},
		{
			name:     "whitespace trimmed",
			input:    "  {\"a\":1}  ",
			expected: `{"a":1}`,
		},
		{
			name:     "code fence stripped",
			input:    "```json\n{\"query\":\"tax\"}\n```",
			expected: `{"query":"tax"}`,
		},
		{
			name:     "surrounding prose stripped",
			input:    `Here are the arguments: {"title":"Weekly review"} hope that helps`,
			expected: `{"title":"Weekly review"}`,
		},
		{
			name:     "missing closing brace completed",
			input:    `{"query":"tax"`,
			expected: `{"query":"tax"}`,
		},
		{
			name:     "single quotes repaired",
			input:    `{'query': 'tax'}`,
			expected: `{"query": "tax"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repairArguments(tt.input); got != tt.expected {
				t.Errorf("repairArguments(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
