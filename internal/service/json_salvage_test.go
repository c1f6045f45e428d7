package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{
			name: "bare object",
			raw:  `{"a": 1}`,
			want: `{"a": 1}`,
			ok:   true,
		},
		{
			name: "fenced with language tag",
			raw:  "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
			ok:   true,
		},
		{
			name: "fenced without language tag",
			raw:  "```\n[1, 2, 3]\n```",
			want: `[1, 2, 3]`,
			ok:   true,
		},
		{
			name: "leading prose",
			raw:  `Here you go: {"a": {"b": 2}} done`,
			want: `{"a": {"b": 2}}`,
			ok:   true,
		},
		{
			name: "braces inside string values",
			raw:  `noise {"text": "use { and } freely"} trailing`,
			want: `{"text": "use { and } freely"}`,
			ok:   true,
		},
		{
			name: "escaped quotes inside strings",
			raw:  `{"text": "she said \"hi\" {"}`,
			want: `{"text": "she said \"hi\" {"}`,
			ok:   true,
		},
		{
			name: "array in prose",
			raw:  `The rules are: [{"feedback": "x"}] as requested`,
			want: `[{"feedback": "x"}]`,
			ok:   true,
		},
		{
			name: "no json at all",
			raw:  "I cannot help with that.",
			ok:   false,
		},
		{
			name: "unbalanced braces",
			raw:  `{"a": 1`,
			ok:   false,
		},
		{
			name: "empty input",
			raw:  "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSON(tt.raw)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("{\"a\":1}"))
	assert.Equal(t, `[1]`, stripFences("```\n[1]\n```"))
}
