package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"unfenced", `{"a":1}`, `{"a":1}`},
		{"unfenced with whitespace", "  \n{\"a\":1}\n ", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"json fence no newline", "```json{\"a\":1}```", `{"a":1}`},
		{"fence without close", "```json\n{\"a\":1}", `{"a":1}`},
		{"whitespace around fence", "  ```json\n[1,2]\n```  ", "[1,2]"},
		{"empty", "", ""},
		{"only fence", "```json\n```", ""},
		{"backticks inside body untouched", `{"a":"` + "```" + `"}`, `{"a":"` + "```" + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.in))
		})
	}
}
