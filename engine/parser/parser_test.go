package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty string", input: "", want: nil},
		{name: "whitespace only", input: "   \t ", want: nil},
		{name: "single word", input: "look", want: []string{"look"}},
		{name: "verb noun", input: "take lamp", want: []string{"take", "lamp"}},
		{name: "noun verb", input: "lamp take", want: []string{"lamp", "take"}},
		{name: "case folded", input: "TAKE Lamp", want: []string{"take", "lamp"}},
		{name: "articles dropped", input: "take the lamp", want: []string{"take", "lamp"}},
		{name: "extra words ignored", input: "put gem in box", want: []string{"put", "gem"}},
		{name: "only articles", input: "the a an", want: nil},
		{name: "surrounding space", input: "  n  ", want: []string{"n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}
