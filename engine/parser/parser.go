// Package parser converts raw input lines into command tokens.
// Intentionally dumb: no grammar, just folding and splitting.
package parser

import (
	"strings"

	"golang.org/x/text/cases"
)

// MaxTokens is the number of words a command line is reduced to.
const MaxTokens = 2

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Tokenize case-folds input, drops articles and returns at most MaxTokens
// words. Blank input yields nil.
func Tokenize(input string) []string {
	var tokens []string
	for _, w := range strings.Fields(cases.Fold().String(input)) {
		if articles[w] {
			continue
		}
		tokens = append(tokens, w)
		if len(tokens) == MaxTokens {
			break
		}
	}
	return tokens
}
