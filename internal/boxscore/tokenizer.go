package boxscore

import (
	"iter"
	"regexp"
	"strings"
)

// tokenPattern is deliberately permissive: a word/space run, a space, then a
// word/space/hyphen run. Names with a middle name (three parts) still land in
// a single token, at the cost of occasionally dragging stat digits along.
var tokenPattern = regexp.MustCompile(`[\[` + wordClass + `\s]+ [` + wordClass + `\s\-]+`)

// Tokenize yields the candidate tokens of a flattened game page in order.
// The sequence is lazy and can be ranged over any number of times.
func Tokenize(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for pos := 0; pos < len(text); {
			loc := tokenPattern.FindStringIndex(text[pos:])
			if loc == nil {
				return
			}
			if !yield(text[pos+loc[0] : pos+loc[1]]) {
				return
			}
			pos += loc[1]
		}
	}
}

// TokenKind is the role a token plays in the page layout.
type TokenKind int

const (
	TokenNoise TokenKind = iota
	TokenHeader
	TokenRosterEntry
	TokenTotals
)

func (k TokenKind) String() string {
	switch k {
	case TokenHeader:
		return "header"
	case TokenRosterEntry:
		return "roster-entry"
	case TokenTotals:
		return "totals"
	default:
		return "noise"
	}
}

// Token is a classified tokenizer match.
type Token struct {
	Text string
	Kind TokenKind
}

// Classify assigns a kind to every token once so later stages never repeat the
// substring checks. Totals wins over header, header wins over roster entry.
func (s Sentinels) Classify(tokens iter.Seq[string]) []Token {
	var out []Token
	for text := range tokens {
		out = append(out, Token{Text: text, Kind: s.kind(text)})
	}
	return out
}

func (s Sentinels) kind(text string) TokenKind {
	switch {
	case strings.Contains(text, s.Totals):
		return TokenTotals
	case strings.Contains(text, s.Header):
		return TokenHeader
	case strings.Contains(text, " "+s.Jersey):
		return TokenRosterEntry
	default:
		return TokenNoise
	}
}
