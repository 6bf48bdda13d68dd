package letexpr

import (
	"testing"
)

// FuzzTokenize feeds random inputs to the lexer to catch panics. The
// lexer must either produce tokens or return an error, never panic.
func FuzzTokenize(f *testing.F) {
	seeds := []string{
		// statements
		`let x = 1; x + 2`,
		`del x; x = y;`,
		`let s = "a\"b"; { let s = 2; s } + 0`,
		// expressions
		`if x > 5 { "big" } else { "small" }`,
		`sum(1, 2.5, "three")`,
		`a && b || !c`,
		`1 == 2 != 3 <= 4 >= 5`,
		// comments
		"// line comment\n1 + 2",
		`/* block */ 1`,
		`/* unterminated`,
		// edge cases
		``,
		`   `,
		"\t\n\r",
		`"unterminated`,
		`@#$`,
		`1..2.3`,
		`&`,
		`|`,
		`let let = let;`,
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		tokens, err := Tokenize(src)
		if err != nil {
			return
		}
		if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokEOF {
			t.Errorf("token stream for %q does not end with EOF", src)
		}
		for _, tok := range tokens {
			_ = tok.Type.String()
		}
	})
}
