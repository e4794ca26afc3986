package massage

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/crogenix/tsfmt/ast"
	"github.com/crogenix/tsfmt/internal/parser"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p, err := parser.New([]byte(src))
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return prog
}

func TestEqualIgnoresWhitespaceAndComments(t *testing.T) {
	a := parse(t, "let x = 1 + 2;\n")
	b := parse(t, "let x =\n  1 + 2 // sum\n;\n")
	assert.True(t, Equal(a, b))
}

func TestEqualIgnoresStringQuoteStyle(t *testing.T) {
	a := parse(t, `let x = "a";`)
	b := parse(t, `let x = 'a';`)
	assert.True(t, Equal(a, b))
}

func TestNotEqualOnDifferentOperator(t *testing.T) {
	a := parse(t, "let x = 1 + 2;")
	b := parse(t, "let x = 1 - 2;")
	assert.False(t, Equal(a, b))
}

func TestNotEqualOnDifferentStructure(t *testing.T) {
	a := parse(t, "a || b && c;")
	b := parse(t, "(a || b) && c;")
	assert.False(t, Equal(a, b))
}
