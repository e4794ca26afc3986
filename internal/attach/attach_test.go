package attach

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	"github.com/crogenix/tsfmt/ast"
	"github.com/crogenix/tsfmt/internal/parser"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse([]byte(src))
	require.NoErrorf(t, err, "parser.Parse(%q)", src)
	return prog
}

func TestAttachTrailingSameLine(t *testing.T) {
	prog := parse(t, "let x = 1; // keep\nlet y = 2;\n")
	Attach(prog)

	stmt, ok := prog.Body[0].(*ast.VariableDeclaration)
	require.Truef(t, ok, "expected VariableDeclaration, got %T", prog.Body[0])
	cs := ast.CommentsOf(stmt)
	require.EqualValuesf(t, 1, len(cs.Trailing), "trailing comments on %v", stmt)
	assert.Equalsf(t, " keep", cs.Trailing[0].Text, "trailing comment text")
}

func TestAttachLeadingOwnLine(t *testing.T) {
	prog := parse(t, "// explains y\nlet y = 2;\n")
	Attach(prog)

	stmt, ok := prog.Body[0].(*ast.VariableDeclaration)
	require.Truef(t, ok, "expected VariableDeclaration, got %T", prog.Body[0])
	cs := ast.CommentsOf(stmt)
	require.EqualValuesf(t, 1, len(cs.Leading), "leading comments on %v", stmt)
	assert.Equalsf(t, " explains y", cs.Leading[0].Text, "leading comment text")
}

func TestAttachLeadingStaysWithFollowingAcrossBlankLine(t *testing.T) {
	prog := parse(t, "let x = 1;\n\n// about y\nlet y = 2;\n")
	Attach(prog)

	first := prog.Body[0]
	second := prog.Body[1]
	assert.EqualValuesf(t, 0, len(ast.CommentsOf(first).Trailing), "first statement should have no trailing comment")
	require.EqualValuesf(t, 1, len(ast.CommentsOf(second).Leading), "second statement leading comments")
	assert.Equalsf(t, " about y", ast.CommentsOf(second).Leading[0].Text, "leading comment text")
}

func TestAttachDanglingInEmptyBlock(t *testing.T) {
	prog := parse(t, "function f() {\n  // nothing here yet\n}\n")
	Attach(prog)

	fn, ok := prog.Body[0].(*ast.FunctionDeclaration)
	require.Truef(t, ok, "expected FunctionDeclaration, got %T", prog.Body[0])
	cs := ast.CommentsOf(fn.Body)
	require.EqualValuesf(t, 1, len(cs.Dangling), "dangling comments on empty block")
	assert.Equalsf(t, " nothing here yet", cs.Dangling[0].Text, "dangling comment text")
}

func TestAttachEveryCommentPlacedExactlyOnce(t *testing.T) {
	src := "// lead\nfunction f(/* p */ a) {\n  return a; // ret\n}\n"
	prog := parse(t, src)
	Attach(prog)

	var count func(n ast.Node) int
	count = func(n ast.Node) int {
		cs := ast.CommentsOf(n)
		total := len(cs.Leading) + len(cs.Trailing) + len(cs.Dangling)
		for _, child := range Children(n) {
			total += count(child)
		}
		return total
	}

	assert.EqualValuesf(t, len(prog.Comments), count(prog), "every parsed comment should be attached exactly once")
}
