package ast_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"

	"github.com/crogenix/tsfmt/ast"
)

func TestCheckAllPrinted(t *testing.T) {
	t.Run("NoCommentsReportsNone", func(t *testing.T) {
		prog := &ast.Program{}
		got := ast.CheckAllPrinted(prog)
		assert.Truef(t, got == nil, "CheckAllPrinted(%v) must report nil when there are no comments", prog)
	})

	t.Run("AllPrintedReportsNone", func(t *testing.T) {
		prog := &ast.Program{Comments: []*ast.Comment{
			{Text: " printed", Printed: true},
		}}
		got := ast.CheckAllPrinted(prog)
		assert.Truef(t, got == nil, "CheckAllPrinted(%v) must report nil when every comment was printed", prog)
	})

	t.Run("UnprintedCommentIsReported", func(t *testing.T) {
		dropped := &ast.Comment{Text: " dropped", Printed: false}
		prog := &ast.Program{Comments: []*ast.Comment{
			{Text: " printed", Printed: true},
			dropped,
		}}
		got := ast.CheckAllPrinted(prog)
		assert.Truef(t, got == dropped, "CheckAllPrinted(%v) must report the first unprinted comment", prog)
	})
}
