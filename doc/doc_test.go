package doc

import (
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
)

func TestRenderText(t *testing.T) {
	d := New().Text("hello")
	got := d.Render(PrintOptions{PrintWidth: 80, TabWidth: 2})
	assert.Equals(t, got, "hello", "Render")
}

func TestRenderGroupFitsFlat(t *testing.T) {
	d := New().Group(func(d *Doc) {
		d.Text("[").Text("1").Text(",").Line().Text("2").Text("]")
	})
	got := d.Render(PrintOptions{PrintWidth: 80, TabWidth: 2})
	assert.Equals(t, got, "[1, 2]", "Render")
}

func TestRenderGroupBreaksWhenOverWidth(t *testing.T) {
	d := New().Group(func(d *Doc) {
		d.Text("[").Indent(func(d *Doc) {
			d.SoftLine().Text("1").Text(",").Line().Text("2")
		}).SoftLine().Text("]")
	})
	got := d.Render(PrintOptions{PrintWidth: 5, TabWidth: 2})
	want := "[\n  1,\n  2\n]"
	assert.Equals(t, got, want, "Render")
}

func TestRenderHardLineForcesBreak(t *testing.T) {
	d := New().Group(func(d *Doc) {
		d.Text("{").Indent(func(d *Doc) {
			d.HardLine().Text("a")
		}).HardLine().Text("}")
	})
	got := d.Render(PrintOptions{PrintWidth: 80, TabWidth: 2})
	want := "{\n  a\n}"
	assert.Equals(t, got, want, "Render")
}

func TestRenderIfBreak(t *testing.T) {
	build := func(width int) string {
		d := New().Group(func(d *Doc) {
			d.Text("[").Indent(func(d *Doc) {
				d.SoftLine().Text("1").IfBreak(func(d *Doc) { d.Text(",") }, nil)
			}).SoftLine().Text("]")
		})
		return d.Render(PrintOptions{PrintWidth: width, TabWidth: 2})
	}

	assert.Equals(t, build(80), "[1]", "Render flat")
	assert.Equals(t, build(2), "[\n  1,\n]", "Render broken")
}

func TestRenderLineSuffixDefersToNewline(t *testing.T) {
	d := New().Text("a").LineSuffix(func(d *Doc) { d.Text(" // c") }).HardLine().Text("b")
	got := d.Render(PrintOptions{PrintWidth: 80, TabWidth: 2})
	want := "a // c\nb"
	assert.Equals(t, got, want, "Render")
}

func TestRenderLiteralLineResetsIndent(t *testing.T) {
	d := New().Indent(func(d *Doc) {
		d.Text("a").LiteralLine().Text("b")
	})
	got := d.Render(PrintOptions{PrintWidth: 80, TabWidth: 2})
	want := "a\nb"
	assert.Equals(t, got, want, "Render")
}

func TestRenderUseTabs(t *testing.T) {
	d := New().Indent(func(d *Doc) {
		d.HardLine().Text("a")
	})
	got := d.Render(PrintOptions{PrintWidth: 80, TabWidth: 2, UseTabs: true})
	want := "\n\ta"
	assert.Equals(t, got, want, "Render")
}

func TestRenderAlignUsesLiteralSpacesRegardlessOfUseTabs(t *testing.T) {
	d := New().Align(3, func(d *Doc) {
		d.HardLine().Text("a")
	})
	got := d.Render(PrintOptions{PrintWidth: 80, TabWidth: 2, UseTabs: true})
	want := "\n   a"
	assert.Equals(t, got, want, "Render")
}

func TestRenderGroupAtVaryingWidths(t *testing.T) {
	build := func() *Doc {
		d := New().Group(func(d *Doc) {
			d.Text("func(").Indent(func(d *Doc) {
				d.SoftLine().Text("a").Text(",").Line().Text("b")
			}).SoftLine().Text(")")
		})
		return d
	}

	tests := map[string]struct {
		width int
		want  string
	}{
		"wide enough stays flat": {80, "func(a, b)"},
		"exact width stays flat": {len("func(a, b)"), "func(a, b)"},
		"one under width breaks": {len("func(a, b)") - 1, "func(\n  a,\n  b\n)"},
		"narrow breaks":          {1, "func(\n  a,\n  b\n)"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := build().Render(PrintOptions{PrintWidth: tt.width, TabWidth: 2})
			assert.Equals(t, got, tt.want, "Render at width %d", tt.width)
		})
	}
}

func TestTextPanicsOnEmbeddedNewline(t *testing.T) {
	tests := map[string]string{
		"trailing newline": "a\n",
		"interior newline": "a\nb",
		"only a newline":   "\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if err := recover(); err == nil {
					t.Errorf("Text(%q): want panic but got none", content)
				}
			}()
			New().Text(content)
		})
	}
}

func TestDebugSmoke(t *testing.T) {
	d := New().Group(func(d *Doc) {
		d.Text("[").IfBreak(func(d *Doc) { d.Text(",") }, nil).SoftLine().Text("]")
	})
	got := d.Debug()

	assert.Truef(t, strings.Contains(got, "<group"), "Debug output should contain a <group> tag, got %q", got)
	assert.Truef(t, strings.Contains(got, "<ifBreak"), "Debug output should contain an <ifBreak> tag, got %q", got)
	assert.Truef(t, strings.Contains(got, "<softline"), "Debug output should contain a <softline> tag, got %q", got)
}
