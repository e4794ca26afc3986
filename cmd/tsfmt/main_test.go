package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func TestRunStdin(t *testing.T) {
	tests := map[string]struct {
		args []string
		in   string
		want string
	}{
		"FormatsDefault": {
			args: nil,
			in:   "let x = 1",
			want: "let x = 1;\n",
		},
		"NoSemi": {
			args: []string{"-no-semi"},
			in:   "let x = 1",
			want: "let x = 1\n",
		},
		"SingleQuote": {
			args: []string{"-single-quote"},
			in:   `let x = "a";`,
			want: "let x = 'a';\n",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code, err := run(test.args, strings.NewReader(test.in), &stdout, &stderr)
			require.NoErrorf(t, err, "run(%v)", test.args)
			assert.Equalsf(t, code, 0, "exit code")
			assert.Equalsf(t, stdout.String(), test.want, "stdout")
		})
	}
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code, err := run([]string{"-version"}, strings.NewReader(""), &stdout, &stderr)
	require.NoErrorf(t, err, "run(-version)")
	assert.Equalsf(t, code, 0, "exit code")
	assert.Truef(t, stdout.Len() > 0, "expected a non-empty version string")
}

func TestRunListDifferentStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code, err := run([]string{"-list-different"}, strings.NewReader("let x=1"), &stdout, &stderr)
	assert.Truef(t, err != nil, "expected an error for unformatted stdin input")
	assert.Equalsf(t, code, 1, "exit code")
	assert.Equalsf(t, stdout.String(), "<stdin>\n", "stdout")
}

func TestRunWriteFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.ts")
	require.NoErrorf(t, os.WriteFile(file, []byte("let x=1"), 0o644), "WriteFile(%q)", file)

	var stdout, stderr bytes.Buffer
	code, err := run([]string{"-write", file}, strings.NewReader(""), &stdout, &stderr)
	require.NoErrorf(t, err, "run(-write)")
	assert.Equalsf(t, code, 0, "exit code")

	got, err := os.ReadFile(file)
	require.NoErrorf(t, err, "ReadFile(%q)", file)
	assert.Equalsf(t, string(got), "let x = 1;\n", "rewritten file contents")
}

func TestRunWriteAndDebugCheckMutuallyExclusive(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code, err := run([]string{"-write", "-debug-check"}, strings.NewReader(""), &stdout, &stderr)
	assert.Truef(t, err != nil, "expected an error")
	assert.Equalsf(t, code, 2, "exit code")
}

func TestRunInspectTokens(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code, err := run([]string{"inspect", "tokens"}, strings.NewReader("let x = 1;"), &stdout, &stderr)
	require.NoErrorf(t, err, "run(inspect tokens)")
	assert.Equalsf(t, code, 0, "exit code")
	assert.Truef(t, strings.Contains(stdout.String(), "IDENT"), "expected an IDENT token in output, got %q", stdout.String())
	assert.Truef(t, strings.Contains(stdout.String(), "EOF"), "expected an EOF token in output, got %q", stdout.String())
}

func TestRunUnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code, err := run([]string{"-nope"}, strings.NewReader(""), &stdout, &stderr)
	assert.Truef(t, err != nil, "expected a flag parse error")
	assert.Equalsf(t, code, 2, "exit code")
}
