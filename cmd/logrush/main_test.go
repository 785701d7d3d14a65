package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSource(t *testing.T, name, code string) string {
	t.Helper()
	location := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(location, []byte(code), 0o644))
	return location
}

func TestContextCmd(t *testing.T) {
	location := writeSource(t, "nested.ts", "const obj = {\n  a: {\n    method() {\n      run();\n    },\n  },\n};\n")
	out, err := run(t, "context", location, "--line", "4", "--column", "7")
	require.NoError(t, err)

	var view contextView
	require.NoError(t, yaml.Unmarshal([]byte(out), &view))
	assert.Equal(t, "method", view.FunctionName)
	assert.Equal(t, "obj.a", view.ObjectName)
	assert.Equal(t, []string{"obj", "a", "method"}, view.Path)
	assert.Equal(t, "objectMethod", view.Kind)
	require.NotNil(t, view.Scope)
	assert.EqualValues(t, "block", view.Scope.Kind)
}

func TestInsertCmd(t *testing.T) {
	location := writeSource(t, "calc.ts", "function f() {\n  const x = compute(a, b);\n  use(x);\n}\n")
	out, err := run(t, "insert", location, "--line", "3", "--column", "7", "--var", "x")
	require.NoError(t, err)

	var point struct {
		Line             int    `yaml:"line"`
		Character        int    `yaml:"character"`
		IsEndOfStatement bool   `yaml:"isEndOfStatement"`
		Tier             string `yaml:"tier"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &point))
	assert.Equal(t, 2, point.Line)
	assert.Equal(t, len("  const x = compute(a, b);")+1, point.Character)
	assert.True(t, point.IsEndOfStatement)
	assert.Equal(t, "scope", point.Tier)
}

func TestLogCmd(t *testing.T) {
	location := writeSource(t, "cart.ts", "function total(items) {\n  const sum = items.length;\n  return sum;\n}\n")
	config := writeSource(t, "logrush.yaml", "showLogSemicolon: true\nquotationMark: single\n")

	out, err := run(t, "log", location, "--line", "2", "--column", "9", "--var", "sum", "--method", "warn", "--config", config)
	require.NoError(t, err)
	assert.Contains(t, out, "console.warn('total->sum::', sum);")

	_, err = run(t, "log", location, "--line", "2", "--column", "9", "--var", "sum", "--write")
	require.NoError(t, err)
	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "function total(items) {\n  const sum = items.length;\n  console.log(\"total->sum::\", sum)\n  return sum;\n}\n", string(data))
}

func TestCmdErrors(t *testing.T) {
	location := writeSource(t, "a.ts", "let a = 1;\n")
	var testCases = []struct {
		description string
		args        []string
	}{
		{description: "zero based line", args: []string{"context", location, "--line", "0"}},
		{description: "missing variable", args: []string{"insert", location}},
		{description: "unknown method", args: []string{"log", location, "--var", "a", "--method", "print"}},
		{description: "missing file", args: []string{"context", filepath.Join(t.TempDir(), "none.ts")}},
		{description: "missing argument", args: []string{"context"}},
	}
	for _, testCase := range testCases {
		_, err := run(t, testCase.args...)
		assert.Error(t, err, testCase.description)
	}
}
