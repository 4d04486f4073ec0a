package main

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"honnef.co/go/svgpath"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"length", "M0,0 L10,0 L10,10"}, "20\n"},
		{[]string{"bbox", "M0,0 L10,0 L10,10"}, "0 0 10 10\n"},
		{[]string{"reverse", "M0,0 L10,0"}, "M10,0 L0,0\n"},
		{[]string{"-matrix", "matrix(2 0 0 2 1 1)", "transform", "M0,0 L10,0"}, "M1,1 L21,1\n"},
		{[]string{"-matrix", "translate(1 1) scale(2)", "transform", "M0,0 L10,0"}, "M1,1 L21,1\n"},
		{[]string{"-relative", "-short", "normalize", "M0,0 L10,0 L10,10"}, "m0,0 h10 v10\n"},
		{[]string{"-samples", "3", "sample", "M0,0 L10,0"}, "0 0 0\n5 0 0\n10 0 0\n"},
		// Arguments are joined.
		{[]string{"normalize", "M0,0", "L1,1"}, "M0,0 L1,1\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, _, err := runCmd(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCurves(t *testing.T) {
	out, _, err := runCmd(t, "", "-precision", "3", "curves", "M0,0 A5,5 0 0,1 10,0")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "M0,0 C"), out)
	assert.Equal(t, 2, strings.Count(out, "C"))
	assert.True(t, strings.HasSuffix(out, " 10,0\n"), out)
}

func TestStdin(t *testing.T) {
	out, _, err := runCmd(t, "M1 2 3 4\n", "normalize")
	require.NoError(t, err)
	assert.Equal(t, "M1,2 L3,4\n", out)
}

func TestYAMLOutput(t *testing.T) {
	out, _, err := runCmd(t, "", "-format", "yaml", "bbox", "M0,0 L10,0 L10,10")
	require.NoError(t, err)
	var got bboxReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, bboxReport{X0: 0, Y0: 0, X1: 10, Y1: 10, Width: 10, Height: 10}, got)

	out, _, err = runCmd(t, "", "-format", "yaml", "-matrix", "2 0 0 3 0 0", "transform", "M1,1")
	require.NoError(t, err)
	var rep pathReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "M2,3", rep.Path)
	assert.Equal(t, []float64{2, 0, 0, 3, 0, 0}, rep.Matrix)
	require.NotNil(t, rep.Decomposition)
	assert.Equal(t, svgpath.Decomposition{ScaleX: 2, ScaleY: 3}, *rep.Decomposition)

	out, _, err = runCmd(t, "", "-format", "yaml", "-samples", "2", "sample", "M0,0 L0,10")
	require.NoError(t, err)
	var samples []sample
	require.NoError(t, yaml.Unmarshal([]byte(out), &samples))
	assert.Equal(t, []sample{{0, 0, 90}, {0, 10, 90}}, samples)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "svgpath.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfig(t *testing.T) {
	path := writeConfig(t, "format: yaml\nsvg:\n  relative: true\n")

	out, _, err := runCmd(t, "", "-config", path, "normalize", "M0,0 L10,0")
	require.NoError(t, err)
	assert.Equal(t, "path: m0,0 l10,0\n", out)

	// Flags take precedence over the file.
	out, _, err = runCmd(t, "", "-config", path, "-format", "text", "-relative=false", "normalize", "M0,0 L10,0")
	require.NoError(t, err)
	assert.Equal(t, "M0,0 L10,0\n", out)
}

func TestConfigErrors(t *testing.T) {
	for _, content := range []string{
		"format: xml\n",
		"samples: 1\n",
		"svg:\n  precision: -1\n",
		"svg: [\n",
	} {
		path := writeConfig(t, content)
		_, _, err := runCmd(t, "", "-config", path, "length", "M0,0")
		assert.Error(t, err, content)
	}

	_, _, err := runCmd(t, "", "-config", filepath.Join(t.TempDir(), "missing.yml"), "length", "M0,0")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestErrors(t *testing.T) {
	_, stderr, err := runCmd(t, "")
	assert.Error(t, err)
	assert.Contains(t, stderr, "Usage:")

	_, _, err = runCmd(t, "", "frobnicate", "M0,0")
	assert.ErrorContains(t, err, "unknown command")

	_, _, err = runCmd(t, "", "transform", "M0,0")
	assert.ErrorContains(t, err, "-matrix")

	_, _, err = runCmd(t, "", "-matrix", "1 2 3", "transform", "M0,0")
	assert.Error(t, err)

	_, _, err = runCmd(t, "", "length", "M0,0 L")
	var perr *svgpath.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 6, perr.Offset)

	_, _, err = runCmd(t, "", "sample")
	assert.ErrorIs(t, err, svgpath.ErrEmptyPath)

	_, _, err = runCmd(t, "", "-samples", "1", "sample", "M0,0 L1,1")
	assert.Error(t, err)
}

func TestHelp(t *testing.T) {
	_, stderr, err := runCmd(t, "", "-h")
	require.NoError(t, err)
	for _, cmd := range commands {
		assert.Contains(t, stderr, cmd.name)
	}
}

func TestDebugLogging(t *testing.T) {
	_, stderr, err := runCmd(t, "", "-debug", "normalize", "M0,0 A0,0 0 0,1 10,0")
	require.NoError(t, err)
	assert.Contains(t, stderr, "parsed path")
	assert.Contains(t, stderr, "arc drawn as line")

	_, stderr, err = runCmd(t, "", "-debug", "-matrix", "scale(2)", "transform", "M1,1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "matrix=")
}

func TestLoggersRestored(t *testing.T) {
	def := slog.Default()
	lib := svgpath.Logger()
	_, _, err := runCmd(t, "", "-debug", "length", "M0,0 L1,0")
	require.NoError(t, err)
	assert.Same(t, def, slog.Default())
	assert.Same(t, lib, svgpath.Logger())
}
