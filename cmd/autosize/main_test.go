package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autosize/pkg/session"
)

const page = "<body><textarea id=\"t\">one\ntwo</textarea></body>"

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func writePage(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func decodeReport(t *testing.T, out string) []session.TextareaReport {
	t.Helper()
	var reports []session.TextareaReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	return reports
}

func TestReportJSON(t *testing.T) {
	out, err := execute(t, "", "report", "--json", writePage(t, page))
	require.NoError(t, err)
	reports := decodeReport(t, out)
	require.Len(t, reports, 1)
	assert.Equal(t, "30px", reports[0].Height)
	assert.Equal(t, "hidden", reports[0].OverflowY)
}

func TestReportFromStdin(t *testing.T) {
	out, err := execute(t, page, "report", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "textarea#t")
	assert.Contains(t, out, "30px")
}

func TestReportNoAttach(t *testing.T) {
	out, err := execute(t, "", "report", "--json", "--no-attach", writePage(t, page))
	require.NoError(t, err)
	assert.False(t, decodeReport(t, out)[0].Tracked)
}

func TestReportTypeEdits(t *testing.T) {
	out, err := execute(t, "", "report", "--json", "--type", `t=\nthree`, writePage(t, page))
	require.NoError(t, err)
	assert.Equal(t, "45px", decodeReport(t, out)[0].Height)

	_, err = execute(t, "", "report", "--type", "missing=x", writePage(t, page))
	assert.Error(t, err)
}

func TestReportViewport(t *testing.T) {
	_, err := execute(t, "", "report", "--viewport", "320x200", writePage(t, page))
	require.NoError(t, err)

	_, err = execute(t, "", "report", "--viewport", "wide", writePage(t, page))
	assert.Error(t, err)
}

func TestReportWithoutComputedStyle(t *testing.T) {
	out, err := execute(t, "", "report", "--json", "--no-computed-style", writePage(t, page))
	require.NoError(t, err)
	r := decodeReport(t, out)[0]
	assert.False(t, r.Tracked)
	assert.Empty(t, r.Height)
}

func TestRenderWritesPNG(t *testing.T) {
	png := filepath.Join(t.TempDir(), "out.png")
	out, err := execute(t, "", "render", "--out", png, writePage(t, page))
	require.NoError(t, err)
	assert.FileExists(t, png)
	assert.Contains(t, out, "textarea#t")
}

func TestRenderNeedsOutput(t *testing.T) {
	_, err := execute(t, "", "render", writePage(t, page))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no output file")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "autosize.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("engine:\n  no_computed_style: true\n"), 0o644))

	out, err := execute(t, "", "report", "--json", "--config", cfg, writePage(t, page))
	require.NoError(t, err)
	assert.False(t, decodeReport(t, out)[0].Tracked)

	_, err = execute(t, "", "report", "--config", filepath.Join(dir, "missing.yaml"), writePage(t, page))
	assert.Error(t, err)
}

func TestMissingInput(t *testing.T) {
	_, err := execute(t, "", "report", filepath.Join(t.TempDir(), "none.html"))
	assert.Error(t, err)
}

func TestRenderExpect(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "ref.png")
	input := writePage(t, page)
	_, err := execute(t, "", "render", "--out", ref, input)
	require.NoError(t, err)

	_, err = execute(t, "", "render", "--expect", ref, input)
	require.NoError(t, err)

	diff := filepath.Join(dir, "diff.png")
	_, err = execute(t, "", "render", "--expect", ref, "--diff", diff, "--type", `t=\n\n\nmore`, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rendering differs")
	assert.FileExists(t, diff)
}

func TestReportSeveralPages(t *testing.T) {
	first := writePage(t, page)
	second := writePage(t, `<textarea id="a"></textarea><textarea id="b"></textarea>`)
	out, err := execute(t, "", "report", "--json", first, second)
	require.NoError(t, err)
	reports := decodeReport(t, out)
	require.Len(t, reports, 3)
	assert.Equal(t, first, reports[0].Page)
	assert.Equal(t, "textarea#t", reports[0].Element)
	assert.Equal(t, second, reports[2].Page)
	assert.Equal(t, "textarea#b", reports[2].Element)

	out, err = execute(t, "", "report", first, second)
	require.NoError(t, err)
	assert.Contains(t, out, "== "+second)

	_, err = execute(t, "", "report", first, filepath.Join(t.TempDir(), "none.html"))
	assert.Error(t, err)
}

func TestBoxes(t *testing.T) {
	out, err := execute(t, "", "boxes", "--type", `t=\nthree`, writePage(t, page))
	require.NoError(t, err)
	assert.Contains(t, out, "viewport 800x600")
	assert.Contains(t, out, "textarea#t")
	assert.Contains(t, out, "lines=3")
}

// chdir is a Go 1.21-compatible stand-in for testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
