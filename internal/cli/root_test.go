package cli

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/czbiohub-sf/maca/internal/cli/config"
	"github.com/czbiohub-sf/maca/internal/cli/testutil"
)

// execute runs the root command with args inside a clean working
// directory and returns stdout and stderr.
func execute(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(dir)
	config.ResetConfig()
	cfgFile = ""

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	names := make(map[string]bool)
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"annotate", "tissues", "explain", "repl", "version", "completion"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
	for _, flag := range []string{"config", "verbose", "output", "log-format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRoot_Annotate(t *testing.T) {
	dir := testutil.SetupTestTables(t)
	outDir := filepath.Join(dir, "out")

	stdout, _, err := execute(t, dir, "annotate", "--tissue-from-filename", "-d", outDir, "-o", "json", "Heart.csv", "Marrow.csv")
	require.NoError(t, err)

	var summaries []struct {
		Input  string `json:"input"`
		Tissue string `json:"tissue"`
		Rows   int    `json:"rows"`
		Error  string `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, "Heart", summaries[0].Tissue)
	assert.Equal(t, 4, summaries[0].Rows)
	assert.Equal(t, "Marrow", summaries[1].Tissue)
	assert.Empty(t, summaries[1].Error)

	heart, err := os.ReadFile(filepath.Join(outDir, "Heart.annotated.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(heart), "A3-MAA000001,t_cells,natural_killer_cells")

	marrow, err := os.ReadFile(filepath.Join(outDir, "Marrow.annotated.csv"))
	require.NoError(t, err)
	assert.NotContains(t, string(marrow), "plate.barcode")
}

func TestRoot_AnnotateStdout(t *testing.T) {
	dir := testutil.SetupTestTables(t)

	stdout, _, err := execute(t, dir, "annotate", "--tissue", "Heart", "--stdout", "--format", "tsv", "Heart.csv")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\tannotation\tsubannotation\n")
	assert.Contains(t, stdout, "A1-MAA000001\tfibroblasts\t\n")
}

func TestRoot_AnnotateConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Heart.csv"), []byte("cell,annotation\nA1,Fb_1\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "maca.yaml"), []byte("tissue: Heart\noutput_dir: cleaned\nrstats: true\n"), 0o600))

	_, _, err := execute(t, dir, "annotate", "-o", "json", "Heart.csv")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "cleaned", "Heart.annotated.csv"))
	require.NoError(t, err)
	assert.Equal(t, ",annotation,subannotation\nA1,fibroblasts,\n", string(got), "rstats blanks the index header")
}

func TestRoot_AnnotateZipped(t *testing.T) {
	dir := testutil.SetupTestTables(t)

	_, _, err := execute(t, dir, "annotate", "--tissue", "Heart", "--zipped", "-f", "tsv", "-d", "out", "-o", "json", "Heart.csv")
	require.NoError(t, err)

	zr, err := zip.OpenReader(filepath.Join(dir, "out", "Heart.annotated.zip"))
	require.NoError(t, err)
	defer func() { _ = zr.Close() }()
	require.Len(t, zr.File, 1)
	assert.Equal(t, "Heart.annotated.tsv", zr.File[0].Name)

	f, err := zr.File[0].Open()
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	got, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(got), "A3-MAA000001\tt_cells\tnatural_killer_cells\n")
}

func TestRoot_PreRunSharesConfigAndLogger(t *testing.T) {
	t.Chdir(t.TempDir())
	config.ResetConfig()
	cfgFile = ""

	cmd := NewRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"tissues", "-o", "json", "--log-format", "json"})
	require.NoError(t, cmd.Execute())

	cfg := config.GetCurrentConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "json", cfg.LogFormat)

	sub, _, err := cmd.Find([]string{"tissues"})
	require.NoError(t, err)
	require.NotNil(t, sub.Context())
	assert.NotNil(t, sub.Context().Value(config.LoggerKey()), "subcommands read the logger from their context")
}

func TestRoot_AnnotateWithoutTissue(t *testing.T) {
	dir := testutil.SetupTestTables(t)

	_, _, err := execute(t, dir, "annotate", "Heart.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tissue given")
}

func TestRoot_InvalidConfig(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, dir, "tissues", "--log-format", "xml")
	require.Error(t, err)
}

func TestRoot_Tissues(t *testing.T) {
	stdout, _, err := execute(t, t.TempDir(), "tissues", "-o", "json", "Heart")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"tissue": "Heart"`)
}

func TestRoot_Explain(t *testing.T) {
	stdout, _, err := execute(t, t.TempDir(), "explain", "--tissue", "Heart", "-o", "markdown", "Edc_3_endocardial")
	require.NoError(t, err)
	assert.Contains(t, stdout, "endothelial_cells")
	assert.Contains(t, stdout, "endocardial")
	testutil.AssertNoANSI(t, stdout)
}

func TestRoot_Completion(t *testing.T) {
	stdout, _, err := execute(t, t.TempDir(), "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "maca")
}
