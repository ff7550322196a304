package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/versetip/internal/app"
	"github.com/hyperifyio/versetip/internal/verse"
)

const versesJSON = `{"John 3:16": {"verses": [{"text": "For God so loved the world"}], "translation_id": "kjv"}}`

func execute(t *testing.T, stdin string, args ...string) (int, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	args = append([]string{"--env-file", ""}, args...)
	code := run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String()
}

func versesFile(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "verses.json")
	require.NoError(t, os.WriteFile(p, []byte(versesJSON), 0o600))
	return p
}

func TestScan_TextOutput(t *testing.T) {
	code, out := execute(t, "See John 14:16,26 and Acts 2:38 (NIV).", "scan")
	require.Equal(t, 0, code)
	assert.Equal(t, "4\t10\tJohn 14:16\n15\t2\tJohn 14:26\n22\t15\tActs 2:38\tNIV\n", out)
}

func TestScan_JSONOutput(t *testing.T) {
	code, out := execute(t, "nothing here", "scan", "--json")
	require.Equal(t, 0, code)
	assert.JSONEq(t, "[]", out)
}

func TestInterlinear(t *testing.T) {
	code, out := execute(t, "", "interlinear", "Song", "of", "Solomon", "2:4")
	require.Equal(t, 0, code)
	assert.Equal(t, "https://biblehub.com/interlinear/song_of_solomon/2-4.htm\n", out)
}

func TestParse(t *testing.T) {
	code, out := execute(t, "", "parse", "1 Cor 13:4-7")
	require.Equal(t, 0, code)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "1 Corinthians 13:4-7", got["canonical"])

	code, _ = execute(t, "", "parse", "not a reference")
	assert.Equal(t, 1, code)
}

func TestLookup_Offline(t *testing.T) {
	code, out := execute(t, "", "--verses-file", versesFile(t), "--cache.dir", t.TempDir(), "lookup", "--json", "John", "3:16")
	require.Equal(t, 0, code)
	var card verse.Card
	require.NoError(t, json.Unmarshal([]byte(out), &card))
	assert.Equal(t, "For God so loved the world", card.Text)
	assert.Equal(t, "KJV", card.Translation)
	assert.False(t, card.Fallback)
}

func TestLookup_TranslationFlag(t *testing.T) {
	code, out := execute(t, "", "--verses-file", versesFile(t), "--cache.dir", t.TempDir(), "lookup", "--json", "--translation", "niv", "John 3:16")
	require.Equal(t, 0, code)
	var card verse.Card
	require.NoError(t, json.Unmarshal([]byte(out), &card))
	assert.Equal(t, "For God so loved the world", card.Text)
	assert.Contains(t, card.ContextURL, "version=NIV")
}

func TestLookup_TextFallback(t *testing.T) {
	code, out := execute(t, "", "--verses-file", versesFile(t), "--cache.dir", t.TempDir(), "lookup", "Jude 1:3")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Read Jude 1:3 at BibleGateway.com")
	assert.Contains(t, out, "Interlinear: https://biblehub.com/interlinear/jude/1-3.htm")
}

func TestAnnotate_ToFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.html")
	code, out := execute(t, "<p>John 3:16</p>", "--cache.dir", t.TempDir(), "annotate", "--fragment", "--interlinear", "-o", dest)
	require.Equal(t, 0, code)
	assert.Empty(t, out)
	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(b), `data-interlinear="https://biblehub.com/interlinear/john/3-16.htm"`)
}

func TestReport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(input, []byte("# Notes\n\nJohn 3:16\n"), 0o600))
	dest := filepath.Join(dir, "sheet.md")

	code, out := execute(t, "", "--verses-file", versesFile(t), "--cache.dir", filepath.Join(dir, "cache"), "report", input, "-o", dest)
	require.Equal(t, 0, code)
	assert.Equal(t, dest+"\n", out)
	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(b), "> For God so loved the world")
	_, err = os.Stat(dest + ".manifest.json")
	assert.NoError(t, err)
}

func TestReport_NoReferencesExitCode(t *testing.T) {
	dir := t.TempDir()
	code, _ := execute(t, "plain text", "--verses-file", versesFile(t), "--cache.dir", filepath.Join(dir, "cache"), "report", "-o", filepath.Join(dir, "s.md"))
	assert.Equal(t, 2, code)
}

func TestCacheClear(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.body"), []byte("x"), 0o600))
	code, out := execute(t, "", "--cache.dir", dir, "cache", "clear")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "cleared")
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestResolveConfig_Layering(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "versetip.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("api:\n  translation: web\n  contextVersion: NIV\nserver:\n  addr: \":9000\"\n"), 0o600))
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("VERSETIP_ADDR=:7000\n"), 0o600))
	t.Setenv(app.EnvAddr, "")

	var got app.Config
	root := newRootCommand(streams{in: strings.NewReader(""), out: &bytes.Buffer{}, err: &bytes.Buffer{}})
	o := &options{}
	probe := &cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			got, err = resolveConfig(cmd, o)
			return err
		},
	}
	probe.Flags().StringVar(&o.configPath, "config", "", "")
	probe.Flags().StringSliceVar(&o.envFiles, "env-file", nil, "")
	probe.Flags().StringVar(&o.cfg.Translation, "translation", "", "")
	root.AddCommand(probe)
	root.SetArgs([]string{"probe", "--config", cfgPath, "--env-file", envPath, "--translation", "asv"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "asv", got.Translation, "flag beats file")
	assert.Equal(t, "NIV", got.ContextVersion, "file fills unset fields")
	assert.Equal(t, ":7000", got.Addr, "env beats file")
	assert.Equal(t, app.DefaultOutputPath, got.OutputPath)
	assert.Equal(t, app.DefaultTimeout, got.Timeout)
}
