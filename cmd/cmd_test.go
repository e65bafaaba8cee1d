package cmd

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drill/internal/render"
	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/store"
)

const sampleItem = `{
	"question": "7x8",
	"answer": "56",
	"consec": 1,
	"weights": [
		{"consec": 2, "weight": 0.2, "size": 0.1},
		{"consec": 1, "weight": 0.5, "size": 0.3},
		{"consec": 0, "weight": 0.3, "size": 0.6}
	]
}`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderCommand_SingleHistogram(t *testing.T) {
	out := filepath.Join(t.TempDir(), "weights.png")

	stdout, err := execute(t, sampleItem, "render", "--histograms", "1", "--axis", "explicit",
		"--out", out, "--width", "60", "--height", "30", "--scale", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote "+out)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())

	_, err = os.Stat(sizePath(out))
	assert.True(t, os.IsNotExist(err))
}

func TestRenderCommand_DualHistogramFromFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "item.json")
	require.NoError(t, os.WriteFile(in, []byte(sampleItem), 0o644))
	out := filepath.Join(dir, "nested", "h.png")

	_, err := execute(t, "", "render", in, "--histograms", "2", "--axis", "explicit",
		"--out", out, "--width", "60", "--height", "30", "--scale", "1")
	require.NoError(t, err)

	for _, p := range []string{out, filepath.Join(dir, "nested", "h-size.png")} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
}

func TestRenderCommand_RejectsInvalidItem(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.png")
	_, err := execute(t, `{"question": "q"}`, "render", "--histograms", "1", "--axis", "explicit",
		"--out", out, "--width", "60", "--height", "30", "--scale", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode item")
}

func TestRenderItemPNG_BadScale(t *testing.T) {
	item := &session.Item{Weights: []session.WeightSample{{Consec: 0, Weight: 1}}}
	_, err := renderItemPNG(item, render.DefaultOptions(), 10, 10, 0, filepath.Join(t.TempDir(), "a.png"))
	assert.Error(t, err)
}

func TestRenderItemPNG_SizeHistogramNeedsSizes(t *testing.T) {
	item := &session.Item{Weights: []session.WeightSample{{Consec: 0, Weight: 1}}}
	opts := render.DefaultOptions()
	opts.Histograms = 2
	out := filepath.Join(t.TempDir(), "a.png")

	_, err := renderItemPNG(item, opts, 10, 10, 1, out)
	require.ErrorIs(t, err, errNoSizeMetric)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "nothing is written")
}

func TestSizePath(t *testing.T) {
	assert.Equal(t, "out/h-size.png", sizePath("out/h.png"))
	assert.Equal(t, "plot-size", sizePath("plot"))
}

func TestJournalCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := store.Open(path)
	require.NoError(t, err)

	prev, resp := "2+2", "5"
	repo := s.ExchangeRepo()
	ctx := context.Background()
	require.NoError(t, repo.AppendExchange(ctx, store.ExchangeEventData{
		SessionID: "session-one", NextQuestion: "2+2", LatencyMs: 10, Success: true,
	}))
	require.NoError(t, repo.AppendExchange(ctx, store.ExchangeEventData{
		SessionID: "session-one", Previous: &prev, Response: &resp,
		NextQuestion: "3+3", NextConsec: 1, LatencyMs: 30, Success: true,
	}))
	require.NoError(t, s.Close())

	stdout, err := execute(t, "", "journal", "list", "--journal", path, "--limit", "10", "--session", "")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Previous")
	assert.Contains(t, stdout, "3+3 (1)")
	assert.Contains(t, stdout, "session…")

	stdout, err = execute(t, "", "journal", "stats", "--journal", path, "--session", "")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Exchanges:    2")
	assert.Contains(t, stdout, "Reported:     1")
	assert.Contains(t, stdout, "Avg latency:  20ms")
}

func TestJournalList_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	stdout, err := execute(t, "", "journal", "list", "--journal", path, "--limit", "5", "--session", "")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No exchanges found.")
}

func TestPrintSummary(t *testing.T) {
	wrong := "5"
	var buf bytes.Buffer
	printSummary(&buf, []session.Outcome{
		{Question: "2+2", Answer: "4", FirstWrong: &wrong, Misses: 1},
		{Question: "3+3", Answer: "6"},
	})
	assert.Equal(t, "2 items reported, 1 on the first try.\n", buf.String())

	buf.Reset()
	printSummary(&buf, nil)
	assert.Empty(t, buf.String())
}

func TestClip(t *testing.T) {
	assert.Equal(t, "abc", clip("abc", 5))
	assert.Equal(t, "abcd…", clip("abcdefgh", 5))
}
