package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promptmix/pkg/history"
	"github.com/dmitrymomot/promptmix/pkg/pool"
	"github.com/dmitrymomot/promptmix/pkg/prompt"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestGenerateCommand(t *testing.T) {
	data := writeFile(t, "clothes.csv", "color,item\nred,hat\nblue,\n")

	t.Run("renders until the space is exhausted", func(t *testing.T) {
		export := filepath.Join(t.TempDir(), "out.csv")
		out, errOut, err := execute(t, "generate",
			"-t", "Wearing [color] [item]",
			"--data", data,
			"-n", "5",
			"--seed", "7",
			"--export", export,
		)
		require.NoError(t, err)

		texts := strings.Split(strings.TrimSpace(out), "\n\n")
		require.Len(t, texts, 2)
		assert.ElementsMatch(t,
			[]string{"Wearing red hat", "Wearing blue hat"},
			[]string{strings.TrimPrefix(texts[0], "No.001 "), strings.TrimPrefix(texts[1], "No.002 ")},
		)
		assert.Contains(t, errOut, "warning:")
		assert.Contains(t, errOut, "rendered 2 of 5")

		f, err := os.Open(export)
		require.NoError(t, err)
		defer f.Close()
		entries, err := history.ReadCSV(f)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.True(t, strings.HasPrefix(entries[0].Summary, "No.2 | "))
	})

	t.Run("same seed gives the same output", func(t *testing.T) {
		big := writeFile(t, "big.csv", "a,b\n1,x\n2,y\n3,z\n4,w\n")
		args := []string{"generate", "-t", "[a]-[b]", "--data", big, "-n", "6", "--seed", "42", "--summary"}

		first, _, err := execute(t, args...)
		require.NoError(t, err)
		second, _, err := execute(t, args...)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Contains(t, first, "No.1 | [")
	})

	t.Run("template file", func(t *testing.T) {
		tmpl := writeFile(t, "prompt.txt", "Only [item]\r\n")
		out, _, err := execute(t, "generate", "--template-file", tmpl, "--data", data)
		require.NoError(t, err)
		assert.Equal(t, "No.001 Only hat\n\n", out)
	})

	t.Run("no tags", func(t *testing.T) {
		_, _, err := execute(t, "generate", "-t", "plain", "--data", data)
		assert.ErrorIs(t, err, prompt.ErrNoTagsDetected)
	})

	t.Run("missing columns", func(t *testing.T) {
		_, _, err := execute(t, "generate", "-t", "[size]", "--data", data)
		var missing *pool.MissingColumnsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"size"}, missing.Tags)
	})

	t.Run("data flag is required", func(t *testing.T) {
		_, _, err := execute(t, "generate", "-t", "[a]")
		assert.Error(t, err)
	})

	t.Run("template flags are exclusive", func(t *testing.T) {
		_, _, err := execute(t, "generate", "-t", "[a]", "--template-file", "x", "--data", data)
		assert.Error(t, err)
	})

	t.Run("count must be positive", func(t *testing.T) {
		_, _, err := execute(t, "generate", "-t", "[item]", "--data", data, "-n", "0")
		assert.Error(t, err)
	})
}
