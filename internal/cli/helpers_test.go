package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/knots/internal/testutil"
)

// csvOf renders fixture rows as a grid CSV file body.
func csvOf(rows []string) string {
	var b strings.Builder
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, ch := range row {
			if ch == '.' {
				cells = append(cells, "")
			} else {
				cells = append(cells, string(ch))
			}
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeTrefoil(t *testing.T) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "trefoil.csv", csvOf(testutil.TrefoilRows))
}

func writeUnknot(t *testing.T) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "unknot.csv", csvOf(testutil.UnknotRows))
}

// execute runs cmd with args and returns what it wrote to stdout.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// applyRecorded records one session with a fixed token into dbPath.
// Rejected moves are allowed; only command errors fail the test.
func applyRecorded(t *testing.T, dbPath, token, gridPath string, moves ...string) {
	t.Helper()
	opts := &ApplyOptions{
		RootOptions: &RootOptions{Format: "text"},
		Tokens:      testutil.NewFixedTokenGenerator(token),
	}
	args := []string{gridPath, "--db", dbPath}
	for _, m := range moves {
		args = append(args, "--move", m)
	}
	_, err := execute(newApplyCommand(opts), args...)
	if err != nil {
		require.Equal(t, ExitFailure, GetExitCode(err), "apply failed: %v", err)
	}
}
