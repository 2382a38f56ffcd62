package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValidGrid(t *testing.T) {
	path := writeTrefoil(t)

	out, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), path)
	require.NoError(t, err)
	assert.Contains(t, out, iconOK)
	assert.Contains(t, out, "valid 5x5 grid, 1 component, 3 crossings")
}

func TestValidateValidGridJSON(t *testing.T) {
	path := writeTrefoil(t)

	out, err := execute(NewValidateCommand(&RootOptions{Format: "json"}), path)
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   GridReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, 5, resp.Data.Size)
	assert.Equal(t, 1, resp.Data.Components)
	assert.Equal(t, 3, resp.Data.Crossings)
}

func TestValidateMalformedRow(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.csv", "x,x\no,o\n")

	out, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, out, iconFail)
	assert.Contains(t, out, "MALFORMED_ROW at index 0")
}

func TestValidateMalformedColumnJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.csv", "x,o\nx,o\n")

	out, err := execute(NewValidateCommand(&RootOptions{Format: "json"}), path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string     `json:"status"`
		Data   GridReport `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidGrid, resp.Error.Code)
	require.NotNil(t, resp.Data.Issue)
	assert.Equal(t, "MALFORMED_COLUMN", resp.Data.Issue.Code)
	require.NotNil(t, resp.Data.Issue.Index)
	assert.Equal(t, 0, *resp.Data.Issue.Index)
}

func TestValidateUnknownMarker(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.csv", "x,o\nq,x\n")

	out, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "UNKNOWN_MARKER")
}

func TestValidateUnsupportedExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "grid.txt", "xo\nox\n")

	out, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "MALFORMED_FILE")
	assert.Contains(t, out, "unsupported grid file extension")
}

func TestValidateCUEGrid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "unknot.cue", `rows: [["x", "o"], ["o", "x"]]`)

	out, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), path)
	require.NoError(t, err)
	assert.Contains(t, out, "valid 2x2 grid, 1 component, 0 crossings")
}

func TestValidateNonExistentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	out, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNotFound)
	assert.Contains(t, out, "not found")
}

func TestValidateMissingArgs(t *testing.T) {
	_, err := execute(NewValidateCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}
