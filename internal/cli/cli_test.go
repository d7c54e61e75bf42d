package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/sift/internal/cli"
	"github.com/rshade/sift/internal/config"
)

// setupCLITest isolates the sift home directory and quiets logging.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvLogFormat, "")
	return home
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func listingDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big.bin"), make([]byte, 3000), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".secret"), []byte("x"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o750))
	return dir
}

// TestConfigInit verifies config init creates the file once.
func TestConfigInit(t *testing.T) {
	home := setupCLITest(t)

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized at")
	assert.FileExists(t, filepath.Join(home, "config.yaml"))

	_, err = execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
}

// TestConfigShowAndPath verifies the effective config is printed.
func TestConfigShowAndPath(t *testing.T) {
	home := setupCLITest(t)
	path := filepath.Join(home, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view:\n  overscan: 9\n"), 0o600))

	out, err := execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "overscan: 9")
	assert.Contains(t, out, "selection_policy: remap")

	out, err = execute(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml"), strings.TrimSpace(out))
}

// TestConfigInvalid verifies invalid configuration fails every command.
func TestConfigInvalid(t *testing.T) {
	home := setupCLITest(t)
	path := filepath.Join(home, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view:\n  row_height: 0\n"), 0o600))

	_, err := execute(t, "--config", path, "ls", t.TempDir())
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

// TestLs_Table verifies the plain listing window.
func TestLs_Table(t *testing.T) {
	setupCLITest(t)
	dir := listingDir(t)

	out, err := execute(t, "ls", dir, "--width", "100", "--height", "10", "--sort", "size:desc")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, lines[0], "Content ID")
	assert.Contains(t, lines[1], "big.bin")
	assert.Contains(t, lines[1], "3.0 kB")
	assert.Contains(t, lines[2], "a.txt")
	assert.Contains(t, lines[3], "sub")
	assert.Contains(t, lines[3], "Folder")
	assert.NotContains(t, out, ".secret")
}

// TestLs_OffsetAndHidden verifies scrolling and hidden files.
func TestLs_OffsetAndHidden(t *testing.T) {
	setupCLITest(t)
	dir := listingDir(t)

	out, err := execute(t, "ls", dir, "-a", "--width", "100", "--height", "2", "--offset", "1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "a.txt")
	assert.Contains(t, lines[2], "big.bin")
}

// TestLs_JSON verifies JSON output with content identifiers.
func TestLs_JSON(t *testing.T) {
	setupCLITest(t)
	dir := listingDir(t)

	out, err := execute(t, "ls", dir, "--format", "json", "--identify", "--width", "100", "--height", "10")
	require.NoError(t, err)

	var result struct {
		Total int `json:"total"`
		Rows  []struct {
			Name      string `json:"name"`
			Kind      string `json:"kind"`
			IsDir     bool   `json:"is_dir"`
			ContentID string `json:"content_id"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 3, result.Total)
	require.Len(t, result.Rows, 3)
	assert.Equal(t, "a.txt", result.Rows[0].Name)
	assert.Equal(t, "Text", result.Rows[0].Kind)
	assert.Len(t, result.Rows[0].ContentID, 16)
	assert.True(t, result.Rows[2].IsDir)
	assert.Empty(t, result.Rows[2].ContentID)
}

// TestLs_Errors verifies argument and listing failures.
func TestLs_Errors(t *testing.T) {
	setupCLITest(t)
	dir := listingDir(t)

	_, err := execute(t, "ls", filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitCodeNotFound, cli.ExitCode(err))

	_, err = execute(t, "ls", filepath.Join(dir, "a.txt"))
	assert.Equal(t, cli.ExitCodeNotFound, cli.ExitCode(err))

	_, err = execute(t, "ls", dir, "--sort", "size:sideways")
	require.Error(t, err)
	assert.Equal(t, cli.ExitCodeError, cli.ExitCode(err))

	_, err = execute(t, "ls", dir, "--sort", "bogus")
	require.Error(t, err)

	_, err = execute(t, "ls", dir, "--format", "xml")
	require.Error(t, err)
}

// TestBrowse_RequiresTerminal verifies browse refuses to run without a TTY.
func TestBrowse_RequiresTerminal(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "browse", t.TempDir())
	require.ErrorIs(t, err, cli.ErrNotInteractive)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, cli.ExitCode(nil))
	assert.Equal(t, 7, cli.ExitCode(&cli.ExitError{Code: 7, Err: os.ErrPermission}))
	assert.Equal(t, cli.ExitCodeError, cli.ExitCode(os.ErrPermission))
}
