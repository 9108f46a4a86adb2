package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/arxbench/internal/commands"
	"github.com/idelchi/arxbench/internal/config"
)

// execute runs the root command once. The root command binds flags into the global viper
// instance, so it is reset first and the tests in this package do not run in parallel.
func execute(t *testing.T, stdin string, args ...string) (string, *config.Config, error) {
	t.Helper()

	viper.Reset()

	cfg := config.New()
	root := commands.NewRootCommand(cfg, "test")

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), cfg, err
}

//nolint:paralleltest // shares the global viper instance
func TestEncryptDecrypt(t *testing.T) {
	out, _, err := execute(t, "", "encrypt", "-q", "hello")
	require.NoError(t, err)

	ciphertext := strings.TrimSpace(out)
	assert.Len(t, ciphertext, 64, "IV and one block, hex encoded")

	out, _, err = execute(t, "", "dec", "-q", ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

//nolint:paralleltest // shares the global viper instance
func TestDecryptStrictFlag(t *testing.T) {
	out, _, err := execute(t, "", "enc", "-q", "0123456789abcdef")
	require.NoError(t, err)

	_, cfg, err := execute(t, "", "dec", "-q", "--strict", strings.TrimSpace(out))
	require.Error(t, err)
	assert.True(t, cfg.Strict)
}

//nolint:paralleltest // shares the global viper instance
func TestBench(t *testing.T) {
	report := filepath.Join(t.TempDir(), "report.yml")

	out, cfg, err := execute(t, "", "bench", "-q", "-n", "300", "--chunk-size", "50", "-o", report, "hello", "world")
	require.NoError(t, err)

	assert.Equal(t, []string{"hello", "world"}, cfg.Text)
	assert.Equal(t, 300, cfg.Repeats)
	assert.Equal(t, 50, cfg.ChunkSize)
	assert.Contains(t, out, `Text:        "hello world"`)
	assert.Contains(t, out, "Iterations:  300/300")

	_, err = os.Stat(report)
	require.NoError(t, err)
}

//nolint:paralleltest // shares the global viper instance
func TestConsole(t *testing.T) {
	out, _, err := execute(t, "status\nhello\nquit\n", "console")
	require.NoError(t, err)

	assert.Contains(t, out, "state: idle")
	assert.Contains(t, out, `plaintext:  "hello"`)
}

//nolint:paralleltest // shares the global viper instance
func TestValidation(t *testing.T) {
	tests := [][]string{
		{"bench", "-n", "0", "hello"},
		{"bench", "--report", "out.txt", "hello"},
		{"console", "--chunk-size", "0"},
		{"encrypt", "--key", "beef", "hello"},
		{"encrypt", "--log-level", "loud", "hello"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
					_, _, err := execute(t, "", args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validating configuration")
		})
	}
}

//nolint:paralleltest // shares the global viper instance
func TestArguments(t *testing.T) {
	for _, args := range [][]string{{"encrypt"}, {"decrypt"}, {"bench"}, {"console", "extra"}} {
		_, _, err := execute(t, "", args...)
		require.Error(t, err, args)
	}
}

//nolint:paralleltest // shares the global viper instance
func TestShow(t *testing.T) {
	out, _, err := execute(t, "", "bench", "--show", "-j", "3", "-n", "7", "x")
	require.NoError(t, err)

	var shown config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &shown))

	assert.Equal(t, 3, shown.Parallel)
	assert.Equal(t, 7, shown.Repeats)
	assert.Equal(t, []string{"x"}, shown.Text)
	assert.NotContains(t, out, "Iterations", "--show does not run the command")
}

//nolint:paralleltest // shares the global viper instance
func TestEnvironment(t *testing.T) {
	t.Setenv("ARXBENCH_CHUNK_SIZE", "25")
	t.Setenv("ARXBENCH_QUIET", "true")

	_, cfg, err := execute(t, "", "bench", "-n", "30", "env")
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.ChunkSize)
	assert.True(t, cfg.Quiet)
}

//nolint:paralleltest // shares the global viper instance
func TestFlagsDoNotLeakBetweenRuns(t *testing.T) {
	_, first, err := execute(t, "", "bench", "-q", "-n", "5", "--chunk-size", "2", "x")
	require.NoError(t, err)
	assert.Equal(t, 2, first.ChunkSize)

	_, second, err := execute(t, "", "bench", "-q", "-n", "5", "x")
	require.NoError(t, err)
	assert.Equal(t, config.New().ChunkSize, second.ChunkSize)
}

//nolint:paralleltest // shares the global viper instance
func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, "test\n", out)
}

//nolint:paralleltest // shares the global viper instance
func TestUnknownSubcommand(t *testing.T) {
	_, _, err := execute(t, "", "encrpyt", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"encrpyt"`)
}
