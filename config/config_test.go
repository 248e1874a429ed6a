package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTOML(t *testing.T) {
	values, err := Parse([]byte(`
backend = "cpu"
quality = 20
skip_existing = true

[logging]
log-level = "debug"
`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"backend":       "cpu",
		"quality":       "20",
		"skip-existing": "true",
		"log-level":     "debug",
	}, values)
}

func TestParseYAML(t *testing.T) {
	values, err := Parse([]byte(`
backend: intel
profile: main10
audio_codec: copy
dry-run: false
`))
	require.NoError(t, err)
	assert.Equal(t, "intel", values["backend"])
	assert.Equal(t, "main10", values["profile"])
	assert.Equal(t, "copy", values["audio-codec"])
	assert.Equal(t, "false", values["dry-run"])
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Plain text", "just some text"},
		{"Unclosed flow mapping", "{unclosed"},
		{"Lists", "language = [\"eng\", \"fin\"]"},
		{"Key in two tables", "[convert]\nquality = 20\n[watch]\nquality = 28\n"},
		{"Key at top level and in a table", "quality = 20\n[convert]\nquality = 28\n"},
		{"Dash and underscore spellings", "skip_existing = true\nskip-existing = false\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	values, err := Parse([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, values)
}

type testCLI struct {
	Config       kong.ConfigFlag `help:"Config file"`
	Backend      string          `default:"nvidia"`
	Quality      int             `default:"23"`
	SkipExisting bool
}

func TestLoaderFeedsKongDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("backend = \"amd\"\nquality = 18\nskip_existing = true\n"), 0o644))

	var cli testCLI
	parser, err := kong.New(&cli, kong.Configuration(Loader, path), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"--quality", "30"})
	require.NoError(t, err)

	assert.Equal(t, "amd", cli.Backend, "config file should override defaults")
	assert.Equal(t, 30, cli.Quality, "explicit flags should win over the config file")
	assert.True(t, cli.SkipExisting)
}

func TestLoaderMissingFileIgnored(t *testing.T) {
	var cli testCLI
	parser, err := kong.New(&cli, kong.Configuration(Loader, filepath.Join(t.TempDir(), "nope.toml")))
	require.NoError(t, err)

	_, err = parser.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "nvidia", cli.Backend)
}

func TestLoaderFromReader(t *testing.T) {
	resolver, err := Loader(strings.NewReader("backend: cpu\n"))
	require.NoError(t, err)
	require.NotNil(t, resolver)
}

func TestLockPath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	root := t.TempDir()

	a, err := LockPath(root)
	require.NoError(t, err)
	b, err := LockPath(filepath.Join(root, "."))
	require.NoError(t, err)
	assert.Equal(t, a, b, "equivalent paths should share a lock")
	assert.False(t, strings.HasPrefix(a, root), "lock must not live inside the library")
	assert.True(t, strings.HasSuffix(a, ".lock"))

	other, err := LockPath(t.TempDir())
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}

func TestDefaultHistoryPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	assert.Equal(t, filepath.Join(dir, AppName, "history.db"), DefaultHistoryPath())
	assert.Equal(t, filepath.Join(dir, AppName, AppName+".log"), DefaultLogPath())
}
