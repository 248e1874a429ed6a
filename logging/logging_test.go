package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected hclog.Level
	}{
		{"", hclog.Info},
		{"trace", hclog.Trace},
		{"DEBUG", hclog.Debug},
		{"info", hclog.Info},
		{"warn", hclog.Warn},
		{"error", hclog.Error},
	}
	for _, tt := range tests {
		level, err := ParseLevel(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, level, tt.input)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewWritesToFileAndConsole(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "logs", "app.log")
	var console bytes.Buffer

	logger, closer, err := New(Options{Level: "debug", File: logFile, Console: &console})
	require.NoError(t, err)

	logger.Debug("probing", "path", "/lib/movie.mkv")
	logger.Trace("too verbose")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "probing")
	assert.Contains(t, string(data), "path=/lib/movie.mkv")
	assert.NotContains(t, string(data), "too verbose")
	assert.Equal(t, string(data), console.String())
}

func TestNewJSON(t *testing.T) {
	var console bytes.Buffer
	logger, _, err := New(Options{Console: &console, JSON: true})
	require.NoError(t, err)

	logger.Info("converted", "outcome", "converted")

	var record map[string]any
	require.NoError(t, json.Unmarshal(console.Bytes(), &record))
	assert.Equal(t, "converted", record["@message"])
	assert.Equal(t, "converted", record["outcome"])
}

func TestNewWithoutOutputs(t *testing.T) {
	logger, closer, err := New(Options{})
	require.NoError(t, err)
	logger.Info("goes nowhere")
	assert.NoError(t, closer.Close())
}

type captureSink struct {
	mu    sync.Mutex
	lines []string
}

func (c *captureSink) Accept(name string, level hclog.Level, msg string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, level.String()+" "+msg)
}

func TestInterceptSink(t *testing.T) {
	logger, _, err := New(Options{})
	require.NoError(t, err)

	sink := &captureSink{}
	logger.RegisterSink(sink)
	logger.Info("hello")
	logger.Named("ffmpeg").Warn("slow")

	sink.mu.Lock()
	defer sink.mu.Unlock()
	joined := strings.Join(sink.lines, "\n")
	assert.Contains(t, joined, "info hello")
	assert.Contains(t, joined, "warn slow")
}
