package types

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// AppContext holds application-wide context information passed to commands
type AppContext struct {
	Version string
	Logger  hclog.InterceptLogger
	Out     io.Writer
}

// VersionString returns the build version, tolerating a nil context
func (a *AppContext) VersionString() string {
	if a == nil || a.Version == "" {
		return DefaultVersion
	}
	return a.Version
}

// Log returns the root logger or a silent one
func (a *AppContext) Log() hclog.InterceptLogger {
	if a == nil || a.Logger == nil {
		return hclog.NewInterceptLogger(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.Off})
	}
	return a.Logger
}

// Stdout is where command output goes
func (a *AppContext) Stdout() io.Writer {
	if a == nil || a.Out == nil {
		return os.Stdout
	}
	return a.Out
}
