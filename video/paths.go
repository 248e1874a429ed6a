package video

import (
	"path/filepath"
	"strings"
)

const (
	// OutputExt is the container every converted file ends up in
	OutputExt = ".mp4"
	// tempSuffix marks the working artifact written next to the source
	tempSuffix = ".temp" + OutputExt
)

// FinalPath maps name.ext to name.mp4 in the same directory
func FinalPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + OutputExt
}

// TempPath maps name.ext to name.temp.mp4 in the same directory
func TempPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + tempSuffix
}

// IsWorkFile reports whether path is a temp artifact left by an encode
func IsWorkFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(filepath.Base(path)), tempSuffix)
}
