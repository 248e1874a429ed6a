package video

import (
	"path/filepath"
	"strings"
)

// candidateExtensions are the containers picked up for conversion
var candidateExtensions = []string{".mkv", ".avi", ".mov", ".ts", ".mpg", ".flv", ".wmv", ".mp4"}

// IsVideoFile checks if the given file extension is one of known video file extensions
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path)) // handle cases where extension is upper case

	for _, v := range candidateExtensions {
		if v == ext {
			return true
		}
	}
	return false
}

// IsCandidate reports whether path should be fed to the conversion pipeline
func IsCandidate(path string) bool {
	return IsVideoFile(path) && !IsWorkFile(path)
}

// IsMP4 reports whether path already has the output container's extension
func IsMP4(path string) bool {
	return strings.EqualFold(filepath.Ext(path), OutputExt)
}
