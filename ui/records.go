package ui

import (
	"path/filepath"

	"github.com/lepinkainen/videonormalizer/video"
)

// FileRecord is one finished file as shown to the user
type FileRecord struct {
	Path    string
	Outcome video.Outcome
	Detail  string
}

func (f FileRecord) FilterValue() string { return f.Path }
func (f FileRecord) Title() string {
	return OutcomeStyle(f.Outcome).Render(OutcomeSymbol(f.Outcome)) + " " + filepath.Base(f.Path)
}
func (f FileRecord) Description() string {
	if f.Detail == "" {
		return f.Outcome.String()
	}
	return f.Outcome.String() + ": " + f.Detail
}

// recordFrom converts a FileProcessed event
func recordFrom(e video.FileProcessed) FileRecord {
	return FileRecord{Path: e.Path, Outcome: e.Outcome, Detail: e.Detail}
}
