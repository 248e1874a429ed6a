package video

import (
	"fmt"
	"time"
)

// Outcome is the terminal status of one candidate file
type Outcome int

const (
	OutcomeConverted Outcome = iota
	OutcomeSkippedAlreadyMP4
	OutcomeSkippedOutputExists
	OutcomeFailedProbe
	OutcomeFailedCommandBuild
	OutcomeFailedEncode
	OutcomeFailedVerify
	OutcomeFailedReplace
	OutcomeError
)

var outcomeNames = map[Outcome]string{
	OutcomeConverted:           "converted",
	OutcomeSkippedAlreadyMP4:   "skipped-already-mp4",
	OutcomeSkippedOutputExists: "skipped-output-exists",
	OutcomeFailedProbe:         "failed-probe",
	OutcomeFailedCommandBuild:  "failed-command-build",
	OutcomeFailedEncode:        "failed-encode",
	OutcomeFailedVerify:        "failed-verify",
	OutcomeFailedReplace:       "failed-replace",
	OutcomeError:               "error",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// IsSkipped reports whether the file was left alone on purpose
func (o Outcome) IsSkipped() bool {
	return o == OutcomeSkippedAlreadyMP4 || o == OutcomeSkippedOutputExists
}

// IsFailure reports whether the file failed at some stage
func (o Outcome) IsFailure() bool {
	return o != OutcomeConverted && !o.IsSkipped()
}

// RunSummary tallies one Library.Run. Every run starts from a zero value.
type RunSummary struct {
	RunID     string
	Root      string
	Scanned   int
	Converted int
	Skipped   int
	Failed    int
	Duration  time.Duration
}

func (s RunSummary) String() string {
	return fmt.Sprintf("Scanned: %d, Converted: %d, Skipped: %d, Failed: %d",
		s.Scanned, s.Converted, s.Skipped, s.Failed)
}

// Add counts one processed file
func (s *RunSummary) Add(o Outcome) {
	s.Scanned++
	switch {
	case o == OutcomeConverted:
		s.Converted++
	case o.IsSkipped():
		s.Skipped++
	default:
		s.Failed++
	}
}
