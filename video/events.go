package video

// Event is a status update emitted by Library.Run. Consumers switch on the concrete type.
type Event interface {
	event()
}

// ScanStarted is emitted before discovery begins
type ScanStarted struct {
	Root string
}

// PendingFiles lists every candidate in processing order
type PendingFiles struct {
	Paths []string
}

// FileStarted is emitted before a candidate enters the pipeline. Index is 1-based.
type FileStarted struct {
	Path  string
	Index int
	Total int
}

// FileProcessed carries the outcome of one candidate
type FileProcessed struct {
	Path    string
	Outcome Outcome
	Detail  string
	DryRun  bool
}

// Progress reports how many candidates are done
type Progress struct {
	Current int
	Total   int
}

// RunCompleted is always the last event of a run, even an aborted one
type RunCompleted struct {
	Summary RunSummary
	Err     error
}

func (ScanStarted) event()   {}
func (PendingFiles) event()  {}
func (FileStarted) event()   {}
func (FileProcessed) event() {}
func (Progress) event()      {}
func (RunCompleted) event()  {}

// EventSink receives events. Emit must not block the pipeline for long.
type EventSink interface {
	Emit(Event)
}

// SinkFunc adapts a function to an EventSink
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

type discardSink struct{}

func (discardSink) Emit(Event) {}
