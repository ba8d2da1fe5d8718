package driver

import "time"

// FileStatus is the state of one file in a directory run.
type FileStatus uint8

const (
	StatusQueued FileStatus = iota
	StatusWorking
	StatusDone
	StatusFailed // load error
)

func (s FileStatus) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "working"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ProgressEvent describes a file state change.
type ProgressEvent struct {
	Path     string
	Index    int
	Total    int
	Status   FileStatus
	Errors   int
	Warnings int
	Elapsed  time.Duration
}

// ProgressFunc receives events from worker goroutines; it must be safe for
// concurrent calls.
type ProgressFunc func(ProgressEvent)

func (f ProgressFunc) emit(ev ProgressEvent) {
	if f != nil {
		f(ev)
	}
}
