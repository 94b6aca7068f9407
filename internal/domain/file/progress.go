package file

import (
	"io"
	"sync"
)

// UploadPhase is the lifecycle position of a single upload session.
type UploadPhase string

const (
	UploadIdle       UploadPhase = "idle"
	UploadInProgress UploadPhase = "in_progress"
	UploadSucceeded  UploadPhase = "succeeded"
	UploadFailed     UploadPhase = "failed"
)

// UploadStatus is a point-in-time snapshot of the tracker.
type UploadStatus struct {
	Phase   UploadPhase `json:"phase"`
	Percent int         `json:"percent"`
	File    *File       `json:"file,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ProgressTracker reports a single in-flight upload. At most one session runs
// at a time; Begin rejects a second. A terminal Succeed or Fail emits the
// terminal status and returns the tracker to idle so the next Begin can start.
type ProgressTracker struct {
	mu       sync.Mutex
	phase    UploadPhase
	total    int64
	done     int64
	onChange func(UploadStatus)
}

// NewProgressTracker creates an idle tracker. onChange is invoked, outside the
// lock, for every status change; nil is allowed.
func NewProgressTracker(onChange func(UploadStatus)) *ProgressTracker {
	return &ProgressTracker{phase: UploadIdle, onChange: onChange}
}

// Begin starts a session for an upload of totalBytes. Returns
// ErrUploadInFlight if one is already running.
func (t *ProgressTracker) Begin(totalBytes int64) error {
	t.mu.Lock()
	if t.phase == UploadInProgress {
		t.mu.Unlock()
		return ErrUploadInFlight
	}
	t.phase = UploadInProgress
	t.total = totalBytes
	t.done = 0
	status := t.statusLocked()
	t.mu.Unlock()

	t.notify(status)
	return nil
}

// Add records n more transferred bytes and emits the new percentage.
func (t *ProgressTracker) Add(n int64) {
	t.mu.Lock()
	if t.phase != UploadInProgress {
		t.mu.Unlock()
		return
	}
	t.done += n
	if t.done > t.total {
		t.done = t.total
	}
	status := t.statusLocked()
	t.mu.Unlock()

	t.notify(status)
}

// Succeed ends the session with the created record and resets to idle.
func (t *ProgressTracker) Succeed(f *File) {
	t.mu.Lock()
	t.phase = UploadIdle
	t.done = 0
	t.total = 0
	t.mu.Unlock()

	t.notify(UploadStatus{Phase: UploadSucceeded, Percent: 100, File: f})
}

// Fail ends the session with an error and resets to idle. The session's
// progress is discarded and no record is created.
func (t *ProgressTracker) Fail(err error) {
	t.mu.Lock()
	t.phase = UploadIdle
	t.done = 0
	t.total = 0
	t.mu.Unlock()

	msg := ""
	if err != nil {
		msg = err.Error()
	}
	t.notify(UploadStatus{Phase: UploadFailed, Error: msg})
}

// Status returns the current snapshot.
func (t *ProgressTracker) Status() UploadStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statusLocked()
}

func (t *ProgressTracker) statusLocked() UploadStatus {
	s := UploadStatus{Phase: t.phase}
	if t.phase == UploadInProgress && t.total > 0 {
		s.Percent = int(t.done * 100 / t.total)
	}
	return s
}

func (t *ProgressTracker) notify(s UploadStatus) {
	if t.onChange != nil {
		t.onChange(s)
	}
}

// progressReader feeds the tracker as the blob store consumes the upload body.
type progressReader struct {
	r       io.Reader
	tracker *ProgressTracker
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.tracker.Add(int64(n))
	}
	return n, err
}
