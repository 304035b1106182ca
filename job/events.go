package job

// EventType discriminates the events a running job emits.
type EventType int

const (
	// EventProgress is emitted after each processed page.
	EventProgress EventType = iota
	// EventPhaseReset marks the start of a follow-up phase whose progress
	// counts from zero again, such as word-processor conversion.
	EventPhaseReset
	// EventDiagnostic carries a non-fatal per-page or per-occurrence problem.
	EventDiagnostic
	// EventDone is the final event for a job.
	EventDone
)

// Event is one item on a job's event stream. Events for a single job arrive
// in order; a pool interleaves events of concurrent jobs.
type Event interface {
	Type() EventType
	// Job identifies the input file the event belongs to.
	Job() string
}

// ProgressEvent reports one completed page within the current phase.
type ProgressEvent struct {
	Input string
	Page  int // one-based
	Total int
	Phase string
}

func (e ProgressEvent) Type() EventType { return EventProgress }
func (e ProgressEvent) Job() string     { return e.Input }

// PhaseResetEvent announces a new phase of Total steps.
type PhaseResetEvent struct {
	Input string
	Phase string
	Total int
}

func (e PhaseResetEvent) Type() EventType { return EventPhaseReset }
func (e PhaseResetEvent) Job() string     { return e.Input }

// DiagnosticEvent reports a problem that did not abort the job.
type DiagnosticEvent struct {
	Input   string
	Page    int // one-based, zero when not page-scoped
	Message string
}

func (e DiagnosticEvent) Type() EventType { return EventDiagnostic }
func (e DiagnosticEvent) Job() string     { return e.Input }

// DoneEvent closes a job's stream. Err is non-nil when the job aborted
// before writing its output.
type DoneEvent struct {
	Input  string
	Result Result
	Err    error
}

func (e DoneEvent) Type() EventType { return EventDone }
func (e DoneEvent) Job() string     { return e.Input }

const (
	// PhaseStrip is the main page-rewriting phase.
	PhaseStrip = "strip"
	// PhaseDoc is the word-processor conversion phase.
	PhaseDoc = "doc"
)
