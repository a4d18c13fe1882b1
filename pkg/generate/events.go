package generate

// Pipeline stages.
const (
	StageFetch     = "fetch"
	StageLoad      = "load"
	StageTransform = "transform"
	StageCompile   = "compile"
	StageWrite     = "write"
)

type (
	// Sent when a stage has started.
	EventStageStarted struct {
		Stage  string
		Detail string
	}

	// Sent when a stage has finished, successfully or not.
	EventStageDone struct {
		Err   error
		Stage string
	}

	// Sent for each translation warning.
	EventWarning struct {
		Warning string
	}

	// Sent when all work has completed.
	EventDone struct {
		Err    error
		Report *Report
	}
)
