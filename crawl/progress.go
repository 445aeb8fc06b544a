package crawl

// ProgressEvent reports what happened to one page or chain during a run.
type ProgressEvent struct {
	Type   ProgressType
	URL    string
	Title  string
	Reason string
	Error  error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressVisited means the page's content was kept.
	ProgressVisited ProgressType = iota
	// ProgressExcluded means an admission check rejected the page.
	ProgressExcluded
	// ProgressEmpty means the content selector matched nothing.
	ProgressEmpty
	// ProgressChainDone means a pagination chain ended.
	ProgressChainDone
	// ProgressWriting means the document is being rendered to the output.
	ProgressWriting
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)
