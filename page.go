package sitepdf

// FrameAttr is the attribute a Tab sets on every <iframe> before taking a
// Snapshot. Its value keys the frame's own snapshot in Snapshot.Frames.
const FrameAttr = "data-sitepdf-frame"

// Snapshot is the rendered state of a page (or frame) at one moment.
type Snapshot struct {
	URL  string
	HTML string

	// Frames holds the snapshots of accessible embedded frames, keyed by
	// the FrameAttr value of their <iframe>. Inaccessible frames are absent.
	Frames map[string]*Snapshot
}

// HeaderRecord is one heading of the merged document.
type HeaderRecord struct {
	Level int
	ID    string
	Text  string
}

// PageFragment is the sanitized content of one admitted page.
type PageFragment struct {
	SourceURL string
	Title     string
	HTML      string

	// ContentHash fingerprints the sanitized content before heading ids
	// were rewritten, so identical pages hash identically.
	ContentHash string

	Headers []HeaderRecord

	// FrameErrors lists embedded frames left unexpanded (EFRAME).
	FrameErrors []error
}

// ExtractOptions controls content extraction for a page.
type ExtractOptions struct {
	ContentSelector  string
	ExcludeSelectors []string
	ExtractFrames    bool
	MaxFrameDepth    int
	MaxHeaderLevel   int
	OpenDetails      bool
}

// IDAllocator hands out heading ids that are unique for a run.
type IDAllocator interface {
	// Allocate returns candidate, or candidate with a numeric suffix
	// when candidate was already handed out.
	Allocate(candidate string) string
}

// PageParser reads rendered pages.
type PageParser interface {
	// Extract returns the sanitized content of snap. Returns ESELECTOR if
	// the content selector matches nothing.
	Extract(snap *Snapshot, opts ExtractOptions, ids IDAllocator) (*PageFragment, error)

	// NextLink returns the absolute URL of the pagination link matched by
	// selector, or "" when there is none.
	NextLink(snap *Snapshot, selector string) (string, error)

	// Keywords returns the page's <meta name="keywords"> entries.
	Keywords(snap *Snapshot) ([]string, error)
}

// StopReason tells why a chain ended.
type StopReason int

// Chain termination reasons. None of them is an error.
const (
	StopNoNextLink StopReason = iota
	StopCycle
	StopPrintTarget
	StopMaxPages
)

func (r StopReason) String() string {
	switch r {
	case StopNoNextLink:
		return "no-next-link"
	case StopCycle:
		return "cycle"
	case StopPrintTarget:
		return "print-target"
	case StopMaxPages:
		return "max-pages"
	}
	return "unknown"
}

// Chain is the outcome of walking the pagination links from one seed.
type Chain struct {
	Seed      string
	Fragments []PageFragment
	Visited   int
	Stop      StopReason
}
