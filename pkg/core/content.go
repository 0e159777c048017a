package core

// RawContent is the byte payload a fetcher returns before any processing (§3).
type RawContent struct {
	Bytes    []byte
	MimeType string
	Source   string
	Encoding string
}

// DOM is the narrow document capability middlewares depend on instead of a
// concrete HTML parser, so the parser stays swappable (§9 "DOM traversal").
// goquery's *goquery.Document satisfies it structurally once wrapped.
type DOM interface {
	// Find returns text content for every element matching the selector.
	Find(selector string) []string
	// Remove deletes every element matching the selector from the tree.
	Remove(selector string)
	// Attr returns the value of attr on the first element matching selector.
	Attr(selector, attr string) (string, bool)
	// HTML serializes the (possibly mutated) tree back to an HTML string.
	HTML() (string, error)
}

// ProcessingContext is the single mutable record that flows through the
// middleware chain (§3 "Processing context"). Source never mutates; Errors
// never shrinks; a middleware either mutates Content/Metadata/Links in place
// and calls next, or appends to Errors and calls next — the chain does not
// abort on non-fatal errors.
type ProcessingContext struct {
	Source      string
	Content     []byte
	ContentType string
	Metadata    map[string]string
	Links       []string
	Errors      []error
	Options     CrawlOptions
	DOM         DOM
	Fetcher     Fetcher
}

// AppendError records a non-fatal processing error without ever discarding
// previously recorded ones.
func (c *ProcessingContext) AppendError(err error) {
	c.Errors = append(c.Errors, err)
}

// Fetcher is the capability a middleware needs to load a subresource, kept
// narrow so the concrete HTTP/file fetcher stays an implementation detail.
type Fetcher interface {
	CanFetch(source string) bool
	Fetch(ctx any, source string, opts FetchOptions) (RawContent, error)
}

// FetchOptions configures a single fetch (§4.2).
type FetchOptions struct {
	Headers          map[string]string
	Timeout          int64 // milliseconds; 0 means no explicit timeout
	FollowRedirects  bool
	RetryBaseSeconds float64
	RetryMaxAttempts int
}

// ScrapeMode selects how HTML pages are rendered before processing (§4.3.1).
type ScrapeMode string

const (
	ScrapeModeFetch     ScrapeMode = "fetch"
	ScrapeModePlaywright ScrapeMode = "playwright"
	ScrapeModeAuto      ScrapeMode = "auto"
)

// Scope bounds which outbound links a crawl follows (§4.1, §4.4, GLOSSARY).
type Scope string

const (
	ScopeSubpages Scope = "subpages"
	ScopeHostname Scope = "hostname"
	ScopeDomain   Scope = "domain"
)

// CrawlOptions configures one scrape job (§4.4, §6).
type CrawlOptions struct {
	MaxPages        int
	MaxDepth        int
	MaxConcurrency  int
	Scope           Scope
	FollowRedirects bool
	ScrapeMode      ScrapeMode
	IgnoreErrors    bool
	ExcludeSelectors []string
	LinkPredicate   func(string) bool
}

// QueueItem is one BFS work item (§3 "Queue item").
type QueueItem struct {
	URL   string
	Depth int
}

// CrawledPage is the processed output of one scraper strategy item: clean
// Markdown content plus the metadata the middleware chain extracted (§4.4
// step 4 "document").
type CrawledPage struct {
	URL      string
	Content  string
	Title    string
	Depth    int
	DocKind  DocKind
}

// SectionType enumerates the kinds of content a splitter section carries (§3, §4.5).
type SectionType string

const (
	SectionHeading SectionType = "heading"
	SectionText    SectionType = "text"
	SectionCode    SectionType = "code"
	SectionTable   SectionType = "table"
)

// SectionPiece is one atom of content within a Section.
type SectionPiece struct {
	Type SectionType
	Text string
}

// SectionPath is the stack of ancestor heading texts for a Section or Chunk.
type SectionPath []string

// Section is a contiguous slice of a document delimited by headings, code
// fences, or tables (§3, §4.5, GLOSSARY).
type Section struct {
	Level   int
	Path    SectionPath
	Content []SectionPiece
}

// Chunk is the unit of storage and retrieval, produced by splitting and
// coalescing Sections (§3 "Content chunk").
type Chunk struct {
	Types   map[SectionType]struct{}
	Content string
	Level   int
	Path    SectionPath
}

// HasType reports whether the chunk carries content of the given type.
func (c Chunk) HasType(t SectionType) bool {
	_, ok := c.Types[t]
	return ok
}
