package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// ResultType classifies a search result for iconography and detail eligibility
type ResultType int

const (
	ResultTypeFile ResultType = iota
	ResultTypeFolder
	ResultTypeApplication
	ResultTypeDocument
	ResultTypeCode
	ResultTypeImage
	ResultTypePDF
)

var resultTypeNames = map[ResultType]string{
	ResultTypeFile:        "file",
	ResultTypeFolder:      "folder",
	ResultTypeApplication: "application",
	ResultTypeDocument:    "document",
	ResultTypeCode:        "code",
	ResultTypeImage:       "image",
	ResultTypePDF:         "pdf",
}

var resultTypeIcons = map[ResultType]string{
	ResultTypeFile:        "doc.fill",
	ResultTypeFolder:      "folder.fill",
	ResultTypeApplication: "app.fill",
	ResultTypeDocument:    "doc.text.fill",
	ResultTypeCode:        "chevron.left.forwardslash.chevron.right",
	ResultTypeImage:       "photo.fill",
	ResultTypePDF:         "doc.richtext.fill",
}

// String returns the lowercase name of the type
func (t ResultType) String() string {
	if name, ok := resultTypeNames[t]; ok {
		return name
	}
	return "file"
}

// Icon returns the symbol name used to render the type
func (t ResultType) Icon() string {
	if icon, ok := resultTypeIcons[t]; ok {
		return icon
	}
	return resultTypeIcons[ResultTypeFile]
}

// SupportsDetail reports whether results of this type can show the detail panel.
// Applications have no extended metadata worth showing.
func (t ResultType) SupportsDetail() bool {
	return t != ResultTypeApplication
}

// ParseResultType converts a name back to a ResultType
func ParseResultType(name string) (ResultType, error) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for t, n := range resultTypeNames {
		if n == lowered {
			return t, nil
		}
	}
	return ResultTypeFile, fmt.Errorf("%w: unknown result type %q", ErrInvalidInput, name)
}

// MarshalJSON encodes the type as its name
func (t ResultType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes the type from its name
func (t *ResultType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseResultType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// SearchResult is a single entry produced by a provider
type SearchResult struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Subtitle       string     `json:"subtitle"` // Containing folder, e.g. "Deep/Search"
	Path           string     `json:"path"`
	Type           ResultType `json:"type"`
	ModifiedDate   time.Time  `json:"modified_date"`
	CreatedDate    time.Time  `json:"created_date"`
	Size           int64      `json:"size"`
	RelevanceScore float64    `json:"relevance_score"`
}

// FormattedSize returns the size as a human readable byte count
func (r *SearchResult) FormattedSize() string {
	if r.Size < 0 {
		return humanize.Bytes(0)
	}
	return humanize.Bytes(uint64(r.Size))
}

// FormattedModified returns the modification date relative to now, e.g. "2 hours ago"
func (r *SearchResult) FormattedModified(now time.Time) string {
	return humanize.RelTime(r.ModifiedDate, now, "ago", "from now")
}

// FormattedCreated returns the creation date in a medium date, short time layout
func (r *SearchResult) FormattedCreated() string {
	return r.CreatedDate.Format("Jan 2, 2006 at 3:04 PM")
}

// Query holds the raw text typed by the user
type Query string

// Trimmed returns the query without surrounding whitespace and newlines
func (q Query) Trimmed() string {
	return strings.TrimSpace(string(q))
}

// HasQuery reports whether the trimmed query is non-empty
func (q Query) HasQuery() bool {
	return q.Trimmed() != ""
}

// Snapshot is the read model consumed by the UI boundary
type Snapshot struct {
	Query         string          `json:"query"`
	TrimmedQuery  string          `json:"trimmed_query"`
	HasQuery      bool            `json:"has_query"`
	Results       []*SearchResult `json:"results"`
	IsSearching   bool            `json:"is_searching"`
	SelectedIndex int             `json:"selected_index"`
	Generation    uint64          `json:"generation"`
	DetailEnabled bool            `json:"detail_enabled"`
}

// SearchState is the pipeline state derived from a snapshot
type SearchState string

const (
	SearchStateIdle      SearchState = "idle"      // No query
	SearchStateSearching SearchState = "searching" // A search is in flight
	SearchStateSettled   SearchState = "settled"   // Results reflect the current query
)

// State derives the pipeline state
func (s Snapshot) State() SearchState {
	switch {
	case !s.HasQuery:
		return SearchStateIdle
	case s.IsSearching:
		return SearchStateSearching
	default:
		return SearchStateSettled
	}
}

// Selected returns the focused result, if any
func (s Snapshot) Selected() (*SearchResult, bool) {
	if len(s.Results) == 0 || s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Results) {
		return nil, false
	}
	return s.Results[s.SelectedIndex], true
}
