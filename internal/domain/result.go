package domain

import (
	"fmt"
	"time"
)

// ResultKind tells which variant a Result holds.
type ResultKind int

const (
	// ResultRendered means a page was produced.
	ResultRendered ResultKind = iota + 1
	// ResultNotFound means the publication is absent and the page must not be served.
	ResultNotFound
)

func (k ResultKind) String() string {
	switch k {
	case ResultRendered:
		return "rendered"
	case ResultNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name so persisted snapshots stay readable.
func (k ResultKind) MarshalText() ([]byte, error) {
	switch k {
	case ResultRendered, ResultNotFound:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("invalid result kind: %d", int(k))
	}
}

func (k *ResultKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "rendered":
		*k = ResultRendered
	case "not_found":
		*k = ResultNotFound
	default:
		return fmt.Errorf("invalid result kind: %q", string(b))
	}
	return nil
}

// Page is a fully rendered About page.
type Page struct {
	Title string `json:"title"`
	HTML  []byte `json:"html"`

	// ETag is a strong validator derived from HTML.
	ETag string `json:"etag"`
}

// Result is the outcome of one generation: Rendered(Page) or NotFound.
// Page is nil for NotFound.
type Result struct {
	Kind ResultKind `json:"kind"`
	Page *Page      `json:"page,omitempty"`
}

// Rendered wraps a page.
func Rendered(p Page) Result {
	return Result{Kind: ResultRendered, Page: &p}
}

// NotFound is the result for an absent publication.
func NotFound() Result {
	return Result{Kind: ResultNotFound}
}

// Snapshot is a generation result as served between regenerations.
type Snapshot struct {
	// ID identifies the generation that produced this snapshot.
	ID          string    `json:"id"`
	Host        string    `json:"host"`
	Result      Result    `json:"result"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Age returns how long ago the snapshot was generated.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.GeneratedAt)
}

// Validate checks that the snapshot holds a well-formed variant.
func (s *Snapshot) Validate() error {
	switch s.Result.Kind {
	case ResultRendered:
		if s.Result.Page == nil {
			return fmt.Errorf("snapshot %s: rendered result without page", s.ID)
		}
	case ResultNotFound:
		if s.Result.Page != nil {
			return fmt.Errorf("snapshot %s: not-found result carries a page", s.ID)
		}
	default:
		return fmt.Errorf("snapshot %s: invalid result kind %d", s.ID, int(s.Result.Kind))
	}
	return nil
}
