package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNotFoundCarriesNoPage(t *testing.T) {
	r := NotFound()
	if r.Kind != ResultNotFound {
		t.Errorf("NotFound().Kind = %v, want %v", r.Kind, ResultNotFound)
	}
	if r.Page != nil {
		t.Errorf("NotFound().Page = %+v, want nil", r.Page)
	}
}

func TestRenderedCopiesPage(t *testing.T) {
	p := Page{Title: "Blog - About Me", HTML: []byte("<html></html>")}
	r := Rendered(p)
	p.Title = "changed"

	if r.Kind != ResultRendered {
		t.Fatalf("Rendered().Kind = %v, want %v", r.Kind, ResultRendered)
	}
	if r.Page.Title != "Blog - About Me" {
		t.Errorf("Rendered() page aliased caller value, title = %q", r.Page.Title)
	}
}

func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name    string
		result  Result
		wantErr bool
	}{
		{name: "rendered", result: Rendered(Page{Title: "x"}), wantErr: false},
		{name: "not found", result: NotFound(), wantErr: false},
		{name: "rendered without page", result: Result{Kind: ResultRendered}, wantErr: true},
		{name: "not found with page", result: Result{Kind: ResultNotFound, Page: &Page{}}, wantErr: true},
		{name: "zero kind", result: Result{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Snapshot{ID: "gen-1", Result: tt.result}
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResultKindEncodesByName(t *testing.T) {
	s := Snapshot{
		ID:          "gen-1",
		Host:        "blog.example.com",
		Result:      NotFound(),
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"kind":"not_found"`) {
		t.Errorf("Marshal() = %s, want kind encoded as not_found", data)
	}

	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Result.Kind != ResultNotFound {
		t.Errorf("decoded kind = %v, want %v", decoded.Result.Kind, ResultNotFound)
	}

	if err := json.Unmarshal([]byte(`{"result":{"kind":"bogus"}}`), &decoded); err == nil {
		t.Error("Unmarshal() with unknown kind should fail")
	}
}

func TestSnapshotAge(t *testing.T) {
	gen := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &Snapshot{GeneratedAt: gen}
	if got := s.Age(gen.Add(3 * time.Second)); got != 3*time.Second {
		t.Errorf("Age() = %v, want 3s", got)
	}
}
