package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/entsearch/internal/domain"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/kind"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/record"
	"github.com/kailas-cloud/entsearch/internal/domain/search/query"
	"github.com/kailas-cloud/entsearch/internal/usecase/normalize"
)

// --- Fakes ---

type fakeObserver struct {
	skipped   map[kind.Kind]int
	completed int
	rejected  int
	returned  int
}

func newFakeObserver() *fakeObserver {
	return &fakeObserver{skipped: make(map[kind.Kind]int)}
}

func (o *fakeObserver) RecordsSkipped(k kind.Kind, n int) { o.skipped[k] += n }

func (o *fakeObserver) SearchCompleted(_ kind.Kind, returned int, _ time.Duration) {
	o.completed++
	o.returned = returned
}

func (o *fakeObserver) SearchRejected() { o.rejected++ }

// spyRegistry wraps the default adapters and records which kinds ran.
func spyRegistry(calls map[kind.Kind]int) normalize.Registry {
	reg := normalize.Registry{}
	for k, fn := range normalize.Default() {
		reg[k] = func(records []record.Raw) normalize.Output {
			calls[k]++
			return fn(records)
		}
	}
	return reg
}

func recs(docs ...string) []record.Raw {
	out := make([]record.Raw, len(docs))
	for i, d := range docs {
		out[i] = record.Raw(d)
	}
	return out
}

func mixedSources() Sources {
	return Sources{
		kind.Topic: recs(`{"id":"t1","name":"Banking"}`),
		kind.Story: recs(`{"id":"s1","title":"Anatomy of a bank run"}`),
		kind.Person: recs(
			`{"id":"p1","name":"Ana Lopez"}`,
			`{"id":"p2","name":"Bob"}`,
		),
		kind.Company: recs(
			`{"id":"c1","name":"Apple Inc"}`,
			`{"id":"c2","name":"Banana Corp"}`,
		),
	}
}

func allQuery(text string) query.Query {
	return query.Reconstruct(text, kind.All, kind.AllKinds())
}

// --- Tests ---

func TestSearch_EmptyTextKeepsCanonicalOrder(t *testing.T) {
	svc := New(nil)
	rs, err := svc.Search(context.Background(), allQuery(""), mixedSources())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertOrder(t, rs.Items(), "Apple Inc", "Banana Corp", "Ana Lopez", "Bob", "Anatomy of a bank run", "Banking")

	for i, it := range rs.Items() {
		if it.SortKey() != i {
			t.Errorf("item %d SortKey = %d", i, it.SortKey())
		}
		if it.HighlightedName() != it.DisplayName() {
			t.Errorf("empty query should not wrap: %q", it.HighlightedName())
		}
	}
	if rs.UnfilteredCount() != 6 {
		t.Errorf("UnfilteredCount = %d, want 6", rs.UnfilteredCount())
	}
}

func TestSearch_WhitespaceTextIsEmpty(t *testing.T) {
	rs, err := New(nil).Search(context.Background(), allQuery("   "), mixedSources())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertOrder(t, rs.Items(), "Apple Inc", "Banana Corp", "Ana Lopez", "Bob", "Anatomy of a bank run", "Banking")
}

func TestSearch_RanksAcrossKinds(t *testing.T) {
	rs, err := New(nil).Search(context.Background(), allQuery("an"), mixedSources())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// index 0: Anatomy of a bank run (2 matches), Ana Lopez (1)
	// index 1: Banana Corp (2), Banking (1)
	// no match: Apple Inc, Bob
	assertOrder(t, rs.Items(),
		"Anatomy of a bank run", "Ana Lopez", "Banana Corp", "Banking", "Apple Inc", "Bob")

	first := rs.Items()[0]
	if first.HighlightedName() != "<mark>An</mark>atomy of a b<mark>an</mark>k run" {
		t.Errorf("HighlightedName = %q", first.HighlightedName())
	}
	if first.Kind() != kind.Story {
		t.Errorf("Kind = %q, want story", first.Kind())
	}
}

func TestSearch_ScenarioA(t *testing.T) {
	sources := Sources{kind.Company: recs(
		`{"id":"1","name":"Apple Inc"}`,
		`{"id":"2","name":"Banana Corp"}`,
	)}
	rs, err := New(nil).Search(context.Background(), allQuery("an"), sources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertOrder(t, rs.Items(), "Banana Corp", "Apple Inc")
}

func TestSearch_MalformedCompanySkipped(t *testing.T) {
	obs := newFakeObserver()
	sources := Sources{kind.Company: recs(
		`{"id":"1","name":"Alpha"}`,
		`{"id":"2","name":"Beta"}`,
		`{"name":"Gamma"}`,
		`{"id":"4","name":"Delta"}`,
		`{"id":"5","name":"Epsilon"}`,
	)}

	rs, err := New(nil).WithObserver(obs).Search(context.Background(), allQuery(""), sources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.Len() != 4 {
		t.Fatalf("expected 4 items, got %d", rs.Len())
	}
	if obs.skipped[kind.Company] != 1 {
		t.Errorf("skipped = %d, want 1", obs.skipped[kind.Company])
	}
}

func TestSearch_InvalidFilterRejectedBeforeAdapters(t *testing.T) {
	calls := make(map[kind.Kind]int)
	obs := newFakeObserver()
	svc := New(spyRegistry(calls)).WithObserver(obs)

	q := query.Reconstruct("an", "UnknownKind", kind.AllKinds())
	_, err := svc.Search(context.Background(), q, mixedSources())
	if !errors.Is(err, domain.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("adapters invoked: %v", calls)
	}
	if obs.rejected != 1 {
		t.Errorf("rejected = %d, want 1", obs.rejected)
	}
}

func TestSearch_ActiveFilterRestrictsButCountsAll(t *testing.T) {
	q := query.Reconstruct("", kind.Person, kind.NewSet(kind.Company))
	rs, err := New(nil).Search(context.Background(), q, mixedSources())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertOrder(t, rs.Items(), "Ana Lopez", "Bob")
	if rs.UnfilteredCount() != 6 {
		t.Errorf("UnfilteredCount = %d, want 6", rs.UnfilteredCount())
	}
}

func TestSearch_EnabledKindsRestrict(t *testing.T) {
	q := query.Reconstruct("b", kind.All, kind.NewSet(kind.Topic, kind.Company))
	rs, err := New(nil).Search(context.Background(), q, mixedSources())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertOrder(t, rs.Items(), "Banana Corp", "Banking", "Apple Inc")
	if rs.UnfilteredCount() != 6 {
		t.Errorf("UnfilteredCount = %d, want 6", rs.UnfilteredCount())
	}
}

func TestSearch_EmptyResults(t *testing.T) {
	tests := []struct {
		name           string
		q              query.Query
		sources        Sources
		wantUnfiltered int
	}{
		{"nil sources", allQuery("x"), nil, 0},
		{"empty sources", allQuery("x"), Sources{}, 0},
		{"no enabled kinds", query.Reconstruct("x", kind.All, kind.NewSet()), mixedSources(), 6},
		{"filter kind not loaded", query.Reconstruct("x", kind.Story, nil), Sources{kind.Company: recs(`{"id":"1","name":"A"}`)}, 1},
		{"only unknown kinds", allQuery("x"), Sources{kind.Kind("planet"): recs(`{"id":"1","name":"Mars"}`)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := New(nil).Search(context.Background(), tt.q, tt.sources)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rs.Items() == nil || rs.Len() != 0 {
				t.Errorf("expected empty non-nil items, got %v", names(rs.Items()))
			}
			if rs.UnfilteredCount() != tt.wantUnfiltered {
				t.Errorf("UnfilteredCount = %d, want %d", rs.UnfilteredCount(), tt.wantUnfiltered)
			}
		})
	}
}

func TestSearch_UnfilteredCountIgnoresFilteredKindState(t *testing.T) {
	companies := recs(`{"id":"c1","name":"Acme"}`, `{"id":"c2","name":"Globex"}`)
	q := query.Reconstruct("", kind.Story, nil)

	absent, err := New(nil).Search(context.Background(), q, Sources{kind.Company: companies})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	malformed, err := New(nil).Search(context.Background(), q, Sources{
		kind.Company: companies,
		kind.Story:   recs(`{"title":"no id"}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, got := range map[string]int{"absent": absent.UnfilteredCount(), "malformed": malformed.UnfilteredCount()} {
		if got != 2 {
			t.Errorf("%s story source: UnfilteredCount = %d, want 2", name, got)
		}
	}
	if absent.Len() != 0 || malformed.Len() != 0 {
		t.Errorf("expected no items, got %d and %d", absent.Len(), malformed.Len())
	}
}

func TestSearch_LoadedKindWithOnlyMalformedRecords(t *testing.T) {
	sources := Sources{
		kind.Company: recs(`{"name":"no id"}`),
		kind.Topic:   recs(`{"id":"t1","name":"Go"}`),
	}
	q := query.Reconstruct("", kind.Company, nil)
	rs, err := New(nil).Search(context.Background(), q, sources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.Len() != 0 {
		t.Errorf("expected no items, got %v", names(rs.Items()))
	}
	if rs.UnfilteredCount() != 1 {
		t.Errorf("UnfilteredCount = %d, want 1", rs.UnfilteredCount())
	}
}

func TestSearch_AdapterPanicIsolated(t *testing.T) {
	obs := newFakeObserver()
	reg := normalize.Default()
	reg[kind.Person] = func([]record.Raw) normalize.Output { panic("boom") }

	rs, err := New(reg).WithObserver(obs).Search(context.Background(), allQuery(""), mixedSources())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertOrder(t, rs.Items(), "Apple Inc", "Banana Corp", "Anatomy of a bank run", "Banking")
	if obs.skipped[kind.Person] != 2 {
		t.Errorf("skipped person = %d, want 2", obs.skipped[kind.Person])
	}
}

func TestSearch_UnknownSourceKindIgnored(t *testing.T) {
	sources := Sources{
		kind.Company: recs(`{"id":"1","name":"Acme"}`),
		"planet":     recs(`{"id":"x","name":"Acme Planet"}`),
	}
	rs, err := New(nil).Search(context.Background(), allQuery("acme"), sources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertOrder(t, rs.Items(), "Acme")
	if rs.UnfilteredCount() != 1 {
		t.Errorf("UnfilteredCount = %d, want 1", rs.UnfilteredCount())
	}
}

func TestSearch_MissingAdapterExcluded(t *testing.T) {
	reg := normalize.Registry{kind.Company: normalize.Companies}
	rs, err := New(reg).Search(context.Background(), allQuery(""), mixedSources())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertOrder(t, rs.Items(), "Apple Inc", "Banana Corp")
	if rs.UnfilteredCount() != 2 {
		t.Errorf("UnfilteredCount = %d, want 2", rs.UnfilteredCount())
	}
}

func TestSearch_CustomHighlighter(t *testing.T) {
	svc := New(nil).WithHighlighter(NewHighlighter("em"))
	rs, err := svc.Search(context.Background(), allQuery("bob"), mixedSources())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rs.Items()[0].HighlightedName(); got != "<em>Bob</em>" {
		t.Errorf("HighlightedName = %q", got)
	}
}

func TestSearch_RegexInputTreatedLiterally(t *testing.T) {
	sources := Sources{kind.Company: recs(
		`{"id":"1","name":"Anything"}`,
		`{"id":"2","name":"A.B. Holdings"}`,
	)}
	rs, err := New(nil).Search(context.Background(), allQuery("a."), sources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertOrder(t, rs.Items(), "A.B. Holdings", "Anything")
	if got := rs.Items()[0].HighlightedName(); got != "<mark>A.</mark>B. Holdings" {
		t.Errorf("HighlightedName = %q", got)
	}
}

func TestSearch_Repeatable(t *testing.T) {
	svc := New(nil)
	a, _ := svc.Search(context.Background(), allQuery("an"), mixedSources())
	b, _ := svc.Search(context.Background(), allQuery("an"), mixedSources())
	if len(a.Items()) != len(b.Items()) {
		t.Fatal("length differs between runs")
	}
	for i := range a.Items() {
		if a.Items()[i].ID() != b.Items()[i].ID() {
			t.Fatalf("order differs at %d", i)
		}
	}
}
