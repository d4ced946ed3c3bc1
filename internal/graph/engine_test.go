package graph

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/artisanalfutures/craftgraph/internal/platform/logger"
	"github.com/artisanalfutures/craftgraph/internal/platform/neo4jdb"
)

type statement struct {
	cypher string
	params map[string]any
}

type fakeStore struct {
	statements []statement
	records    []neo4jdb.Record
	err        error
}

type fakeTx struct {
	store *fakeStore
}

func (f *fakeStore) ExecWrite(_ context.Context, work func(tx neo4jdb.Tx) error) error {
	return work(fakeTx{store: f})
}

func (f fakeTx) Run(_ context.Context, cypher string, params map[string]any) ([]neo4jdb.Record, error) {
	if f.store.err != nil {
		return nil, f.store.err
	}
	f.store.statements = append(f.store.statements, statement{cypher: cypher, params: params})
	return f.store.records, nil
}

func newTestEngine(t *testing.T, store neo4jdb.Store) *Engine {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	e, err := NewEngine(store, log)
	if err != nil {
		t.Fatalf("init engine: %v", err)
	}
	return e
}

func mustContain(t *testing.T, cypher string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(cypher, fragment) {
			t.Fatalf("statement missing %q:\n%s", fragment, cypher)
		}
	}
}

func TestUpsertOfferingStatement(t *testing.T) {
	store := &fakeStore{records: []neo4jdb.Record{{"artisan": "Jane", "craft_id": "abc"}}}
	e := newTestEngine(t, store)

	records, err := e.UpsertOffering(context.Background(), "Jane", "abc", "http://x", "Bowl")
	if err != nil {
		t.Fatalf("upsert offering: %v", err)
	}
	if len(records) != 1 || records[0]["artisan"] != "Jane" {
		t.Fatalf("expected merged records back, got %v", records)
	}
	if len(store.statements) != 1 {
		t.Fatalf("expected one statement, got %d", len(store.statements))
	}
	st := store.statements[0]
	mustContain(t, st.cypher,
		"MERGE (a:Artisan {name: $maker})",
		"MERGE (cid:CraftID {name: $craft_id})",
		"MERGE (url:Url {name: $url})",
		"MERGE (prod:Product {name: $product_name})",
		"MERGE (a)-[:MADE]->(cid)",
		"MERGE (cid)-[:HAS_URL]->(url)",
		"MERGE (cid)-[:INSTANCE_OF]->(prod)",
	)
	if st.params["maker"] != "Jane" || st.params["craft_id"] != "abc" ||
		st.params["url"] != "http://x" || st.params["product_name"] != "Bowl" {
		t.Fatalf("params mismatch: %v", st.params)
	}
}

func TestUpsertOfferingStoreFault(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	e := newTestEngine(t, store)

	records, err := e.UpsertOffering(context.Background(), "Jane", "abc", "http://x", "Bowl")
	if records != nil {
		t.Fatalf("expected empty result on store fault, got %v", records)
	}
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got %v", err)
	}
	if storeErr.Statement == "" || storeErr.Params["maker"] != "Jane" {
		t.Fatalf("fault must carry statement and params: %+v", storeErr)
	}
}

func TestUpsertResources(t *testing.T) {
	store := &fakeStore{}
	e := newTestEngine(t, store)

	uris := []string{"https://en-word.net/id/oewn-1-n", "https://en-word.net/id/oewn-2-n"}
	if err := e.UpsertResources(context.Background(), uris); err != nil {
		t.Fatalf("upsert resources: %v", err)
	}
	if len(store.statements) != 1 {
		t.Fatalf("expected one statement, got %d", len(store.statements))
	}
	st := store.statements[0]
	mustContain(t, st.cypher, "UNWIND uri_set AS uri", "MERGE (:Resource {uri: uri})")
	got, ok := st.params["uri_set"].([]string)
	if !ok || len(got) != 2 {
		t.Fatalf("uri_set param mismatch: %v", st.params)
	}
}

func TestUpsertResourcesEmptyNoOp(t *testing.T) {
	store := &fakeStore{}
	e := newTestEngine(t, store)

	if err := e.UpsertResources(context.Background(), nil); err != nil {
		t.Fatalf("empty upsert: %v", err)
	}
	if len(store.statements) != 0 {
		t.Fatalf("expected no statements, got %d", len(store.statements))
	}
}

func TestUpsertCanonicalLinkStatement(t *testing.T) {
	store := &fakeStore{}
	e := newTestEngine(t, store)

	uris := []string{"https://en-word.net/id/oewn-1-n"}
	err := e.UpsertCanonicalLink(context.Background(), "abc", "blue bead", BucketMaterials, uris, RelMeroPart)
	if err != nil {
		t.Fatalf("upsert canonical link: %v", err)
	}
	if len(store.statements) != 1 {
		t.Fatalf("expected one statement, got %d", len(store.statements))
	}
	st := store.statements[0]
	mustContain(t, st.cypher,
		"MATCH (u:Resource) WHERE ANY (uri IN u.uri WHERE uri IN $uri_set)",
		"MERGE (ppm:Material {name: $ppm_name})",
		"MERGE (cid:CraftID {name: $craft_id})",
		"MERGE (u)-[:wn__mero_part]->(ppm)",
		"MERGE (ppm)-[:Material]->(cid)",
	)
	if st.params["ppm_name"] != "blue bead" || st.params["craft_id"] != "abc" {
		t.Fatalf("params mismatch: %v", st.params)
	}
}

func TestUpsertCanonicalLinkNoOps(t *testing.T) {
	store := &fakeStore{}
	e := newTestEngine(t, store)
	uris := []string{"https://en-word.net/id/oewn-1-n"}

	if err := e.UpsertCanonicalLink(context.Background(), "", "bead", BucketMaterials, uris, RelMeroPart); err != nil {
		t.Fatalf("absent craft id must no-op: %v", err)
	}
	if err := e.UpsertCanonicalLink(context.Background(), "abc", "bead", BucketMaterials, nil, RelMeroPart); err != nil {
		t.Fatalf("empty uri set must no-op: %v", err)
	}
	if len(store.statements) != 0 {
		t.Fatalf("expected no statements, got %d", len(store.statements))
	}
}

func TestUpsertCanonicalLinkRejectsUnknownVocabulary(t *testing.T) {
	store := &fakeStore{}
	e := newTestEngine(t, store)
	uris := []string{"https://en-word.net/id/oewn-1-n"}

	err := e.UpsertCanonicalLink(context.Background(), "abc", "bead", Bucket(42), uris, RelMeroPart)
	var vocabErr *VocabularyError
	if !errors.As(err, &vocabErr) {
		t.Fatalf("expected VocabularyError for unknown bucket, got %v", err)
	}

	err = e.UpsertCanonicalLink(context.Background(), "abc", "bead", BucketMaterials, uris, URIRelation(7))
	if !errors.As(err, &vocabErr) {
		t.Fatalf("expected VocabularyError for unknown relation, got %v", err)
	}

	// Validation failures must never reach the store.
	if len(store.statements) != 0 {
		t.Fatalf("expected no statements, got %d", len(store.statements))
	}
}

func TestUpsertFactoryMadeLinksStatement(t *testing.T) {
	store := &fakeStore{}
	e := newTestEngine(t, store)

	err := e.UpsertFactoryMadeLinks(context.Background(), []string{"plastic"}, "abc", BucketMaterials, LinkFactoryMade)
	if err != nil {
		t.Fatalf("upsert factory made: %v", err)
	}
	if len(store.statements) != 1 {
		t.Fatalf("expected one statement, got %d", len(store.statements))
	}
	st := store.statements[0]
	mustContain(t, st.cypher,
		"MATCH (m:Material) WHERE m.name IN $phrases",
		"MERGE (cid:CraftID {name: $craft_id})",
		"MERGE (m)-[:IS_FACTORY_MADE]->(cid)",
	)
	phrases, ok := st.params["phrases"].([]string)
	if !ok || len(phrases) != 1 || phrases[0] != "plastic" {
		t.Fatalf("phrases param mismatch: %v", st.params)
	}
}

func TestUpsertFactoryMadeLinksEmptyNoOp(t *testing.T) {
	store := &fakeStore{}
	e := newTestEngine(t, store)

	if err := e.UpsertFactoryMadeLinks(context.Background(), nil, "abc", BucketMaterials, LinkFactoryMade); err != nil {
		t.Fatalf("empty phrases must no-op: %v", err)
	}
	if len(store.statements) != 0 {
		t.Fatalf("expected no statements, got %d", len(store.statements))
	}
}

func TestClearAll(t *testing.T) {
	store := &fakeStore{}
	e := newTestEngine(t, store)

	if err := e.ClearAll(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(store.statements) != 1 {
		t.Fatalf("expected one statement, got %d", len(store.statements))
	}
	if strings.TrimSpace(store.statements[0].cypher) != "MATCH (n) DETACH DELETE n" {
		t.Fatalf("unexpected clear statement: %q", store.statements[0].cypher)
	}
}
