// Package graph is the upsert engine for the offering property graph. All
// writes are MERGE-based: re-running a batch matches existing nodes and
// edges instead of duplicating them, and nothing is altered or removed
// outside of the explicit ClearAll reset.
package graph

import (
	"context"
	"fmt"

	"github.com/artisanalfutures/craftgraph/internal/platform/logger"
	"github.com/artisanalfutures/craftgraph/internal/platform/neo4jdb"
)

const offeringCypher = `
MERGE (a:Artisan {name: $maker})
MERGE (cid:CraftID {name: $craft_id})
MERGE (url:Url {name: $url})
MERGE (prod:Product {name: $product_name})
MERGE (a)-[:MADE]->(cid)
MERGE (cid)-[:HAS_URL]->(url)
MERGE (cid)-[:INSTANCE_OF]->(prod)
RETURN a.name AS artisan, cid.name AS craft_id
`

const resourcesCypher = `
WITH $uri_set AS uri_set
UNWIND uri_set AS uri
MERGE (:Resource {uri: uri})
`

const clearCypher = `MATCH (n) DETACH DELETE n`

// StoreError wraps a failed write together with the statement and bound
// parameters, for traceability. The engine logs it and hands it back; it is
// never retried here and callers are expected to count it, not abort on it.
type StoreError struct {
	Statement string
	Params    map[string]any
	Cause     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("graph store write failed: %v", e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// Engine executes the idempotent write operations against an injected
// store. It holds no graph state of its own.
type Engine struct {
	store neo4jdb.Store
	log   *logger.Logger
}

func NewEngine(store neo4jdb.Store, log *logger.Logger) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("graph: store required")
	}
	if log == nil {
		return nil, fmt.Errorf("graph: logger required")
	}
	return &Engine{
		store: store,
		log:   log.With("service", "GraphUpsertEngine"),
	}, nil
}

// UpsertOffering merges the offering skeleton: Artisan, CraftID, Url and
// Product nodes plus the MADE / HAS_URL / INSTANCE_OF edges. The returned
// records carry the merged artisan and craft id for logging.
func (e *Engine) UpsertOffering(ctx context.Context, maker, craftID, url, productName string) ([]neo4jdb.Record, error) {
	params := map[string]any{
		"maker":        maker,
		"craft_id":     craftID,
		"url":          url,
		"product_name": productName,
	}
	var records []neo4jdb.Record
	err := e.store.ExecWrite(ctx, func(tx neo4jdb.Tx) error {
		var err error
		records, err = tx.Run(ctx, offeringCypher, params)
		return err
	})
	if err != nil {
		return nil, e.storeFault(offeringCypher, params, err)
	}
	return records, nil
}

// UpsertResources merges one Resource node per URI. The ontology is never
// bulk-loaded; only URIs actually referenced by the current batch get nodes.
// No-op on empty input.
func (e *Engine) UpsertResources(ctx context.Context, uris []string) error {
	if len(uris) == 0 {
		return nil
	}
	params := map[string]any{"uri_set": uris}
	err := e.store.ExecWrite(ctx, func(tx neo4jdb.Tx) error {
		_, err := tx.Run(ctx, resourcesCypher, params)
		return err
	})
	if err != nil {
		return e.storeFault(resourcesCypher, params, err)
	}
	return nil
}

// UpsertCanonicalLink merges the PPM node for one resolved phrase and wires
// it to every pre-existing Resource whose URI set intersects uris, and to
// the offering's CraftID. No-op when craftID is absent or nothing resolved.
func (e *Engine) UpsertCanonicalLink(ctx context.Context, craftID, ppmName string, bucket Bucket, uris []string, rel URIRelation) error {
	if craftID == "" || len(uris) == 0 {
		return nil
	}
	if !bucket.valid() {
		return &VocabularyError{Kind: "bucket label", Value: int(bucket)}
	}
	if !rel.valid() {
		return &VocabularyError{Kind: "uri relationship type", Value: int(rel)}
	}

	// bucket.Label and rel.Type come from the closed vocabularies above;
	// nothing caller-supplied reaches the query text.
	cypher := fmt.Sprintf(`
MATCH (u:Resource) WHERE ANY (uri IN u.uri WHERE uri IN $uri_set)
MERGE (ppm:%[1]s {name: $ppm_name})
MERGE (cid:CraftID {name: $craft_id})
MERGE (u)-[:%[2]s]->(ppm)
MERGE (ppm)-[:%[1]s]->(cid)
`, bucket.Label(), rel.Type())

	params := map[string]any{
		"craft_id": craftID,
		"ppm_name": ppmName,
		"uri_set":  uris,
	}
	err := e.store.ExecWrite(ctx, func(tx neo4jdb.Tx) error {
		_, err := tx.Run(ctx, cypher, params)
		return err
	})
	if err != nil {
		return e.storeFault(cypher, params, err)
	}
	return nil
}

// UpsertFactoryMadeLinks flags existing PPM nodes of the bucket whose name
// is in phrases as factory made for the given offering. No-op on an empty
// phrase list.
func (e *Engine) UpsertFactoryMadeLinks(ctx context.Context, phrases []string, craftID string, bucket Bucket, link CrossLink) error {
	if len(phrases) == 0 {
		return nil
	}
	if !bucket.valid() {
		return &VocabularyError{Kind: "bucket label", Value: int(bucket)}
	}
	if !link.valid() {
		return &VocabularyError{Kind: "cross link type", Value: int(link)}
	}

	cypher := fmt.Sprintf(`
MATCH (m:%s) WHERE m.name IN $phrases
MERGE (cid:CraftID {name: $craft_id})
MERGE (m)-[:%s]->(cid)
`, bucket.Label(), link.Type())

	params := map[string]any{
		"craft_id": craftID,
		"phrases":  phrases,
	}
	err := e.store.ExecWrite(ctx, func(tx neo4jdb.Tx) error {
		_, err := tx.Run(ctx, cypher, params)
		return err
	})
	if err != nil {
		return e.storeFault(cypher, params, err)
	}
	return nil
}

// ClearAll detaches and deletes every node and edge. The only destructive
// operation, used solely as an explicit reset before a fresh batch.
func (e *Engine) ClearAll(ctx context.Context) error {
	err := e.store.ExecWrite(ctx, func(tx neo4jdb.Tx) error {
		_, err := tx.Run(ctx, clearCypher, nil)
		return err
	})
	if err != nil {
		return e.storeFault(clearCypher, nil, err)
	}
	return nil
}

func (e *Engine) storeFault(statement string, params map[string]any, cause error) error {
	e.log.Error("graph write failed",
		"statement", statement,
		"params", params,
		"error", cause,
	)
	return &StoreError{Statement: statement, Params: params, Cause: cause}
}
