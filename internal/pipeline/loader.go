// Package pipeline orchestrates batch ingestion: one row at a time, each
// row a short sequence of independent write transactions. Ingestion is
// best-effort and additive: a failed row or phrase is counted and skipped,
// never allowed to corrupt previously committed rows.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/artisanalfutures/craftgraph/internal/graph"
	"github.com/artisanalfutures/craftgraph/internal/identity"
	"github.com/artisanalfutures/craftgraph/internal/platform/logger"
	"github.com/artisanalfutures/craftgraph/internal/platform/neo4jdb"
	"github.com/artisanalfutures/craftgraph/internal/resolve"
)

// UpsertEngine is the write surface the loader drives. Satisfied by
// *graph.Engine.
type UpsertEngine interface {
	UpsertOffering(ctx context.Context, maker, craftID, url, productName string) ([]neo4jdb.Record, error)
	UpsertResources(ctx context.Context, uris []string) error
	UpsertCanonicalLink(ctx context.Context, craftID, ppmName string, bucket graph.Bucket, uris []string, rel graph.URIRelation) error
	UpsertFactoryMadeLinks(ctx context.Context, phrases []string, craftID string, bucket graph.Bucket, link graph.CrossLink) error
	ClearAll(ctx context.Context) error
}

// PhraseResolver canonicalizes one phrase. Satisfied by *resolve.Resolver.
type PhraseResolver interface {
	Resolve(ctx context.Context, phrase string, role resolve.Role) ([]string, error)
}

// Report summarizes one batch run. Store and lookup failures are counted,
// not fatal; the graph keeps whatever was committed before each failure.
type Report struct {
	RunID             string
	Rows              int
	RowsFailed        int
	PhrasesResolved   int
	PhrasesUnresolved int
	LookupFailures    int
	StoreFailures     int
}

type Loader struct {
	engine   UpsertEngine
	resolver PhraseResolver
	log      *logger.Logger
	relation graph.URIRelation
}

func NewLoader(engine UpsertEngine, resolver PhraseResolver, log *logger.Logger) (*Loader, error) {
	if engine == nil {
		return nil, fmt.Errorf("pipeline: engine required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("pipeline: resolver required")
	}
	if log == nil {
		return nil, fmt.Errorf("pipeline: logger required")
	}
	return &Loader{
		engine:   engine,
		resolver: resolver,
		log:      log.With("service", "PipelineOrchestrator"),
		relation: graph.RelMeroPart,
	}, nil
}

// ResetAndLoad clears the whole graph, then ingests the batch. The clear is
// the one operation that must succeed before anything else runs; assumes
// exclusive write access for the duration of the run.
func (l *Loader) ResetAndLoad(ctx context.Context, rows []Row) (Report, error) {
	if err := l.engine.ClearAll(ctx); err != nil {
		return Report{}, fmt.Errorf("pipeline: clear graph: %w", err)
	}
	return l.Load(ctx, rows)
}

// Load ingests rows strictly sequentially and independently. Malformed rows
// are reported and skipped; the batch always runs to the end.
func (l *Loader) Load(ctx context.Context, rows []Row) (Report, error) {
	rep := Report{RunID: uuid.NewString()}
	log := l.log.With("run_id", rep.RunID)
	log.Info("batch ingestion started", "rows", len(rows))

	for i, row := range rows {
		rep.Rows++
		if err := row.validate(i); err != nil {
			rep.RowsFailed++
			log.Warn("row skipped", "row", i, "error", err)
			continue
		}
		l.loadRow(ctx, log, row, &rep)
	}

	log.Info("batch ingestion finished",
		"rows", rep.Rows,
		"rows_failed", rep.RowsFailed,
		"phrases_resolved", rep.PhrasesResolved,
		"phrases_unresolved", rep.PhrasesUnresolved,
		"lookup_failures", rep.LookupFailures,
		"store_failures", rep.StoreFailures,
	)
	return rep, nil
}

func (l *Loader) loadRow(ctx context.Context, log *logger.Logger, row Row, rep *Report) {
	craftID := identity.Identify(row.Artisan, row.ProductName)
	log = log.With("craft_id", craftID)

	// The offering skeleton goes first so every later edge in this row has
	// its CraftID in place.
	records, err := l.engine.UpsertOffering(ctx, row.Artisan, craftID, row.URL, row.ProductName)
	if err != nil {
		l.countStoreFault(log, rep, err)
	}
	for _, rec := range records {
		log.Debug("offering merged", "artisan", rec["artisan"])
	}

	for _, bucket := range graph.Buckets {
		role := roleFor(bucket)
		for _, phrase := range SplitPhrases(row.bucketText(bucket)) {
			uris, err := l.resolver.Resolve(ctx, phrase, role)
			if err != nil {
				// Skip the phrase, keep the row.
				rep.LookupFailures++
				log.Warn("phrase lookup failed", "phrase", phrase, "bucket", bucket.Column(), "error", err)
				continue
			}
			if len(uris) == 0 {
				rep.PhrasesUnresolved++
				log.Debug("phrase has no lexical entry", "phrase", phrase, "bucket", bucket.Column())
				continue
			}
			rep.PhrasesResolved++

			if err := l.engine.UpsertResources(ctx, uris); err != nil {
				l.countStoreFault(log, rep, err)
				continue
			}
			if err := l.engine.UpsertCanonicalLink(ctx, craftID, phrase, bucket, uris, l.relation); err != nil {
				l.countStoreFault(log, rep, err)
			}
		}
	}

	for _, bucket := range graph.Buckets {
		phrases := FactoryMade(row.bucketText(bucket), row.IndustrialScaleItems)
		if err := l.engine.UpsertFactoryMadeLinks(ctx, phrases, craftID, bucket, graph.LinkFactoryMade); err != nil {
			l.countStoreFault(log, rep, err)
		}
	}
}

func (l *Loader) countStoreFault(log *logger.Logger, rep *Report, err error) {
	rep.StoreFailures++
	var storeErr *graph.StoreError
	if !errors.As(err, &storeErr) {
		// Vocabulary violations and the like are programming errors, not
		// transient store faults; make them loud.
		log.Error("graph write rejected", "error", err)
	}
}

func roleFor(b graph.Bucket) resolve.Role {
	switch b {
	case graph.BucketPrinciples:
		return resolve.RolePrinciple
	case graph.BucketProcesses:
		return resolve.RoleProcess
	default:
		return resolve.RoleMaterial
	}
}
