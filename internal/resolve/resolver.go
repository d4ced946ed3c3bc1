// Package resolve canonicalizes free-text descriptor phrases against the
// lexical ontology. A phrase and each of its words are looked up under a
// role-dependent part-of-speech priority; the first entry found per term
// yields a namespaced URI. Phrases with no entry anywhere resolve to an
// empty sequence, which callers treat as "skip graph writes for this
// phrase".
package resolve

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/artisanalfutures/craftgraph/internal/platform/logger"
	"github.com/artisanalfutures/craftgraph/internal/platform/wordnet"
)

// Role is the semantic bucket a phrase came from; it selects the
// part-of-speech priority order.
type Role string

const (
	RolePrinciple Role = "principle"
	RoleProcess   Role = "process"
	RoleMaterial  Role = "material"
)

const DefaultNamespacePrefix = "https://en-word.net/id/"

const defaultCacheSize = 1024

// Config carries the resolver policy. The two priority orders are policy,
// not constants: principles are usually qualities (adjective first), while
// processes and materials are usually things (noun first).
type Config struct {
	NamespacePrefix string
	PrincipleOrder  []wordnet.PartOfSpeech
	DefaultOrder    []wordnet.PartOfSpeech
	CacheSize       int
}

type cacheKey struct {
	phrase string
	role   Role
}

type Resolver struct {
	log   *logger.Logger
	lex   wordnet.Lexicon
	cfg   Config
	cache *lru.Cache[cacheKey, []string]
}

func New(log *logger.Logger, lex wordnet.Lexicon, cfg Config) (*Resolver, error) {
	if log == nil {
		return nil, fmt.Errorf("resolve: logger required")
	}
	if lex == nil {
		return nil, fmt.Errorf("resolve: lexicon required")
	}
	if cfg.NamespacePrefix == "" {
		cfg.NamespacePrefix = DefaultNamespacePrefix
	}
	if len(cfg.PrincipleOrder) == 0 {
		cfg.PrincipleOrder = []wordnet.PartOfSpeech{wordnet.Adjective, wordnet.Verb, wordnet.Noun}
	}
	if len(cfg.DefaultOrder) == 0 {
		cfg.DefaultOrder = []wordnet.PartOfSpeech{wordnet.Noun, wordnet.Verb, wordnet.Adjective}
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}
	cache, err := lru.New[cacheKey, []string](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("resolve: init cache: %w", err)
	}
	return &Resolver{
		log:   log.With("service", "LexicalResolver"),
		lex:   lex,
		cfg:   cfg,
		cache: cache,
	}, nil
}

// Resolve maps a phrase to the canonical URIs of its constituent terms.
// The result may repeat a URI when several terms share an entry; callers
// using it for matching treat it as a set. An empty result is not an error.
func (r *Resolver) Resolve(ctx context.Context, phrase string, role Role) ([]string, error) {
	key := cacheKey{phrase: phrase, role: role}
	if uris, ok := r.cache.Get(key); ok {
		return uris, nil
	}

	terms := append([]string{phrase}, strings.Fields(phrase)...)
	order := r.orderFor(role)

	var uris []string
	for _, term := range terms {
		for _, pos := range order {
			entries, err := r.lex.Lookup(ctx, term, pos)
			if err != nil {
				return nil, fmt.Errorf("resolve %q: %w", phrase, err)
			}
			if len(entries) > 0 {
				uris = append(uris, r.cfg.NamespacePrefix+entries[0].ID)
				break
			}
		}
	}

	r.cache.Add(key, uris)
	r.log.Debug("phrase resolved", "phrase", phrase, "role", role, "uris", len(uris))
	return uris, nil
}

func (r *Resolver) orderFor(role Role) []wordnet.PartOfSpeech {
	if role == RolePrinciple {
		return r.cfg.PrincipleOrder
	}
	return r.cfg.DefaultOrder
}
