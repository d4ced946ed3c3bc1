package wordnet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/artisanalfutures/craftgraph/internal/platform/logger"
)

const maxErrorBodyBytes = 1024

// PartOfSpeech is the lexical category used to disambiguate a term's
// ontology entry.
type PartOfSpeech string

const (
	Noun      PartOfSpeech = "n"
	Verb      PartOfSpeech = "v"
	Adjective PartOfSpeech = "a"
)

// Entry is one synset returned by the lookup service. ID is the internal
// ontology identifier (e.g. "oewn-04470232-n").
type Entry struct {
	ID    string `json:"id"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`
}

// Lexicon is the lookup capability the resolver depends on. The production
// implementation is the HTTP client below; tests substitute fakes.
type Lexicon interface {
	Lookup(ctx context.Context, term string, pos PartOfSpeech) ([]Entry, error)
}

type client struct {
	log     *logger.Logger
	cfg     Config
	baseURL string
	http    *http.Client
}

type synsetEnvelope struct {
	Synsets []Entry `json:"synsets"`
}

func NewClient(log *logger.Logger, cfg Config) (Lexicon, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	timeout := 10 * time.Second
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	c := &client{
		log:     log.With("client", "WordnetLexicon"),
		cfg:     cfg,
		baseURL: strings.TrimRight(cfg.URL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	log.Info("wordnet lexicon selected", "url", c.baseURL, "lexicon", cfg.Lexicon)
	return c, nil
}

func (c *client) Lookup(ctx context.Context, term string, pos PartOfSpeech) ([]Entry, error) {
	const op = "lookup"
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, opErr(op, OperationErrorValidation, "term is required", 0, nil)
	}
	switch pos {
	case Noun, Verb, Adjective:
	default:
		return nil, opErr(op, OperationErrorValidation, fmt.Sprintf("unknown part of speech %q", pos), 0, nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	q := url.Values{}
	q.Set("lemma", term)
	q.Set("pos", string(pos))
	if c.cfg.Lexicon != "" {
		q.Set("lexicon", c.cfg.Lexicon)
	}
	endpoint := c.baseURL + "/synsets?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, opErr(op, OperationErrorValidation, "build request", 0, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, opErr(op, OperationErrorUnavailable, "", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, opErr(op, OperationErrorQuery, strings.TrimSpace(string(body)), resp.StatusCode, nil)
	}

	var envelope synsetEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, opErr(op, OperationErrorDecode, "", resp.StatusCode, err)
	}
	return envelope.Synsets, nil
}

func opErr(op string, code OperationErrorCode, msg string, status int, cause error) *OperationError {
	return &OperationError{
		Code:       code,
		Operation:  op,
		StatusCode: status,
		Message:    msg,
		Cause:      cause,
	}
}
