package graph

import "fmt"

// Cypher cannot parameterize labels or relationship types, so the engine
// interpolates them into query text. Every interpolated token comes from one
// of the closed vocabularies below; anything else is rejected before a query
// is built.

// Bucket identifies one of the three descriptor columns of an input row.
type Bucket int

const (
	BucketPrinciples Bucket = iota + 1
	BucketProcesses
	BucketMaterials
)

// Buckets lists all bucket kinds in ingestion order.
var Buckets = []Bucket{BucketPrinciples, BucketProcesses, BucketMaterials}

// Column is the input row column the bucket is read from.
func (b Bucket) Column() string {
	switch b {
	case BucketPrinciples:
		return "principles"
	case BucketProcesses:
		return "processes"
	case BucketMaterials:
		return "materials"
	}
	return ""
}

// Label is the node label and PPM→CraftID relationship type for the bucket.
func (b Bucket) Label() string {
	switch b {
	case BucketPrinciples:
		return "Principle"
	case BucketProcesses:
		return "Process"
	case BucketMaterials:
		return "Material"
	}
	return ""
}

func (b Bucket) valid() bool {
	return b.Label() != ""
}

// URIRelation types the Resource→PPM edge. The two meronymy flavors are the
// only sanctioned values; mero_part is the working default for artisan
// craft components.
type URIRelation int

const (
	RelMeroPart URIRelation = iota + 1
	RelMeroSubstance
)

func (r URIRelation) Type() string {
	switch r {
	case RelMeroPart:
		return "wn__mero_part"
	case RelMeroSubstance:
		return "wn__mero_substance"
	}
	return ""
}

func (r URIRelation) valid() bool {
	return r.Type() != ""
}

// CrossLink types the PPM→CraftID cross-reference edge for descriptors that
// are also industrially produced.
type CrossLink int

const LinkFactoryMade CrossLink = iota + 1

func (l CrossLink) Type() string {
	if l == LinkFactoryMade {
		return "IS_FACTORY_MADE"
	}
	return ""
}

func (l CrossLink) valid() bool {
	return l.Type() != ""
}

// VocabularyError reports a label or relationship-type value outside its
// closed vocabulary. It is raised before any query text is assembled.
type VocabularyError struct {
	Kind  string
	Value int
}

func (e *VocabularyError) Error() string {
	return fmt.Sprintf("graph: %s value %d outside the allowed vocabulary", e.Kind, e.Value)
}
