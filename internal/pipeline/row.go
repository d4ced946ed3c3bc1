package pipeline

import (
	"fmt"
	"strings"

	"github.com/artisanalfutures/craftgraph/internal/graph"
)

// Row is one offering record from the input table. The three bucket columns
// and IndustrialScaleItems hold comma-separated phrase lists and may contain
// blank segments; IndustrialScaleItems may be entirely absent.
type Row struct {
	Artisan              string
	ProductName          string
	URL                  string
	Principles           string
	Processes            string
	Materials            string
	IndustrialScaleItems string
}

// MalformedRowError marks a row missing required columns. The batch
// continues past it.
type MalformedRowError struct {
	Index   int
	Missing []string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d malformed: missing %s", e.Index, strings.Join(e.Missing, ", "))
}

func (r Row) validate(index int) error {
	var missing []string
	if strings.TrimSpace(r.Artisan) == "" {
		missing = append(missing, "artisan")
	}
	if strings.TrimSpace(r.ProductName) == "" {
		missing = append(missing, "product name")
	}
	if strings.TrimSpace(r.URL) == "" {
		missing = append(missing, "url")
	}
	if len(missing) > 0 {
		return &MalformedRowError{Index: index, Missing: missing}
	}
	return nil
}

func (r Row) bucketText(b graph.Bucket) string {
	switch b {
	case graph.BucketPrinciples:
		return r.Principles
	case graph.BucketProcesses:
		return r.Processes
	case graph.BucketMaterials:
		return r.Materials
	}
	return ""
}

// SplitPhrases breaks a comma-separated phrase list into trimmed, non-empty
// items, preserving order.
func SplitPhrases(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(text, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
