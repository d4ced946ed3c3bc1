// Package csvsource reads offering rows from a CSV export of the artisan
// database. Header matching is case-insensitive; cells missing from short
// records come back blank and are caught by row validation downstream.
package csvsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/artisanalfutures/craftgraph/internal/pipeline"
)

var requiredColumns = []string{
	"artisan",
	"product name",
	"url",
	"principles",
	"processes",
	"materials",
}

const industrialColumn = "industrial scale items"

func ReadFile(path string) ([]pipeline.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvsource: open %s: %w", path, err)
	}
	defer f.Close()
	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("csvsource: read %s: %w", path, err)
	}
	return rows, nil
}

func Read(r io.Reader) ([]pipeline.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[normalizeHeader(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	var rows []pipeline.Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}
		rows = append(rows, pipeline.Row{
			Artisan:              field("artisan"),
			ProductName:          field("product name"),
			URL:                  field("url"),
			Principles:           field("principles"),
			Processes:            field("processes"),
			Materials:            field("materials"),
			IndustrialScaleItems: field(industrialColumn),
		})
	}
	return rows, nil
}

func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\uFEFF")
	return strings.ToLower(strings.TrimSpace(name))
}
