// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index maintains a bleve full-text index over task text so tasks
// can be found by words rather than exact substrings.
package index

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/pdiddy/taskmd/pkg/types"
)

const defaultMaxResults = 20

// Index wraps a bleve index of task documents.
type Index struct {
	idx bleve.Index
}

// document is the shape stored per task. Field names double as bleve field
// paths.
type document struct {
	Text   string
	Source string
	Done   bool
}

// Hit is one search result.
type Hit struct {
	ID     string  `json:"id"`
	Score  float64 `json:"score"`
	Text   string  `json:"text"`
	Source string  `json:"source"`
	Done   bool    `json:"done"`
}

// newMapping indexes Source as a single keyword so a source's documents can
// be looked up by exact path. Other fields are mapped dynamically.
func newMapping() *mapping.IndexMappingImpl {
	source := bleve.NewTextFieldMapping()
	source.Analyzer = keyword.Name

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("Source", source)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

// Open opens the on-disk index at dir, creating it when it does not exist.
func Open(dir string) (*Index, error) {
	idx, err := bleve.Open(dir)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		idx, err = bleve.New(dir, newMapping())
	}
	if err != nil {
		return nil, fmt.Errorf("opening index %s: %w", dir, err)
	}
	return &Index{idx: idx}, nil
}

// NewMemory returns an index that lives only in memory.
func NewMemory() (*Index, error) {
	idx, err := bleve.NewMemOnly(newMapping())
	if err != nil {
		return nil, fmt.Errorf("creating in-memory index: %w", err)
	}
	return &Index{idx: idx}, nil
}

// Close releases the index.
func (i *Index) Close() error {
	return i.idx.Close()
}

// DocID is the identifier under which the task at position in source is
// indexed.
func DocID(source string, position int) string {
	return source + "#" + strconv.Itoa(position)
}

// Add replaces everything indexed under source with tasks in a single batch.
func (i *Index) Add(source string, tasks []types.Task) error {
	stale, err := i.sourceIDs(source)
	if err != nil {
		return err
	}

	batch := i.idx.NewBatch()
	for _, id := range stale {
		batch.Delete(id)
	}
	for pos, t := range tasks {
		doc := document{Text: t.Text, Source: source, Done: t.Done}
		if err := batch.Index(DocID(source, pos), doc); err != nil {
			return fmt.Errorf("indexing %s: %w", DocID(source, pos), err)
		}
	}
	if err := i.idx.Batch(batch); err != nil {
		return fmt.Errorf("writing index batch for %s: %w", source, err)
	}
	return nil
}

// sourceIDs lists the IDs of every document indexed under source.
func (i *Index) sourceIDs(source string) ([]string, error) {
	total, err := i.idx.DocCount()
	if err != nil {
		return nil, fmt.Errorf("counting index documents: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	q := bleve.NewTermQuery(source)
	q.SetField("Source")
	res, err := i.idx.Search(bleve.NewSearchRequestOptions(q, int(total), 0, false))
	if err != nil {
		return nil, fmt.Errorf("looking up documents for %s: %w", source, err)
	}

	ids := make([]string, 0, len(res.Hits))
	for _, h := range res.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

// Count returns the number of indexed task documents.
func (i *Index) Count() (uint64, error) {
	return i.idx.DocCount()
}

// Search runs a match query against task text and returns up to n hits,
// best first. A non-positive n uses the default of 20.
func (i *Index) Search(query string, n int) ([]Hit, error) {
	if n <= 0 {
		n = defaultMaxResults
	}

	q := bleve.NewMatchQuery(query)
	q.SetField("Text")

	req := bleve.NewSearchRequestOptions(q, n, 0, false)
	req.Fields = []string{"Text", "Source", "Done"}

	res, err := i.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("searching for %q: %w", query, err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit := Hit{ID: h.ID, Score: h.Score}
		if v, ok := h.Fields["Text"].(string); ok {
			hit.Text = v
		}
		if v, ok := h.Fields["Source"].(string); ok {
			hit.Source = v
		}
		if v, ok := h.Fields["Done"].(bool); ok {
			hit.Done = v
		}
		hits = append(hits, hit)
	}
	return hits, nil
}
