// Package search provides full text search over learning resources using bleve search engine.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/lrn-oss/lrc/internal/model"
	"github.com/lrn-oss/lrc/internal/utils"
)

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldTags        = "tags"
)

// Index is an in-memory full text index over a snapshot of resources
type Index struct {
	idx bleve.Index
}

// Build indexes the given resources. The returned Index must be closed after use
func Build(ctx context.Context, resources []model.Resource) (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("can't create search index: %w", err)
	}
	batch := idx.NewBatch()
	for _, r := range resources {
		doc := map[string]any{
			FieldTitle: r.Title,
			FieldTags:  r.TagsList,
		}
		if r.Description != nil {
			doc[FieldDescription] = *r.Description
		}
		if err := batch.Index(model.FormatId(r.ID), doc); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("can't index resource %d: %w", r.ID, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("can't run batch: %w", err)
	}
	utils.GetLogger(ctx, "search").Debug("indexed resources", "count", len(resources))
	return &Index{idx: idx}, nil
}

// Search runs a query string query against the index and returns the ids of the matching resources, best match first.
// See https://blevesearch.com/docs/Query-String-Query/ for the syntax.
func (i *Index) Search(query string) ([]int64, error) {
	res := []int64{}
	query = strings.TrimSpace(query)
	if query == "" {
		return res, nil
	}
	count, err := i.idx.DocCount()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return res, nil
	}
	req := bleve.NewSearchRequestOptions(bleve.NewQueryStringQuery(query), int(count), 0, false)
	req.SortBy([]string{"-_score", "_id"})
	sr, err := i.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	for _, hit := range sr.Hits {
		id, err := model.ParseId(hit.ID)
		if err != nil {
			return nil, err
		}
		res = append(res, id)
	}
	return res, nil
}

func (i *Index) Close() error {
	return i.idx.Close()
}

// Resources returns the resources with the given ids in the order of ids. Unknown ids are skipped
func Resources(resources []model.Resource, ids []int64) []model.Resource {
	byId := make(map[int64]model.Resource, len(resources))
	for _, r := range resources {
		byId[r.ID] = r
	}
	res := make([]model.Resource, 0, len(ids))
	for _, id := range ids {
		if r, ok := byId[id]; ok {
			res = append(res, r)
		}
	}
	return res
}
