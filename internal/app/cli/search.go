package cli

import (
	"context"

	"github.com/lrn-oss/lrc/internal/search"
	"github.com/lrn-oss/lrc/internal/store"
)

// Search prints the resources matching a full text query, best match first. Tags given in flags narrow the result
func Search(ctx context.Context, api store.API, query string, tags string) error {
	s := newSession(api)
	defer s.Close()

	if err := s.store.Fetch(ctx); err != nil {
		return err
	}
	candidates := s.store.Filtered(CreateFilterParamsFromCLI(FilterFlags{Tags: tags}))

	idx, err := search.Build(ctx, candidates)
	if err != nil {
		Stderrf("Could not build search index: %v", err)
		return err
	}
	defer idx.Close()

	ids, err := idx.Search(query)
	if err != nil {
		Stderrf("Invalid query %q: %v", query, err)
		return err
	}
	printResources(search.Resources(candidates, ids))
	return nil
}
