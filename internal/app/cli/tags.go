package cli

import (
	"context"
	"fmt"

	"github.com/lrn-oss/lrc/internal/store"
)

// TagLister lists the tags known to the catalog server
type TagLister interface {
	ListTags(ctx context.Context) ([]string, error)
}

// Tags prints the distinct tags of all resources, one per line. If server is not nil, the tags aggregated by the
// server are printed instead of the ones derived from the fetched resources
func Tags(ctx context.Context, api store.API, server TagLister) error {
	var tags []string
	if server != nil {
		var err error
		tags, err = server.ListTags(ctx)
		if err != nil {
			Stderrf("Could not list tags: %v", err)
			return err
		}
	} else {
		s := newSession(api)
		defer s.Close()
		if err := s.store.Fetch(ctx); err != nil {
			return err
		}
		tags = s.store.Tags()
	}

	for _, t := range tags {
		fmt.Println(t)
	}
	return nil
}
