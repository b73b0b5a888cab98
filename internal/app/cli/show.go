package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lrn-oss/lrc/internal/model"
	"github.com/lrn-oss/lrc/internal/store"
)

// Show prints all details of a single resource
func Show(ctx context.Context, api store.API, id int64) error {
	s := newSession(api)
	defer s.Close()

	if err := s.store.Fetch(ctx); err != nil {
		return err
	}
	res, ok := s.store.Get(id)
	if !ok {
		Stderrf("Resource %d not found", id)
		return model.ErrResourceNotFound
	}
	printResource(res)
	return nil
}

func printResource(r model.Resource) {
	table := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(table, "ID:\t%d\n", r.ID)
	_, _ = fmt.Fprintf(table, "Title:\t%s\n", r.Title)
	if r.Description != nil && *r.Description != "" {
		_, _ = fmt.Fprintf(table, "Description:\t%s\n", *r.Description)
	}
	if len(r.TagsList) > 0 {
		_, _ = fmt.Fprintf(table, "Tags:\t%s\n", strings.Join(r.TagsList, ", "))
	}
	if r.ResourceFileURL != nil {
		_, _ = fmt.Fprintf(table, "File:\t%s\n", *r.ResourceFileURL)
	}
	_, _ = fmt.Fprintf(table, "Created:\t%s\n", r.CreatedAt.In(time.Local).Format(timeFormat))
	_, _ = fmt.Fprintf(table, "Updated:\t%s\n", r.UpdatedAt.In(time.Local).Format(timeFormat))
	_ = table.Flush()

	if len(r.Images) == 0 {
		return
	}
	fmt.Println()
	table = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(table, "IMAGE\tCAPTION\tURL\n")
	for i, img := range r.Images {
		id := fmt.Sprintf("%d", img.ID)
		if i == 0 {
			id += " (primary)"
		}
		url := ""
		if img.ImageURL != nil {
			url = *img.ImageURL
		}
		_, _ = fmt.Fprintf(table, "%s\t%s\t%s\n", id, img.Caption, url)
	}
	_ = table.Flush()
}
