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

const timeFormat = "2006-01-02 15:04"

// List prints the resources matching the filter flags, newest first
func List(ctx context.Context, api store.API, flags FilterFlags) error {
	s := newSession(api)
	defer s.Close()

	if err := s.store.Fetch(ctx); err != nil {
		return err
	}
	printResources(s.store.Filtered(CreateFilterParamsFromCLI(flags)))
	return nil
}

func printResources(resources []model.Resource) {
	if len(resources) == 0 {
		fmt.Println("No resources found.")
		return
	}
	colWidth := columnWidth()
	table := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(table, "ID\tTITLE\tTAGS\tFILE\tIMAGES\tCREATED\n")
	for _, r := range resources {
		title := elideString(r.Title, colWidth)
		tags := elideString(strings.Join(r.TagsList, ", "), colWidth)
		file := "-"
		if r.ResourceFileURL != nil {
			file = "yes"
		}
		_, _ = fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%d\t%s\n", r.ID, title, tags, file, len(r.Images), r.CreatedAt.In(time.Local).Format(timeFormat))
	}
	_ = table.Flush()
}
