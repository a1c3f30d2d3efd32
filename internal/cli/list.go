package cli

import (
	"fmt"

	"taskdeck-cli/internal/collection"
	"taskdeck-cli/internal/format"

	"github.com/spf13/cobra"
)

// listFlags are shared by every list command; they drive the same collection
// controller the TUI uses.
type listFlags struct {
	sort    string
	desc    bool
	page    int
	perPage int
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sort, "sort", "", "Sort field")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "Sort descending (requires --sort)")
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&f.perPage, "per-page", collection.DefaultPageSize, fmt.Sprintf("Items per page %v", collection.PageSizes))
}

// runList loads the collection, applies sort and pagination, and prints the
// resulting page. A descending sort is one extra toggle on the same key,
// exactly as a second click on the column control.
func runList[T any](cmd *cobra.Command, app *App, ctrl *collection.Controller[T], flags listFlags, row func(T) []string) error {
	if err := ctrl.Load(cmd.Context()); err != nil {
		return writeErr(cmd, err)
	}
	if flags.sort != "" {
		if !ctrl.SortBy(flags.sort) {
			return writeErr(cmd, fmt.Errorf("unknown sort field: %s (known: %s)", flags.sort, fieldKeys(ctrl)))
		}
		if flags.desc {
			ctrl.SortBy(flags.sort)
		}
	}
	if flags.perPage != collection.DefaultPageSize {
		if !ctrl.SetPerPage(flags.perPage) {
			return writeErr(cmd, fmt.Errorf("per-page must be one of %v", collection.PageSizes))
		}
	}
	ctrl.SetPage(flags.page)

	slice := ctrl.Slice()

	if app.Format == "table" {
		headers := make([]string, 0, len(ctrl.Fields()))
		for _, f := range ctrl.Fields() {
			headers = append(headers, f.Label)
		}
		rows := make([][]string, 0, len(slice))
		for _, it := range slice {
			rows = append(rows, row(it))
		}
		return writeOut(cmd, app, format.Table{
			Headers: headers,
			Rows:    rows,
			Footer:  fmt.Sprintf("page %d/%d  (%d total)", ctrl.Page(), ctrl.TotalPages(), ctrl.Len()),
		})
	}

	return writeOut(cmd, app, map[string]any{
		"data": slice,
		"meta": map[string]any{
			"page":       ctrl.Page(),
			"totalPages": ctrl.TotalPages(),
			"perPage":    ctrl.PerPage(),
			"total":      ctrl.Len(),
		},
	})
}

func fieldKeys[T any](ctrl *collection.Controller[T]) string {
	out := ""
	for i, f := range ctrl.Fields() {
		if i > 0 {
			out += ", "
		}
		out += f.Key
	}
	return out
}
