package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/tasknest/tasknest-backend/internal/client"
	"github.com/tasknest/tasknest-backend/internal/dto"
)

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func printTodos(out io.Writer, items []dto.TodoResponse) {
	if len(items) == 0 {
		fmt.Fprintln(out, "No tasks yet.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tTITLE\tPRIORITY\tDUE")
	for _, t := range items {
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "%d\t[%s]\t%s\t%s\t%s\n", t.ID, done, t.Title, orDash(t.Priority), orDash(t.DueDate))
	}
	_ = w.Flush()
}

func printTodo(out io.Writer, t *dto.TodoResponse) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%d\n", t.ID)
	fmt.Fprintf(w, "Title:\t%s\n", t.Title)
	fmt.Fprintf(w, "Completed:\t%t\n", t.Completed)
	fmt.Fprintf(w, "Description:\t%s\n", orDash(t.Description))
	fmt.Fprintf(w, "Due:\t%s\n", orDash(t.DueDate))
	fmt.Fprintf(w, "Priority:\t%s\n", orDash(t.Priority))
	fmt.Fprintf(w, "Created:\t%s\n", t.CreatedAt)
	fmt.Fprintf(w, "Updated:\t%s\n", t.UpdatedAt)
	_ = w.Flush()
}

func printCategories(out io.Writer, items []dto.CategoryResponse) {
	if len(items) == 0 {
		fmt.Fprintln(out, "No categories.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, c := range items {
		fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Name)
	}
	_ = w.Flush()
}

func printPagination(out io.Writer, b *client.TodoBoard) {
	p := b.Pagination
	if p.TotalPages == 0 {
		return
	}
	fmt.Fprintf(out, "Page %d of %d (%d tasks)\n", p.Page, p.TotalPages, p.Total)
	if b.HasPrev() {
		fmt.Fprintf(out, "Previous: --page %d\n", b.Page-1)
	}
	if b.HasNext() {
		fmt.Fprintf(out, "Next: --page %d\n", b.Page+1)
	}
}
