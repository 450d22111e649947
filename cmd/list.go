package cmd

import (
	"context"
	"fmt"

	"outlay/internal/cli"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all expenses",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.Close()
	if err := requireAuth(d); err != nil {
		return err
	}

	d.store.FetchAll(context.Background())
	if err := d.store.FetchErr(); err != nil && d.store.Len() == 0 {
		return fmt.Errorf("could not load expenses: %w", err)
	}

	expenses := d.store.Expenses()
	if len(expenses) == 0 {
		fmt.Println("\n  No expenses yet.")
		return nil
	}

	fmt.Println()
	if d.store.Stale() {
		fmt.Println(printCachedNotice(d))
	}

	rows := make([][]string, 0, len(expenses)+2)
	for _, e := range expenses {
		rows = append(rows, []string{
			e.Title,
			string(e.Category),
			cli.FormatAmount(e.Amount),
			cli.FormatDate(e.Date),
			e.ID,
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"TOTAL", "", cli.FormatAmount(d.store.Total()), "", ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Title", "Category", "Amount", "Date", "ID"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}

func printCachedNotice(d *deps) string {
	age := "unknown age"
	if d.snap != nil {
		if t, err := d.snap.SavedAt(); err == nil && !t.IsZero() {
			age = cli.FormatAge(t)
		}
	}
	return fmt.Sprintf("  Server unreachable, showing cached data (%s).", age)
}
