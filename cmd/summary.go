package cmd

import (
	"context"
	"fmt"

	"outlay/internal/cli"
	"outlay/internal/store"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Category breakdown of all expenses",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
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

	data := store.AggregateByCategory(d.store.Expenses())
	if data.Empty() {
		fmt.Println("\n  No expenses yet.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("EXPENSES BY CATEGORY"))
	fmt.Println()
	if d.store.Stale() {
		fmt.Println(printCachedNotice(d))
		fmt.Println()
	}

	maxVal := 0.0
	for _, v := range data.Values {
		if f := v.InexactFloat64(); f > maxVal {
			maxVal = f
		}
	}
	total := data.Total()

	for i, label := range data.Labels {
		value := data.Values[i]
		share := 0.0
		if !total.IsZero() {
			share, _ = value.Div(total).Float64()
		}
		fmt.Printf("  %-14s %s  %10s  %s\n",
			label,
			cli.RenderHorizontalBar(value.InexactFloat64(), maxVal, 28),
			cli.FormatAmount(value),
			cli.FormatPercent(share),
		)
	}

	fmt.Printf("\n  Total: %s across %d records\n\n",
		cli.FormatAmount(total), d.store.Len())

	return nil
}
