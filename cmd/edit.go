package cmd

import (
	"context"
	"fmt"
	"time"

	"outlay/internal/cli"
	"outlay/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagEditTitle    string
	flagEditAmount   string
	flagEditCategory string
	flagEditDate     string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an existing expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&flagEditTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&flagEditAmount, "amount", "a", "", "New amount")
	editCmd.Flags().StringVarP(&flagEditCategory, "category", "c", "", "New category")
	editCmd.Flags().StringVarP(&flagEditDate, "date", "d", "", "New date (YYYY-MM-DD)")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.Close()
	if err := requireAuth(d); err != nil {
		return err
	}

	id := args[0]
	ctx := context.Background()

	// The update payload is the full record, so fetch the current values
	// and overlay whichever flags were set.
	d.store.FetchAll(ctx)
	if err := d.store.FetchErr(); err != nil {
		return fmt.Errorf("could not load expenses: %w", err)
	}

	var current *model.Expense
	for _, e := range d.store.Expenses() {
		if e.ID == id {
			current = &e
			break
		}
	}
	if current == nil {
		return fmt.Errorf("no expense with id %q", id)
	}

	draft := model.Draft{
		Title:    current.Title,
		Amount:   current.Amount,
		Category: current.Category,
		Date:     current.Date,
	}
	if cmd.Flags().Changed("title") {
		draft.Title = flagEditTitle
	}
	if cmd.Flags().Changed("amount") {
		draft.Amount, err = decimal.NewFromString(flagEditAmount)
		if err != nil {
			return fmt.Errorf("invalid amount %q", flagEditAmount)
		}
	}
	if cmd.Flags().Changed("category") {
		draft.Category = model.NormalizeCategory(flagEditCategory)
	}
	if cmd.Flags().Changed("date") {
		draft.Date, err = time.Parse("2006-01-02", flagEditDate)
		if err != nil {
			return fmt.Errorf("invalid date %q, use YYYY-MM-DD", flagEditDate)
		}
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	updated, err := d.store.Update(ctx, id, draft)
	if err != nil {
		return err
	}

	fmt.Printf("  Updated %q  %s  %s  %s\n",
		updated.Title, cli.FormatAmount(updated.Amount), string(updated.Category), cli.FormatDate(updated.Date))
	return nil
}
