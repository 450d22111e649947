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
	flagAddTitle    string
	flagAddAmount   string
	flagAddCategory string
	flagAddDate     string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new expense",
	Example: `  outlay add -t "Coffee" -a 4.50 -c Groceries
  outlay add -t "Rent" -a 1200 -c Housing -d 2026-08-01`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&flagAddTitle, "title", "t", "", "Expense title")
	addCmd.Flags().StringVarP(&flagAddAmount, "amount", "a", "", "Amount spent")
	addCmd.Flags().StringVarP(&flagAddCategory, "category", "c", "Other", "Category")
	addCmd.Flags().StringVarP(&flagAddDate, "date", "d", "", "Date (YYYY-MM-DD, default today)")
	_ = addCmd.MarkFlagRequired("title")
	_ = addCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, _ []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.Close()
	if err := requireAuth(d); err != nil {
		return err
	}

	draft, err := parseDraft(flagAddTitle, flagAddAmount, flagAddCategory, flagAddDate)
	if err != nil {
		return err
	}

	created, err := d.store.Create(context.Background(), draft)
	if err != nil {
		return err
	}

	fmt.Printf("  Added %q  %s  %s  (id %s)\n",
		created.Title, cli.FormatAmount(created.Amount), string(created.Category), created.ID)
	return nil
}

// parseDraft builds a draft from raw flag values. An empty date means today.
func parseDraft(title, amount, category, date string) (model.Draft, error) {
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return model.Draft{}, fmt.Errorf("invalid amount %q", amount)
	}

	when := time.Now()
	if date != "" {
		when, err = time.Parse("2006-01-02", date)
		if err != nil {
			return model.Draft{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", date)
		}
	}

	draft := model.Draft{
		Title:    title,
		Amount:   amt,
		Category: model.NormalizeCategory(category),
		Date:     when,
	}
	return draft, draft.Validate()
}
