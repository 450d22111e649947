package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id> [<id>...]",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete expenses by id",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(_ *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.Close()
	if err := requireAuth(d); err != nil {
		return err
	}

	ctx := context.Background()
	for _, id := range args {
		if err := d.store.Remove(ctx, id); err != nil {
			return err
		}
		fmt.Printf("  Deleted %s\n", id)
	}
	return nil
}
