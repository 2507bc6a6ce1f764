package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/handling-analyzer/internal/analysis"
	"github.com/Veraticus/handling-analyzer/internal/config"
	"github.com/Veraticus/handling-analyzer/internal/guideline"
)

func guidelinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guidelines",
		Short: "Show the guideline table",
		Long: `Print the expected value of every checked field for one vehicle class, or
for every class with --all. Fields checked in one direction only are marked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}
			table, err := settings.Guidelines()
			if err != nil {
				return err
			}

			classes := []guideline.Class{settings.Class}
			if all, _ := cmd.Flags().GetBool("all"); all {
				classes = table.Classes()
			}

			formatter := analysis.NewCLIFormatter()
			for i, class := range classes {
				record, err := table.For(class)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatGuidelines(class, record))
			}
			return nil
		},
	}

	cmd.Flags().Bool("all", false, "show every class")

	return cmd
}
