package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/Veraticus/handling-analyzer/internal/analysis"
	"github.com/Veraticus/handling-analyzer/internal/cli"
	"github.com/Veraticus/handling-analyzer/internal/common"
	"github.com/Veraticus/handling-analyzer/internal/config"
	"github.com/Veraticus/handling-analyzer/internal/storage"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved analyses",
		Long:  `List analyses saved to the history database, newest first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return withHistory(cmd, func(store *storage.SQLiteStorage) error {
				records, err := store.ListAnalyses(cmd.Context(), limit)
				if err != nil {
					if errors.Is(err, storage.ErrInvalidLimit) {
						return common.NewUserError("--limit must be positive", err)
					}
					return err
				}

				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("No analyses saved yet in %s. Run 'handling analyze' to add one.", store.Path())))
					return nil
				}

				rows := make([][]string, 0, len(records))
				for _, r := range records {
					rows = append(rows, []string{
						r.ID,
						r.CreatedAt.Local().Format("2006-01-02 15:04"),
						r.Source,
						r.HandlingName,
						string(r.Class),
						string(r.Score),
						strconv.Itoa(countSeverity(r.Issues, analysis.SeverityError)),
					})
				}
				fmt.Fprintln(out, cli.RenderTable([]string{"ID", "When", "Source", "Vehicle", "Class", "Score", "Errors"}, rows))
				return nil
			})
		},
	}

	cmd.Flags().Int("limit", 20, "number of analyses to show")

	// Subcommands
	cmd.AddCommand(historyShowCmd())
	cmd.AddCommand(historyDeleteCmd())

	return cmd
}

func historyShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(cmd, func(store *storage.SQLiteStorage) error {
				record, err := store.GetAnalysis(cmd.Context(), args[0])
				if err != nil {
					return notFoundMessage(args[0], err)
				}

				if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
					return writeJSON(cmd.OutOrStdout(), record)
				}

				formatter := analysis.NewCLIFormatter()
				formatter.Verbose, _ = cmd.Flags().GetBool("verbose")
				summary := &analysis.Summary{
					Result:     &analysis.Result{Score: record.Score, Issues: record.Issues},
					Name:       record.HandlingName,
					Class:      record.Class,
					IsFragment: record.IsFragment,
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatTitle(fmt.Sprintf("Analysis %s", record.ID)))
				fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render(fmt.Sprintf("%s  %s",
					record.Source, record.CreatedAt.Local().Format("2006-01-02 15:04:05"))))
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSummary(summary))
				return nil
			})
		},
	}

	cmd.Flags().Bool("json", false, "print the analysis as JSON")
	cmd.Flags().Bool("verbose", false, "include passing checks")

	return cmd
}

func historyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(cmd, func(store *storage.SQLiteStorage) error {
				if err := store.DeleteAnalysis(cmd.Context(), args[0]); err != nil {
					return notFoundMessage(args[0], err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted analysis %s", args[0])))
				return nil
			})
		},
	}
}

// withHistory opens the history database for the duration of fn.
func withHistory(cmd *cobra.Command, fn func(*storage.SQLiteStorage) error) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	store, err := initStorage(cmd.Context(), settings)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return fn(store)
}

func notFoundMessage(id string, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return common.NewUserError(fmt.Sprintf("No saved analysis with ID %s", id), err)
	}
	return err
}

func countSeverity(issues []analysis.Issue, severity analysis.Severity) int {
	return lo.CountBy(issues, func(issue analysis.Issue) bool {
		return issue.Severity == severity
	})
}
