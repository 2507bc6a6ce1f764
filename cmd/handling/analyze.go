package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/handling-analyzer/internal/analysis"
	"github.com/Veraticus/handling-analyzer/internal/cli"
	"github.com/Veraticus/handling-analyzer/internal/common"
	"github.com/Veraticus/handling-analyzer/internal/config"
	"github.com/Veraticus/handling-analyzer/internal/engine"
	"github.com/Veraticus/handling-analyzer/internal/handling"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Grade a handling.meta document against a vehicle class",
		Long: `Parse a full handling.meta file or a pasted block of fields and compare
every checked value with the guidelines of the selected vehicle class.

The report lists guideline violations, unrecommended handling flags and a
letter score from A (clean) to F (broken).

Examples:
  # Grade a file as an import vehicle
  handling analyze sultan.meta

  # Grade a pasted fragment as a patent vehicle
  pbpaste | handling analyze --class patent

  # Pick one vehicle out of a multi-vehicle file
  handling analyze handling.meta --name SULTAN --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().Bool("json", false, "print the report as JSON")
	cmd.Flags().Bool("verbose", false, "include passing checks in the report")
	cmd.Flags().String("name", "", "handlingName of the item to analyze in multi-item files")
	cmd.Flags().Bool("list-items", false, "list the handlingName of every item and exit")
	addSaveFlags(cmd)

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	settings, err := config.Load()
	if err != nil {
		return err
	}

	text, source, err := cli.ReadInput(inputArg(args), cmd.InOrStdin())
	if err != nil {
		return err
	}

	if listItems, _ := cmd.Flags().GetBool("list-items"); listItems {
		names, err := handling.ItemNames(text)
		if err != nil {
			return common.NewUserError("Could not read the handling data", err)
		}
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	save := shouldSave(cmd, settings)
	eng, cleanup, err := openEngine(ctx, settings, save)
	if err != nil {
		return err
	}
	defer cleanup()

	name, _ := cmd.Flags().GetString("name")
	report, err := eng.Analyze(ctx, source, text, engine.Options{
		Class:        settings.Class,
		HandlingName: name,
		Save:         save,
	})
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(out, report)
	}

	formatter := analysis.NewCLIFormatter()
	formatter.Verbose, _ = cmd.Flags().GetBool("verbose")
	fmt.Fprintln(out, formatter.FormatSummary(&report.Summary))
	if report.Saved {
		fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("Saved to history as %s", report.ID)))
	}
	return nil
}

func analyzeDirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze-dir <dir>",
		Short: "Grade every handling file in a directory",
		Long: `Walk a directory for .meta and .xml files and grade each one against the
selected vehicle class. Files are analyzed concurrently; a malformed file is
reported in the table and does not stop the run.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyzeDir,
	}

	cmd.Flags().Bool("json", false, "print results as JSON")
	cmd.Flags().Int("workers", 0, "concurrent analyses (default from batch.workers)")
	addSaveFlags(cmd)

	return cmd
}

type dirResult struct {
	Path     string         `json:"path"`
	Name     string         `json:"name,omitempty"`
	Score    analysis.Score `json:"score,omitempty"`
	Error    string         `json:"error,omitempty"`
	ID       string         `json:"id,omitempty"`
	Errors   int            `json:"errors"`
	Warnings int            `json:"warnings"`
}

func runAnalyzeDir(cmd *cobra.Command, args []string) error {
	dir := args[0]
	out := cmd.OutOrStdout()

	settings, err := config.Load()
	if err != nil {
		return err
	}
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		settings.Workers = workers
	}

	files, err := engine.CollectFiles(dir)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("Could not read directory %s", dir), err)
	}
	if len(files) == 0 {
		return common.NewUserError(fmt.Sprintf("No .meta or .xml files found in %s", dir), common.ErrNotFound)
	}

	save := shouldSave(cmd, settings)

	// Set up interrupt handling
	interruptHandler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx, stop := interruptHandler.HandleInterrupts(cmd.Context(), save)
	defer stop()

	eng, cleanup, err := openEngine(ctx, settings, save)
	if err != nil {
		return err
	}
	defer cleanup()

	asJSON, _ := cmd.Flags().GetBool("json")
	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(files), "Analyzing")
	if asJSON {
		bar = nil
	}

	results, err := eng.AnalyzeFiles(ctx, files, engine.Options{Class: settings.Class, Save: save}, func(engine.FileResult) {
		cli.Step(bar)
	})
	if err != nil {
		if interruptHandler.WasInterrupted() {
			return nil
		}
		return err
	}

	rows := make([]dirResult, 0, len(results))
	failed := 0
	for _, r := range results {
		row := dirResult{Path: r.Path}
		if rel, relErr := filepath.Rel(dir, r.Path); relErr == nil {
			row.Path = rel
		}
		if r.Err != nil {
			row.Error = common.UserMessage(r.Err)
			failed++
		} else {
			row.Name = r.Report.Name
			row.Score = r.Report.Result.Score
			row.ID = r.Report.ID
			row.Errors = r.Report.Result.Count(analysis.SeverityError)
			row.Warnings = r.Report.Result.Count(analysis.SeverityWarning)
		}
		rows = append(rows, row)
	}

	if asJSON {
		return writeJSON(out, rows)
	}

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		if row.Error != "" {
			table = append(table, []string{row.Path, "-", cli.ErrorStyle.Render("failed"), row.Error, ""})
			continue
		}
		table = append(table, []string{
			row.Path,
			row.Name,
			string(row.Score),
			strconv.Itoa(row.Errors),
			strconv.Itoa(row.Warnings),
		})
	}

	fmt.Fprintln(out, cli.RenderTable([]string{"File", "Vehicle", "Score", "Errors", "Warnings"}, table))
	summary := fmt.Sprintf("%d file(s) analyzed as %s", len(rows)-failed, settings.Class)
	if failed > 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%s, %d failed", summary, failed)))
	} else {
		fmt.Fprintln(out, cli.FormatSuccess(summary))
	}
	return nil
}
