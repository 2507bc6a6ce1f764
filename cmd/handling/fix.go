package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/handling-analyzer/internal/analysis"
	"github.com/Veraticus/handling-analyzer/internal/cli"
	"github.com/Veraticus/handling-analyzer/internal/config"
	"github.com/Veraticus/handling-analyzer/internal/engine"
)

func fixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [file|-]",
		Short: "Rewrite out-of-guideline values and print the fixed document",
		Long: `Apply the auto-fix targets to a handling document and print it in the same
shape it was read: a fragment stays a fragment, a full file stays a full file.

The drive force picks the target set: above 0.31 the high-performance targets
apply, otherwise the standard ones. Mass and brake force are clamped to their
hard limits. These targets are fixed and do not depend on --class or
--guidelines; the configured class is used afterwards to grade the fixed
document. The change list and that grade go to stderr so stdout stays
pipeable.

Examples:
  handling fix sultan.meta -o sultan.fixed.meta
  pbpaste | handling fix --honor-policy | pbcopy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			text, source, err := cli.ReadInput(inputArg(args), cmd.InOrStdin())
			if err != nil {
				return err
			}

			eng, cleanup, err := openEngine(cmd.Context(), settings, false)
			if err != nil {
				return err
			}
			defer cleanup()

			honor, _ := cmd.Flags().GetBool("honor-policy")
			name, _ := cmd.Flags().GetString("name")
			outcome, err := eng.Fix(text, name, analysis.FixOptions{HonorPolicy: honor})
			if err != nil {
				return err
			}

			report, err := eng.AnalyzeDocument(cmd.Context(), source, outcome.Document, engine.Options{Class: settings.Class})
			if err != nil {
				return err
			}

			stderr := cmd.ErrOrStderr()
			fmt.Fprintln(stderr, analysis.NewCLIFormatter().FormatFixReport(outcome.Report))
			fmt.Fprintln(stderr, cli.FormatInfo(fmt.Sprintf("Score after fix: %s (%s)", report.Result.Score, settings.Class)))

			output, _ := cmd.Flags().GetString("output")
			return writeOutput(output, outcome.Output, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Bool("honor-policy", false, "only rewrite values in the direction the validator flags")
	cmd.Flags().String("name", "", "handlingName of the item to fix in multi-item files")
	cmd.Flags().StringP("output", "o", "", "write the fixed document to a file instead of stdout")

	return cmd
}

func formatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format [file|-]",
		Short: "Rewrite a handling document in canonical field order",
		Long: `Parse a handling document and print it back in canonical field order
without changing any value. Guideline settings (--class, --guidelines) are
not consulted.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, _, err := cli.ReadInput(inputArg(args), cmd.InOrStdin())
			if err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString("name")
			formatted, err := engine.New(nil, nil, engine.DefaultConfig()).Format(text, name)
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			return writeOutput(output, formatted, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("name", "", "handlingName of the item to format in multi-item files")
	cmd.Flags().StringP("output", "o", "", "write to a file instead of stdout")

	return cmd
}
