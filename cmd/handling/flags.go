package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/handling-analyzer/internal/cli"
	"github.com/Veraticus/handling-analyzer/internal/common"
	"github.com/Veraticus/handling-analyzer/internal/flags"
	"github.com/Veraticus/handling-analyzer/internal/tui"
)

func flagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flags",
		Short: "Decode, encode and edit flag masks",
		Long: `Work with the hexadecimal masks stored in strHandlingFlags and
strWeaponFlags. Use --catalog to switch between the handling and weapon
flag tables.`,
	}

	cmd.PersistentFlags().String("catalog", flags.HandlingFlags.Name, "flag catalog (handling, weapon)")

	// Subcommands
	cmd.AddCommand(flagsDecodeCmd())
	cmd.AddCommand(flagsEncodeCmd())
	cmd.AddCommand(flagsListCmd())
	cmd.AddCommand(flagsEditCmd())

	return cmd
}

func catalogFlag(cmd *cobra.Command) (*flags.Catalog, error) {
	name, _ := cmd.Flags().GetString("catalog")
	catalog, err := flags.CatalogByName(strings.ToLower(name))
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("Unknown catalog %q (use handling or weapon)", name), err)
	}
	return catalog, nil
}

func parseMaskArg(arg string) (uint64, error) {
	mask, err := flags.ParseHex(arg)
	if err != nil {
		return 0, common.NewUserError(fmt.Sprintf("%q is not a hexadecimal mask", arg), err)
	}
	return mask, nil
}

func renderFlagRows(defs []flags.Definition, active flags.Set) string {
	rows := make([][]string, 0, len(defs))
	for _, def := range defs {
		state := ""
		if active.Has(def.Value) {
			state = cli.SuccessIcon
		}
		recommended := cli.WarningStyle.Render("no")
		if def.Recommended {
			recommended = "yes"
		}
		rows = append(rows, []string{state, flags.ToHex(def.Value), def.Name, recommended, def.Description})
	}
	return cli.RenderTable([]string{"", "Hex", "Name", "Recommended", "Description"}, rows)
}

func flagsDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>",
		Short: "List the flags set in a mask",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := catalogFlag(cmd)
			if err != nil {
				return err
			}
			mask, err := parseMaskArg(args[0])
			if err != nil {
				return err
			}

			set := flags.Decode(mask, catalog)
			out := cmd.OutOrStdout()
			if len(set) == 0 {
				fmt.Fprintln(out, cli.SubtleStyle.Render("No flags set"))
				return nil
			}
			fmt.Fprintln(out, renderFlagRows(catalog.Active(set), set))

			if unknown := mask &^ flags.Encode(set); unknown != 0 {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Bits %s are not in the %s catalog", flags.ToHex(unknown), catalog.Name)))
			}
			return nil
		},
	}
}

func flagsEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <name>...",
		Short: "Build a mask from flag names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := catalogFlag(cmd)
			if err != nil {
				return err
			}

			set, err := catalog.FromNames(args...)
			if err != nil {
				return common.NewUserError("Unknown flag name; run 'handling flags list' to see them", err)
			}

			mask := flags.Encode(set)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", flags.ToHex(mask), mask)
			if names := catalog.Names(set); len(names) > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), cli.SubtleStyle.Render(strings.Join(names, ", ")))
			}
			return nil
		},
	}
}

func flagsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every flag in a catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := catalogFlag(cmd)
			if err != nil {
				return err
			}

			query, _ := cmd.Flags().GetString("search")
			active := flags.NewSet()
			if maskText, _ := cmd.Flags().GetString("mask"); maskText != "" {
				mask, err := parseMaskArg(maskText)
				if err != nil {
					return err
				}
				active = flags.Decode(mask, catalog)
			}

			matches := catalog.Search(query, active)
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render(fmt.Sprintf("No flags match %q", query)))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderFlagRows(matches, active))
			return nil
		},
	}

	cmd.Flags().String("search", "", "filter by name or description")
	cmd.Flags().String("mask", "", "mark the flags set in this hex mask")

	return cmd
}

func flagsEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [hex]",
		Short: "Toggle flags interactively",
		Long: `Open an interactive editor over a flag catalog. Space toggles the flag
under the cursor, / searches, Enter accepts and q cancels. The accepted mask
is printed in hex and decimal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := catalogFlag(cmd)
			if err != nil {
				return err
			}

			initial := flags.NewSet()
			if len(args) == 1 {
				mask, err := parseMaskArg(args[0])
				if err != nil {
					return err
				}
				initial = flags.Decode(mask, catalog)
			}

			set, accepted, err := tui.RunFlagEditor(cmd.Context(), catalog, initial)
			if err != nil {
				return err
			}
			if !accepted {
				fmt.Fprintln(cmd.ErrOrStderr(), cli.SubtleStyle.Render("Edit canceled"))
				return nil
			}

			mask := flags.Encode(set)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", flags.ToHex(mask), mask)
			return nil
		},
	}
}
