package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/packlist/internal/model"
	"github.com/idilsaglam/packlist/internal/packing"
	"github.com/idilsaglam/packlist/internal/tui"
	"github.com/idilsaglam/packlist/internal/ui"
)

func newAddCmd(a *app) *cobra.Command {
	var qty string
	cmd := &cobra.Command{
		Use:   "add <description...>",
		Short: "Add an item (description can be multiple words)",
		Example: `  packlist add Toothbrush
  packlist add -q 3 "Phone charger"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			form := packing.Form{Description: strings.Join(args, " "), Quantity: qty}
			if !form.Submit(cmd.Context(), a.list, a.gen) {
				a.logger.Debug().Msg("blank description, nothing added")
				return nil
			}
			if err := a.synced(); err != nil {
				return err
			}
			it := a.list.Items()[0]
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added %s x%d (%s)", it.Description, it.Quantity, it.ID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&qty, "quantity", "q", "1", "how many to pack")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var (
		filter string
		sortBy string
		output string
		group  bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Example: `  packlist ls
  packlist ls -f sh
  packlist ls -s unpacked-first -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := packing.ParseSortMode(sortBy)
			if err != nil {
				return err
			}
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			items := a.list.Items()
			shown := packing.VisibleItems(items, filter, mode)
			stats := packing.ComputeStats(items)

			switch output {
			case "json", "yaml":
				return writeStructured(cmd.OutOrStdout(), output, listing{Items: shown, Stats: stats})
			case "text", "":
				fmt.Fprintln(cmd.OutOrStdout(), renderList(shown, stats, group))
				return nil
			}
			return fmt.Errorf("unknown output %q (want text, json or yaml)", output)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&filter, "filter", "f", "", "show only items whose description contains this text")
	f.StringVarP(&sortBy, "sort", "s", "none", "order: "+strings.Join(packing.SortModeNames(), ", "))
	f.StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	f.BoolVar(&group, "group", false, "group output by unpacked/packed")
	return cmd
}

// idCommand builds toggle and rm, which share argument handling and the
// absent-id behavior.
func idCommand(a *app, use, short, done string, op func(a *app, cmd *cobra.Command, id model.ID)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			id := model.ID(strings.TrimSpace(args[0]))
			if _, ok := a.list.Find(id); !ok {
				ui.Note(cmd.ErrOrStderr(), fmt.Sprintf("no item with id %s (run `packlist ls` to see ids)", id))
				return nil
			}
			op(a, cmd, id)
			if err := a.synced(); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), done)
			return nil
		},
	}
}

func newToggleCmd(a *app) *cobra.Command {
	return idCommand(a, "toggle", "Flip the packed state of an item", "toggled",
		func(a *app, cmd *cobra.Command, id model.ID) { a.list.Toggle(cmd.Context(), id) })
}

func newRemoveCmd(a *app) *cobra.Command {
	cmd := idCommand(a, "rm", "Delete an item", "removed",
		func(a *app, cmd *cobra.Command, id model.ID) { a.list.Delete(cmd.Context(), id) })
	cmd.Aliases = []string{"delete"}
	return cmd
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			a.list.ClearAll(cmd.Context())
			if err := a.synced(); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "cleared")
			return nil
		},
	}
}

func newClearPackedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-packed",
		Short: "Remove packed items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			before := a.list.Len()
			a.list.ClearPacked(cmd.Context())
			if err := a.synced(); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("removed %d packed", before-a.list.Len()))
			return nil
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show packing progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			s := packing.ComputeStats(a.list.Items())
			switch output {
			case "json", "yaml":
				return writeStructured(cmd.OutOrStdout(), output, s)
			case "text", "":
				fmt.Fprintln(cmd.OutOrStdout(), statsHeader(s))
				fmt.Fprintln(cmd.OutOrStdout(), ui.Current().Muted.Render(ui.ProgressBar(s.Percent, 28)))
				return nil
			}
			return fmt.Errorf("unknown output %q (want text, json or yaml)", output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	return cmd
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit the list interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context()); err != nil {
				return err
			}
			if err := tui.Run(cmd.Context(), a.list, a.gen); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
}
