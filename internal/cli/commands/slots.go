package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ai-stack/stackbuilder/internal/cli/config"
	"github.com/ai-stack/stackbuilder/internal/cli/ui"
	"github.com/ai-stack/stackbuilder/internal/state"
	"github.com/ai-stack/stackbuilder/internal/storage"
)

// openStore connects the configured storage backend and returns a store
// bound to slotKey. Correction messages are printed to w as warnings.
func openStore(ctx context.Context, cfg *config.Config, slotKey string, w io.Writer, noColor bool) (*state.Store, func() error, error) {
	slot, closeFn, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, nil, ui.StorageFailure("open", err)
	}
	if slotKey == "" {
		slotKey = cfg.Storage.SlotKey
	}

	store := state.New(
		state.WithStorage(slot),
		state.WithSlotKey(slotKey),
		state.WithNotifier(state.NotifierFunc(func(messages []string) {
			for _, m := range messages {
				fmt.Fprint(w, ui.Warning(m, noColor))
			}
		})),
	)
	return store, closeFn, nil
}

// NewSaveCommand creates the save command
func NewSaveCommand(g *globalOptions) *cobra.Command {
	var slotKey string
	var flags *stackFlags

	cmd := &cobra.Command{
		Use:   "save [project-name]",
		Short: "Save a stack to the configured storage",
		Long: `Save a stack to the storage backend configured in ai-stack.yaml
(storage.driver: memory, file, redis or sql). The stack is corrected by
the compatibility rules before it is written.

Examples:
  ai-stack save my-bot --llm anthropic
  ai-stack save --preset enterprise --slot team-default`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.resolve(args)
			if err != nil {
				return err
			}
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			store, closeFn, err := openStore(cmd.Context(), cfg, slotKey, w, g.noColor)
			if err != nil {
				return err
			}
			defer closeFn()

			store.SetStack(state.Replace(s))
			if err := store.Save(cmd.Context()); err != nil {
				return ui.StorageFailure("save", err)
			}
			ui.WriteSuccess(w, fmt.Sprintf("Saved %s to slot %q (%s)", store.Stack().ProjectName, store.SlotKey(), cfg.Storage.Driver), g.noColor)
			return nil
		},
	}

	flags = addStackFlags(cmd)
	cmd.Flags().StringVar(&slotKey, "slot", "", "Slot key (default: storage.slot_key)")
	return cmd
}

// NewLoadCommand creates the load command
func NewLoadCommand(g *globalOptions) *cobra.Command {
	var slotKey, format string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the saved stack",
		Long: `Load a saved stack. It is checked again by the compatibility rules, so a
stack saved by an older version comes back corrected.

Examples:
  ai-stack load
  ai-stack load --slot team-default --format command`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "table", "json", "yaml", "command":
			default:
				return fmt.Errorf("unknown format %q (want table, json, yaml or command)", format)
			}

			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			store, closeFn, err := openStore(cmd.Context(), cfg, slotKey, cmd.ErrOrStderr(), g.noColor)
			if err != nil {
				return err
			}
			defer closeFn()

			found, _, err := store.Load(cmd.Context())
			if err != nil {
				return ui.StorageFailure("load", err)
			}
			if !found {
				return &ui.Error{Options: ui.ErrorOptions{
					Context:      "nothing saved",
					Problem:      fmt.Sprintf("Slot %q is empty.", store.SlotKey()),
					HelpCommands: []string{"Save a stack: ai-stack save --slot " + store.SlotKey()},
				}}
			}

			s := store.Stack()
			switch format {
			case "json":
				return writeJSON(w, s)
			case "yaml":
				return writeYAML(w, s)
			case "command":
				fmt.Fprintln(w, state.GenerateCommand(s))
				return nil
			}
			printStack(w, s, g.noColor)
			fmt.Fprintln(w)
			fmt.Fprintln(w, state.GenerateCommand(s))
			return nil
		},
	}

	cmd.Flags().StringVar(&slotKey, "slot", "", "Slot key (default: storage.slot_key)")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json, yaml or command")
	return cmd
}
