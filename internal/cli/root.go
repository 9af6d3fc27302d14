package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/packlist/internal/config"
	"github.com/idilsaglam/packlist/internal/logging"
	"github.com/idilsaglam/packlist/internal/model"
	"github.com/idilsaglam/packlist/internal/packing"
	"github.com/idilsaglam/packlist/internal/store"
	"github.com/idilsaglam/packlist/internal/ui"
)

// Version is stamped at build time.
var Version = "dev"

// app carries what the subcommands share: resolved config and, once opened,
// the store, repository and list.
type app struct {
	verbosity  int
	configPath string
	backend    string
	dataDir    string
	theme      string

	cfg    config.Config
	logger zerolog.Logger
	kv     store.KV
	list   *packing.List
	gen    model.IDGenerator
}

// Execute runs one packlist invocation and returns its exit code. The store
// is closed on every path, including failed commands.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root, a := newRoot()
	return execute(ctx, root, a, args, stdout, stderr)
}

func execute(ctx context.Context, root *cobra.Command, a *app, args []string, stdout, stderr io.Writer) int {
	defer logging.Close()
	defer func() {
		if err := a.close(); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		ui.Fail(stderr, err.Error())
		return 1
	}
	return 0
}

// newRoot builds the packlist command tree.
func newRoot() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "packlist",
		Short: "A packing list for your next trip",
		Long: `packlist keeps a list of things to pack, with quantities and a packed flag.
The list is stored locally and rewritten after every change.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return a.configure(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.CountVarP(&a.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	pf.StringVar(&a.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/packlist/config.toml)")
	pf.StringVar(&a.backend, "backend", "", "storage backend: file, sqlite or memory")
	pf.StringVar(&a.dataDir, "data-dir", "", "directory holding the stored list")
	pf.StringVar(&a.theme, "theme", "", "color theme: classic, neon or mono")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newToggleCmd(a),
		newRemoveCmd(a),
		newClearCmd(a),
		newClearPackedCmd(a),
		newStatsCmd(a),
		newTUICmd(a),
		newVersionCmd(),
	)
	return root, a
}

func (a *app) configure(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.backend != "" {
		cfg.Backend = a.backend
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	if a.theme != "" {
		cfg.Theme = a.theme
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.For("cli")

	ui.SetTheme(cfg.Theme)
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		ui.DisableColorUnlessTerminal(f)
	}
	return nil
}

// open loads the list from the configured store.
func (a *app) open(ctx context.Context) error {
	if a.list != nil {
		return nil
	}
	kv, err := store.Open(a.cfg.Backend, a.cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	a.kv = kv

	repo := packing.NewRepository(kv, a.cfg.Key, logging.For("repository"))
	a.list = packing.Open(ctx, repo, logging.For("list"))

	a.gen = model.NewIDGenerator(a.cfg.IDs)
	if seq, ok := a.gen.(*model.SequentialGenerator); ok {
		seq.Observe(a.list.Items())
	}
	a.logger.Debug().
		Str("backend", a.cfg.Backend).
		Str("key", repo.Key()).
		Int("items", a.list.Len()).
		Msg("list opened")
	return nil
}

// synced reports a failed write from the last list operation.
func (a *app) synced() error {
	if err := a.list.SyncErr(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

func (a *app) close() error {
	if a.kv == nil {
		return nil
	}
	err := a.kv.Close()
	a.kv, a.list = nil, nil
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "packlist version %s\n", Version)
		},
	}
}
