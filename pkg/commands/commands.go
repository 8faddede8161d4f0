package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/bnote/pkg/app"
	"tableflip.dev/bnote/pkg/commands/options"
	"tableflip.dev/bnote/pkg/logging"
	"tableflip.dev/bnote/pkg/store"
)

// root carries the settings shared by every subcommand.
type root struct {
	v     *viper.Viper
	store options.StoreOptions
	log   options.LogOptions
}

func New() *cobra.Command {
	r := &root{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "bnote",
		Short: options.Wrap80("Bullet notes on the command line: write freely, mark lines with •, O or –, and save the marked ones."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddStoreArgs(cmd, &r.store, r.v)
	options.AddLogArgs(cmd, &r.log, r.v)

	AddCommands(cmd, r)
	return cmd
}

func AddCommands(topLevel *cobra.Command, r *root) {
	addParse(topLevel)
	addDraft(topLevel, r)
	addConfirm(topLevel, r)
	addDays(topLevel, r)
	addReport(topLevel, r)
	addDelete(topLevel, r)
	addComplete(topLevel, r)
	addReset(topLevel, r)
	addKey(topLevel)
	addInfo(topLevel, r)
	addWatch(topLevel, r)
	addMCP(topLevel, r)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// config reads the config file, env and flags, and sets up logging.
func (r *root) config() (store.Config, error) {
	r.store.Apply(r.v)
	cfg, err := store.LoadConfig(r.v)
	if err != nil {
		return store.Config{}, err
	}
	cfg.Log = logging.Init(os.Stderr, cfg.LogLevel)
	return cfg, nil
}

// open builds the notebook over the configured store without loading it.
func (r *root) open() (*app.Notebook, store.Config, error) {
	cfg, err := r.config()
	if err != nil {
		return nil, store.Config{}, err
	}
	s, err := store.Open(cfg)
	if err != nil {
		return nil, cfg, err
	}
	cfg.Log.Debug().Str("backend", cfg.Backend).Str("path", cfg.Path).Msg("store opened")
	return app.New(s, cfg.Log), cfg, nil
}

// load opens the notebook and reads its saved state.
func (r *root) load(ctx context.Context) (*app.Notebook, error) {
	nb, _, err := r.open()
	if err != nil {
		return nil, err
	}
	if err := nb.Load(ctx); err != nil {
		r.close(nb)
		return nil, err
	}
	return nb, nil
}

func (r *root) close(nb *app.Notebook) {
	if nb == nil {
		return
	}
	if err := store.Close(nb.Store); err != nil {
		nb.Log.Warn().Err(err).Msg("closing store")
	}
}
