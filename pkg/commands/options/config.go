package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// StoreOptions overrides the storage settings read from the config file.
type StoreOptions struct {
	Path    string
	Backend string
	Prefix  string
	NoRetry bool
}

// AddStoreArgs registers the storage flags and binds them to v.
func AddStoreArgs(cmd *cobra.Command, o *StoreOptions, v *viper.Viper) {
	fs := cmd.PersistentFlags()
	fs.StringVar(&o.Path, "path", "", "Storage directory or database file.")
	fs.StringVar(&o.Backend, "backend", "", "Storage backend: diskv, sqlite or memory.")
	fs.StringVar(&o.Prefix, "key-prefix", "", "Prefix for stored keys.")
	fs.BoolVar(&o.NoRetry, "no-retry", false, "Run storage operations once without retrying.")

	_ = v.BindPFlag("path", fs.Lookup("path"))
	_ = v.BindPFlag("backend", fs.Lookup("backend"))
	_ = v.BindPFlag("key_prefix", fs.Lookup("key-prefix"))
}

// Apply writes flags that have no viper key of their own.
func (o *StoreOptions) Apply(v *viper.Viper) {
	if o.NoRetry {
		v.Set("retry.enabled", false)
	}
}
