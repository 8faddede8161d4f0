package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// LogOptions
type LogOptions struct {
	Level string
}

// AddLogArgs registers --log-level and binds it to the "log.level" key.
func AddLogArgs(cmd *cobra.Command, o *LogOptions, v *viper.Viper) {
	cmd.PersistentFlags().StringVar(&o.Level, "log-level", "",
		"Log level: debug, info, warn, error or off.")
	_ = v.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
}
