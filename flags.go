package altcover

import (
	"github.com/flanksource/commons/logger"
	"github.com/spf13/pflag"
)

type AllFlags struct {
	ConfigFile string
	NoProgress bool
	logger.Flags
}

var Flags = AllFlags{
	Flags: logger.Flags{
		Level:       "info",
		LogToStderr: true,
	},
}

// BindAllFlags adds the global flags to a pflag set (for Cobra).
func BindAllFlags(flags *pflag.FlagSet) *AllFlags {
	flags.CountVarP(&Flags.Flags.LevelCount, "loglevel", "v", "Increase logging level")
	flags.StringVar(&Flags.Flags.Level, "log-level", "info", "Set the default log level")
	flags.BoolVar(&Flags.Flags.JsonLogs, "json-logs", false, "Print logs in json format to stderr")
	flags.BoolVar(&Flags.Flags.LogToStderr, "log-to-stderr", true, "Log to stderr instead of stdout")

	flags.StringVar(&Flags.ConfigFile, "config", "",
		"YAML file with default fonts and paths (default: "+DefaultConfigFile+" if present)")
	flags.BoolVar(&Flags.NoProgress, "no-progress", false, "Disable the step progress display")

	return &Flags
}

func (a AllFlags) UseFlags() {
	logger.Configure(a.Flags)
}
