package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"petclinic/internal/platform/config"
	"petclinic/internal/platform/logger"
)

type rootOptions struct {
	configFile string
	envFiles   []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "petclinic",
		Short: "Pet clinic owner and vet service",
		Long: `petclinic serves the owner search and maintenance workflow and the vet list.

Configuration is read from petclinic.yaml, PETCLINIC_* environment variables
and flags, in increasing order of precedence.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "path to a YAML config file (default ./petclinic.yaml if present)")
	flags.StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "dotenv files to load before reading the environment")
	flags.String("profile", "", "word producer profile: laurel, yanny or externalized")
	flags.String("say.word", "", "word spoken by the externalized profile")
	flags.String("log.level", "info", "log level: debug, info, warn, error")
	flags.String("log.format", "json", "log format: json or text")

	root.AddCommand(newServeCmd(opts), newHearCmd(opts))
	return root
}

// load resolves configuration for cmd and builds the logger it describes.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(config.Options{
		ConfigFile: o.configFile,
		EnvFiles:   o.envFiles,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(log)
	return cfg, log, nil
}
