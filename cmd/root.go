package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/seqgarden/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "seqgarden",
	Short: "Sequence puzzles in the terminal",
	Long: `seqgarden — fill in the missing terms of arithmetic and geometric
progressions, name the kind and find the reason.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("tier", "", "Start directly at this tier (skips the tier menu)")
	flags.Uint64("seed", 0, "Seed problem generation for reproducible runs (overrides SEQGARDEN_SEED)")
	flags.String("tiers", "", "Path to a YAML tier table (overrides SEQGARDEN_TIERS)")
	flags.String("log-file", "", "Write structured logs to this file (overrides SEQGARDEN_LOG)")
	flags.Bool("debug", false, "Log at debug level")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(tiersCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig returns the effective configuration: flags (highest
// priority), then SEQGARDEN_* env vars, then defaults.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if v, _ := flags.GetString("tier"); v != "" {
		cfg.Tier = v
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
		cfg.HasSeed = true
	}
	if v, _ := flags.GetString("tiers"); v != "" {
		cfg.TiersPath = v
	}
	if v, _ := flags.GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
	if v, _ := flags.GetBool("debug"); v {
		cfg.Debug = true
	}
	return cfg, nil
}
