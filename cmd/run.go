package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/seqgarden/internal/app"
	"github.com/abhisek/seqgarden/internal/store"
)

// runApp resolves configuration, opens the journal and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return fmt.Errorf("resolve config: %w", err)
	}

	logger, closer, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer closer.Close()

	table, err := cfg.TierTable()
	if err != nil {
		return err
	}
	tier, _, err := cfg.StartTier(table)
	if err != nil {
		return err
	}

	st, err := store.OpenMemory()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	logger.Info("starting", "tiers", len(table.Tiers), "start_tier", string(tier), "seeded", cfg.HasSeed)

	return app.Run(app.Options{
		Generator: cfg.Generator(table),
		EventRepo: st.EventRepo(),
		Logger:    logger,
		StartTier: tier,
	})
}
