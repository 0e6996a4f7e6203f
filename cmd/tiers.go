package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/seqgarden/internal/progression"
	"github.com/abhisek/seqgarden/internal/ui/theme"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Print the effective tier table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return fmt.Errorf("resolve config: %w", err)
		}
		t, err := cfg.TierTable()
		if err != nil {
			return err
		}
		printTiers(cmd.OutOrStdout(), t)
		return nil
	},
}

// printTiers writes one row per tier and kind.
func printTiers(w io.Writer, t *progression.TierTable) {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("TIER", "LENGTH", "HIDDEN", "KIND", "REASONS", "START").
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true).Foreground(theme.Accent)
			}
			return s
		})

	for _, cfg := range t.Tiers {
		for _, kind := range []progression.Kind{progression.KindArithmetic, progression.KindGeometric} {
			for i, band := range cfg.Bands(kind) {
				name, length, hidden := "", "", ""
				if kind == progression.KindArithmetic && i == 0 {
					name = string(cfg.Tier)
					length = strconv.Itoa(cfg.Length)
					hidden = joinInts(cfg.Hidden)
				}
				tbl.Row(name, length, hidden, kind.String(), describeReasons(band.Reasons), describeStart(band.Start))
			}
		}
	}
	fmt.Fprintln(w, tbl.Render())
}

func describeReasons(v progression.ValueSet) string {
	if len(v.Values) == 0 {
		return fmt.Sprintf("%d..%d", v.Min, v.Max)
	}
	parts := make([]string, len(v.Values))
	for i, x := range v.Values {
		parts[i] = progression.FormatNumber(x)
	}
	return strings.Join(parts, ", ")
}

func describeStart(s progression.StartRange) string {
	if s.Scale > 1 {
		return fmt.Sprintf("%d..%d ×%d", s.Min, s.Max, s.Scale)
	}
	return fmt.Sprintf("%d..%d", s.Min, s.Max)
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " or ")
}
