package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/seqgarden/internal/progression"
)

func TestPreviewLoop_AllCorrect(t *testing.T) {
	table := progression.DefaultTierTable()

	// A second generator with the same seed draws the same problems.
	oracle := progression.NewSeededGenerator(table, 42)
	var in strings.Builder
	for range 2 {
		p, err := oracle.Generate(progression.TierIntermediate)
		require.NoError(t, err)
		for _, h := range p.Hidden {
			in.WriteString(progression.FormatNumber(p.Full[h]) + "\n")
		}
		in.WriteString(p.Kind.String() + "\n")
		in.WriteString(progression.FormatNumber(p.Reason) + "\n")
	}

	var out bytes.Buffer
	gen := progression.NewSeededGenerator(table, 42)
	err := previewLoop(strings.NewReader(in.String()), &out, gen, progression.TierIntermediate, 2)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Tier: Intermediate")
	assert.Equal(t, 2, strings.Count(out.String(), "Correct!"))
	assert.Contains(t, out.String(), "Summary: 2/2 correct")
}

func TestPreviewLoop_WrongAnswersListed(t *testing.T) {
	table := progression.DefaultTierTable()
	oracle := progression.NewSeededGenerator(table, 3)
	p, err := oracle.Generate(progression.TierBeginner)
	require.NoError(t, err)

	// Right term, wrong kind, empty reason.
	wrongKind := "PG"
	if p.Kind == progression.KindGeometric {
		wrongKind = "PA"
	}
	in := progression.FormatNumber(p.Full[p.Hidden[0]]) + "\n" + wrongKind + "\n\n"

	var out bytes.Buffer
	gen := progression.NewSeededGenerator(table, 3)
	require.NoError(t, previewLoop(strings.NewReader(in), &out, gen, progression.TierBeginner, 1))

	assert.Contains(t, out.String(), "Check: kind, reason")
	assert.Contains(t, out.String(), "Summary: 0/1 correct")
}

func TestPreviewLoop_InputClosed(t *testing.T) {
	gen := progression.NewSeededGenerator(progression.DefaultTierTable(), 1)

	var out bytes.Buffer
	require.NoError(t, previewLoop(strings.NewReader(""), &out, gen, progression.TierBeginner, 3))

	assert.Contains(t, out.String(), "(input closed)")
	assert.Contains(t, out.String(), "Summary: 0/0 correct")
	assert.Equal(t, 1, strings.Count(out.String(), "Puzzle"))
}

func TestPrintTiers(t *testing.T) {
	var out bytes.Buffer
	printTiers(&out, progression.DefaultTierTable())

	s := out.String()
	for _, name := range []string{"beginner", "intermediate", "advanced"} {
		assert.Contains(t, s, name)
	}
	assert.Contains(t, s, "0.5")
	assert.Contains(t, s, "-5..-2")
}

func TestResolveConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("SEQGARDEN_TIERS", "/from/env.yaml")
	t.Setenv("SEQGARDEN_SEED", "9")

	require.NoError(t, rootCmd.ParseFlags([]string{"--seed", "11"}))
	t.Cleanup(func() {
		f := rootCmd.Flags().Lookup("seed")
		_ = f.Value.Set("0")
		f.Changed = false
	})

	cfg, err := resolveConfig(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.yaml", cfg.TiersPath)
	assert.True(t, cfg.HasSeed)
	assert.Equal(t, uint64(11), cfg.Seed)
}
