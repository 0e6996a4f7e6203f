package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/seqgarden/internal/progression"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play puzzles line by line (no TUI, no journal)",
	Long: `Generate puzzles for a tier and answer them on stdin.

This is a stateless developer tool: no session, no undo, no journal.
Useful for checking what a tier table produces.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("count", 5, "Number of puzzles to generate")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return fmt.Errorf("resolve config: %w", err)
	}
	count, _ := cmd.Flags().GetInt("count")
	if count < 1 {
		return fmt.Errorf("invalid count %d: must be at least 1", count)
	}

	table, err := cfg.TierTable()
	if err != nil {
		return err
	}
	tier, ok, err := cfg.StartTier(table)
	if err != nil {
		return err
	}
	if !ok {
		tier = table.Order()[0]
	}

	return previewLoop(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.Generator(table), tier, count)
}

// previewLoop asks count puzzles of tier and prints a score at the end.
// It stops early when in runs dry.
func previewLoop(in io.Reader, out io.Writer, gen *progression.Generator, tier progression.Tier, count int) error {
	scanner := bufio.NewScanner(in)
	read := func(prompt string) (string, bool) {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	fmt.Fprintf(out, "Tier: %s\n\n", gen.Table().Label(tier))

	var correct, asked int
	for i := 1; i <= count; i++ {
		p, err := gen.Generate(tier)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "── Puzzle %d/%d ──\n", i, count)
		fmt.Fprintln(out, renderSlots(p.Display))
		fmt.Fprintln(out)

		sub := progression.Submission{Terms: make(map[int]string, len(p.Hidden))}
		closed := false
		for _, h := range p.Hidden {
			text, ok := read(fmt.Sprintf("Term %d: ", h+1))
			if !ok {
				closed = true
				break
			}
			sub.Terms[h] = text
		}
		if !closed {
			text, ok := read("Kind (PA/PG): ")
			if ok {
				sub.Kind, _ = progression.ParseKind(text)
				sub.Reason, ok = read("Reason: ")
			}
			closed = !ok
		}
		if closed {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}

		asked++
		o := progression.Validate(p, sub)
		if o.Correct {
			correct++
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Not quite.\033[0m %s\n", describeMisses(p, o))
		}
		fmt.Fprintf(out, "Answer: %s, %s with reason %s\n\n",
			renderTerms(p.Full), p.Kind.DisplayName(), progression.FormatNumber(p.Reason))
	}

	fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", correct, asked)
	return nil
}

func renderSlots(slots []progression.Slot) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

func renderTerms(terms []float64) string {
	parts := make([]string, len(terms))
	for i, v := range terms {
		parts[i] = progression.FormatNumber(v)
	}
	return strings.Join(parts, ", ")
}

// describeMisses lists which answers were wrong.
func describeMisses(p *progression.Problem, o progression.Outcome) string {
	var misses []string
	for _, h := range p.Hidden {
		if !o.Terms[h] {
			misses = append(misses, fmt.Sprintf("term %d", h+1))
		}
	}
	if !o.KindCorrect {
		misses = append(misses, "kind")
	}
	if !o.ReasonCorrect {
		misses = append(misses, "reason")
	}
	return "Check: " + strings.Join(misses, ", ")
}
