package commands

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/itsalexli/gentlepage/internal/logger"
	"github.com/itsalexli/gentlepage/internal/output"
	"github.com/itsalexli/gentlepage/pkg/cleaner"
	"github.com/itsalexli/gentlepage/pkg/cleaner/gentle"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <input>",
	Short: "Strip tracking, SEO and cosmetic cruft from a saved page",
	Long: `Clean reads a saved HTML page, runs it through the rule pipeline and
writes the pretty-printed result.

Navigation regions survive untouched: nav and header-with-nav subtrees keep
their inline styles, icon attributes and dropdown toggles.

Examples:
  gentlepage clean page.html
  gentlepage clean page.html -o cleaned_output.html --stats
  gentlepage clean page.html --rules extra-rules.yaml
  gentlepage clean page.html --no-clean -o raw-copy.html`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()
	flags.StringP("output", "o", "cleaned_output.html", "output file")
	flags.String("rules", "", "JSON or YAML file with deny-list overrides")
	flags.Int("min-text", gentle.DefaultConfig().MinTextRunes,
		"substantial-text threshold in runes (0 disables hidden-element pruning)")
	flags.Bool("stats", false, "print the full cleaning stats")
	flags.String("stats-file", "", "write stats as JSON or YAML (by extension)")
	flags.Bool("no-clean", false, "pass the page through unchanged")
}

func runClean(cmd *cobra.Command, args []string) error {
	input := args[0]
	outPath, _ := cmd.Flags().GetString("output")
	rulesPath, _ := cmd.Flags().GetString("rules")
	minText, _ := cmd.Flags().GetInt("min-text")
	showStats, _ := cmd.Flags().GetBool("stats")
	statsPath, _ := cmd.Flags().GetString("stats-file")
	noClean, _ := cmd.Flags().GetBool("no-clean")

	// Read before anything else: a missing input must abort cleanly with
	// no partial output written.
	raw, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading input %s: %w", input, err)
	}

	cfg := gentle.DefaultConfig()
	cfg.Debug = viper.GetBool("debug")
	if rulesPath != "" {
		overrides, err := gentle.FromFile(rulesPath)
		if err != nil {
			return err
		}
		cfg = cfg.Merge(overrides)
	}
	if cmd.Flags().Changed("min-text") {
		cfg.MinTextRunes = minText
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var pipeline cleaner.Cleaner = gentle.New(cfg)
	if noClean {
		pipeline = cleaner.NewNoop()
	}
	logger.Debug("cleaning page", "input", input, "cleaner", pipeline.Name())

	var cleaned string
	if g, ok := pipeline.(*gentle.Cleaner); ok {
		result := g.CleanWithStats(string(raw))
		for _, w := range result.Warnings {
			logger.Warn("cleaning warning", "phase", w.Phase, "message", w.Message, "context", w.Context)
		}
		if cfg.Debug {
			for rule, count := range result.Stats.RuleRemovals {
				logger.Debug("rule removals", "rule", rule, "count", count)
			}
		}
		if showStats {
			fmt.Fprint(os.Stderr, result.Stats.String())
		}
		if statsPath != "" {
			if err := writeStatsFile(statsPath, result); err != nil {
				return err
			}
		}
		cleaned = result.Content
	} else {
		cleaned, err = pipeline.Clean(string(raw))
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(outPath, []byte(cleaned), 0o644); err != nil {
		return fmt.Errorf("writing output %s: %w", outPath, err)
	}

	originalSize := len(raw)
	cleanedSize := len(cleaned)
	reduction := 0.0
	if originalSize > 0 {
		reduction = float64(originalSize-cleanedSize) / float64(originalSize) * 100
	}

	logInfo("Cleaned HTML saved to %s", outPath)
	logInfo("Original size: %s characters", humanize.Comma(int64(originalSize)))
	logInfo("Cleaned size:  %s characters", humanize.Comma(int64(cleanedSize)))
	logInfo("Reduced by:    %s characters (%.1f%%)",
		humanize.Comma(int64(originalSize-cleanedSize)), reduction)

	return nil
}

// writeStatsFile exports the run's stats and warnings, format chosen by
// the file extension.
func writeStatsFile(path string, result *gentle.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating stats file %s: %w", path, err)
	}
	defer f.Close()

	// The cleaned markup goes to the output file; the export carries only
	// the numbers and warnings.
	report := struct {
		Stats    *gentle.Stats    `json:"stats" yaml:"stats"`
		Warnings []gentle.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	}{Stats: result.Stats, Warnings: result.Warnings}

	if err := output.Encode(f, output.FormatForPath(path), report); err != nil {
		return fmt.Errorf("writing stats file %s: %w", path, err)
	}
	return nil
}
