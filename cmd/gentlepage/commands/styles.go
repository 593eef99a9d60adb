package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/itsalexli/gentlepage/internal/logger"
	"github.com/itsalexli/gentlepage/internal/output"
	"github.com/itsalexli/gentlepage/pkg/styles"
)

var stylesCmd = &cobra.Command{
	Use:   "styles <input>",
	Short: "Profile a page's fonts, colors and stylesheets",
	Long: `Styles scans a saved HTML page for design tokens: colors and fonts in
<style> blocks and inline style attributes, fill/stroke colors on SVG
elements, and external stylesheet references.

A truncated summary is printed to stdout; the full untruncated report is
written to the output file.

Examples:
  gentlepage styles page.html
  gentlepage styles page.html -o style_analysis.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runStyles,
}

func init() {
	rootCmd.AddCommand(stylesCmd)

	stylesCmd.Flags().StringP("output", "o", "style_analysis.txt", "report file")
	stylesCmd.Flags().String("export", "", "also write the analysis as JSON or YAML (by extension)")
}

func runStyles(cmd *cobra.Command, args []string) error {
	input := args[0]
	outPath, _ := cmd.Flags().GetString("output")
	exportPath, _ := cmd.Flags().GetString("export")

	raw, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading input %s: %w", input, err)
	}

	logger.Debug("analyzing styles", "input", input, "bytes", len(raw))

	analysis, err := styles.Analyze(string(raw))
	if err != nil {
		return err
	}

	fmt.Print(styles.Summary(analysis))

	if err := os.WriteFile(outPath, []byte(styles.Full(analysis)), 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", outPath, err)
	}
	logInfo("Detailed analysis saved to %s", outPath)

	if exportPath != "" {
		f, err := os.Create(exportPath)
		if err != nil {
			return fmt.Errorf("creating export file %s: %w", exportPath, err)
		}
		defer f.Close()
		if err := output.Encode(f, output.FormatForPath(exportPath), analysis); err != nil {
			return fmt.Errorf("writing export file %s: %w", exportPath, err)
		}
		logInfo("Machine-readable analysis saved to %s", exportPath)
	}

	return nil
}
