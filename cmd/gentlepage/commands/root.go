// Package commands implements the CLI commands for gentlepage.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/itsalexli/gentlepage/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "gentlepage",
	Short: "Sanitize scraped pages and profile their design tokens",
	Long: `Gentlepage cleans a downloaded web page's HTML and profiles its
visual style.

The cleaner strips tracking scripts, SEO metadata, cookie-consent widgets
and cosmetic cruft while preserving navigation structure (menus, dropdowns,
hamburger toggles survive intact). The style analyzer tallies the fonts and
colors a page actually uses and lists its external stylesheets.

Examples:
  # Clean a saved page
  gentlepage clean page.html -o cleaned_output.html

  # Clean with extra deny-list entries from a rules file
  gentlepage clean page.html --rules rules.yaml

  # Profile fonts, colors and stylesheets
  gentlepage styles page.html -o style_analysis.txt`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Debug: viper.GetBool("debug"),
			Quiet: viper.GetBool("quiet"),
			JSON:  viper.GetBool("log-json"),
		})
	},
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.gentlepage.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().Bool("log-json", false, "emit logs as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log-json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".gentlepage")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("GENTLEPAGE")
	viper.AutomaticEnv()

	// Config file is optional.
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logInfo prints progress to stderr unless quiet mode is on.
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
