package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pixabaysource",
	Short: "Browse and import Pixabay photos as CMS assets",
	Long: strings.TrimSpace(`
Serves the Pixabay asset source over HTTP and offers a few maintenance
commands. Configuration is read from conf/config.json unless --config is
given; PIXABAY_API_KEY overrides the api key.
`),
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is conf/config.json)")
}
