// Package cmd contains commands and subcommands for the levelsetcli
// command-line interface.
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shikarl/levelset"
	"github.com/shikarl/levelset/internal/config"
)

var (
	configFile string

	// Config holds the global configuration loaded by PersistentPreRunE.
	Config *config.Config
)

// Root is the main command.
var Root = &cobra.Command{
	Use:   "levelsetcli",
	Short: "A fast level-set image segmentation tool.",
	Long: `levelsetcli runs the Shi & Karl fast level-set segmentation engine
over a raw intensity raster and an initialization mask.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}
		return labelErr(startup(configFile))
	},
}

func startup(configFile string) error {
	var err error
	Config, err = config.ReadFile(configFile)
	if err != nil {
		return err
	}
	level, err := logrus.ParseLevel(Config.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LogLevel %q: %w", Config.LogLevel, err)
	}
	logrus.SetLevel(level)
	return nil
}

func labelErr(err error) error {
	if err != nil {
		return fmt.Errorf("ERROR: %v", err)
	}
	return nil
}

func init() {
	Root.AddCommand(versionCmd)
	Root.PersistentFlags().StringVar(&configFile, "config", "./levelset.toml", "configuration file location")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("levelsetcli v%s\n", levelset.Version)
	},
}
