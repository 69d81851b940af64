package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeeshanabi97/kmseg/internal/config"
)

var configInitForce bool

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the kmseg configuration file",
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write a configuration file with the built-in defaults",
	Long: `Write a YAML configuration file populated with the built-in defaults,
ready to be edited and passed back via --config.

Examples:
  kmseg config init kmseg.yaml
  kmseg segment --config kmseg.yaml photo.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}

// runConfigInit executes the config init command.
func runConfigInit(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)
	path := args[0]

	if !configInitForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists: %s (use --force to overwrite)", path)
		}
	}

	if err := config.Save(config.Default(), path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	logger.Info("wrote config file", "path", path)
	return nil
}
