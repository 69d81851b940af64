// Package cli provides the command-line interface for kmseg.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zeeshanabi97/kmseg/internal/config"
	"github.com/zeeshanabi97/kmseg/internal/version"
)

var (
	// Global config file flag
	globalConfigPath string

	// Configuration loaded before any command runs. Flags the user sets
	// explicitly still override it.
	cfg = config.Default()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "kmseg",
		Short: "K-means image color segmentation",
		Long: `Kmseg segments an image into K clusters by color using k-means clustering.

Each pixel is assigned to one of K clusters, producing a color-quantised
rendering, per-cluster binary masks, and composites where hidden clusters
are blacked out while visible clusters keep their original pixels. An
optional preprocessing filter (gaussian, median, bilateral, sharpen) runs
before clustering.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(globalConfigPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Accept underscores in flag names as dashes (--kernel_size == --kernel-size).
	rootCmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&globalConfigPath, "config", "", "config file path (YAML)")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(segmentCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(paletteCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command logger from the verbose and quiet flags.
func newLogger(cmd *cobra.Command) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	level := hclog.Info
	if cfg.Output.Verbose {
		level = hclog.Debug
	}
	if verbose {
		level = hclog.Debug
	}
	if quiet {
		level = hclog.Error
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "kmseg",
		Output: os.Stderr,
		Level:  level,
	})
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
