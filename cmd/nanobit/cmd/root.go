package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// app carries state shared by all subcommands of one invocation.
type app struct {
	configPath string
	jobs       int
	cfg        Config
}

// NewRootCommand builds the nanobit command tree.
func NewRootCommand() *cobra.Command {
	a := &app{cfg: DefaultConfig()}

	rootCmd := &cobra.Command{
		Use:   "nanobit",
		Short: "Inspect and compress nanobit payloads",
		Long: `nanobit works with files in the nanobit binary format.

It detects nanobit envelopes, compresses files with LZ4, Zstd or Snappy behind
a one-byte format tag, and restores compressed files without being told the format.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.loadConfig,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().IntVarP(&a.jobs, "jobs", "j", 0, "files processed in parallel (default from config)")

	rootCmd.AddCommand(
		newProbeCmd(a),
		newCompressCmd(a),
		newDecompressCmd(a),
		newInspectCmd(a),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) loadConfig(cmd *cobra.Command, _ []string) error {
	if a.configPath != "" {
		cfg, err := LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	if cmd.Flags().Changed("jobs") {
		a.cfg.Jobs = a.jobs
	}

	return a.cfg.Validate()
}
