package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/edutrend-cli/internal/config"
	"github.com/KaramelBytes/edutrend-cli/internal/pipeline"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
	// cfgErr holds the load failure so commands that need config can report it.
	cfgErr error
)

var rootCmd = &cobra.Command{
	Use:   "edutrend",
	Short: "edutrend: dropout and performance trends per university branch",
	Long: `edutrend loads the student performance and first-year dropout spreadsheets,
harmonizes and merges them per branch, then writes a year-by-year chart and a
JSON statistical report (global statistics, per-branch trends and rankings).

Run without arguments to process the default data/ layout.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cmd.ErrOrStderr(), c.LogLevel, debug)
		r := &pipeline.Runner{
			Config: c,
			Logger: logger,
			Out:    cmd.OutOrStdout(),
			Now:    time.Now,
		}
		_, err = r.Run(cmd.Context())
		return err
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("✗ Error:"), err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.edutrend/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	cfg, cfgErr = cfgpkg.Load(cfgFile)
}

func requireConfig() (*cfgpkg.Global, error) {
	if cfgErr != nil {
		return nil, fmt.Errorf("load config: %w", cfgErr)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config loaded")
	}
	return cfg, nil
}
