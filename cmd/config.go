package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/edutrend-cli/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set edutrend configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "data_dir: %s\n", c.DataDir)
		fmt.Fprintf(out, "performance_file: %s\n", c.PerformanceFile)
		fmt.Fprintf(out, "dropout_file: %s\n", c.DropoutFile)
		if c.Sheet != "" {
			fmt.Fprintf(out, "sheet: %s\n", c.Sheet)
		}
		fmt.Fprintf(out, "report_dir: %s\n", c.ReportDir)
		fmt.Fprintf(out, "report_file: %s\n", c.ReportFile)
		fmt.Fprintf(out, "image_dir: %s\n", c.ImageDir)
		fmt.Fprintf(out, "image_file: %s\n", c.ImageFile)
		fmt.Fprintf(out, "image_dpi: %d\n", c.ImageDPI)
		fmt.Fprintf(out, "head_rows: %d\n", c.HeadRows)
		fmt.Fprintf(out, "max_columns: %d\n", c.MaxColumns)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := requireConfig()
		if err != nil {
			return err
		}
		next := *c
		switch key {
		case "data_dir":
			next.DataDir = val
		case "performance_file":
			next.PerformanceFile = val
		case "dropout_file":
			next.DropoutFile = val
		case "sheet":
			next.Sheet = val
		case "report_dir":
			next.ReportDir = val
		case "report_file":
			next.ReportFile = val
		case "image_dir":
			next.ImageDir = val
		case "image_file":
			next.ImageFile = val
		case "image_dpi", "head_rows", "max_columns":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for %s: %w", key, err)
			}
			switch key {
			case "image_dpi":
				next.ImageDPI = i
			case "head_rows":
				next.HeadRows = i
			default:
				next.MaxColumns = i
			}
		case "log_level":
			next.LogLevel = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := next.Validate(); err != nil {
			return err
		}
		path, err := cfgpkg.Save(&next, cfgFile)
		if err != nil {
			return err
		}
		*c = next
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved config to %s\n", path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			// A --config path that does not exist yet is the file to create.
			if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			c = cfgpkg.Default()
		}
		path := cfgFile
		if path == "" {
			if path, err = cfgpkg.DefaultPath(); err != nil {
				return err
			}
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}
		if path, err = cfgpkg.Save(c, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote config to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
}
