package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/nandana05-tech/preprocessing-data-fmcg/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set sheetfix configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input_dir: %s\n", c.InputDir)
		fmt.Fprintf(out, "output_dir: %s\n", c.OutputDir)
		fmt.Fprintf(out, "workers: %d\n", c.Workers)
		fmt.Fprintf(out, "correlation_marker: %s\n", c.CorrelationMarker)
		fmt.Fprintf(out, "report_file: %s\n", c.ReportFile)
		fmt.Fprintf(out, "schema_file: %s\n", c.SchemaFile)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", c.LogFormat)
		fmt.Fprintln(out, "identifiers:")
		for _, id := range c.Identifiers {
			fmt.Fprintf(out, "  %s -> %s (%d values)\n", id.File, id.Column, len(id.Values))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := currentConfig()
		if err != nil {
			return err
		}
		switch key {
		case "input_dir":
			c.InputDir = val
		case "output_dir":
			c.OutputDir = val
		case "workers":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for workers: %v", val)
			}
			c.Workers = i
		case "correlation_marker":
			if strings.TrimSpace(val) == "" {
				return fmt.Errorf("correlation_marker must not be empty")
			}
			c.CorrelationMarker = val
		case "report_file":
			c.ReportFile = val
		case "schema_file":
			c.SchemaFile = val
		case "log_level":
			switch strings.ToLower(val) {
			case "debug", "info", "warn", "error":
				c.LogLevel = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
			}
		case "log_format":
			switch strings.ToLower(val) {
			case "text", "json":
				c.LogFormat = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_format: %s (use text or json)", val)
			}
		case "identifiers":
			ids, err := cfgpkg.LoadIdentifiers(val)
			if err != nil {
				return err
			}
			c.Identifiers = ids
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
