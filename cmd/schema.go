package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/parser"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/pipeline"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/report"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <file> [file...]",
	Short: "Print suggested column types for files without writing output",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		p, err := buildPipeline(c)
		if err != nil {
			return err
		}
		for _, a := range args {
			if _, err := os.Stat(a); err != nil {
				return fmt.Errorf("file not found: %s", a)
			}
		}
		runner := &pipeline.Runner{Pipeline: p, Workers: c.Workers}
		res := runner.Run(cmd.Context(), parser.LoadAll(args))
		for _, r := range res.All() {
			if !r.OK() {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s: %s\n", r.Name, r.Error())
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), report.SchemaReference(res))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
