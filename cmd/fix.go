package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/nandana05-tech/preprocessing-data-fmcg/internal/config"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/parser"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/pipeline"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/report"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/utils"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/writer"
)

var (
	fixWorkers     int
	fixIdentifiers string
	fixNoReport    bool
	fixJSON        bool
)

var fixCmd = &cobra.Command{
	Use:   "fix [input-dir] [output-dir]",
	Short: "Normalize every CSV/TSV file in a folder",
	Long: `Normalize every CSV/TSV file directly inside input-dir and write the results,
plus a fix report and a schema reference, to output-dir. Directories default
to input_dir and output_dir from the configuration.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		inDir, outDir := c.InputDir, c.OutputDir
		if len(args) > 0 {
			inDir = args[0]
		}
		if len(args) > 1 {
			outDir = args[1]
		}
		if filepath.Clean(inDir) == filepath.Clean(outDir) {
			return fmt.Errorf("output dir must differ from input dir: %s", inDir)
		}
		p, err := buildPipeline(c)
		if err != nil {
			return err
		}
		paths, err := utils.ListFiles(inDir, parser.Supported)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no CSV/TSV files found in %s", inDir)
		}

		out := cmd.OutOrStdout()
		if !fixJSON {
			printBanner(out, inDir, outDir, len(paths))
		}
		workers := c.Workers
		if fixWorkers > 0 {
			workers = fixWorkers
		}
		runner := &pipeline.Runner{Pipeline: p, Workers: workers, Sink: writer.Dir(outDir)}
		res := runner.Run(cmd.Context(), rejectCollisions(parser.LoadAll(paths)))

		if !fixNoReport {
			if err := report.WriteArtifacts(outDir, c.ReportFile, c.SchemaFile, res); err != nil {
				return err
			}
		}
		if fixJSON {
			b, err := utils.PrettyJSON(summarize(res))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		printResults(out, res)
		if !fixNoReport {
			fmt.Fprintf(out, "✓ Report saved to %s\n", filepath.Join(outDir, c.ReportFile))
			fmt.Fprintf(out, "✓ Schema reference saved to %s\n", filepath.Join(outDir, c.SchemaFile))
		}
		return nil
	},
}

// buildPipeline assembles the pipeline from config, honoring --identifiers.
func buildPipeline(c *cfgpkg.Global) (*pipeline.Pipeline, error) {
	ids := c.IdentifierTable()
	if fixIdentifiers != "" {
		list, err := cfgpkg.LoadIdentifiers(fixIdentifiers)
		if err != nil {
			return nil, err
		}
		override := *c
		override.Identifiers = list
		ids = override.IdentifierTable()
	}
	return pipeline.New(ids, c.CorrelationMarker), nil
}

// rejectCollisions fails every input whose output file name matches an
// earlier input's, so no result is silently overwritten.
func rejectCollisions(inputs []pipeline.Input) []pipeline.Input {
	owner := make(map[string]string, len(inputs))
	for i, in := range inputs {
		// case-insensitive filesystems map both names to one file
		key := strings.ToLower(writer.OutputName(in.Name))
		if first, ok := owner[key]; ok {
			inputs[i] = pipeline.Input{Name: in.Name, Err: fmt.Errorf("output name collides with %s", first)}
			continue
		}
		owner[key] = in.Name
	}
	return inputs
}

func printBanner(w io.Writer, inDir, outDir string, files int) {
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "CSV FIXER FOR GOOGLE SHEETS & LOOKER")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\nInput folder : %s\n", inDir)
	fmt.Fprintf(w, "Output folder: %s\n", outDir)
	fmt.Fprintf(w, "Files        : %d\n\n", files)
}

func printResults(w io.Writer, res *pipeline.Results) {
	for _, r := range res.All() {
		if r.OK() {
			fmt.Fprintf(w, "✓ %s (%d rows, %d columns, %d fixes)\n", r.Name, r.Rows, r.Columns, len(r.Fixes))
		} else {
			fmt.Fprintf(w, "✗ %s: %s\n", r.Name, r.Error())
		}
	}
	ok, failed := res.Counts()
	fmt.Fprintf(w, "\nProcessed %d files: %d succeeded, %d failed\n", res.Len(), ok, failed)
}

type fileSummary struct {
	Name    string   `json:"name"`
	Status  string   `json:"status"`
	Rows    int      `json:"rows,omitempty"`
	Columns []string `json:"columns,omitempty"`
	Fixes   []string `json:"fixes,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type runSummary struct {
	RunID     string        `json:"run_id"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Files     []fileSummary `json:"files"`
}

func summarize(res *pipeline.Results) runSummary {
	ok, failed := res.Counts()
	s := runSummary{RunID: res.RunID, Succeeded: ok, Failed: failed}
	for _, r := range res.All() {
		s.Files = append(s.Files, fileSummary{
			Name:    r.Name,
			Status:  string(r.Status),
			Rows:    r.Rows,
			Columns: r.ColumnNames,
			Fixes:   r.Fixes,
			Error:   r.Error(),
		})
	}
	return s
}

func init() {
	rootCmd.AddCommand(fixCmd)
	fixCmd.Flags().IntVar(&fixWorkers, "workers", 0, "parallel files (overrides config)")
	fixCmd.Flags().StringVar(&fixIdentifiers, "identifiers", "", "YAML file listing identifier columns (replaces configured identifiers)")
	fixCmd.Flags().BoolVar(&fixNoReport, "no-report", false, "skip writing the fix report and schema reference")
	fixCmd.Flags().BoolVar(&fixJSON, "json", false, "print a JSON summary instead of text")
}
