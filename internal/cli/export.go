package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	graphio "github.com/matzehuels/levelgraph/pkg/io"
	"github.com/matzehuels/levelgraph/pkg/pipeline"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output    string // output file (single format) or base path (multiple)
	formats   string // comma-separated output formats
	detailed  bool   // include levels in node labels
	rankDir   string // Graphviz rank direction
	highlight string // comma-separated nodes to highlight
	scale     float64
	refresh   bool
}

// exportCommand renders the graph to one or more files.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the levelled graph as JSON, CSV, DOT, SVG, PNG or PDF",
		Long: `Write the levelled graph to files.

With a single format, -o names the output file. With several formats, -o is
a base path and each file gets its format's extension. CSV output writes the
edge table and a Properties.csv file next to it.

Defaults for --format, --rankdir, --detailed and --scale come from the config
file and LEVELGRAPH_* environment variables.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("format") {
				opts.formats = c.Config.Formats
			}
			if !flags.Changed("rankdir") {
				opts.rankDir = c.Config.RankDir
			}
			if !flags.Changed("detailed") {
				opts.detailed = c.Config.Detailed
			}
			if !flags.Changed("scale") {
				opts.scale = c.Config.Scale
			}
			return c.runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): json, csv, dot, svg, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show levels in node labels")
	cmd.Flags().StringVar(&opts.rankDir, "rankdir", "", "rank direction: TB, LR, BT, RL")
	cmd.Flags().StringVar(&opts.highlight, "highlight", "", "comma-separated nodes to highlight")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, input string, opts exportOpts) error {
	ctx := cmd.Context()

	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts := pipeline.Options{
		Source:    input,
		Input:     c.input,
		Refresh:   opts.refresh,
		Formats:   parseList(opts.formats),
		Detailed:  opts.detailed,
		RankDir:   strings.ToUpper(opts.rankDir),
		Highlight: parseList(opts.highlight),
		Scale:     opts.scale,
		Logger:    c.Logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Rendering "+strings.Join(popts.Formats, ", ")+"...")
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Export failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(result.Artifacts, popts.Formats, input, opts.output)
	if err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Exported %d file(s)", len(paths)))
	printStats(cmd.OutOrStdout(), result.Stats, result.CacheInfo.LoadHit || result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(cmd.OutOrStdout(), p)
	}
	return nil
}

// writeArtifacts writes each requested format and returns the paths written.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	var paths []string
	write := func(path string, data []byte) error {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	}

	base := basePath(output, input)
	for _, format := range formats {
		path := base + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		} else if filepath.Clean(path) == filepath.Clean(input) {
			path = base + ".levels." + format
		}
		if err := write(path, artifacts[format]); err != nil {
			return paths, err
		}
		if format == pipeline.FormatCSV {
			props := filepath.Join(filepath.Dir(path), graphio.PropertiesFile)
			if err := write(props, artifacts[pipeline.PropertiesArtifact]); err != nil {
				return paths, err
			}
		}
	}
	return paths, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .csv, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
