package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/phseiff/gender-render/pkg/genderrender"
)

var (
	renderOutput   string
	batchOutputDir string
)

var renderCmd = &cobra.Command{
	Use:   "render [template] [pronoun-data]",
	Short: "Render a template for the people in a pronoun data file",
	Long: `Renders one template with one pronoun data file and writes the result to
stdout, or to the file given with --output.

Example:
  genderrender render letter.gr sam.idpd -o letter.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

var batchCmd = &cobra.Command{
	Use:   "batch [template] [pronoun-data...]",
	Short: "Render a template once per pronoun data file",
	Long: `Renders one template concurrently for several pronoun data files.

Without --output-dir the results are written to stdout, each under a header
naming its pronoun data file. With --output-dir every result is written to
<output-dir>/<pronoun data file name>.txt.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runBatch,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Write the result to this file")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "", "Write one file per pronoun data file into this directory")
}

func runRender(cmd *cobra.Command, args []string) error {
	tmpl, err := engine.ParseFile(args[0])
	if err != nil {
		return err
	}
	pd, err := engine.LoadPronounData(args[1])
	if err != nil {
		return err
	}
	out, err := engine.Render(tmpl, pd)
	if err != nil {
		return err
	}

	if renderOutput == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}
	if err := os.WriteFile(renderOutput, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.WithField("path", renderOutput).Info("Wrote rendered template")
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	tmpl, err := engine.ParseFile(args[0])
	if err != nil {
		return err
	}

	files := args[1:]
	pds := make([]genderrender.PronounData, len(files))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(engine.Config().MaxParallelRenders)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pd, err := engine.LoadPronounData(path)
			if err != nil {
				return err
			}
			pds[i] = pd
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	results, err := engine.RenderBatch(cmd.Context(), tmpl, pds)
	if err != nil {
		return err
	}

	if batchOutputDir == "" {
		w := cmd.OutOrStdout()
		for i, out := range results {
			fmt.Fprintf(w, "==> %s <==\n%s\n", files[i], out)
		}
		return nil
	}

	if err := os.MkdirAll(batchOutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for i, out := range results {
		path := filepath.Join(batchOutputDir, outputName(files[i]))
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	logger.WithFields(genderrender.Fields{"dir": batchOutputDir, "files": len(results)}).Info("Wrote rendered templates")
	return nil
}

// outputName maps "people/sam.idpd" to "sam.txt".
func outputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".txt"
}
