package cmd

import (
	"fmt"
	"time"

	"github.com/AnyUserName/bayer-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var convertWorkers int

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output> [detail level] [darkness]",
	Short: "Dither an image (or a directory of images) to disk",
	Long: `Dithers <input> and writes the two-tone result to <output>. The output
format follows the output file extension (png, jpg, gif, bmp, tif, and
webp/avif when cwebp/avifenc are installed).

If <output> is a directory the result is named <stem>-dithered.<ext>.
If <input> is a directory every image in it is converted that way into
the <output> directory.`,
	Args: cobra.MaximumNArgs(4),
	RunE: runConvert,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, convertCmd} {
		c.Flags().IntVarP(&convertWorkers, "workers", "w", 0, "parallel workers for directory input (0 = NumCPU)")
		c.Flags().SetInterspersed(false)
	}
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	pos, ok, err := parsePositional(args)
	if !ok {
		printUsage(cmd)
		return nil
	}
	if err != nil {
		return err
	}
	pal, method, err := resolvePalette()
	if err != nil {
		return err
	}

	start := time.Now()
	logVerbose("input:   %s", pos.input)
	logVerbose("output:  %s", pos.output)
	logVerbose("params:  level=%s darkness=%g inverted=%t", pos.params.Level, pos.params.Darkness, pos.params.Inverted)
	if method != "" {
		logVerbose("palette: derived per image (%s)", method)
	} else {
		fg, bg := pal.Hex()
		logVerbose("palette: %s (%s on %s)", pal.Name, fg, bg)
	}

	p := pipeline.New(pipeline.Config{
		Input:         pos.input,
		Output:        pos.output,
		Params:        pos.params,
		Palette:       pal,
		PaletteMethod: method,
		Quality:       quality,
		Workers:       convertWorkers,
		Verbose:       verbose,
	})
	results, err := p.Run()
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	var total int64
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved dithered image to: %s\n", r.Output)
		logVerbose("%s -> %s (%s)", r.Input, r.Output, formatBytes(int64(r.Bytes)))
		total += int64(r.Bytes)
	}
	logVerbose("%d file(s), %s in %s", len(results), formatBytes(total), time.Since(start).Round(time.Millisecond))
	return nil
}
