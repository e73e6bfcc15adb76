package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/AnyUserName/bayer-cli/internal/display"
	"github.com/AnyUserName/bayer-cli/internal/encoder"
	"github.com/AnyUserName/bayer-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view <input> <output> [detail level] [darkness]",
	Short: "Interactive dithering preview in the terminal",
	Long: `Opens <input> in a full-screen terminal preview. The frame is
re-dithered live as the view changes; "s" writes the current frame to
<output> exactly (format from its extension).

Keys: ` + display.Keys,
	Args: cobra.MaximumNArgs(4),
	RunE: runView,
}

func init() {
	viewCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
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

	// Output problems are startup errors, not something to find out at
	// the first save.
	if _, err := encoder.NewRegistry().ForPath(pos.output); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if info, err := os.Stat(filepath.Dir(pos.output)); err != nil || !info.IsDir() {
		return fmt.Errorf("output: directory of %s does not exist", pos.output)
	}

	src, err := pipeline.Load(pos.input)
	if err != nil {
		return err
	}
	pal, err = pipeline.ResolvePalette(src, pipeline.Config{Palette: pal, PaletteMethod: method})
	if err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	fg, bg := pal.Hex()
	logVerbose("source %s: %dx%d, palette %s (%s on %s)", pos.input, src.Bounds().Dx(), src.Bounds().Dy(), pal.Name, fg, bg)

	term, err := display.NewTerminal(pal)
	if err != nil {
		return err
	}

	var messages []string
	logf := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		messages = append(messages, msg)
		term.Notify(msg)
	}
	term.Notify(display.Keys)

	loop := pipeline.NewLoop(src, term, term, pipeline.LoopConfig{
		Output:  pos.output,
		Params:  pos.params,
		Palette: pal,
		Quality: quality,
		Logf:    logf,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runErr := loop.Run(ctx)
	term.Close()

	// replay what the status line showed, now that the screen is gone
	for _, m := range messages {
		fmt.Fprintln(cmd.OutOrStdout(), m)
	}
	logVerbose("session ended: %d frame(s) saved, final state %+v", loop.Saves(), loop.State())
	return runErr
}
