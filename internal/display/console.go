// Package display renders search progress and the final report on a terminal.
package display

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"targetsearch/internal/search"
)

var _ search.Observer = (*Console)(nil)

// Console prints stage progress and implements search.Observer
type Console struct {
	out         io.Writer
	interactive bool
	bar         *progressbar.ProgressBar

	bold   *color.Color
	cyan   *color.Color
	green  *color.Color
	red    *color.Color
	yellow *color.Color
}

// NewConsole creates a console writing to out. Spinner and colours are only
// used when interactive is true.
func NewConsole(out io.Writer, interactive bool) *Console {
	c := &Console{
		out:         out,
		interactive: interactive,
		bold:        color.New(color.Bold),
		cyan:        color.New(color.FgCyan),
		green:       color.New(color.FgGreen),
		red:         color.New(color.FgRed),
		yellow:      color.New(color.FgYellow),
	}
	if !interactive {
		for _, col := range []*color.Color{c.bold, c.cyan, c.green, c.red, c.yellow} {
			col.DisableColor()
		}
	}
	return c
}

// NewStdoutConsole creates a console on stdout, interactive when stdout is a terminal
func NewStdoutConsole() *Console {
	fd := os.Stdout.Fd()
	return NewConsole(os.Stdout, isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%fs", d.Seconds())
}

func (c *Console) StageStarted(stage search.Stage, elapsed time.Duration) {
	c.cyan.Fprintf(c.out, "Beginning Stage %d at %s\n", stage.Ordinal, seconds(elapsed))
	if !c.interactive {
		return
	}
	c.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription(fmt.Sprintf("Searching %s", stage.Root)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}

func (c *Console) MatchRecorded(stage search.Stage, target search.Target, path string) {
	if c.bar != nil {
		c.bar.Describe(fmt.Sprintf("Stage %d found %s", stage.Ordinal, target.Name))
		c.bar.Add(1)
	}
}

func (c *Console) StageFinished(result search.StageResult) {
	if c.bar != nil {
		c.bar.Finish()
		c.bar = nil
	}
	if result.Skipped {
		c.yellow.Fprintf(c.out, "Skipping Stage %d: %s\n", result.Ordinal, result.Reason)
		return
	}
	c.cyan.Fprintf(c.out, "Ending Stage %d at %s\n", result.Ordinal, seconds(result.Ended))
}

func (c *Console) AllFound(elapsed time.Duration) {
	c.green.Fprintf(c.out, "All targets found at %s\n", seconds(elapsed))
}

// PrintReport prints one line per target followed by timing information.
// Fingerprints, when given, are printed under the matching path.
func (c *Console) PrintReport(report *search.Report, fingerprints []search.Fingerprint) {
	byPath := make(map[string]search.Fingerprint, len(fingerprints))
	for _, fp := range fingerprints {
		byPath[fp.Path] = fp
	}

	c.bold.Fprintln(c.out, "\nResults:")
	for _, res := range report.Results {
		if !res.Found {
			c.red.Fprintf(c.out, "%s: Not found\n", res.Target.Name)
			continue
		}
		c.green.Fprintf(c.out, "%s: %s\n", res.Target.Name, res.Path)
		if fp, ok := byPath[res.Path]; ok {
			fmt.Fprintf(c.out, "    xxhash %s\n", fp)
		}
	}
	fmt.Fprintln(c.out)

	if report.AllFoundAt != nil {
		c.green.Fprintf(c.out, "All targets found after %s since start.\n", seconds(*report.AllFoundAt))
	}
	fmt.Fprintf(c.out, "Total run time: %s\n", seconds(report.Elapsed))
}
