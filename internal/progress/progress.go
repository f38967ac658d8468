package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Bar tracks completed items of a run
type Bar interface {
	Add(n int) error
	Finish() error
}

// New returns a progress bar on w. The bar only renders when w is a terminal.
func New(w io.Writer, total int, description string) Bar {
	visible := IsTerminal(w)
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetVisibility(visible),
		progressbar.OptionOnCompletion(func() {
			if visible {
				fmt.Fprintln(w)
			}
		}),
	)
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Noop discards progress updates
type Noop struct{}

func (Noop) Add(int) error { return nil }
func (Noop) Finish() error { return nil }
