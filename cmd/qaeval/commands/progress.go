package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type progressBar struct {
	writer io.Writer
	total  int
	start  time.Time
	isTTY  bool
}

func newProgressBar(writer io.Writer, total int) *progressBar {
	return &progressBar{
		writer: writer,
		total:  total,
		start:  time.Now(),
		isTTY:  isTerminal(writer),
	}
}

func (p *progressBar) Update(completed, total int) {
	if total <= 0 {
		total = p.total
	}
	elapsed := time.Since(p.start).Truncate(time.Second)
	if total <= 0 {
		if p.isTTY {
			fmt.Fprintf(p.writer, "\rScored %d records (%s)", completed, elapsed)
		} else {
			fmt.Fprintf(p.writer, "Scored %d records (%s)\n", completed, elapsed)
		}
		return
	}

	width := 30
	ratio := float64(completed) / float64(total)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))

	bar := strings.Repeat("=", filled) + strings.Repeat(".", width-filled)
	percent := int(ratio * 100)

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	line := fmt.Sprintf("[%s] %3d%% (%d/%d) %s", barStyle.Render(bar), percent, completed, total, elapsed)
	if p.isTTY {
		fmt.Fprintf(p.writer, "\r%s", line)
	} else {
		fmt.Fprintf(p.writer, "%s\n", line)
	}

	if completed >= total {
		fmt.Fprintln(p.writer)
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func progressWriter(cmd *cobra.Command) io.Writer {
	stderr := cmd.ErrOrStderr()
	stdout := cmd.OutOrStdout()

	if isTerminal(stderr) {
		return stderr
	}
	if isTerminal(stdout) {
		return stdout
	}
	return stderr
}
