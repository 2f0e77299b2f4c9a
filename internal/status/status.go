package status

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ANSI escape codes
const (
	clearLine  = "\033[2K"
	moveUp     = "\033[A"
	moveToCol0 = "\r"
	reset      = "\033[0m"
	bold       = "\033[1m"
	dim        = "\033[2m"
	green      = "\033[32m"
	red        = "\033[31m"
)

// Progress bar characters
const (
	barFilled = "█"
	barEmpty  = "░"
	barWidth  = 20
)

// Writer handles in-place stage progress updates on the terminal.
type Writer struct {
	w            io.Writer
	mu           sync.Mutex
	linesWritten int
}

// New creates a status writer that outputs to stdout.
func New() *Writer {
	return &Writer{w: os.Stdout}
}

// NewWithWriter creates a status writer with a custom output.
func NewWithWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Clear removes previously written status lines.
func (s *Writer) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < s.linesWritten; i++ {
		fmt.Fprint(s.w, moveUp+clearLine)
	}
	fmt.Fprint(s.w, moveToCol0)
	s.linesWritten = 0
}

// Update clears previous status and writes new status.
func (s *Writer) Update(lines ...string) {
	s.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range lines {
		fmt.Fprintln(s.w, line)
	}
	s.linesWritten = len(lines)
}

// progressBar generates a progress bar string.
func progressBar(completed, total int) string {
	if total == 0 {
		return strings.Repeat(barEmpty, barWidth)
	}

	filled := (completed * barWidth) / total
	if filled > barWidth {
		filled = barWidth
	}

	return green + strings.Repeat(barFilled, filled) + reset +
		dim + strings.Repeat(barEmpty, barWidth-filled) + reset
}

// Stage displays the currently running stage.
func (s *Writer) Stage(stageNum, totalStages int, stageName string) {
	bar := progressBar(stageNum-1, totalStages)
	line := fmt.Sprintf("%s %s%d/%d%s %s%s%s", bar, dim, stageNum, totalStages, reset, bold, stageName, reset)
	s.Update(line)
}

// Complete shows completion status.
func (s *Writer) Complete(totalStages int) {
	bar := progressBar(totalStages, totalStages)
	lines := []string{
		fmt.Sprintf("%s %s%d/%d%s", bar, dim, totalStages, totalStages, reset),
		fmt.Sprintf("%s✓ Complete%s", green+bold, reset),
	}

	s.Update(lines...)
}

// Error shows a failed stage. Error lines persist instead of being cleared
// by the next update.
func (s *Writer) Error(stageNum, totalStages int, stageName string, err error) {
	s.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()

	bar := progressBar(stageNum-1, totalStages)
	fmt.Fprintln(s.w, fmt.Sprintf("%s %s%d/%d%s", bar, dim, stageNum, totalStages, reset))
	fmt.Fprintln(s.w, fmt.Sprintf("%s✗ %s failed%s", red+bold, stageName, reset))
	fmt.Fprintln(s.w, fmt.Sprintf("%s%v%s", dim, err, reset))

	s.linesWritten = 0
}
