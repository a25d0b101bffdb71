package altcover

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Steps prints one status line per pipeline step. Output goes to stderr so
// it never mixes with fimfic2epub's own stdout. Disabled automatically when
// stderr is not a terminal.
type Steps struct {
	enabled bool
	width   int
	styles  struct {
		running lipgloss.Style
		success lipgloss.Style
		failed  lipgloss.Style
	}
}

// Step is a single tracked pipeline step.
type Step struct {
	name    string
	start   time.Time
	tracker *Steps
}

func NewSteps() *Steps {
	s := &Steps{
		enabled: !Flags.NoProgress && term.IsTerminal(int(os.Stderr.Fd())),
		width:   80,
	}
	if w, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil && w > 0 {
		s.width = w
	}

	if !termenv.EnvNoColor() {
		s.styles.running = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		s.styles.success = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		s.styles.failed = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	}

	return s
}

// Start begins tracking a new step.
func (s *Steps) Start(name string) *Step {
	st := &Step{name: name, start: time.Now(), tracker: s}
	s.print(s.styles.running.Render("▶"), name, "")
	return st
}

// Success marks the step as completed.
func (st *Step) Success() {
	t := st.tracker
	t.print(t.styles.success.Render("✓"), st.name, fmt.Sprintf(" (%s)", st.elapsed()))
}

// Failed marks the step as failed.
func (st *Step) Failed(err error) {
	t := st.tracker
	t.print(t.styles.failed.Render("✗"), st.name, fmt.Sprintf(": %v", err))
}

func (st *Step) elapsed() time.Duration {
	return time.Since(st.start).Round(time.Millisecond)
}

func (s *Steps) print(marker, name, suffix string) {
	if !s.enabled {
		return
	}
	line := name + suffix
	// Leave room for the marker and a space.
	if max := s.width - 2; len(line) > max && max > 0 {
		line = line[:max]
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", marker, line)
}
