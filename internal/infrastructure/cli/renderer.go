package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/doeshing/hackassist/internal/domain"
	"github.com/doeshing/hackassist/internal/ports"
)

const banner = `
 _   _            _     _            _     _              _
| | | | __ _  ___| | __/ \   ___ ___(_)___| |_ __ _ _ __ | |_
| |_| |/ _' |/ __| |/ / _ \ / __/ __| / __| __/ _' | '_ \| __|
|  _  | (_| | (__|   < ___ \\__ \__ \ \__ \ || (_| | | | | |_
|_| |_|\__,_|\___|_|\_\_/ \_\___/___/_|___/\__\__,_|_| |_|\__|
`

var separator = strings.Repeat("=", 60)

type styles struct {
	banner  lipgloss.Style
	warning lipgloss.Style
	label   lipgloss.Style
	command lipgloss.Style
	hint    lipgloss.Style
	failure lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		banner:  r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		label:   r.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		command: r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		hint:    r.NewStyle().Faint(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Renderer implements ports.Presenter on a terminal.
type Renderer struct {
	out     io.Writer
	styles  styles
	animate bool
}

// NewRenderer styles output for w. Colors and the spinner are only used when
// w is a terminal.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stdout
	}
	return &Renderer{
		out:     w,
		styles:  newStyles(lipgloss.NewRenderer(w)),
		animate: isTerminal(w),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Renderer) Welcome(env domain.Environment) {
	fmt.Fprintln(r.out, r.styles.banner.Render(banner))
	fmt.Fprintln(r.out, r.styles.warning.Render("WARNING: For legitimate security research only!"))
	fmt.Fprintf(r.out, "%s %s\n", r.styles.label.Render("Working directory:"), env.WorkingDir)
	fmt.Fprintf(r.out, "%s %s\n", r.styles.label.Render("System:"), env.SystemInfo)
	fmt.Fprintf(r.out, "%s %s\n", r.styles.label.Render("Session started:"), env.StartedAt.Format(domain.DisplayTimeFormat))
	fmt.Fprintln(r.out, "\n"+separator)
	fmt.Fprintln(r.out, r.styles.label.Render("COMMANDS:"))
	fmt.Fprintf(r.out, "  '%s' + Enter - New prompt\n", domain.TokenNewPrompt)
	fmt.Fprintf(r.out, "  '%s' + Enter - Close conversation\n", domain.TokenClose)
	fmt.Fprintf(r.out, "  '%s' / '%s' - Accept/Deny suggested commands\n", domain.TokenAccept, domain.TokenDecline)
	fmt.Fprintln(r.out, separator)
	fmt.Fprintf(r.out, "\nEnter your first prompt (or '%s' to close):\n", domain.TokenClose)
}

func (r *Renderer) PromptHint(afterCommand bool) {
	if afterCommand {
		fmt.Fprintln(r.out, r.styles.hint.Render(fmt.Sprintf("\nContinue working... (enter '%s' for new prompt, '%s' to close)", domain.TokenNewPrompt, domain.TokenClose)))
		return
	}
	fmt.Fprintln(r.out, r.styles.hint.Render(fmt.Sprintf("Enter new prompt (or '%s' for prompt mode, '%s' to close):", domain.TokenNewPrompt, domain.TokenClose)))
}

// Thinking shows progress until the returned function is called.
func (r *Renderer) Thinking() func() {
	if !r.animate {
		fmt.Fprintln(r.out, "Thinking...")
		return func() {}
	}
	spinner := NewSpinner(r.out, "Thinking...")
	spinner.Start()
	return spinner.Stop
}

func (r *Renderer) Response(text string) {
	fmt.Fprintf(r.out, "\n%s\n%s\n", r.styles.label.Render("AI Response:"), text)
}

func (r *Renderer) Suggestion(cmd domain.SuggestedCommand) {
	fmt.Fprintf(r.out, "\n%s\n  %s\n", r.styles.label.Render("Suggested command:"), r.styles.command.Render(cmd.Command))
}

func (r *Renderer) Declined() {
	fmt.Fprintln(r.out, "Command declined.")
}

func (r *Renderer) Executing(command string) {
	fmt.Fprintf(r.out, "Executing: %s\n", r.styles.command.Render(command))
}

func (r *Renderer) Output(result domain.ExecutionResult) {
	fmt.Fprintf(r.out, "\n%s\n%s\n", r.styles.label.Render("Command Output:"), strings.TrimRight(result.Transcript(), "\n"))
}

// Failure prints a message that names the failing stage.
func (r *Renderer) Failure(err error) {
	var msg string
	switch {
	case errors.Is(err, domain.ErrRequestFailed):
		msg = fmt.Sprintf("Error getting AI response: %v", err)
	case errors.Is(err, domain.ErrSpawnFailed):
		msg = fmt.Sprintf("Error executing command: %v", err)
	default:
		msg = fmt.Sprintf("Error: %v", err)
	}
	fmt.Fprintln(r.out, r.styles.failure.Render(msg))
}

func (r *Renderer) Goodbye() {
	fmt.Fprintln(r.out, "Closing conversation. Goodbye!")
}

var _ ports.Presenter = (*Renderer)(nil)
