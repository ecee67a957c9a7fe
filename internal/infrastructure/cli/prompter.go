package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/doeshing/hackassist/internal/domain"
	"github.com/doeshing/hackassist/internal/ports"
)

// Prompter reads requests and confirmations from one shared input stream.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter constructs a prompter referencing stdio.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// ReadLine implements ports.LineReader. A final line without a newline is
// returned before io.EOF is reported.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm implements ports.Confirmer. Anything other than y or n asks again.
func (p *Prompter) Confirm(domain.SuggestedCommand) (domain.Decision, error) {
	for {
		answer, err := p.ReadLine("\nExecute this command? (y/n): ")
		if err != nil {
			return domain.DecisionDecline, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case domain.TokenAccept:
			return domain.DecisionAccept, nil
		case domain.TokenDecline:
			return domain.DecisionDecline, nil
		}
		fmt.Fprintln(p.out, "Invalid choice. Please enter 'y' or 'n'")
	}
}

var (
	_ ports.LineReader = (*Prompter)(nil)
	_ ports.Confirmer  = (*Prompter)(nil)
)
