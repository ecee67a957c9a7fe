package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/hackassist/internal/domain"
)

func TestPrompterReadLine(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("list files\r\nlast"), &out)

	line, err := p.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "list files", line)

	line, err = p.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = p.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)
	assert.True(t, strings.HasPrefix(out.String(), "> > > "))
}

func TestPrompterConfirm(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.Decision
		retries int
	}{
		{name: "accept", input: "y\n", want: domain.DecisionAccept},
		{name: "accept upper", input: "Y\n", want: domain.DecisionAccept},
		{name: "decline", input: "n\n", want: domain.DecisionDecline},
		{name: "decline padded", input: "  N  \n", want: domain.DecisionDecline},
		{name: "retry until valid", input: "yes\nmaybe\n\ny\n", want: domain.DecisionAccept, retries: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm(domain.SuggestedCommand{Command: "ls"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.retries, strings.Count(out.String(), "Invalid choice"))
		})
	}
}

func TestPrompterConfirmEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader("what\n"), io.Discard)

	got, err := p.Confirm(domain.SuggestedCommand{Command: "ls"})
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, domain.DecisionDecline, got)
}
