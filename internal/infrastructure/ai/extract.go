package ai

import (
	"strings"

	"github.com/doeshing/hackassist/internal/domain"
	"github.com/doeshing/hackassist/internal/ports"
)

const (
	commandLabel  = "command:"
	responseLabel = "response:"
	fence         = "```"
)

// Extractor implements ports.CommandExtractor for the RESPONSE:/COMMAND: reply format.
type Extractor struct{}

// Extract implements ports.CommandExtractor.
func (Extractor) Extract(responseText string) (domain.SuggestedCommand, bool) {
	return ExtractCommand(responseText)
}

// Reply implements ports.CommandExtractor.
func (Extractor) Reply(responseText string) string {
	return parseReply(responseText).reply
}

// ExtractCommand returns the first command announced by a COMMAND: line.
//
// The value after the label is used directly, with surrounding backticks and a
// leading "$ " removed. An empty value followed by a fenced block takes the first
// line of that block; an unterminated fence yields nothing. NONE means no command.
func ExtractCommand(responseText string) (domain.SuggestedCommand, bool) {
	parsed := parseReply(responseText)
	if parsed.command == "" {
		return domain.SuggestedCommand{}, false
	}
	return domain.SuggestedCommand{
		Command:     parsed.command,
		Explanation: parsed.reply,
	}, true
}

type parsedReply struct {
	reply   string
	command string
}

func parseReply(text string) parsedReply {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var (
		free      []string
		labeled   []string
		inLabeled bool
		sawLabel  bool
		command   string
	)
	for i := 0; i < len(lines); i++ {
		if value, ok := cutLabel(lines[i], commandLabel); ok {
			inLabeled = false
			consumed, cmd := commandFrom(value, lines[i+1:])
			i += consumed
			if command == "" {
				command = cmd
			}
			continue
		}
		if value, ok := cutLabel(lines[i], responseLabel); ok {
			sawLabel = true
			inLabeled = true
			labeled = append(labeled, value)
			continue
		}
		if inLabeled {
			labeled = append(labeled, lines[i])
		}
		free = append(free, lines[i])
	}

	reply := free
	if sawLabel {
		reply = labeled
	}
	return parsedReply{
		reply:   strings.TrimSpace(strings.Join(reply, "\n")),
		command: command,
	}
}

// cutLabel matches "LABEL: value" case-insensitively, tolerating markdown emphasis.
func cutLabel(line, label string) (string, bool) {
	t := strings.TrimLeft(strings.TrimSpace(line), "*_ ")
	if len(t) < len(label) || !strings.EqualFold(t[:len(label)], label) {
		return "", false
	}
	return strings.TrimLeft(t[len(label):], "*_ "), true
}

// commandFrom resolves the command for a label value, reporting how many of the
// following lines belong to it.
func commandFrom(value string, rest []string) (int, string) {
	v := strings.TrimSpace(value)
	if strings.HasPrefix(v, fence) && (len(v) == len(fence) || !strings.HasSuffix(v, fence)) {
		n, cmd, ok := readFence(rest)
		if !ok {
			return 0, ""
		}
		return n, cmd
	}
	if v != "" {
		return 0, cleanCommand(v)
	}

	j := 0
	for j < len(rest) && strings.TrimSpace(rest[j]) == "" {
		j++
	}
	if j == len(rest) || !strings.HasPrefix(strings.TrimSpace(rest[j]), fence) {
		return 0, ""
	}
	n, cmd, ok := readFence(rest[j+1:])
	if !ok {
		return 0, ""
	}
	return j + 1 + n, cmd
}

// readFence reads a fenced body whose opening line was already consumed.
func readFence(lines []string) (int, string, bool) {
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), fence) {
			return i + 1, firstCommand(lines[:i]), true
		}
	}
	return len(lines), "", false
}

// firstCommand joins backslash continuations of the first non-empty line.
func firstCommand(body []string) string {
	for i := 0; i < len(body); i++ {
		cmd := strings.TrimSpace(body[i])
		if cmd == "" {
			continue
		}
		for strings.HasSuffix(cmd, "\\") && i+1 < len(body) {
			i++
			cmd = strings.TrimSpace(strings.TrimSuffix(cmd, "\\")) + " " + strings.TrimSpace(body[i])
		}
		return cleanCommand(cmd)
	}
	return ""
}

func cleanCommand(v string) string {
	v = strings.TrimSpace(v)
	for len(v) >= 2 && strings.HasPrefix(v, "`") && strings.HasSuffix(v, "`") {
		v = strings.TrimSpace(v[1 : len(v)-1])
	}
	v = strings.TrimSpace(strings.TrimPrefix(v, "$ "))
	if strings.EqualFold(v, "none") {
		return ""
	}
	return v
}

var _ ports.CommandExtractor = Extractor{}
