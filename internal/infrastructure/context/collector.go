package contextcollector

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/doeshing/hackassist/internal/domain"
	"github.com/doeshing/hackassist/internal/ports"
)

// HostCollector implements EnvironmentCollector with os + uname probing.
type HostCollector struct {
	toolsToCheck []string
	getwd        func() (string, error)
	now          func() time.Time
}

func NewHostCollector() *HostCollector {
	return &HostCollector{
		toolsToCheck: []string{"git", "docker", "kubectl", "python3", "go", "node", "make", "curl", "nmap", "ssh"},
		getwd:        os.Getwd,
		now:          time.Now,
	}
}

// Collect captures the host context for a new session.
func (c *HostCollector) Collect(ctx context.Context) (domain.Environment, error) {
	wd, err := c.getwd()
	if err != nil {
		return domain.Environment{}, fmt.Errorf("resolve working directory: %w", err)
	}
	return domain.Environment{
		WorkingDir:     wd,
		SystemInfo:     systemInfo(ctx),
		Shell:          detectShell(),
		User:           os.Getenv("USER"),
		AvailableTools: c.detectTools(),
		StartedAt:      c.now(),
	}, nil
}

func (c *HostCollector) detectTools() []string {
	var available []string
	for _, tool := range c.toolsToCheck {
		if _, err := exec.LookPath(tool); err == nil {
			available = append(available, tool)
		}
	}
	sort.Strings(available)
	return available
}

// systemInfo renders "<kernel> <release> (<machine>)", e.g. "Linux 6.8.0 (x86_64)".
func systemInfo(ctx context.Context) string {
	kernel := strings.TrimSpace(runCmd(ctx, "uname", "-s"))
	release := strings.TrimSpace(runCmd(ctx, "uname", "-r"))
	machine := strings.TrimSpace(runCmd(ctx, "uname", "-m"))
	if kernel == "" {
		kernel = titleGOOS(runtime.GOOS)
	}
	if machine == "" {
		machine = runtime.GOARCH
	}
	if release == "" {
		return fmt.Sprintf("%s (%s)", kernel, machine)
	}
	return fmt.Sprintf("%s %s (%s)", kernel, release, machine)
}

func titleGOOS(goos string) string {
	switch goos {
	case "darwin":
		return "Darwin"
	case "linux":
		return "Linux"
	case "windows":
		return "Windows"
	case "":
		return "Unknown"
	default:
		return strings.ToUpper(goos[:1]) + goos[1:]
	}
}

func detectShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return filepath.Base(shell)
	}
	return "sh"
}

func runCmd(ctx context.Context, name string, args ...string) string {
	cctx, cancel := context.WithTimeout(ctx, domain.DefaultProbeTimeout)
	defer cancel()
	out, err := exec.CommandContext(cctx, name, args...).Output()
	if err != nil {
		return ""
	}
	return string(out)
}

var _ ports.EnvironmentCollector = (*HostCollector)(nil)
