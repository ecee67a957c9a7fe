// Package doctor diagnoses whether the host can run an assistant session.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/doeshing/hackassist/internal/domain"
	"github.com/doeshing/hackassist/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Collector      ports.EnvironmentCollector
	Getenv         func(string) string
	LookPath       func(string) (string, error)
}

// NewService wires the diagnostics against the real process environment.
func NewService(cfg ports.ConfigProvider, collector ports.EnvironmentCollector) *Service {
	return &Service{
		ConfigProvider: cfg,
		Collector:      collector,
		Getenv:         os.Getenv,
		LookPath:       exec.LookPath,
	}
}

// Run executes checks and returns a report. A configuration that cannot be
// loaded stops the run and is returned as the error.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded format %s", cfg.ConfigFormatVersion)))

	checks = append(checks, s.credentialCheck(cfg.Model))
	checks = append(checks, providerCheck(cfg.Model))
	checks = append(checks, s.shellCheck(cfg.Execution.Shell))

	if s.Collector != nil {
		if env, err := s.Collector.Collect(ctx); err == nil {
			checks = append(checks, ok("Working directory", env.WorkingDir))
			checks = append(checks, ok("System", env.SystemInfo))
			if len(env.AvailableTools) > 0 {
				checks = append(checks, ok("Tools", strings.Join(env.AvailableTools, ", ")))
			} else {
				checks = append(checks, warn("Tools", "none of the common tools found in PATH"))
			}
		} else {
			checks = append(checks, fail("Working directory", err.Error()))
		}
	}

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) credentialCheck(model domain.ModelDefinition) domain.HealthCheck {
	name := model.GetAuthEnvVar()
	if s.Getenv(name) == "" {
		return fail("API key", fmt.Sprintf("%s is not set", name))
	}
	return ok("API key", fmt.Sprintf("%s is set", name))
}

func providerCheck(model domain.ModelDefinition) domain.HealthCheck {
	switch model.GetProvider() {
	case domain.ProviderHTTP:
		return ok("Provider", fmt.Sprintf("http %s at %s", model.GetModelID(), model.Endpoint))
	default:
		return ok("Provider", fmt.Sprintf("gemini %s", model.GetModelID()))
	}
}

func (s *Service) shellCheck(configured string) domain.HealthCheck {
	shell := configured
	if shell == "" {
		shell = s.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	path, err := s.LookPath(shell)
	if err != nil {
		return fail("Shell", fmt.Sprintf("%s not executable: %v", shell, err))
	}
	return ok("Shell", path)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
