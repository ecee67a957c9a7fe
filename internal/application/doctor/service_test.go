package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/hackassist/internal/domain"
)

type stubConfig struct {
	cfg domain.Config
	err error
}

func (s stubConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type stubCollector struct {
	env domain.Environment
	err error
}

func (s stubCollector) Collect(context.Context) (domain.Environment, error) { return s.env, s.err }

func newTestService(cfg stubConfig, env map[string]string, collector stubCollector) *Service {
	return &Service{
		ConfigProvider: cfg,
		Collector:      collector,
		Getenv:         func(k string) string { return env[k] },
		LookPath: func(p string) (string, error) {
			if p == "/bin/sh" || p == "/bin/bash" {
				return p, nil
			}
			return "", errors.New("not found")
		},
	}
}

func statusOf(report domain.HealthReport) map[string]domain.HealthStatus {
	out := make(map[string]domain.HealthStatus)
	for _, c := range report.Checks {
		out[c.Name] = c.Status
	}
	return out
}

func TestDoctorHealthy(t *testing.T) {
	svc := newTestService(
		stubConfig{cfg: domain.Config{ConfigFormatVersion: "1"}},
		map[string]string{domain.DefaultAuthEnvVar: "k", "SHELL": "/bin/bash"},
		stubCollector{env: domain.Environment{WorkingDir: "/work", SystemInfo: "Linux", AvailableTools: []string{"git"}}},
	)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Failed())
	assert.Equal(t, map[string]domain.HealthStatus{
		"Config file":       domain.HealthOK,
		"API key":           domain.HealthOK,
		"Provider":          domain.HealthOK,
		"Shell":             domain.HealthOK,
		"Working directory": domain.HealthOK,
		"System":            domain.HealthOK,
		"Tools":             domain.HealthOK,
	}, statusOf(report))
}

func TestDoctorMissingKeyAndShell(t *testing.T) {
	svc := newTestService(
		stubConfig{cfg: domain.Config{Execution: domain.ExecutionSettings{Shell: "/opt/fish"}}},
		nil,
		stubCollector{env: domain.Environment{WorkingDir: "/work"}},
	)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Failed())
	statuses := statusOf(report)
	assert.Equal(t, domain.HealthError, statuses["API key"])
	assert.Equal(t, domain.HealthError, statuses["Shell"])
	assert.Equal(t, domain.HealthWarn, statuses["Tools"])
}

func TestDoctorConfigFailureStops(t *testing.T) {
	loadErr := errors.New("yaml: line 3: bad indent")
	svc := newTestService(stubConfig{err: loadErr}, nil, stubCollector{})

	report, err := svc.Run(context.Background())
	assert.ErrorIs(t, err, loadErr)
	require.Len(t, report.Checks, 1)
	assert.Equal(t, domain.HealthError, report.Checks[0].Status)
}

func TestDoctorCollectorFailure(t *testing.T) {
	svc := newTestService(
		stubConfig{},
		map[string]string{domain.DefaultAuthEnvVar: "k"},
		stubCollector{err: errors.New("getwd: no such file or directory")},
	)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.HealthError, statusOf(report)["Working directory"])
}
