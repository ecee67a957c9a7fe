package domain

import "time"

// Environment is the host context captured once when a session starts.
type Environment struct {
	WorkingDir     string
	SystemInfo     string
	Shell          string
	User           string
	AvailableTools []string
	StartedAt      time.Time
}
