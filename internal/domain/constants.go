package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Model defaults
const (
	DefaultGeminiModel = "gemini-2.0-flash-exp"
	DefaultAuthEnvVar  = "GEMINI_API_KEY"
	DefaultMaxTokens   = 1024

	DefaultAuthHeaderName   = "Authorization"
	DefaultAuthHeaderPrefix = "Bearer "
	DefaultResponsePath     = "choices[0].message.content"
)

// Session defaults
const (
	// DefaultHistoryLimit is the number of past exchanges replayed in a prompt
	DefaultHistoryLimit = 10
	// DefaultMaxOutputChars caps command output echoed back to the model
	DefaultMaxOutputChars = 4000
	// DefaultRequestTimeout bounds a single AI request
	DefaultRequestTimeout = 60 * time.Second
	// DefaultProbeTimeout bounds helper commands run while collecting context
	DefaultProbeTimeout = 2 * time.Second
)

// Terminal tokens recognized by the session loop.
const (
	TokenNewPrompt = "p"
	TokenClose     = "c"
	TokenAccept    = "y"
	TokenDecline   = "n"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
	// DisplayTimeFormat is used in the session banner
	DisplayTimeFormat = "2006-01-02 15:04:05"
)
