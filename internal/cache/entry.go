package cache

import "time"

// Entry records one compiler invocation
type Entry struct {
	// Source is the resolved source path (empty for link entries)
	Source string `json:"source,omitempty"`

	// Output is the object file or final artifact that was produced
	Output string `json:"output"`

	// Fingerprint is the hash of the full command line
	Fingerprint string `json:"fingerprint"`

	// SourceHash is the hash of the source content at compile time
	SourceHash string `json:"source_hash,omitempty"`

	// ExitCode of the compiler; -1 when it could not be started
	ExitCode int `json:"exit_code"`

	// Success indicates if the invocation succeeded
	Success bool `json:"success"`

	// Duration of the invocation
	Duration time.Duration `json:"duration"`

	// Timestamp when this entry was created
	Timestamp time.Time `json:"timestamp"`
}
