package codes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSuccess(t *testing.T) {
	tests := []struct {
		name     string
		exitCode int
		want     bool
	}{
		{
			name:     "exit code 0 is success",
			exitCode: 0,
			want:     true,
		},
		{
			name:     "exit code 1 is failure",
			exitCode: 1,
			want:     false,
		},
		{
			name:     "exit code 127 is failure",
			exitCode: 127,
			want:     false,
		},
		{
			name:     "abnormal exit is failure",
			exitCode: -1,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsSuccess(tt.exitCode)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		exitCode int
		want     string
	}{
		{"exit code 0", 0, "Success"},
		{"exit code 1", 1, "General failure"},
		{"command not found", 127, "Command not found"},
		{"not executable", 126, "Command found but not executable"},
		{"interrupted", 130, "Terminated by Ctrl-C"},
		{"killed", 137, "Terminated by signal 9"},
		{"segfault", 139, "Terminated by signal 11"},
		{"abnormal exit", -1, "Process did not exit normally"},
		{"unknown exit code", 42, "Unknown error"},
		{"negative exit code", -7, "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.exitCode)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExitStatuses_Coverage(t *testing.T) {
	for code := range ExitStatuses {
		msg := Describe(code)
		assert.NotEqual(t, "Unknown error", msg, "Code %d should have a message", code)
		assert.NotEmpty(t, msg, "Code %d should have a non-empty message", code)
	}
}
