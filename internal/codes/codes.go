package codes

import "fmt"

// ExitStatuses maps conventional process exit statuses to their descriptions
var ExitStatuses = map[int]string{
	-1:  "Process did not exit normally",
	0:   "Success",
	1:   "General failure",
	2:   "Misuse of shell builtins or invalid arguments",
	126: "Command found but not executable",
	127: "Command not found",
	128: "Invalid exit argument",
	130: "Terminated by Ctrl-C",
	255: "Exit status out of range",
}

// IsSuccess returns true if the exit code indicates success
func IsSuccess(code int) bool {
	return code == 0
}

// Describe returns the description for an exit code. Statuses above 128
// that are not listed are reported as termination by signal (code - 128).
func Describe(code int) string {
	if msg, ok := ExitStatuses[code]; ok {
		return msg
	}

	if code > 128 && code < 255 {
		return fmt.Sprintf("Terminated by signal %d", code-128)
	}

	return "Unknown error"
}
