package pidfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// PIDFile enforces a single daemon instance per host. Two daemons resuming
// the same open orders would each tick and persist them independently, so a
// second instance must fail at startup instead.
type PIDFile struct {
	path string
}

// New creates a PID file manager for the given path
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Acquire claims the PID file, writing the current process ID into it.
// Returns an error when the file names a still-running process. Stale files
// left by dead processes and unparseable files are replaced.
func (p *PIDFile) Acquire() error {
	if data, err := os.ReadFile(p.path); err == nil {
		pid, convErr := strconv.Atoi(strings.TrimSpace(string(data)))
		if convErr != nil {
			// Garbled PID file - replace it
			_ = os.Remove(p.path)
		} else if isProcessRunning(pid) {
			return fmt.Errorf("daemon is already running (PID %d)", pid)
		} else {
			// Stale PID file from a dead process
			_ = os.Remove(p.path)
		}
	}

	pidData := fmt.Sprintf("%d\n", os.Getpid())
	if err := os.WriteFile(p.path, []byte(pidData), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Release removes the PID file
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// isProcessRunning checks whether a process with the given PID exists.
// Signal 0 performs the existence check without delivering anything.
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// On Unix FindProcess always succeeds, so the signal is the real check
	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	if err == syscall.EPERM {
		// Exists but owned by another user
		return true
	}
	return false
}
