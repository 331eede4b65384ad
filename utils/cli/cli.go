package cli

import (
	"fmt"
	"os/exec"
	"strings"
)

func CheckCommandExists(command string) error {
	_, err := exec.LookPath(command)
	if err != nil {
		return fmt.Errorf("can't find '%s' in the PATH. Install it first", command)
	}

	return nil
}

// Output runs a command and returns its trimmed stdout.
func Output(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", name, err)
	}

	return strings.TrimSpace(string(out)), nil
}
