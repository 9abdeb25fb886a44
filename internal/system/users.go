package system

import (
	"fmt"
	"os"
	"os/user"
)

// CurrentUsername returns the login name of the user running the process
func CurrentUsername() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}
	return u.Username, nil
}

// HomeDirectory returns the current user's home directory
func HomeDirectory() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}

// StartDirectory returns the directory a session starts in: the home
// directory, or the working directory when no home is available.
func StartDirectory() (string, error) {
	if home, err := HomeDirectory(); err == nil {
		return home, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine start directory: %w", err)
	}
	return wd, nil
}
