package domain

import (
	"path/filepath"
	"regexp"
	"strings"
)

// IgnoreFileName is the branch-local append-only ignore list, committed as
// part of the task branch tree.
const IgnoreFileName = ".csignore"

// ConfigFileName is the name of repo and global configuration files.
const ConfigFileName = "config.toml"

// BranchName returns the branch name for a task.
// Format: <prefix><name>, e.g. "cs/login-fix".
func BranchName(prefix, name string) string {
	return prefix + name
}

// taskNamePattern restricts task names to a branch-safe subset.
var taskNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateTaskName checks that a name can be used as a branch suffix.
func ValidateTaskName(name string) error {
	if name == "" || !taskNamePattern.MatchString(name) {
		return ErrInvalidTaskName
	}
	return nil
}

// ParseBranchTaskName extracts the task name from a branch name.
// Returns the name and true if the branch follows the task naming
// convention, or "" and false if not.
func ParseBranchTaskName(branch, prefix string) (string, bool) {
	if prefix == "" || !strings.HasPrefix(branch, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(branch, prefix)
	if ValidateTaskName(name) != nil {
		return "", false
	}
	return name, true
}

// RepoSnapDir returns the repository-scoped state directory.
func RepoSnapDir(gitDir string) string {
	return filepath.Join(gitDir, "codesnap")
}

// GlobalSnapDir returns the global config directory under configHome.
func GlobalSnapDir(configHome string) string {
	return filepath.Join(configHome, "codesnap")
}

// LockPath returns the path to the repository lock file.
func LockPath(snapDir string) string {
	return filepath.Join(snapDir, "repo.lock")
}

// TaskLogPath returns the path to a task log file.
func TaskLogPath(snapDir, name string) string {
	return filepath.Join(snapDir, "logs", "task-"+name+".log")
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(snapDir string) string {
	return filepath.Join(snapDir, "logs", "codesnap.log")
}
