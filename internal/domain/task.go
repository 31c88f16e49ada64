// Package domain contains core business entities and interfaces.
package domain

import "time"

// Task represents one unit of isolated work mapped to a branch.
// Fields are ordered to minimize memory padding.
type Task struct {
	Created       time.Time `yaml:"created"`               // Creation time
	LastModified  time.Time `yaml:"lastModified"`          // Updated on every state-mutating operation
	Name          string    `yaml:"-"`                     // Unique among non-pruned tasks (stored as ref suffix, not in value)
	Branch        string    `yaml:"branch"`                // Task branch name (prefix + name)
	BaseRef       string    `yaml:"baseRef"`               // Main-line branch the task was created from; immutable
	BaseHead      string    `yaml:"baseHead"`              // Main-line tip hash captured at start time
	Description   string    `yaml:"description,omitempty"` // Description (optional)
	State         State     `yaml:"state"`                 // Current lifecycle state
	Commits       int       `yaml:"commits"`               // Number of snapshots recorded on the branch
	SquashOnMerge bool      `yaml:"squashOnMerge"`         // Captured at creation, realized at merge time
}

// Touch updates the last-modified timestamp.
func (t *Task) Touch(now time.Time) {
	t.LastModified = now
}

// CommitRecord is one snapshot on a task branch as reported by log and
// commit operations.
type CommitRecord struct {
	When          time.Time
	Hash          string
	Message       string
	Author        string
	IncludedFiles []string
	IgnoredFiles  []string
}
