package domain

import "testing"

func TestBranchName(t *testing.T) {
	if got := BranchName("cs/", "login-fix"); got != "cs/login-fix" {
		t.Errorf("BranchName() = %q, want %q", got, "cs/login-fix")
	}
}

func TestValidateTaskName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"login-fix", true},
		{"task_1", true},
		{"v2.0-prep", true},
		{"A", true},
		{"", false},
		{"-leading-dash", false},
		{".leading-dot", false},
		{"has space", false},
		{"has/slash", false},
		{"has:colon", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTaskName(tt.name)
			if tt.valid && err != nil {
				t.Errorf("ValidateTaskName(%q) = %v, want nil", tt.name, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("ValidateTaskName(%q) = nil, want error", tt.name)
			}
		})
	}
}

func TestParseBranchTaskName(t *testing.T) {
	tests := []struct {
		branch string
		prefix string
		want   string
		ok     bool
	}{
		{"cs/login-fix", "cs/", "login-fix", true},
		{"cs/task_1", "cs/", "task_1", true},
		{"main", "cs/", "", false},
		{"feature/login-fix", "cs/", "", false},
		{"cs/", "cs/", "", false},
		{"cs/login fix", "cs/", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			got, ok := ParseBranchTaskName(tt.branch, tt.prefix)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseBranchTaskName(%q, %q) = (%q, %v), want (%q, %v)",
					tt.branch, tt.prefix, got, ok, tt.want, tt.ok)
			}
		})
	}
}
