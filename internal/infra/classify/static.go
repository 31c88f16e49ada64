package classify

import (
	"context"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

// Static always returns the same decision. It backs the classifier-disabled
// mode, where every new file is treated as part of the change.
type Static struct {
	Decision domain.Decision
}

// NewStatic creates a classifier that always answers with decision.
func NewStatic(decision domain.Decision) *Static {
	return &Static{Decision: decision}
}

func (s *Static) Classify(_ context.Context, _ string, _ []byte) (domain.Decision, error) {
	return s.Decision, nil
}

var _ domain.Classifier = (*Static)(nil)
