package comment

import (
	"context"
	"time"

	"shareit/internal/pkg/clock"
)

type Services struct {
	Clock              clock.Clock
	EligibilityChecker EligibilityChecker
}

type EligibilityInput struct {
	AuthorID int64
	ItemID   int64
	Now      time.Time
}

// EligibilityChecker answers whether the author holds an APPROVED booking of
// the item that ended before Now.
type EligibilityChecker interface {
	CanComment(ctx context.Context, input EligibilityInput) (bool, error)
}
