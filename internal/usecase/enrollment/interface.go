package enrollment

import "context"

// Usecase defines the enrollment business operation.
type Usecase interface {
	Enroll(ctx context.Context, in EnrollRequest) (*EnrollResponse, error)
}

// Invalidator evicts cached copies of documents changed by an enrollment.
type Invalidator interface {
	Invalidate(ctx context.Context, ids ...string)
}
