package referral

import "context"

// RepositoryInterface defines the contract for referral data access
type RepositoryInterface interface {
	Create(ctx context.Context, req CreateReferralRequest) (*Referral, error)
	ScheduleAppointment(ctx context.Context, nationalID string, req ScheduleAppointmentRequest) (int64, error)
	ListAll(ctx context.Context) ([]Referral, error)
	ListUnscheduled(ctx context.Context) ([]Referral, error)
	ListWithPagination(ctx context.Context, limit, offset int) ([]Referral, int, error)
	ListUnscheduledWithPagination(ctx context.Context, limit, offset int) ([]Referral, int, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
