package referral

import (
	"context"

	"github.com/MenteSana-Clinic/intake-service/internal/pagination"
)

// ServiceInterface defines the contract for intake and scheduling
// operations
type ServiceInterface interface {
	SubmitReferral(ctx context.Context, req CreateReferralRequest) (*Referral, error)
	SubmitAppointment(ctx context.Context, nationalID string, req ScheduleAppointmentRequest) (int64, error)
	FindByNationalID(ctx context.Context, nationalID string) (*Referral, error)
	FindUnscheduled(ctx context.Context) ([]Referral, error)
	ListReferrals(ctx context.Context, params pagination.Params) (*ReferralListResponse, error)
	ListUnscheduled(ctx context.Context, params pagination.Params) (*ReferralListResponse, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
