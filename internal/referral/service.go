package referral

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MenteSana-Clinic/intake-service/internal/messaging"
	"github.com/MenteSana-Clinic/intake-service/internal/pagination"
)

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
	}
}

// SubmitReferral validates an intake form and stores the referral.
// Validation failures are reported before any repository call; store
// errors are passed through with the underlying message intact.
func (s *Service) SubmitReferral(ctx context.Context, req CreateReferralRequest) (*Referral, error) {
	if err := validateReferral(req); err != nil {
		return nil, err
	}

	referral, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create referral: %w", err)
	}

	log.Printf("Created referral %d for national ID %s", referral.ID, referral.NationalID)

	if s.publisher != nil {
		event := messaging.ReferralCreatedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventReferralCreated),
			Data: messaging.ReferralCreatedData{
				ReferralID:   referral.ID,
				NationalID:   referral.NationalID,
				ProtocolFlag: referral.ProtocolFlag,
				ProtocolName: referral.ProtocolName,
				ReferralDate: referral.ReferralDate,
				CreatedAt:    referral.CreatedAt,
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventReferralCreated, event); err != nil {
			log.Printf("Warning: failed to publish referral.created event: %v", err)
		}
	}

	return referral, nil
}

// SubmitAppointment assigns an appointment to the latest referral for
// the national ID. There is no field-level validation beyond what the
// store enforces; a missing time of day falls back to the clinic's
// fixed slot. Zero matched rows is a normal outcome.
func (s *Service) SubmitAppointment(ctx context.Context, nationalID string, req ScheduleAppointmentRequest) (int64, error) {
	if nationalID == "" {
		return 0, ErrMissingNationalID
	}
	if req.AppointmentTime == "" {
		req.AppointmentTime = DefaultAppointmentTime
	}

	rows, err := s.repo.ScheduleAppointment(ctx, nationalID, req)
	if err != nil {
		return 0, fmt.Errorf("failed to schedule appointment: %w", err)
	}

	if rows > 0 {
		log.Printf("Scheduled appointment for national ID %s (%s, %s)", nationalID, req.Professional, req.AppointmentDate)
		if s.publisher != nil {
			event := messaging.AppointmentScheduledEvent{
				BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentScheduled),
				Data: messaging.AppointmentScheduledData{
					NationalID:      nationalID,
					Professional:    req.Professional,
					Specialty:       req.Specialty,
					VisitType:       req.VisitType,
					AppointmentDate: req.AppointmentDate,
					AppointmentTime: req.AppointmentTime,
					Confirmed:       req.Confirmed,
				},
			}
			if err := s.publisher.Publish(ctx, messaging.EventAppointmentScheduled, event); err != nil {
				log.Printf("Warning: failed to publish appointment.scheduled event: %v", err)
			}
		}
	}

	return rows, nil
}

// FindByNationalID filters the full listing and returns the first
// match in storage order. ErrNotFound is a normal outcome, distinct
// from a store error.
func (s *Service) FindByNationalID(ctx context.Context, nationalID string) (*Referral, error) {
	if nationalID == "" {
		return nil, ErrMissingNationalID
	}

	referrals, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list referrals: %w", err)
	}

	for i := range referrals {
		if referrals[i].NationalID == nationalID {
			return &referrals[i], nil
		}
	}
	return nil, ErrNotFound
}

// FindUnscheduled returns the referrals still waiting for a confirmed
// appointment; the list may be empty.
func (s *Service) FindUnscheduled(ctx context.Context) ([]Referral, error) {
	referrals, err := s.repo.ListUnscheduled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unscheduled referrals: %w", err)
	}
	return referrals, nil
}

// ListReferrals returns one page of the full referral listing.
func (s *Service) ListReferrals(ctx context.Context, params pagination.Params) (*ReferralListResponse, error) {
	params.Validate()

	referrals, total, err := s.repo.ListWithPagination(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, fmt.Errorf("failed to list referrals: %w", err)
	}
	if referrals == nil {
		referrals = []Referral{}
	}

	return &ReferralListResponse{
		Success:    true,
		Referrals:  referrals,
		Pagination: params.CalculateMeta(total),
	}, nil
}

// ListUnscheduled returns one page of the unscheduled listing.
func (s *Service) ListUnscheduled(ctx context.Context, params pagination.Params) (*ReferralListResponse, error) {
	params.Validate()

	referrals, total, err := s.repo.ListUnscheduledWithPagination(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, fmt.Errorf("failed to list unscheduled referrals: %w", err)
	}
	if referrals == nil {
		referrals = []Referral{}
	}

	return &ReferralListResponse{
		Success:    true,
		Referrals:  referrals,
		Pagination: params.CalculateMeta(total),
	}, nil
}

func validateReferral(req CreateReferralRequest) error {
	if req.NationalID == "" {
		return ErrMissingNationalID
	}
	if req.LastName == "" {
		return ErrMissingLastName
	}
	if req.FirstName == "" {
		return ErrMissingFirstName
	}
	if req.Email == "" {
		return ErrMissingEmail
	}
	if req.Phone == "" {
		return ErrMissingPhone
	}
	if req.CurrentAge < 0 {
		return ErrNegativeAge
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return ErrInvalidBirthDate
		}
		if birthDate.After(time.Now()) {
			return ErrBirthDateInFuture
		}
	}
	return nil
}

// IsValidationError reports whether err was raised by intake
// validation, before any repository call.
func IsValidationError(err error) bool {
	for _, sentinel := range []error{
		ErrMissingNationalID,
		ErrMissingLastName,
		ErrMissingFirstName,
		ErrMissingEmail,
		ErrMissingPhone,
		ErrNegativeAge,
		ErrInvalidBirthDate,
		ErrBirthDateInFuture,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
