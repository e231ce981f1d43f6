package referral

import (
	"time"

	"github.com/MenteSana-Clinic/intake-service/internal/pagination"
)

// Specialty and visit type values offered by the scheduling form.
var (
	Specialties = []string{"Psicología", "Psiquiatría"}
	VisitTypes  = []string{"Evaluación Inicial", "Seguimiento"}
)

// DefaultAppointmentTime is used when the scheduling request carries no
// time of day.
const DefaultAppointmentTime = "10:00:00"

// Referral is one intake event. The same national ID may appear on
// several referrals; rows are never merged and never deleted. The
// appointment fields stay NULL until an appointment is assigned.
type Referral struct {
	ID                    int64   `json:"id"`
	NationalID            string  `json:"nationalId"`
	LastName              string  `json:"lastName"`
	FirstName             string  `json:"firstName"`
	Gender                string  `json:"gender,omitempty"`
	BirthDate             string  `json:"birthDate,omitempty"` // YYYY-MM-DD
	CurrentAge            int     `json:"currentAge"`
	City                  string  `json:"city,omitempty"`
	Address               string  `json:"address,omitempty"`
	Phone                 string  `json:"phone"`
	Email                 string  `json:"email"`
	ProtocolFlag          bool    `json:"protocolFlag"`
	ProtocolName          string  `json:"protocolName,omitempty"`
	ReferralDate          string  `json:"referralDate,omitempty"` // YYYY-MM-DD
	ReferringProfessional string  `json:"referringProfessional,omitempty"`
	ClinicalNotes         string  `json:"clinicalNotes,omitempty"`
	AssignedProfessional  *string `json:"assignedProfessional,omitempty"`
	Specialty             *string `json:"specialty,omitempty"`
	VisitType             *string `json:"visitType,omitempty"`
	AppointmentDate       *string `json:"appointmentDate,omitempty"` // YYYY-MM-DD
	AppointmentTime       *string `json:"appointmentTime,omitempty"` // HH:MM:SS
	AppointmentConfirmed  *bool   `json:"appointmentConfirmed,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Unscheduled reports whether this referral still needs an
// appointment: confirmed is unset or false.
func (r *Referral) Unscheduled() bool {
	return r.AppointmentConfirmed == nil || !*r.AppointmentConfirmed
}

// CreateReferralRequest represents an intake form submission
type CreateReferralRequest struct {
	NationalID            string `json:"nationalId"`
	LastName              string `json:"lastName"`
	FirstName             string `json:"firstName"`
	Gender                string `json:"gender"`
	BirthDate             string `json:"birthDate"` // YYYY-MM-DD
	CurrentAge            int    `json:"currentAge"`
	City                  string `json:"city"`
	Address               string `json:"address"`
	Phone                 string `json:"phone"`
	Email                 string `json:"email"`
	ProtocolFlag          bool   `json:"protocolFlag"`
	ProtocolName          string `json:"protocolName"`
	ReferralDate          string `json:"referralDate"` // YYYY-MM-DD
	ReferringProfessional string `json:"referringProfessional"`
	ClinicalNotes         string `json:"clinicalNotes"`
}

// ScheduleAppointmentRequest assigns an appointment to the patient
// identified by national ID.
type ScheduleAppointmentRequest struct {
	Professional    string `json:"professional"`
	Specialty       string `json:"specialty"`
	VisitType       string `json:"visitType"`
	AppointmentDate string `json:"appointmentDate"` // YYYY-MM-DD
	AppointmentTime string `json:"appointmentTime"` // HH:MM:SS, defaults to 10:00:00
	Confirmed       bool   `json:"confirmed"`
}

// ReferralSuccessResponse wraps a single referral
type ReferralSuccessResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Referral *Referral `json:"referral,omitempty"`
}

// ReferralListResponse wraps a referral listing with pagination metadata
type ReferralListResponse struct {
	Success    bool            `json:"success"`
	Referrals  []Referral      `json:"referrals"`
	Pagination pagination.Meta `json:"pagination"`
}

// ScheduleResponse reports the outcome of an appointment assignment
type ScheduleResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	RowsAffected int64  `json:"rowsAffected"`
}
