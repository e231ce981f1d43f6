package messaging

import (
	"fmt"
	"time"
)

// Event routing keys as constants
const (
	EventReferralCreated      = "referral.created"
	EventAppointmentScheduled = "appointment.scheduled"
	EventUserRegistered       = "user.registered"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// ReferralCreatedEvent is published when an intake referral is stored
type ReferralCreatedEvent struct {
	BaseEvent
	Data ReferralCreatedData `json:"data"`
}

type ReferralCreatedData struct {
	ReferralID   int64     `json:"referral_id"`
	NationalID   string    `json:"national_id"`
	ProtocolFlag bool      `json:"protocol_flag"`
	ProtocolName string    `json:"protocol_name,omitempty"`
	ReferralDate string    `json:"referral_date,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// AppointmentScheduledEvent is published when an appointment is
// assigned to a referral
type AppointmentScheduledEvent struct {
	BaseEvent
	Data AppointmentScheduledData `json:"data"`
}

type AppointmentScheduledData struct {
	NationalID      string `json:"national_id"`
	Professional    string `json:"professional"`
	Specialty       string `json:"specialty"`
	VisitType       string `json:"visit_type"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Confirmed       bool   `json:"confirmed"`
}

// UserRegisteredEvent is published when a staff account is created
type UserRegisteredEvent struct {
	BaseEvent
	Data UserRegisteredData `json:"data"`
}

type UserRegisteredData struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     fmt.Sprintf("%d", time.Now().UnixNano()),
		Timestamp:   time.Now().UTC(),
		ServiceName: "intake-service",
	}
}
