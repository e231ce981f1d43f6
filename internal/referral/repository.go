package referral

import (
	"context"
	"database/sql"
	"fmt"
)

// referralColumns is the canonical select list. Date and time columns
// come back as formatted text so nullable scanning stays uniform.
const referralColumns = `
	id, national_id, last_name, first_name, gender,
	to_char(birth_date, 'YYYY-MM-DD'), current_age, city, address, phone, email,
	protocol_flag, protocol_name, to_char(referral_date, 'YYYY-MM-DD'),
	referring_professional, clinical_notes,
	assigned_professional, specialty, visit_type,
	to_char(appointment_date, 'YYYY-MM-DD'), to_char(appointment_time, 'HH24:MI:SS'),
	appointment_confirmed, created_at`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts one referral row. Fields are passed through as given;
// validation happens in the service. Persistence failures surface with
// the driver message attached.
func (r *Repository) Create(ctx context.Context, req CreateReferralRequest) (*Referral, error) {
	query := `
		INSERT INTO patients
		(national_id, last_name, first_name, gender, birth_date, current_age, city, address, phone, email,
		 protocol_flag, protocol_name, referral_date, referring_professional, clinical_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at
	`

	// Protocol name is only meaningful when the protocol flag is set
	protocolName := nullIfEmpty(req.ProtocolName)
	if !req.ProtocolFlag {
		protocolName = sql.NullString{}
	}

	referral := Referral{
		NationalID:            req.NationalID,
		LastName:              req.LastName,
		FirstName:             req.FirstName,
		Gender:                req.Gender,
		BirthDate:             req.BirthDate,
		CurrentAge:            req.CurrentAge,
		City:                  req.City,
		Address:               req.Address,
		Phone:                 req.Phone,
		Email:                 req.Email,
		ProtocolFlag:          req.ProtocolFlag,
		ReferralDate:          req.ReferralDate,
		ReferringProfessional: req.ReferringProfessional,
		ClinicalNotes:         req.ClinicalNotes,
	}
	if protocolName.Valid {
		referral.ProtocolName = protocolName.String
	}

	err := r.db.QueryRowContext(ctx, query,
		req.NationalID,
		req.LastName,
		req.FirstName,
		nullIfEmpty(req.Gender),
		nullIfEmpty(req.BirthDate),
		req.CurrentAge,
		nullIfEmpty(req.City),
		nullIfEmpty(req.Address),
		req.Phone,
		req.Email,
		req.ProtocolFlag,
		protocolName,
		nullIfEmpty(req.ReferralDate),
		nullIfEmpty(req.ReferringProfessional),
		nullIfEmpty(req.ClinicalNotes),
	).Scan(&referral.ID, &referral.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to insert referral: %w", err)
	}

	return &referral, nil
}

// ScheduleAppointment sets the appointment fields on the most recent
// referral row for the national ID. Older referrals for the same person
// are left untouched. Zero matches is not an error.
func (r *Repository) ScheduleAppointment(ctx context.Context, nationalID string, req ScheduleAppointmentRequest) (int64, error) {
	query := `
		UPDATE patients
		SET assigned_professional = $1,
		    specialty = $2,
		    visit_type = $3,
		    appointment_date = $4,
		    appointment_time = $5,
		    appointment_confirmed = $6
		WHERE id = (SELECT max(id) FROM patients WHERE national_id = $7)
	`

	result, err := r.db.ExecContext(ctx, query,
		nullIfEmpty(req.Professional),
		nullIfEmpty(req.Specialty),
		nullIfEmpty(req.VisitType),
		nullIfEmpty(req.AppointmentDate),
		nullIfEmpty(req.AppointmentTime),
		req.Confirmed,
		nationalID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to schedule appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}

// ListAll returns every referral row in storage order.
func (r *Repository) ListAll(ctx context.Context) ([]Referral, error) {
	query := fmt.Sprintf(`SELECT %s FROM patients ORDER BY id`, referralColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query referrals: %w", err)
	}
	defer rows.Close()

	return collectReferrals(rows)
}

// ListUnscheduled returns referrals whose appointment is unset or
// unconfirmed.
func (r *Repository) ListUnscheduled(ctx context.Context) ([]Referral, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM patients
		WHERE appointment_confirmed IS NULL OR appointment_confirmed = false
		ORDER BY id
	`, referralColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query unscheduled referrals: %w", err)
	}
	defer rows.Close()

	return collectReferrals(rows)
}

// ListWithPagination returns one page of referrals plus the total count.
func (r *Repository) ListWithPagination(ctx context.Context, limit, offset int) ([]Referral, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count referrals: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM patients ORDER BY id LIMIT $1 OFFSET $2`, referralColumns)
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query referrals: %w", err)
	}
	defer rows.Close()

	referrals, err := collectReferrals(rows)
	if err != nil {
		return nil, 0, err
	}
	return referrals, total, nil
}

// ListUnscheduledWithPagination returns one page of unscheduled
// referrals plus the total count of unscheduled rows.
func (r *Repository) ListUnscheduledWithPagination(ctx context.Context, limit, offset int) ([]Referral, int, error) {
	const where = `appointment_confirmed IS NULL OR appointment_confirmed = false`

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM patients WHERE %s`, where)
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count unscheduled referrals: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM patients WHERE %s ORDER BY id LIMIT $1 OFFSET $2`, referralColumns, where)
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query unscheduled referrals: %w", err)
	}
	defer rows.Close()

	referrals, err := collectReferrals(rows)
	if err != nil {
		return nil, 0, err
	}
	return referrals, total, nil
}

func collectReferrals(rows *sql.Rows) ([]Referral, error) {
	var referrals []Referral
	for rows.Next() {
		referral, err := scanReferral(rows)
		if err != nil {
			return nil, err
		}
		referrals = append(referrals, *referral)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating referrals: %w", err)
	}
	return referrals, nil
}

func scanReferral(rows *sql.Rows) (*Referral, error) {
	var referral Referral
	var gender sql.NullString
	var birthDate sql.NullString
	var currentAge sql.NullInt64
	var city sql.NullString
	var address sql.NullString
	var phone sql.NullString
	var email sql.NullString
	var protocolName sql.NullString
	var referralDate sql.NullString
	var referringProfessional sql.NullString
	var clinicalNotes sql.NullString
	var assignedProfessional sql.NullString
	var specialty sql.NullString
	var visitType sql.NullString
	var appointmentDate sql.NullString
	var appointmentTime sql.NullString
	var appointmentConfirmed sql.NullBool

	err := rows.Scan(
		&referral.ID,
		&referral.NationalID,
		&referral.LastName,
		&referral.FirstName,
		&gender,
		&birthDate,
		&currentAge,
		&city,
		&address,
		&phone,
		&email,
		&referral.ProtocolFlag,
		&protocolName,
		&referralDate,
		&referringProfessional,
		&clinicalNotes,
		&assignedProfessional,
		&specialty,
		&visitType,
		&appointmentDate,
		&appointmentTime,
		&appointmentConfirmed,
		&referral.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan referral: %w", err)
	}

	referral.Gender = gender.String
	referral.BirthDate = birthDate.String
	referral.CurrentAge = int(currentAge.Int64)
	referral.City = city.String
	referral.Address = address.String
	referral.Phone = phone.String
	referral.Email = email.String
	referral.ProtocolName = protocolName.String
	referral.ReferralDate = referralDate.String
	referral.ReferringProfessional = referringProfessional.String
	referral.ClinicalNotes = clinicalNotes.String

	if assignedProfessional.Valid {
		referral.AssignedProfessional = &assignedProfessional.String
	}
	if specialty.Valid {
		referral.Specialty = &specialty.String
	}
	if visitType.Valid {
		referral.VisitType = &visitType.String
	}
	if appointmentDate.Valid {
		referral.AppointmentDate = &appointmentDate.String
	}
	if appointmentTime.Valid {
		referral.AppointmentTime = &appointmentTime.String
	}
	if appointmentConfirmed.Valid {
		referral.AppointmentConfirmed = &appointmentConfirmed.Bool
	}

	return &referral, nil
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
