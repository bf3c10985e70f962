package reservation

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/mustafakart000/hospital-backend/pkg/database"
	"github.com/mustafakart000/hospital-backend/pkg/logger"
	"github.com/mustafakart000/hospital-backend/pkg/types"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Repository implements reservation persistence
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new reservation repository
func NewRepository(db *database.DB, log *logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

const detailColumns = `
	r.id, r.doctor_id, r.patient_id, r.reservation_date, r.reservation_time,
	r.status, r.speciality, r.created_at, r.updated_at,
	doc.name, doc.surname, pat.name, pat.surname`

const detailJoins = `
	FROM reservations r
	JOIN users doc ON doc.id = r.doctor_id
	JOIN users pat ON pat.id = r.patient_id`

// Create inserts a new reservation. A slot collision that slips past the
// application-level probe surfaces as SLOT_TAKEN through the unique
// constraint on (reservation_date, reservation_time).
func (r *Repository) Create(reservation *types.Reservation) error {
	query := `
		INSERT INTO reservations (id, doctor_id, patient_id, reservation_date,
			reservation_time, status, speciality, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		reservation.ID,
		reservation.DoctorID,
		reservation.PatientID,
		reservation.Date.Format(dateLayout),
		reservation.Time.Format(timeLayout),
		reservation.Status,
		reservation.Speciality,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return types.NewConflictError(types.ErrCodeSlotTaken, "the requested slot is already booked")
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"reservation_id": reservation.ID,
		"doctor_id":      reservation.DoctorID,
	}).Info("Reservation created successfully")
	return nil
}

// GetByID retrieves one reservation with participant names
func (r *Repository) GetByID(id string) (*types.ReservationDetail, error) {
	query := "SELECT " + detailColumns + detailJoins + " WHERE r.id = $1"

	detail, err := scanDetail(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError(types.ErrCodeNotFound, "reservation not found")
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return detail, nil
}

// GetAll returns every reservation
func (r *Repository) GetAll() ([]*types.ReservationDetail, error) {
	query := "SELECT " + detailColumns + detailJoins +
		" ORDER BY r.reservation_date, r.reservation_time"
	return r.list(query)
}

func (r *Repository) list(query string, args ...interface{}) ([]*types.ReservationDetail, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var details []*types.ReservationDetail
	for rows.Next() {
		detail, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation row: %w", err)
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reservation rows: %w", err)
	}
	return details, nil
}

// Update rewrites the mutable fields of a reservation
func (r *Repository) Update(id string, reservation *types.Reservation) error {
	query := `
		UPDATE reservations
		SET doctor_id = $1, patient_id = $2, reservation_date = $3,
			reservation_time = $4, status = $5, speciality = $6, updated_at = now()
		WHERE id = $7`

	result, err := r.db.Exec(query,
		reservation.DoctorID,
		reservation.PatientID,
		reservation.Date.Format(dateLayout),
		reservation.Time.Format(timeLayout),
		reservation.Status,
		reservation.Speciality,
		id,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return types.NewConflictError(types.ErrCodeSlotTaken, "the requested slot is already booked")
		}
		return fmt.Errorf("failed to update reservation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return types.NewNotFoundError(types.ErrCodeNotFound, "reservation not found")
	}
	return nil
}

// Delete removes a reservation
func (r *Repository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return types.NewNotFoundError(types.ErrCodeNotFound, "reservation not found")
	}

	r.logger.WithField("reservation_id", id).Info("Reservation deleted")
	return nil
}

// ExistsAtSlot reports whether any reservation occupies the slot. The
// check spans all doctors, matching the catalog-wide slot invariant.
func (r *Repository) ExistsAtSlot(date, timeOfDay string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE reservation_date = $1 AND reservation_time = $2
		)`

	var exists bool
	if err := r.db.QueryRow(query, date, timeOfDay).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slot: %w", err)
	}
	return exists, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDetail(row scanner) (*types.ReservationDetail, error) {
	var detail types.ReservationDetail
	var rawTime string

	err := row.Scan(
		&detail.ID,
		&detail.DoctorID,
		&detail.PatientID,
		&detail.Date,
		&rawTime,
		&detail.Status,
		&detail.Speciality,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.DoctorName,
		&detail.DoctorSurname,
		&detail.PatientName,
		&detail.PatientSurname,
	)
	if err != nil {
		return nil, err
	}

	// TIME columns come back as text
	parsed, err := time.Parse(timeLayout, rawTime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reservation time %q: %w", rawTime, err)
	}
	detail.Time = parsed
	return &detail, nil
}
