package reservation

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustafakart000/hospital-backend/pkg/database"
	"github.com/mustafakart000/hospital-backend/pkg/logger"
	"github.com/mustafakart000/hospital-backend/pkg/types"
)

func setupTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewRepository(&database.DB{DB: db}, logger.New("debug"))
	cleanup := func() {
		db.Close()
	}
	return repo, mock, cleanup
}

func testReservation() *types.Reservation {
	return &types.Reservation{
		ID:         uuid.New().String(),
		DoctorID:   "doctor-1",
		PatientID:  "patient-1",
		Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Time:       time.Date(0, 1, 1, 14, 30, 0, 0, time.UTC),
		Status:     "ACTIVE",
		Speciality: types.Cardiologist,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

var detailRowColumns = []string{
	"id", "doctor_id", "patient_id", "reservation_date", "reservation_time",
	"status", "speciality", "created_at", "updated_at",
	"doctor_name", "doctor_surname", "patient_name", "patient_surname",
}

func TestRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	reservation := testReservation()

	mock.ExpectExec("INSERT INTO reservations").
		WithArgs(
			reservation.ID,
			"doctor-1",
			"patient-1",
			"2026-09-15",
			"14:30:00",
			"ACTIVE",
			types.Cardiologist,
			reservation.CreatedAt,
			reservation.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(reservation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_SlotConflict(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO reservations").
		WillReturnError(&pq.Error{
			Code:       "23505",
			Constraint: "reservations_slot_key",
		})

	err := repo.Create(testReservation())

	var herr *types.HospitalError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, types.ErrCodeSlotTaken, herr.Code)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows(detailRowColumns).AddRow(
		"res-1", "doctor-1", "patient-1",
		time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), "14:30:00",
		"ACTIVE", "CARDIOLOGIST", now, now,
		"Bob", "Hekim", "Alice", "Hasta",
	)

	mock.ExpectQuery("SELECT (.+) FROM reservations r").
		WithArgs("res-1").
		WillReturnRows(rows)

	detail, err := repo.GetByID("res-1")
	require.NoError(t, err)
	assert.Equal(t, "res-1", detail.ID)
	assert.Equal(t, "Bob", detail.DoctorName)
	assert.Equal(t, "Alice", detail.PatientName)
	assert.Equal(t, 14, detail.Time.Hour())
	assert.Equal(t, 30, detail.Time.Minute())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM reservations r").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(detailRowColumns))

	detail, err := repo.GetByID("ghost")
	assert.Nil(t, detail)

	var herr *types.HospitalError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, types.ErrorTypeNotFound, herr.Type)
}

func TestRepository_ExistsAtSlot(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("2026-09-15", "14:30:00").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := repo.ExistsAtSlot("2026-09-15", "14:30:00")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM reservations").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete("ghost")

	var herr *types.HospitalError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, types.ErrorTypeNotFound, herr.Type)
}
