package catalog

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
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

func TestRepository_Seed(t *testing.T) {
	t.Run("fresh catalog inserts every speciality", func(t *testing.T) {
		repo, mock, cleanup := setupTestRepository(t)
		defer cleanup()

		for range types.AllSpecialities() {
			mock.ExpectExec("INSERT INTO specialities").
				WillReturnResult(sqlmock.NewResult(0, 1))
		}

		assert.NoError(t, repo.Seed())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already seeded catalog is untouched", func(t *testing.T) {
		repo, mock, cleanup := setupTestRepository(t)
		defer cleanup()

		for range types.AllSpecialities() {
			mock.ExpectExec("INSERT INTO specialities").
				WillReturnResult(sqlmock.NewResult(0, 0))
		}

		assert.NoError(t, repo.Seed())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_List(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "code", "display_name"}).
		AddRow(1, "CARDIOLOGIST", types.Cardiologist.DisplayName()).
		AddRow(2, "NEUROLOGIST", types.Neurologist.DisplayName())

	mock.ExpectQuery("SELECT id, code, display_name FROM specialities").
		WillReturnRows(rows)

	catalog, err := repo.List()
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	assert.Equal(t, int64(1), catalog[0].ID)
	assert.Equal(t, types.Cardiologist, catalog[0].Code)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, code, display_name FROM specialities WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "display_name"}))

	row, err := repo.GetByID(99)
	assert.Nil(t, row)

	var herr *types.HospitalError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, types.ErrorTypeNotFound, herr.Type)
}
