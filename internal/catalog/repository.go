package catalog

import (
	"database/sql"
	"fmt"

	"github.com/mustafakart000/hospital-backend/pkg/database"
	"github.com/mustafakart000/hospital-backend/pkg/logger"
	"github.com/mustafakart000/hospital-backend/pkg/types"
)

// Repository maintains the persisted speciality catalog
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new catalog repository
func NewRepository(db *database.DB, log *logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// Seed inserts any speciality missing from the catalog table. Existing
// rows are left untouched so ids stay stable across restarts.
func (r *Repository) Seed() error {
	query := `
		INSERT INTO specialities (code, display_name)
		VALUES ($1, $2)
		ON CONFLICT (code) DO NOTHING`

	inserted := 0
	for _, speciality := range types.AllSpecialities() {
		result, err := r.db.Exec(query, speciality, speciality.DisplayName())
		if err != nil {
			return fmt.Errorf("failed to seed speciality %s: %w", speciality, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read seed result: %w", err)
		}
		inserted += int(affected)
	}

	if inserted > 0 {
		r.logger.WithField("count", inserted).Info("Speciality catalog seeded")
	}
	return nil
}

// List returns the full catalog in insertion order
func (r *Repository) List() ([]*types.SpecialityRow, error) {
	rows, err := r.db.Query(`SELECT id, code, display_name FROM specialities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list specialities: %w", err)
	}
	defer rows.Close()

	var catalog []*types.SpecialityRow
	for rows.Next() {
		var row types.SpecialityRow
		if err := rows.Scan(&row.ID, &row.Code, &row.DisplayName); err != nil {
			return nil, fmt.Errorf("failed to scan speciality row: %w", err)
		}
		catalog = append(catalog, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate speciality rows: %w", err)
	}
	return catalog, nil
}

// GetByID returns one catalog entry
func (r *Repository) GetByID(id int64) (*types.SpecialityRow, error) {
	var row types.SpecialityRow
	err := r.db.QueryRow(
		`SELECT id, code, display_name FROM specialities WHERE id = $1`, id,
	).Scan(&row.ID, &row.Code, &row.DisplayName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError(types.ErrCodeNotFound, "speciality not found")
		}
		return nil, fmt.Errorf("failed to get speciality: %w", err)
	}
	return &row, nil
}
