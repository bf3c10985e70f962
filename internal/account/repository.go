package account

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/mustafakart000/hospital-backend/pkg/database"
	"github.com/mustafakart000/hospital-backend/pkg/logger"
	"github.com/mustafakart000/hospital-backend/pkg/types"
)

// Repository implements account data persistence
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new account repository
func NewRepository(db *database.DB, log *logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

const accountColumns = `
	u.id, u.username, u.password_hash, u.role, u.national_id,
	u.name, u.surname, u.email, u.phone, u.address,
	u.birth_date, u.blood_type, u.created_at, u.updated_at,
	d.diploma_no, d.title, d.speciality,
	p.medical_history`

const accountJoins = `
	FROM users u
	LEFT JOIN doctors d ON d.user_id = u.id
	LEFT JOIN patients p ON p.user_id = u.id`

// Create persists a new account together with its role-specific profile
func (r *Repository) Create(account *types.Account) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (id, username, password_hash, role, national_id,
			name, surname, email, phone, address, birth_date, blood_type,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = tx.Exec(query,
		account.ID,
		account.Username,
		account.PasswordHash,
		account.Role,
		account.NationalID,
		account.Name,
		account.Surname,
		account.Email,
		account.Phone,
		account.Address,
		account.BirthDate,
		account.BloodType,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return translateUniqueViolation(err, "failed to create account")
	}

	if account.Doctor != nil {
		_, err = tx.Exec(
			`INSERT INTO doctors (user_id, diploma_no, title, speciality) VALUES ($1, $2, $3, $4)`,
			account.ID,
			account.Doctor.DiplomaNo,
			account.Doctor.Title,
			account.Doctor.Speciality,
		)
		if err != nil {
			return fmt.Errorf("failed to create doctor profile: %w", err)
		}
	}

	if account.Patient != nil {
		_, err = tx.Exec(
			`INSERT INTO patients (user_id, medical_history) VALUES ($1, $2)`,
			account.ID,
			account.Patient.MedicalHistory,
		)
		if err != nil {
			return fmt.Errorf("failed to create patient profile: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit account creation: %w", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"account_id": account.ID,
		"role":       account.Role,
	}).Info("Account created successfully")
	return nil
}

// GetByID retrieves an account by its identifier
func (r *Repository) GetByID(id string) (*types.Account, error) {
	return r.getOne("u.id = $1", id)
}

// GetByUsername retrieves an account by username
func (r *Repository) GetByUsername(username string) (*types.Account, error) {
	return r.getOne("u.username = $1", username)
}

// GetByNationalID retrieves an account by national ID
func (r *Repository) GetByNationalID(nationalID string) (*types.Account, error) {
	return r.getOne("u.national_id = $1", nationalID)
}

func (r *Repository) getOne(where string, arg interface{}) (*types.Account, error) {
	query := "SELECT " + accountColumns + accountJoins + " WHERE " + where

	account, err := scanAccount(r.db.QueryRow(query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.NewNotFoundError(types.ErrCodeNotFound, "account not found")
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// ExistsByUsername reports whether the username is taken
func (r *Repository) ExistsByUsername(username string) (bool, error) {
	return r.exists("username", username)
}

// ExistsByNationalID reports whether the national ID is taken
func (r *Repository) ExistsByNationalID(nationalID string) (bool, error) {
	return r.exists("national_id", nationalID)
}

// ExistsByEmail reports whether the email is taken
func (r *Repository) ExistsByEmail(email string) (bool, error) {
	return r.exists("email", email)
}

func (r *Repository) exists(column, value string) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM users WHERE %s = $1)", column)

	var exists bool
	if err := r.db.QueryRow(query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", column, err)
	}
	return exists, nil
}

// ListDoctors returns all doctor accounts
func (r *Repository) ListDoctors() ([]*types.Account, error) {
	return r.listDoctors("", nil)
}

// ListDoctorsBySpeciality returns doctor accounts practicing the given speciality
func (r *Repository) ListDoctorsBySpeciality(speciality types.Speciality) ([]*types.Account, error) {
	return r.listDoctors("AND d.speciality = $1", []interface{}{speciality})
}

func (r *Repository) listDoctors(filter string, args []interface{}) ([]*types.Account, error) {
	query := "SELECT " + accountColumns + accountJoins +
		" WHERE u.role = 'DOCTOR' " + filter + " ORDER BY u.surname, u.name"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer rows.Close()

	var accounts []*types.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan doctor row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate doctor rows: %w", err)
	}
	return accounts, nil
}

// UpdateDoctor applies a partial update to a doctor account and profile.
// Keys in updates are column names split between the users and doctors
// tables.
func (r *Repository) UpdateDoctor(id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	userColumns := map[string]bool{
		"name": true, "surname": true, "email": true,
		"phone": true, "address": true,
	}
	doctorColumns := map[string]bool{
		"diploma_no": true, "title": true, "speciality": true,
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var found bool
	if err := tx.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND role = 'DOCTOR')`, id,
	).Scan(&found); err != nil {
		return fmt.Errorf("failed to check doctor: %w", err)
	}
	if !found {
		return types.NewNotFoundError(types.ErrCodeNotFound, "doctor not found")
	}

	if err := applyUpdates(tx, "users", "id", id, pick(updates, userColumns), true); err != nil {
		return err
	}
	if err := applyUpdates(tx, "doctors", "user_id", id, pick(updates, doctorColumns), false); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit doctor update: %w", err)
	}

	r.logger.WithField("account_id", id).Info("Doctor updated successfully")
	return nil
}

// DeleteDoctor removes a doctor account. The profile row cascades.
func (r *Repository) DeleteDoctor(id string) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = $1 AND role = 'DOCTOR'`, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return types.NewNotFoundError(types.ErrCodeNotFound, "doctor not found")
	}

	r.logger.WithField("account_id", id).Info("Doctor deleted")
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row scanner) (*types.Account, error) {
	var account types.Account
	var diplomaNo, title, speciality, medicalHistory sql.NullString

	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.Role,
		&account.NationalID,
		&account.Name,
		&account.Surname,
		&account.Email,
		&account.Phone,
		&account.Address,
		&account.BirthDate,
		&account.BloodType,
		&account.CreatedAt,
		&account.UpdatedAt,
		&diplomaNo,
		&title,
		&speciality,
		&medicalHistory,
	)
	if err != nil {
		return nil, err
	}

	if speciality.Valid {
		account.Doctor = &types.DoctorProfile{
			DiplomaNo:  diplomaNo.String,
			Title:      title.String,
			Speciality: types.Speciality(speciality.String),
		}
	}
	if account.Role == types.RolePatient {
		account.Patient = &types.PatientProfile{
			MedicalHistory: medicalHistory.String,
		}
	}
	return &account, nil
}

func pick(updates map[string]interface{}, allowed map[string]bool) map[string]interface{} {
	picked := make(map[string]interface{})
	for column, value := range updates {
		if allowed[column] {
			picked[column] = value
		}
	}
	return picked
}

func applyUpdates(tx *sql.Tx, table, keyColumn, key string, columns map[string]interface{}, touchUpdatedAt bool) error {
	if len(columns) == 0 {
		return nil
	}

	setClauses := make([]string, 0, len(columns)+1)
	args := make([]interface{}, 0, len(columns)+1)
	i := 1
	for column, value := range columns {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, i))
		args = append(args, value)
		i++
	}
	if touchUpdatedAt {
		setClauses = append(setClauses, "updated_at = now()")
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		table, strings.Join(setClauses, ", "), keyColumn, i)
	args = append(args, key)

	if _, err := tx.Exec(query, args...); err != nil {
		return translateUniqueViolation(err, fmt.Sprintf("failed to update %s", table))
	}
	return nil
}

// translateUniqueViolation maps a Postgres unique violation to a conflict
// error so callers can answer 409 instead of 500
func translateUniqueViolation(err error, context string) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		switch {
		case strings.Contains(pqErr.Detail, "username"):
			return types.NewConflictError(types.ErrCodeAlreadyExists, "username is already registered")
		case strings.Contains(pqErr.Detail, "national_id"):
			return types.NewConflictError(types.ErrCodeAlreadyExists, "national id is already registered")
		case strings.Contains(pqErr.Detail, "email"):
			return types.NewConflictError(types.ErrCodeAlreadyExists, "email is already registered")
		}
		return types.NewConflictError(types.ErrCodeAlreadyExists, "account already exists")
	}
	return fmt.Errorf("%s: %w", context, err)
}
