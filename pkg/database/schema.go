package database

import (
	"context"
	"fmt"
)

// CreateSchema creates the database schema for account and reservation storage
func (db *DB) CreateSchema(ctx context.Context) error {
	db.logger.Info("Creating database schema...")

	if err := db.createExtensions(ctx); err != nil {
		return fmt.Errorf("failed to create extensions: %w", err)
	}

	tables := []string{
		createUsersTable,
		createDoctorsTable,
		createPatientsTable,
		createSpecialitiesTable,
		createReservationsTable,
	}

	for _, table := range tables {
		if _, err := db.ExecContext(ctx, table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		createUsersIndexes,
		createDoctorsIndexes,
		createReservationsIndexes,
	}

	for _, index := range indexes {
		if _, err := db.ExecContext(ctx, index); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
	}

	db.logger.Info("Database schema created successfully")
	return nil
}

// createExtensions creates required PostgreSQL extensions
func (db *DB) createExtensions(ctx context.Context) error {
	extensions := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, ext := range extensions {
		if _, err := db.ExecContext(ctx, ext); err != nil {
			return fmt.Errorf("failed to create extension: %w", err)
		}
	}

	return nil
}

// SQL DDL statements for table creation
const (
	createUsersTable = `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			username VARCHAR(50) UNIQUE NOT NULL,
			password_hash VARCHAR(100) NOT NULL,
			role VARCHAR(10) NOT NULL,
			national_id VARCHAR(20) UNIQUE NOT NULL,
			name VARCHAR(100) NOT NULL,
			surname VARCHAR(100) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			phone VARCHAR(30) NOT NULL,
			address TEXT,
			birth_date DATE NOT NULL,
			blood_type VARCHAR(10),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`

	createDoctorsTable = `
		CREATE TABLE IF NOT EXISTS doctors (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			diploma_no VARCHAR(50),
			title VARCHAR(100),
			speciality VARCHAR(50) NOT NULL
		);`

	createPatientsTable = `
		CREATE TABLE IF NOT EXISTS patients (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			medical_history TEXT
		);`

	createSpecialitiesTable = `
		CREATE TABLE IF NOT EXISTS specialities (
			id SERIAL PRIMARY KEY,
			code VARCHAR(50) UNIQUE NOT NULL,
			display_name VARCHAR(255) NOT NULL
		);`

	// UNIQUE (reservation_date, reservation_time) makes the slot invariant
	// hold even when two bookings race past the application-level probe.
	createReservationsTable = `
		CREATE TABLE IF NOT EXISTS reservations (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			doctor_id UUID NOT NULL REFERENCES users(id),
			patient_id UUID NOT NULL REFERENCES users(id),
			reservation_date DATE NOT NULL,
			reservation_time TIME NOT NULL,
			status VARCHAR(50) NOT NULL,
			speciality VARCHAR(50) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT reservations_slot_key UNIQUE (reservation_date, reservation_time)
		);`
)

// SQL DDL statements for index creation
const (
	createUsersIndexes = `
		CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);
		CREATE INDEX IF NOT EXISTS idx_users_national_id ON users(national_id);`

	createDoctorsIndexes = `
		CREATE INDEX IF NOT EXISTS idx_doctors_speciality ON doctors(speciality);`

	createReservationsIndexes = `
		CREATE INDEX IF NOT EXISTS idx_reservations_doctor ON reservations(doctor_id);
		CREATE INDEX IF NOT EXISTS idx_reservations_patient ON reservations(patient_id);`
)
