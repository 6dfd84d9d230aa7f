package persistence

import "gorm.io/gorm"

// InitTables creates the relational schema. Statements are idempotent so
// startup can run them unconditionally.
func InitTables(db *gorm.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS addresses (
			id SERIAL PRIMARY KEY,
			street TEXT NOT NULL,
			number TEXT NOT NULL,
			postal_code TEXT NOT NULL,
			city TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			address_id INTEGER NOT NULL REFERENCES addresses (id),
			phone TEXT NOT NULL,
			email TEXT NOT NULL,
			scholarship BOOLEAN NOT NULL DEFAULT FALSE,
			course TEXT NOT NULL,
			archived BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id INTEGER PRIMARY KEY REFERENCES students (id),
			balance NUMERIC(12, 2) NOT NULL DEFAULT 0,
			pin_code TEXT NOT NULL,
			failed_attempts INTEGER NOT NULL DEFAULT 0,
			locked BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id SERIAL PRIMARY KEY,
			account_id INTEGER NOT NULL REFERENCES accounts (id),
			kind TEXT NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			amount NUMERIC(12, 2) NOT NULL,
			administrator TEXT,
			meal_day DATE,
			meal_time TEXT,
			meal_type TEXT,
			meal_soup TEXT,
			meal_main TEXT,
			meal_dessert TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS administrators (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			password_hash TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS menus (
			day DATE NOT NULL,
			meal_time TEXT NOT NULL,
			meat TEXT NOT NULL DEFAULT '',
			fish TEXT NOT NULL DEFAULT '',
			veggie TEXT NOT NULL DEFAULT '',
			soup TEXT NOT NULL,
			dessert TEXT NOT NULL,
			PRIMARY KEY (day, meal_time)
		)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
