package persistence

import (
	"database/sql"
	"fmt"
	"time"

	"streamhaven/infrastructure/configuration"

	_ "github.com/lib/pq"
)

// NewPostgreSQLDB creates a sql.DB for PostgreSQL using native database/sql.
func NewPostgreSQLDB() (*sql.DB, error) {
	cfg := configuration.C.Database.Psql

	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
