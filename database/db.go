package database

import (
	"database/sql"
	"log"
	"sync"

	_ "github.com/lib/pq"

	"github.com/mkyung/handover/config"
)

// Declare a package-level variable to hold the singleton instance.
// Ensure the instance is not accessible outside the package.
var instance *Datasource
var once sync.Once

type Datasource struct {
	Conn *sql.DB
}

func NewDataSource(configuration *config.Configuration) (IDataSource, error) {
	con, err := GetDBConnection(configuration)
	if err != nil {
		return nil, err
	}
	return con, nil
}

// GetDBConnection provides a global access point to the instance and initializes it if it's not already.
func GetDBConnection(configuration *config.Configuration) (*Datasource, error) {
	var err error
	once.Do(func() {
		con, errConn := ConnectDB(configuration.DataSource.Dns)
		if errConn != nil {
			err = errConn
			return
		}
		instance = &Datasource{Conn: con}
	})
	if err != nil {
		return nil, err
	}
	return instance, nil
}

func ConnectDB(dns string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dns)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		log.Printf("database connection error: %v", err)
		return nil, err
	}
	err = createRunTable(db)
	if err != nil {
		return nil, err
	}
	err = createMatchTable(db)
	if err != nil {
		return nil, err
	}
	err = createAuditTable(db)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// createRunTable creates a PostgreSQL table for the Run struct
func createRunTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id SERIAL PRIMARY KEY,
			run_id TEXT NOT NULL UNIQUE,
			company TEXT NOT NULL,
			year INT NOT NULL,
			status TEXT NOT NULL,
			matched_count INT NOT NULL DEFAULT 0,
			unmatched_count INT NOT NULL DEFAULT 0,
			started_at TIMESTAMP NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMP
		)
	`)
	return err
}

// createMatchTable creates a PostgreSQL table for the MatchResult struct
func createMatchTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS matches (
			id SERIAL PRIMARY KEY,
			match_id TEXT NOT NULL UNIQUE,
			run_id TEXT NOT NULL REFERENCES runs(run_id),
			source_id TEXT NOT NULL,
			ledger_key TEXT,
			amount BIGINT NOT NULL,
			date TIMESTAMP NOT NULL,
			status TEXT NOT NULL,
			reason TEXT,
			near_miss TEXT
		)
	`)
	return err
}

// createAuditTable creates a PostgreSQL table for audit-trail events
func createAuditTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS audit_events (
			id SERIAL PRIMARY KEY,
			run_id TEXT NOT NULL REFERENCES runs(run_id),
			kind TEXT NOT NULL,
			key TEXT NOT NULL,
			reason TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	return err
}
