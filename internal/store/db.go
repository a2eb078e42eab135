package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

// Initialize DB connection
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	// sqlite allows a single writer; one pooled connection avoids
	// SQLITE_BUSY and keeps :memory: databases on one connection.
	db.SetMaxOpenConns(1)

	// Create tables if not exists
	participantTable := `
	CREATE TABLE IF NOT EXISTS participants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		program_id INTEGER NOT NULL,
		first_name TEXT,
		last_name TEXT,
		email TEXT,
		form_status TEXT NOT NULL,
		score REAL,
		enrolled_at DATETIME
	);
	CREATE INDEX IF NOT EXISTS idx_participants_program ON participants(program_id);
	CREATE INDEX IF NOT EXISTS idx_participants_status ON participants(form_status);
	CREATE INDEX IF NOT EXISTS idx_participants_enrolled ON participants(enrolled_at);
	`
	exportTable := `
	CREATE TABLE IF NOT EXISTS exports (
		id TEXT PRIMARY KEY,
		export_type TEXT NOT NULL,
		strategy TEXT NOT NULL,
		file_name TEXT NOT NULL,
		file_path TEXT NOT NULL,
		record_count INTEGER NOT NULL,
		total_files INTEGER NOT NULL,
		compressed_size INTEGER,
		created_at DATETIME
	);
	`
	logTable := `
	CREATE TABLE IF NOT EXISTS request_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		request_id TEXT,
		log_type TEXT,
		level TEXT,
		message TEXT,
		context TEXT,
		created_at DATETIME
	);
	CREATE INDEX IF NOT EXISTS idx_request_logs_request ON request_logs(request_id);
	CREATE INDEX IF NOT EXISTS idx_request_logs_created ON request_logs(created_at);
	`

	for _, stmt := range []string{participantTable, exportTable, logTable} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// CloseDB closes the underlying connection
func CloseDB() error {
	if db == nil {
		return nil
	}
	return db.Close()
}

// Participant is one row of the exportable dataset
type Participant struct {
	ProgramID  int
	FirstName  string
	LastName   string
	Email      string
	FormStatus string
	Score      float64
	EnrolledAt time.Time
}

// InsertParticipants bulk-inserts dataset rows in a single transaction
func InsertParticipants(records []Participant) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO participants
		(program_id, first_name, last_name, email, form_status, score, enrolled_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(rec.ProgramID, rec.FirstName, rec.LastName,
			rec.Email, rec.FormStatus, rec.Score, rec.EnrolledAt); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// SeedParticipants fills the dataset with synthetic rows when it is empty.
// Used for demos and local runs, not for production deployments.
func SeedParticipants(count int) error {
	if count <= 0 {
		return nil
	}
	var existing int
	if err := db.QueryRow(`SELECT COUNT(*) FROM participants`).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	statuses := []string{"completed", "approved", "pending", "rejected"}
	records := make([]Participant, 0, count)
	base := time.Now().UTC().AddDate(-1, 0, 0)
	for i := 0; i < count; i++ {
		records = append(records, Participant{
			ProgramID:  100 + i%5,
			FirstName:  fmt.Sprintf("First%d", i),
			LastName:   fmt.Sprintf("Last%d", i),
			Email:      fmt.Sprintf("participant%d@example.com", i),
			FormStatus: statuses[i%len(statuses)],
			Score:      float64(i%100) + 0.5,
			EnrolledAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return InsertParticipants(records)
}
