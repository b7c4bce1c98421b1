package metrics

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB is the durable sqlite archive of metrics rows, appended to after each
// configuration so results survive beyond the per-run CSV files.
type DB struct {
	db *sql.DB
}

// OpenDB opens (or creates) a metrics archive database.
func OpenDB(filename string) (*DB, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS metrics (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run INTEGER NOT NULL,
			lambda REAL NOT NULL,
			percent REAL NOT NULL,
			num_nodes INTEGER NOT NULL,
			allies BOOLEAN NOT NULL,
			homophily BOOLEAN NOT NULL,
			degree INTEGER NOT NULL,
			variable TEXT NOT NULL,
			value REAL NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create metrics table: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (mdb *DB) Close() error {
	return mdb.db.Close()
}

// StoreRows appends metrics rows in one transaction.
func (mdb *DB) StoreRows(rows []Row) error {
	tx, err := mdb.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO metrics
			(run, lambda, percent, num_nodes, allies, homophily, degree, variable, value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err = stmt.Exec(
			row.Run, row.Lambda, row.Percent, row.NumNodes,
			row.Allies, row.Homophily, row.Degree, row.Variable, row.Value,
		)
		if err != nil {
			return fmt.Errorf("failed to insert metrics row: %w", err)
		}
	}

	return tx.Commit()
}

// QueryVariable returns all archived rows for one variable name.
func (mdb *DB) QueryVariable(variable string) ([]Row, error) {
	result, err := mdb.db.Query(`
		SELECT run, lambda, percent, num_nodes, allies, homophily, degree, variable, value
		FROM metrics WHERE variable = ? ORDER BY id
	`, variable)
	if err != nil {
		return nil, fmt.Errorf("failed to query metrics: %w", err)
	}
	defer result.Close()

	var rows []Row
	for result.Next() {
		var row Row
		err := result.Scan(
			&row.Run, &row.Lambda, &row.Percent, &row.NumNodes,
			&row.Allies, &row.Homophily, &row.Degree, &row.Variable, &row.Value,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan metrics row: %w", err)
		}
		rows = append(rows, row)
	}

	return rows, result.Err()
}
