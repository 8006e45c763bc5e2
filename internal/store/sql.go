package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"taskboard/internal/service"
)

// dialect holds the statements that differ between drivers.
type dialect struct {
	createTable string
	insert      string
}

var dialects = map[string]dialect{
	"sqlite3": {
		createTable: `CREATE TABLE IF NOT EXISTS tasks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    content TEXT NOT NULL
)`,
		insert: `INSERT INTO tasks (title, content) VALUES (?, ?)`,
	},
	"postgres": {
		createTable: `CREATE TABLE IF NOT EXISTS tasks (
    id SERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL
)`,
		insert: `INSERT INTO tasks (title, content) VALUES ($1, $2)`,
	},
	"mysql": {
		createTable: `CREATE TABLE IF NOT EXISTS tasks (
    id BIGINT PRIMARY KEY AUTO_INCREMENT,
    title VARCHAR(255) NOT NULL,
    content TEXT NOT NULL
)`,
		insert: `INSERT INTO tasks (title, content) VALUES (?, ?)`,
	},
}

// SQL is a Store on database/sql.
type SQL struct {
	db      *sql.DB
	dialect dialect
}

// OpenSQL connects with driver, checks the connection and creates the
// tasks table if needed.
func OpenSQL(ctx context.Context, driver, dsn string) (*SQL, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported sql driver: %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQL{db: db, dialect: d}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQL) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.createTable); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return nil
}

func (s *SQL) All(ctx context.Context) ([]service.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT title, content FROM tasks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []service.Task{}
	for rows.Next() {
		var t service.Task
		if err := rows.Scan(&t.Title, &t.Content); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *SQL) Add(ctx context.Context, task service.Task) error {
	_, err := s.db.ExecContext(ctx, s.dialect.insert, task.Title, task.Content)
	return err
}

func (s *SQL) Close() error { return s.db.Close() }
