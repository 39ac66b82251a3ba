package sensor

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Report is one sensor observation. Reports are append-only history; the
// edge blocked flag in the graph is the current projection.
type Report struct {
	ID           int64     `json:"id"`
	SensorID     string    `json:"sensorId"`
	EdgeID       string    `json:"edgeId"`
	ObstacleType string    `json:"obstacleType"`
	Description  string    `json:"description"`
	Cleared      bool      `json:"cleared"`
	RecordedAt   time.Time `json:"recordedAt"`
}

// Store persists sensor reports in SQLite.
type Store struct {
	conn *sql.DB
	Path string
}

// OpenStore opens (or creates) the report database with WAL mode for
// concurrent reads and applies the schema.
func OpenStore(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening report database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS reports (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			sensor_id     TEXT NOT NULL,
			edge_id       TEXT NOT NULL,
			obstacle_type TEXT NOT NULL DEFAULT '',
			description   TEXT NOT NULL DEFAULT '',
			cleared       INTEGER NOT NULL DEFAULT 0,
			recorded_at   TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_reports_sensor ON reports(sensor_id, cleared);
	`
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("applying report schema: %w", err)
	}

	return &Store{conn: conn, Path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Append stores a new report row and returns its id.
func (s *Store) Append(r Report) (int64, error) {
	res, err := s.conn.Exec(`
		INSERT INTO reports (sensor_id, edge_id, obstacle_type, description, cleared, recorded_at)
		VALUES (?, ?, ?, ?, 0, ?)
	`, r.SensorID, r.EdgeID, r.ObstacleType, r.Description, r.RecordedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// MarkCleared flags every outstanding report from the sensor as cleared and
// returns how many rows changed.
func (s *Store) MarkCleared(sensorID string) (int64, error) {
	res, err := s.conn.Exec(`UPDATE reports SET cleared = 1 WHERE sensor_id = ? AND cleared = 0`, sensorID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Outstanding returns the uncleared reports, oldest first. An empty
// sensorID matches every sensor.
func (s *Store) Outstanding(sensorID string) ([]Report, error) {
	query := `
		SELECT id, sensor_id, edge_id, obstacle_type, description, cleared, recorded_at
		FROM reports WHERE cleared = 0`
	args := []any{}
	if sensorID != "" {
		query += ` AND sensor_id = ?`
		args = append(args, sensorID)
	}
	query += ` ORDER BY id`

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

// Recent returns the newest reports, cleared or not, up to limit.
func (s *Store) Recent(limit int) ([]Report, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.conn.Query(`
		SELECT id, sensor_id, edge_id, obstacle_type, description, cleared, recorded_at
		FROM reports ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

func scanReports(rows *sql.Rows) ([]Report, error) {
	var out []Report
	for rows.Next() {
		var r Report
		var cleared int
		var recordedAt string
		if err := rows.Scan(&r.ID, &r.SensorID, &r.EdgeID, &r.ObstacleType, &r.Description, &cleared, &recordedAt); err != nil {
			return nil, err
		}
		r.Cleared = cleared != 0
		if t, err := time.Parse(time.RFC3339Nano, recordedAt); err == nil {
			r.RecordedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
