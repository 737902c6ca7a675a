package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	_ "modernc.org/sqlite"                               // Local SQLite driver

	"visittracker/pkg/core/domain"
	"visittracker/pkg/ports"
)

// timeFormat is the stored timestamp layout: fixed-width ISO-8601 UTC with
// microseconds. Fixed width keeps lexicographic range comparisons exact and
// keeps SQLite's DATE()/strftime() parsing valid.
const timeFormat = "2006-01-02T15:04:05.000000Z"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	if driverName == "sqlite" {
		if err := ensureDir(dbURL); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
		}
		// WAL lets readers proceed while a write commits; mandatory because
		// serverless cold starts can run concurrent writers across processes.
		// Set via DSN pragmas so every pooled connection gets them.
		dbURL = withPragmas(dbURL, "journal_mode(WAL)", "busy_timeout(5000)")
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageCorrupt, err)
	}

	return &SQLiteRepository{db: db}, nil
}

// ensureDir creates the parent directory for local file: URLs so the first
// Ping can create the database file.
func ensureDir(dbURL string) error {
	path := strings.TrimPrefix(dbURL, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "/" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func withPragmas(dbURL string, pragmas ...string) string {
	sep := "?"
	if strings.Contains(dbURL, "?") {
		sep = "&"
	}
	for _, p := range pragmas {
		dbURL += sep + "_pragma=" + p
		sep = "&"
	}
	return dbURL
}

// migrate is idempotent and safe to race across concurrent cold starts.
func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS page_visits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		ip TEXT,
		user_agent TEXT,
		referrer TEXT DEFAULT 'direct',
		path TEXT DEFAULT '/',
		country TEXT,
		metadata TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_page_visits_timestamp ON page_visits(timestamp);
	`
	_, err := db.Exec(query)
	return err
}

func (r *SQLiteRepository) Append(ctx context.Context, visit *domain.Visit) error {
	query := `INSERT INTO page_visits (timestamp, ip, user_agent, referrer, path)
			  VALUES (?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		visit.Timestamp.UTC().Format(timeFormat),
		visit.IP, visit.UserAgent, visit.Referrer, visit.Path,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	visit.ID = id
	return nil
}

func (r *SQLiteRepository) Stats(ctx context.Context) (*domain.Stats, error) {
	now := time.Now().UTC()

	stats := &domain.Stats{
		Daily:         []domain.DailyCount{},
		TopReferrers:  []domain.ReferrerCount{},
		HourlyHeatmap: []domain.HourlyCount{},
		RecentVisits:  []domain.RecentVisit{},
	}

	// Total visits
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM page_visits`).Scan(&stats.TotalVisits)
	if err != nil {
		return nil, err
	}

	// Unique visitors by IP
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT ip) FROM page_visits`).Scan(&stats.UniqueVisitors)
	if err != nil {
		return nil, err
	}

	// Today's visits: current UTC calendar date, not a rolling 24h window
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM page_visits WHERE timestamp >= ?`,
		todayStart.Format(timeFormat),
	).Scan(&stats.TodayVisits)
	if err != nil {
		return nil, err
	}

	// Daily breakdown, last 30 days. Days with zero visits are not emitted.
	rows, err := r.db.QueryContext(ctx, `
		SELECT DATE(timestamp) AS day, COUNT(*)
		FROM page_visits
		WHERE timestamp >= ?
		GROUP BY day
		ORDER BY day ASC`,
		now.AddDate(0, 0, -30).Format(timeFormat),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var dc domain.DailyCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, err
		}
		stats.Daily = append(stats.Daily, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Top referrers, excluding direct traffic. Referrer ASC breaks count ties
	// deterministically.
	rows2, err := r.db.QueryContext(ctx, `
		SELECT referrer, COUNT(*) AS c
		FROM page_visits
		WHERE referrer IS NOT NULL AND referrer != 'direct'
		GROUP BY referrer
		ORDER BY c DESC, referrer ASC
		LIMIT 10`,
	)
	if err != nil {
		return nil, err
	}
	defer rows2.Close()
	for rows2.Next() {
		var rc domain.ReferrerCount
		if err := rows2.Scan(&rc.Referrer, &rc.Count); err != nil {
			return nil, err
		}
		stats.TopReferrers = append(stats.TopReferrers, rc)
	}
	if err := rows2.Err(); err != nil {
		return nil, err
	}

	// Hourly heatmap over the last 7 days, UTC hour of day
	rows3, err := r.db.QueryContext(ctx, `
		SELECT CAST(strftime('%H', timestamp) AS INTEGER) AS hour, COUNT(*)
		FROM page_visits
		WHERE timestamp >= ?
		GROUP BY hour
		ORDER BY hour ASC`,
		now.AddDate(0, 0, -7).Format(timeFormat),
	)
	if err != nil {
		return nil, err
	}
	defer rows3.Close()
	for rows3.Next() {
		var hc domain.HourlyCount
		if err := rows3.Scan(&hc.Hour, &hc.Count); err != nil {
			return nil, err
		}
		stats.HourlyHeatmap = append(stats.HourlyHeatmap, hc)
	}
	if err := rows3.Err(); err != nil {
		return nil, err
	}

	// Recent visits: last 20 by insertion order, not timestamp order
	rows4, err := r.db.QueryContext(ctx, `
		SELECT timestamp, ip, user_agent, referrer, path
		FROM page_visits
		ORDER BY id DESC
		LIMIT 20`,
	)
	if err != nil {
		return nil, err
	}
	defer rows4.Close()
	for rows4.Next() {
		var rv domain.RecentVisit
		var ip, ua, ref, path sql.NullString
		if err := rows4.Scan(&rv.Timestamp, &ip, &ua, &ref, &path); err != nil {
			return nil, err
		}
		rv.IP = ip.String
		rv.UserAgent = truncate(ua.String, 80)
		rv.Referrer = ref.String
		rv.Path = path.String
		stats.RecentVisits = append(stats.RecentVisits, rv)
	}
	if err := rows4.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM page_visits`)
	return err
}

func (r *SQLiteRepository) Dump(ctx context.Context) ([]domain.Visit, error) {
	query := `SELECT id, timestamp, ip, user_agent, referrer, path, country, metadata
			  FROM page_visits ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []domain.Visit
	for rows.Next() {
		var v domain.Visit
		var ts string
		var ip, ua, ref, path, country, metadata sql.NullString
		if err := rows.Scan(&v.ID, &ts, &ip, &ua, &ref, &path, &country, &metadata); err != nil {
			return nil, err
		}
		v.Timestamp, err = time.Parse(timeFormat, ts)
		if err != nil {
			return nil, fmt.Errorf("%w: bad timestamp %q: %v", domain.ErrStorageCorrupt, ts, err)
		}
		v.IP = ip.String
		v.UserAgent = ua.String
		v.Referrer = ref.String
		v.Path = path.String
		v.Country = country.String
		v.Metadata = metadata.String
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Ensure interface compliance
var _ ports.VisitRepository = (*SQLiteRepository)(nil)
