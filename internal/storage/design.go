package storage

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/wagnerlima/glyco-studio/internal/models"
)

// DefaultListLimit caps listings and searches when the caller passes no limit.
const DefaultListLimit = 50

// DesignStore manages a single campaign's design history database.
type DesignStore struct {
	db *sql.DB
}

// OpenDesigns opens an existing campaign database.
func OpenDesigns(dbPath string) (*DesignStore, error) {
	db, err := sql.Open("sqlite3", dsn(dbPath)+"&_pragma=cache_size(-64000)")
	if err != nil {
		return nil, fmt.Errorf("open campaign db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping campaign db: %w", err)
	}
	return &DesignStore{db: db}, nil
}

// Close closes the campaign database connection.
func (s *DesignStore) Close() error {
	return s.db.Close()
}

// SaveDesign records d with a fresh ID and returns it with its timestamp.
func (s *DesignStore) SaveDesign(ctx context.Context, d models.Design) (*models.Design, error) {
	if d.Kind == "" {
		return nil, errors.New("design kind is required")
	}
	if d.Input == "" {
		d.Input = "{}"
	}
	d.ID = uuid.New().String()

	var score sql.NullFloat64
	if d.Score != nil {
		score = sql.NullFloat64{Float64: *d.Score, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO designs (id, kind, name, motif, score, format, input, output) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Kind, d.Name, d.Motif, score, d.Format, d.Input, d.Output,
	)
	if err != nil {
		return nil, fmt.Errorf("insert design: %w", err)
	}
	s.db.QueryRowContext(ctx, `SELECT created_at FROM designs WHERE id = ?`, d.ID).Scan(&d.CreatedAt)
	return &d, nil
}

// GetDesign loads an active design including its output.
func (s *DesignStore) GetDesign(ctx context.Context, id string) (*models.Design, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, name, motif, score, format, input, output, created_at
		 FROM designs WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	var d models.Design
	var score sql.NullFloat64
	err := row.Scan(&d.ID, &d.Kind, &d.Name, &d.Motif, &score, &d.Format, &d.Input, &d.Output, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("design %q %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan design: %w", err)
	}
	if score.Valid {
		d.Score = &score.Float64
	}
	return &d, nil
}

// ListDesigns returns active designs newest first, optionally filtered by
// kind. Outputs are not loaded.
func (s *DesignStore) ListDesigns(ctx context.Context, kind string, limit int) ([]models.Design, error) {
	query := `SELECT id, kind, name, motif, score, format, input, created_at FROM designs WHERE deleted_at IS NULL`
	var args []any
	if kind != "" {
		query += ` AND kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY rowid DESC LIMIT ?`
	args = append(args, normLimit(limit))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	return scanDesigns(rows)
}

// SearchDesigns runs an FTS5 match over kind, name, motif and input.
func (s *DesignStore) SearchDesigns(ctx context.Context, query string, limit int) ([]models.Design, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id, d.kind, d.name, d.motif, d.score, d.format, d.input, d.created_at
		 FROM designs d
		 JOIN designs_fts ON designs_fts.rowid = d.rowid
		 WHERE designs_fts MATCH ? AND d.deleted_at IS NULL
		 ORDER BY rank LIMIT ?`,
		query, normLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("search designs fts: %w", err)
	}
	return scanDesigns(rows)
}

// DeleteDesigns soft-deletes designs by ID and reports how many were removed.
func (s *DesignStore) DeleteDesigns(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	result, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE designs SET deleted_at = datetime('now') WHERE id IN (%s) AND deleted_at IS NULL`, strings.Join(placeholders, ",")),
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("soft-delete designs: %w", err)
	}
	return result.RowsAffected()
}

// ExportCSV writes every active design, oldest first, as CSV with a header
// row. It returns the number of data rows written.
func (s *DesignStore) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, name, motif, score, format, input, created_at
		 FROM designs WHERE deleted_at IS NULL ORDER BY rowid`,
	)
	if err != nil {
		return 0, fmt.Errorf("export designs: %w", err)
	}
	designs, err := scanDesigns(rows)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	cw.Write([]string{"id", "kind", "name", "motif", "score", "format", "input", "created_at"})
	for _, d := range designs {
		score := ""
		if d.Score != nil {
			score = strconv.FormatFloat(*d.Score, 'f', -1, 64)
		}
		cw.Write([]string{d.ID, d.Kind, d.Name, d.Motif, score, d.Format, d.Input, d.CreatedAt})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("write csv: %w", err)
	}
	return len(designs), nil
}

func scanDesigns(rows *sql.Rows) ([]models.Design, error) {
	defer rows.Close()
	designs := []models.Design{}
	for rows.Next() {
		var d models.Design
		var score sql.NullFloat64
		if err := rows.Scan(&d.ID, &d.Kind, &d.Name, &d.Motif, &score, &d.Format, &d.Input, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan design: %w", err)
		}
		if score.Valid {
			v := score.Float64
			d.Score = &v
		}
		designs = append(designs, d)
	}
	return designs, rows.Err()
}

func normLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
