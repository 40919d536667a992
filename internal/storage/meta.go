package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/wagnerlima/glyco-studio/internal/models"
)

// ErrNotFound is wrapped by lookups that match nothing.
var ErrNotFound = errors.New("not found")

const (
	campaignsDir = "campaigns"
	archiveDir   = "archive"
)

// MetaStore manages the central _meta.db database that tracks all campaigns.
type MetaStore struct {
	db      *sql.DB
	dataDir string
}

// OpenMeta opens (or creates) the _meta.db database and runs migrations.
func OpenMeta(dataDir string) (*MetaStore, error) {
	for _, dir := range []string{dataDir, filepath.Join(dataDir, campaignsDir), filepath.Join(dataDir, archiveDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dsn(filepath.Join(dataDir, "_meta.db")))
	if err != nil {
		return nil, fmt.Errorf("open meta db: %w", err)
	}
	if _, err := db.Exec(MetaSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate meta db: %w", err)
	}
	return &MetaStore{db: db, dataDir: dataDir}, nil
}

// Close closes the database connection.
func (m *MetaStore) Close() error {
	return m.db.Close()
}

// DataDir returns the base data directory.
func (m *MetaStore) DataDir() string {
	return m.dataDir
}

// CreateCampaign creates a new campaign entry and its design database.
func (m *MetaStore) CreateCampaign(ctx context.Context, name, description string) (*models.Campaign, error) {
	if name == "" {
		return nil, errors.New("campaign name is required")
	}
	id := uuid.New().String()
	dbPath := filepath.Join(campaignsDir, id+".db")

	_, err := m.db.ExecContext(ctx,
		`INSERT INTO campaigns (id, name, description, db_path, status) VALUES (?, ?, ?, ?, 'active')`,
		id, name, description, dbPath,
	)
	if err != nil {
		return nil, fmt.Errorf("insert campaign: %w", err)
	}

	if err := initDesignDB(filepath.Join(m.dataDir, dbPath)); err != nil {
		m.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = ?`, id)
		return nil, fmt.Errorf("init campaign db: %w", err)
	}
	return m.GetCampaign(ctx, name)
}

// GetCampaign looks up a campaign by its unique name.
func (m *MetaStore) GetCampaign(ctx context.Context, name string) (*models.Campaign, error) {
	row := m.db.QueryRowContext(ctx,
		`SELECT id, name, description, db_path, status, created_at, updated_at FROM campaigns WHERE name = ?`,
		name,
	)
	c, err := scanCampaign(row)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("campaign %q %w", name, ErrNotFound)
	}
	return c, err
}

// ListCampaigns returns campaigns filtered by status. Use "all" for no filter.
func (m *MetaStore) ListCampaigns(ctx context.Context, status string) ([]models.Campaign, error) {
	query := `SELECT id, name, description, db_path, status, created_at, updated_at FROM campaigns`
	var args []any
	if status != "all" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	rows, err := m.db.QueryContext(ctx, query+` ORDER BY name`, args...)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.DBPath, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// ArchiveCampaign sets status to archived and moves the design database
// from campaigns/ to archive/.
func (m *MetaStore) ArchiveCampaign(ctx context.Context, name string) (*models.Campaign, error) {
	return m.move(ctx, name, models.StatusActive, models.StatusArchived, archiveDir)
}

// RestoreCampaign moves an archived campaign back to active status.
func (m *MetaStore) RestoreCampaign(ctx context.Context, name string) (*models.Campaign, error) {
	return m.move(ctx, name, models.StatusArchived, models.StatusActive, campaignsDir)
}

func (m *MetaStore) move(ctx context.Context, name, from, to, dir string) (*models.Campaign, error) {
	c, err := m.GetCampaign(ctx, name)
	if err != nil {
		return nil, err
	}
	if c.Status != from {
		return nil, fmt.Errorf("campaign %q is %s", name, c.Status)
	}

	oldPath := filepath.Join(m.dataDir, c.DBPath)
	newRelPath := filepath.Join(dir, filepath.Base(c.DBPath))
	newPath := filepath.Join(m.dataDir, newRelPath)
	if err := os.Rename(oldPath, newPath); err != nil {
		return nil, fmt.Errorf("move campaign db: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		os.Rename(oldPath+suffix, newPath+suffix)
	}

	_, err = m.db.ExecContext(ctx,
		`UPDATE campaigns SET status = ?, db_path = ?, updated_at = datetime('now') WHERE name = ?`,
		to, newRelPath, name,
	)
	if err != nil {
		os.Rename(newPath, oldPath)
		return nil, fmt.Errorf("update campaign status: %w", err)
	}
	return m.GetCampaign(ctx, name)
}

// DeleteCampaign permanently removes a campaign record and its database file.
func (m *MetaStore) DeleteCampaign(ctx context.Context, name string) error {
	c, err := m.GetCampaign(ctx, name)
	if err != nil {
		return err
	}

	path := m.CampaignDBPath(c)
	os.Remove(path)
	os.Remove(path + "-wal")
	os.Remove(path + "-shm")

	if _, err := m.db.ExecContext(ctx, `DELETE FROM campaigns WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete campaign record: %w", err)
	}
	return nil
}

// CampaignDBPath returns the absolute path to a campaign's database file.
func (m *MetaStore) CampaignDBPath(c *models.Campaign) string {
	return filepath.Join(m.dataDir, c.DBPath)
}

func scanCampaign(row *sql.Row) (*models.Campaign, error) {
	var c models.Campaign
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.DBPath, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan campaign: %w", err)
	}
	return &c, nil
}

func initDesignDB(path string) error {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(DesignSchema); err != nil {
		return fmt.Errorf("create design schema: %w", err)
	}
	if _, err := db.Exec(DesignTriggers); err != nil {
		return fmt.Errorf("create design triggers: %w", err)
	}
	return nil
}
