package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"github.com/iudanet/passkeeper/internal/models"
	"github.com/iudanet/passkeeper/internal/server/storage"
)

// forEachBatchSize number of rows loaded per page in ForEachRecord
const forEachBatchSize = 100

// credentialRow maps the credentials table
type credentialRow struct {
	bun.BaseModel `bun:"table:credentials"`

	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
	ID        string    `bun:"id,pk"`
	OwnerID   string    `bun:"owner_id,notnull"`
	Website   string    `bun:"website,notnull"`
	Username  string    `bun:"username,notnull"`
	Secret    string    `bun:"secret,notnull"`
}

func toRow(r *models.CredentialRecord) *credentialRow {
	return &credentialRow{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Website:   r.Website,
		Username:  r.Username,
		Secret:    r.Secret,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func (row *credentialRow) toModel() *models.CredentialRecord {
	return &models.CredentialRecord{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Website:   row.Website,
		Username:  row.Username,
		Secret:    row.Secret,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}

// CreateRecord stores a new record
func (s *Storage) CreateRecord(ctx context.Context, record *models.CredentialRecord) error {
	if err := storage.CheckWritable(record); err != nil {
		return err
	}

	if _, err := s.db.NewInsert().Model(toRow(record)).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrRecordExists
		}
		return fmt.Errorf("failed to insert record: %w", err)
	}

	return nil
}

// GetRecord retrieves a record by ID, filtered by owner
func (s *Storage) GetRecord(ctx context.Context, ownerID, id string) (*models.CredentialRecord, error) {
	row := new(credentialRow)

	err := s.db.NewSelect().
		Model(row).
		Where("id = ?", id).
		Where("owner_id = ?", ownerID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return row.toModel(), nil
}

// ListRecords retrieves all records of the owner, newest first
func (s *Storage) ListRecords(ctx context.Context, ownerID string) ([]*models.CredentialRecord, error) {
	var rows []credentialRow

	err := s.db.NewSelect().
		Model(&rows).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC", "id ASC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}

	records := make([]*models.CredentialRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].toModel())
	}

	return records, nil
}

// UpdateRecord replaces the mutable fields of the record matching id and owner
func (s *Storage) UpdateRecord(ctx context.Context, record *models.CredentialRecord) error {
	if err := storage.CheckWritable(record); err != nil {
		return err
	}

	result, err := s.db.NewUpdate().
		Model(toRow(record)).
		Column("website", "username", "secret", "updated_at").
		Where("id = ?", record.ID).
		Where("owner_id = ?", record.OwnerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	return checkAffected(result)
}

// DeleteRecord removes the record matching id and owner
func (s *Storage) DeleteRecord(ctx context.Context, ownerID, id string) error {
	result, err := s.db.NewDelete().
		Model((*credentialRow)(nil)).
		Where("id = ?", id).
		Where("owner_id = ?", ownerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	return checkAffected(result)
}

// ForEachRecord calls fn for every stored record.
// Rows are loaded page by page (keyset on id) so fn may write to the storage
// without holding an open cursor, which would deadlock single-connection SQLite.
func (s *Storage) ForEachRecord(ctx context.Context, fn func(*models.CredentialRecord) error) error {
	lastID := ""

	for {
		var rows []credentialRow

		err := s.db.NewSelect().
			Model(&rows).
			Where("id > ?", lastID).
			Order("id ASC").
			Limit(forEachBatchSize).
			Scan(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to query records page: %w", err)
		}

		for i := range rows {
			if err := fn(rows[i].toModel()); err != nil {
				return err
			}
		}

		if len(rows) < forEachBatchSize {
			return nil
		}
		lastID = rows[len(rows)-1].ID
	}
}

func checkAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRecordNotFound
	}

	return nil
}

// isUniqueViolation распознает нарушение уникальности для всех поддерживаемых драйверов
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
