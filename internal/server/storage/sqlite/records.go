package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/gophqueue/internal/models"
	"github.com/iudanet/gophqueue/internal/server/storage"
)

const recordColumns = `id, owner_id, collection, client_id, attributes, created_at, updated_at`

// CreateRecord inserts a new record. A repeated create with the same client id
// returns the record stored by the first one.
func (s *Storage) CreateRecord(ctx context.Context, rec *models.StoredRecord) (*models.StoredRecord, bool, error) {
	if rec.ClientID != "" {
		existing, err := s.getByClientID(ctx, rec.OwnerID, rec.Collection, rec.ClientID)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, storage.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("failed to check existing record: %w", err)
		}
	}

	now := time.Now()
	stored := &models.StoredRecord{
		ID:         rec.ID,
		OwnerID:    rec.OwnerID,
		Collection: rec.Collection,
		ClientID:   rec.ClientID,
		Attributes: models.Attributes{}.Patch(rec.Attributes.Omit(models.IDAttribute)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}

	attrs, err := json.Marshal(stored.Attributes)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal attributes: %w", err)
	}

	query := `
		INSERT INTO records (` + recordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		stored.ID,
		stored.OwnerID,
		stored.Collection,
		nullString(stored.ClientID),
		string(attrs),
		stored.CreatedAt.UnixNano(),
		stored.UpdatedAt.UnixNano(),
	)

	if err != nil {
		return nil, false, fmt.Errorf("failed to insert record: %w", err)
	}

	return stored, true, nil
}

// GetRecord retrieves a single record
func (s *Storage) GetRecord(ctx context.Context, ownerID, collection, id string) (*models.StoredRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE owner_id = ? AND collection = ? AND id = ?
	`

	return scanRecord(s.db.QueryRowContext(ctx, query, ownerID, collection, id))
}

// ListRecords retrieves all records of the collection
func (s *Storage) ListRecords(ctx context.Context, ownerID, collection string) (records []*models.StoredRecord, err error) {
	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE owner_id = ? AND collection = ?
		ORDER BY created_at ASC, rowid ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	records = []*models.StoredRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// UpdateRecord merges attrs into the stored attributes.
// A null value removes the field.
func (s *Storage) UpdateRecord(ctx context.Context, ownerID, collection, id string, attrs models.Attributes) (*models.StoredRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE owner_id = ? AND collection = ? AND id = ?
	`

	rec, err := scanRecord(tx.QueryRowContext(ctx, query, ownerID, collection, id))
	if err != nil {
		return nil, err
	}

	rec.Attributes = rec.Attributes.Patch(attrs.Omit(models.IDAttribute))
	rec.UpdatedAt = time.Now()

	data, err := json.Marshal(rec.Attributes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal attributes: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE records SET attributes = ?, updated_at = ? WHERE id = ?`,
		string(data), rec.UpdatedAt.UnixNano(), rec.ID,
	); err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rec, nil
}

// DeleteRecord deletes the record
func (s *Storage) DeleteRecord(ctx context.Context, ownerID, collection, id string) error {
	query := `DELETE FROM records WHERE owner_id = ? AND collection = ? AND id = ?`

	result, err := s.db.ExecContext(ctx, query, ownerID, collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrRecordNotFound
	}

	return nil
}

func (s *Storage) getByClientID(ctx context.Context, ownerID, collection, clientID string) (*models.StoredRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE owner_id = ? AND collection = ? AND client_id = ?
	`

	return scanRecord(s.db.QueryRowContext(ctx, query, ownerID, collection, clientID))
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.StoredRecord, error) {
	rec := &models.StoredRecord{}
	var clientID sql.NullString
	var attrs string
	var createdAt, updatedAt int64

	err := row.Scan(
		&rec.ID,
		&rec.OwnerID,
		&rec.Collection,
		&clientID,
		&attrs,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}

	if err := json.Unmarshal([]byte(attrs), &rec.Attributes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attributes: %w", err)
	}
	if rec.Attributes == nil {
		rec.Attributes = models.Attributes{}
	}

	rec.ClientID = clientID.String
	rec.CreatedAt = time.Unix(0, createdAt)
	rec.UpdatedAt = time.Unix(0, updatedAt)

	return rec, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
