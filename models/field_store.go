package models

import (
	"database/sql"
	"time"

	"github.com/rohanthewiz/serr"
)

// CreateFieldValuesTableSQL holds one persisted FieldValue per entry.
// The three value columns are NOT NULL: a value is written whole or not at all.
const CreateFieldValuesTableSQL = `
CREATE TABLE IF NOT EXISTS field_values (
    entry_id     VARCHAR PRIMARY KEY,
    content_type VARCHAR NOT NULL,
    item_id      VARCHAR NOT NULL,
    item_name    VARCHAR NOT NULL,
    updated_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// storedFieldRow mirrors a field_values row.
type storedFieldRow struct {
	EntryID     string
	ContentType string
	ItemID      string
	ItemName    string
	UpdatedAt   time.Time
}

// GetFieldValue returns the stored value for entryID, or nil if the entry
// has never been committed.
func GetFieldValue(entryID string) (*FieldValue, error) {
	if entryID == "" {
		return nil, serr.New("entry id is required")
	}

	var r storedFieldRow
	err := QueryRowFromCache(
		[]interface{}{&r.ContentType, &r.ItemID, &r.ItemName},
		`SELECT content_type, item_id, item_name FROM field_values WHERE entry_id = ?`,
		entryID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, serr.Wrap(err, "failed to get field value")
	}

	return &FieldValue{Type: ContentType(r.ContentType), ID: r.ItemID, Name: r.ItemName}, nil
}

// SaveFieldValue replaces the stored value for entryID in full.
func SaveFieldValue(entryID string, value FieldValue) error {
	if entryID == "" {
		return serr.New("entry id is required")
	}
	if err := value.Validate(); err != nil {
		return err
	}

	query := `INSERT OR REPLACE INTO field_values (entry_id, content_type, item_id, item_name, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	if err := WriteThrough(query, entryID, string(value.Type), value.ID, value.Name, time.Now().UTC()); err != nil {
		return serr.Wrap(err, "failed to save field value")
	}
	return nil
}

// EntryField is the host field store for a single entry.
type EntryField struct {
	EntryID string
}

// GetValue implements FieldStore.
func (f EntryField) GetValue() (*FieldValue, error) {
	return GetFieldValue(f.EntryID)
}

// SetValue implements FieldStore.
func (f EntryField) SetValue(value FieldValue) error {
	return SaveFieldValue(f.EntryID, value)
}
