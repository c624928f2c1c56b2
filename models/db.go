package models

import (
	"database/sql"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/gofrs/flock"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

var (
	diskDB *sql.DB      // Persistent storage, source of truth
	memDB  *sql.DB      // In-memory copy for fast reads
	dbMu   sync.RWMutex // Protect concurrent access during writes

	dataLock *flock.Flock // Held for the life of the process
)

// InitDB opens the field store at path plus its in-memory read copy.
// The data file is locked so a second process pointed at the same file
// fails fast instead of corrupting it.
func InitDB(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return serr.Wrap(err, "failed to create data directory")
		}
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return serr.Wrap(err, "failed to lock data file")
	}
	if !locked {
		return serr.New("data file is in use by another process: " + path)
	}

	disk, err := sql.Open("duckdb", path)
	if err != nil {
		_ = lock.Unlock()
		return serr.Wrap(err, "failed to open disk database")
	}

	// DuckDB's go driver uses an empty DSN for an in-memory database
	mem, err := sql.Open("duckdb", "")
	if err != nil {
		_ = disk.Close()
		_ = lock.Unlock()
		return serr.Wrap(err, "failed to open memory database")
	}

	diskDB, memDB, dataLock = disk, mem, lock

	if err := migrateBoth(); err != nil {
		CloseDB()
		return serr.Wrap(err, "failed to migrate databases")
	}

	if err := syncDiskToMemory(); err != nil {
		CloseDB()
		return serr.Wrap(err, "failed to load field values into memory")
	}

	logger.Info("Field store opened", "path", path)
	return nil
}

// InitTestDB opens a fresh store at path, discarding anything left over
// from a previous run.
func InitTestDB(path string) error {
	_ = os.Remove(path)
	_ = os.Remove(path + ".wal")
	return InitDB(path)
}

// CloseDB closes both database connections and releases the file lock.
func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if memDB != nil {
		memDB.Close()
		memDB = nil
	}
	if diskDB != nil {
		diskDB.Close()
		diskDB = nil
	}
	if dataLock != nil {
		_ = dataLock.Unlock()
		dataLock = nil
	}
}

// migrateBoth runs migrations on both databases
func migrateBoth() error {
	for name, conn := range map[string]*sql.DB{"disk": diskDB, "memory": memDB} {
		if _, err := conn.Exec(CreateFieldValuesTableSQL); err != nil {
			return serr.Wrap(err, name+" migration failed")
		}
	}
	return nil
}

// syncDiskToMemory copies every stored field value into the memory database.
func syncDiskToMemory() error {
	rows, err := diskDB.Query(`SELECT entry_id, content_type, item_id, item_name, updated_at FROM field_values`)
	if err != nil {
		return serr.Wrap(err, "failed to read field values from disk")
	}
	defer rows.Close()

	stmt, err := memDB.Prepare(`INSERT OR REPLACE INTO field_values
		(entry_id, content_type, item_id, item_name, updated_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return serr.Wrap(err, "failed to prepare memory insert")
	}
	defer stmt.Close()

	count := 0
	for rows.Next() {
		var r storedFieldRow
		if err := rows.Scan(&r.EntryID, &r.ContentType, &r.ItemID, &r.ItemName, &r.UpdatedAt); err != nil {
			logger.LogErr(err, "skipping unreadable field value row")
			continue
		}
		if _, err := stmt.Exec(r.EntryID, r.ContentType, r.ItemID, r.ItemName, r.UpdatedAt); err != nil {
			logger.LogErr(err, "failed to copy field value into memory", "entry_id", r.EntryID)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return serr.Wrap(err, "failed to iterate field values")
	}

	logger.Debug("Loaded field values into memory", "count", strconv.Itoa(count))
	return nil
}

// WriteThrough writes to both databases. The disk write must succeed;
// a failed memory write only logs, and later reads fall back to disk.
func WriteThrough(query string, args ...interface{}) error {
	dbMu.Lock()
	defer dbMu.Unlock()

	if diskDB == nil {
		return serr.New("field store is not open")
	}

	if _, err := diskDB.Exec(query, args...); err != nil {
		return serr.Wrap(err, "failed to write to disk")
	}

	if _, err := memDB.Exec(query, args...); err != nil {
		logger.LogErr(err, "failed to update memory copy")
	}
	return nil
}

// QueryRowFromCache performs a single row query against memory, falling
// back to disk when the memory query errors.
func QueryRowFromCache(dest []interface{}, query string, args ...interface{}) error {
	dbMu.RLock()
	defer dbMu.RUnlock()

	if memDB == nil {
		return serr.New("field store is not open")
	}

	err := memDB.QueryRow(query, args...).Scan(dest...)
	if err == nil || err == sql.ErrNoRows {
		return err
	}

	logger.LogErr(err, "memory read failed, falling back to disk")
	return diskDB.QueryRow(query, args...).Scan(dest...)
}
