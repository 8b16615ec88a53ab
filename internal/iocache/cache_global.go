package iocache

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/auralab/aura/internal/contract"
	"github.com/auralab/aura/schema"
)

// resultTable is the name of the table for determinism-cache entries.
const resultTable = "aura_result_cache"

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	return contract.GetCacheDBFilePath()
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	return contract.GetHistoryDBFilePath()
}

// newResultStore builds the CacheStore for the configured backend.
func newResultStore(backend schema.StoreBackend, connStr string) (contract.CacheStore, error) {
	switch backend {
	case schema.RedisBackend:
		return NewRedisStore(connStr)
	case schema.MemoryBackend:
		return NewMemoryStore(), nil
	default:
		return NewSQLCacheStore(resultTable, backend, connStr)
	}
}

// newHistoryStore builds the HistoryStore for the configured backend.
func newHistoryStore(backend schema.StoreBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.MemoryBackend {
		return NewMemoryHistoryStore(), nil
	}
	return NewHistoryStore(backend, connStr)
}

// InitStores initializes the global manager with the result cache and the
// run history stores. An empty backend leaves that store disabled.
func InitStores(cacheBackend schema.StoreBackend, cacheConnStr string, historyBackend schema.StoreBackend, historyConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		var resultStore contract.CacheStore
		var historyStore contract.HistoryStore
		var err error

		if cacheBackend != "" {
			resultStore, err = newResultStore(cacheBackend, cacheConnStr)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize result caching: %w", err)
				return
			}
		}

		if historyBackend != "" {
			historyStore, err = newHistoryStore(historyBackend, historyConnStr)
			if err != nil {
				if resultStore != nil {
					_ = resultStore.Close()
				}
				initErr = fmt.Errorf("failed to initialize history store: %w", err)
				return
			}
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.result = resultStore
		Manager.history = historyStore
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.result != nil {
			_ = Manager.result.Close()
		}
		if Manager.history != nil {
			_ = Manager.history.Close()
		}
	})
}

// ClearCache clears the determinism cache for the specified backend.
// For SQLite, it deletes the database file. For MySQL/PostgreSQL, it drops
// the table. For Redis, it deletes the namespaced keys.
func ClearCache(backend schema.StoreBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return removeSQLiteFile(dbFilePath)

	case schema.MySQLBackend:
		return clearSQLTable("mysql", connStr, quoteTableName(resultTable, backend))

	case schema.PostgreSQLBackend:
		return clearSQLTable("pgx", connStr, quoteTableName(resultTable, backend))

	case schema.RedisBackend:
		return clearRedisCache(connStr)

	case schema.MemoryBackend, schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported cache backend for clearing: %s", backend)
	}
}

// ClearHistory clears the scoring-run history for the specified backend.
func ClearHistory(backend schema.StoreBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return removeSQLiteFile(dbFilePath)

	case schema.MySQLBackend:
		return clearSQLTable("mysql", connStr, quoteTableName(runsTable, backend))

	case schema.PostgreSQLBackend:
		return clearSQLTable("pgx", connStr, quoteTableName(runsTable, backend))

	case schema.MemoryBackend, schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported history backend for clearing: %s", backend)
	}
}

// removeSQLiteFile deletes a SQLite database file, tolerating absence.
func removeSQLiteFile(dbFilePath string) error {
	if dbFilePath == "" {
		return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
	}
	if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
	}
	return nil
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, quotedTable string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quotedTable)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", quotedTable, err)
	}

	return nil
}
