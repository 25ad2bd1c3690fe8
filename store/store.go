package store

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/apibillme/cache"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/moddengine/pixabay-assetsource/assetsource"
	"github.com/moddengine/pixabay-assetsource/internal/logger"
	"github.com/moddengine/pixabay-assetsource/pixabay"
)

// Store keeps everything that outlives a process in one SQLite file:
// cached Pixabay records, import tracking and basic auth users.
type Store struct {
	db        *sql.DB
	log       *logrus.Entry
	userCache cache.Cache
	ttl       time.Duration
	now       func() time.Time
}

var (
	_ pixabay.RecordStore             = (*Store)(nil)
	_ assetsource.ImportedAssetFinder = (*Store)(nil)
)

const recordTable string = `
  CREATE TABLE IF NOT EXISTS records (
      id TEXT PRIMARY KEY,
      data BLOB NOT NULL,
      expiry INT NOT NULL
  )
`

const importedTable string = `
  CREATE TABLE IF NOT EXISTS imported_assets (
      source TEXT NOT NULL,
      remote_id TEXT NOT NULL,
      local_id TEXT NOT NULL,
      imported_at INT NOT NULL,
      PRIMARY KEY (source, remote_id)
  )
`

const userTable string = `
  CREATE TABLE IF NOT EXISTS users (
      user TEXT NOT NULL,
      hash TEXT NOT NULL,
      level INT NOT NULL
  )
`

const DefaultDBFile string = "data/cache.db"

// Open opens (and creates) the database at filename. Records expire ttl
// after they were written.
func Open(filename string, ttl time.Duration, log logrus.FieldLogger) (*Store, error) {
	if filename == "" {
		filename = DefaultDBFile
	}
	if ttl <= 0 {
		ttl = pixabay.DefaultRecordTTL
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+filename+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	db.SetMaxOpenConns(1)

	for _, table := range []string{recordTable, importedTable, userTable} {
		if _, err := db.Exec(table); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	return &Store{
		db:        db,
		log:       logger.WithComponent(log, "store"),
		userCache: cache.New(256, cache.WithTTL(1*time.Hour)),
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

func (store *Store) Close() error {
	return store.db.Close()
}

// Get returns an unexpired record.
func (store *Store) Get(id string) (pixabay.ImageRecord, bool, error) {
	row := store.db.QueryRow("SELECT data FROM records WHERE id = ? AND expiry >= ?", id, store.now().Unix())
	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pixabay.ImageRecord{}, false, nil
		}
		return pixabay.ImageRecord{}, false, err
	}
	var rec pixabay.ImageRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return pixabay.ImageRecord{}, false, fmt.Errorf("decode record %s: %w", id, err)
	}
	return rec, true, nil
}

func (store *Store) Set(id string, record pixabay.ImageRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = store.db.Exec("INSERT OR REPLACE INTO records VALUES (?,?,?)",
		id,
		data,
		store.now().Add(store.ttl).Unix(),
	)
	return err
}

// DeleteBefore removes records that expired before expiry.
func (store *Store) DeleteBefore(expiry int64) (int64, error) {
	res, err := store.db.Exec("DELETE FROM records WHERE expiry < ?", expiry)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// PurgeExpired deletes expired records every interval until ctx is done.
func (store *Store) PurgeExpired(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		n, err := store.DeleteBefore(store.now().Unix())
		if err != nil {
			store.log.WithError(err).Error("Failed to purge expired records")
		} else if n > 0 {
			store.log.WithField(logger.FieldCount, n).Info("Purged expired records")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (store *Store) FindImportedAsset(sourceIdentifier, remoteIdentifier string) (*assetsource.ImportedAsset, error) {
	row := store.db.QueryRow("SELECT local_id, imported_at FROM imported_assets WHERE source = ? AND remote_id = ?",
		sourceIdentifier, remoteIdentifier)
	var (
		localID    string
		importedAt int64
	)
	if err := row.Scan(&localID, &importedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &assetsource.ImportedAsset{
		AssetSourceIdentifier: sourceIdentifier,
		RemoteAssetIdentifier: remoteIdentifier,
		LocalAssetIdentifier:  localID,
		ImportedAt:            time.Unix(importedAt, 0),
	}, nil
}

// SaveImportedAsset records that a remote asset was imported. The CMS
// import pipeline calls this; the asset source itself only reads.
func (store *Store) SaveImportedAsset(asset assetsource.ImportedAsset) error {
	if asset.ImportedAt.IsZero() {
		asset.ImportedAt = store.now()
	}
	_, err := store.db.Exec("INSERT OR REPLACE INTO imported_assets VALUES (?,?,?,?)",
		asset.AssetSourceIdentifier,
		asset.RemoteAssetIdentifier,
		asset.LocalAssetIdentifier,
		asset.ImportedAt.Unix(),
	)
	return err
}

func (store *Store) AddUser(user, pass string, level int) error {
	hash, err := argon2id.CreateHash(pass, argon2id.DefaultParams)
	if err != nil {
		return err
	}
	if _, err := store.db.Exec("DELETE FROM users WHERE user = ?", user); err != nil {
		return err
	}
	if _, err := store.db.Exec("INSERT INTO users VALUES (?,?,?)", user, hash, level); err != nil {
		return err
	}
	store.userCache.Del(user)
	return nil
}

func (store *Store) TestUser(user string, pass string) bool {
	userPass, ok := store.userCache.Get(user)
	if ok && 1 == subtle.ConstantTimeCompare([]byte(userPass.(string)), []byte(pass)) {
		return true
	}
	row := store.db.QueryRow("SELECT hash FROM users WHERE user = ?", user)
	var hash string
	err := row.Scan(&hash)
	if err == nil {
		match, err := argon2id.ComparePasswordAndHash(pass, hash)
		if err != nil {
			store.log.WithError(err).Error("Error comparing password hashes")
			return false
		}
		if match {
			store.userCache.Set(user, pass)
			return true
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		store.log.WithError(err).Error("Failed to look up user")
	}
	return false
}
