// Package store is the persistent storage backend for command history.
package store

import (
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"src.lined.sh/pkg/logutil"
	"src.lined.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("store")

// DBStore is the permanent storage backend for command history. Each DBStore
// works on the history of one namespace, usually the program name.
type DBStore interface {
	storedefs.Store
	Close() error
}

type dbStore struct {
	db     *bolt.DB
	bucket []byte
}

func dbWithDefaultOptions(dbname string) (*bolt.DB, error) {
	return bolt.Open(dbname, 0644, &bolt.Options{Timeout: 1 * time.Second})
}

// NewStore creates a new Store from the given file, working on the namespace
// ns.
func NewStore(dbname, ns string) (DBStore, error) {
	db, err := dbWithDefaultOptions(dbname)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", dbname)
	}
	st, err := NewStoreFromDB(db, ns)
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// NewStoreFromDB creates a new Store from a bolt DB, working on the namespace
// ns.
func NewStoreFromDB(db *bolt.DB, ns string) (DBStore, error) {
	logger.Debug("initializing store", "path", db.Path(), "ns", ns)
	st := &dbStore{db: db, bucket: []byte(bucketCmdPrefix + ns)}
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(st.bucket)
		return errors.Wrap(err, "initialize command history table")
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Close closes the store.
func (s *dbStore) Close() error {
	return s.db.Close()
}
