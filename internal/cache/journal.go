// Package cache tracks the freshness of compiled objects and keeps a
// journal of compiler invocations.
//
// Freshness is decided by Tracker from file modification times alone. The
// journal is a BoltDB database under the build directory that records
// every object compile and link, so that a later invocation (or the
// `cache stats` command) can report what happened. The journal is never
// consulted when deciding whether to recompile.
package cache

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"go.etcd.io/bbolt"
)

const (
	// DefaultJournalDir is the journal directory name inside build/
	DefaultJournalDir = ".daemonic"

	// unitsBucket holds the latest compile Entry per object path
	unitsBucket = "units"
	// linksBucket holds link Entries keyed by timestamp
	linksBucket = "links"
)

// Journal records compiler invocations using BoltDB
type Journal struct {
	db   *bbolt.DB
	root string // Journal directory (build/.daemonic/)
}

// Open opens or creates the journal in dir.
// A second process holding the database makes Open fail after one second.
func Open(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	dbPath := filepath.Join(dir, "journal.db")
	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{unitsBucket, linksBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create journal buckets: %w", err)
	}

	return &Journal{
		db:   db,
		root: dir,
	}, nil
}

// Dir returns the directory holding the journal database.
func (j *Journal) Dir() string {
	return j.root
}

// Close closes the journal database
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}

	return nil
}

// RecordCompile stores the outcome of an object compile, replacing any
// previous entry for the same object.
func (j *Journal) RecordCompile(e Entry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	return j.put(unitsBucket, []byte(e.Output), e)
}

// RecordLink appends the outcome of a link. Links are keyed by a
// big-endian sequence number, so the last key is the latest link.
func (j *Journal) RecordLink(e Entry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	err = j.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(linksBucket))

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return b.Put(key, data)
	})
	if err != nil {
		return fmt.Errorf("failed to store journal entry: %w", err)
	}

	return nil
}

func (j *Journal) put(bucket string, key []byte, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	err = j.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put(key, data)
	})
	if err != nil {
		return fmt.Errorf("failed to store journal entry: %w", err)
	}

	return nil
}

// Get returns the last compile entry for object, or nil if none exists.
func (j *Journal) Get(object string) (*Entry, error) {
	var entry *Entry
	err := j.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(unitsBucket)).Get([]byte(object))
		if data == nil {
			return nil
		}

		entry = new(Entry)
		return json.Unmarshal(data, entry)
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// LastLink returns the most recent link entry, or nil if none exists.
func (j *Journal) LastLink() (*Entry, error) {
	var entry *Entry
	err := j.db.View(func(tx *bbolt.Tx) error {
		_, data := tx.Bucket([]byte(linksBucket)).Cursor().Last()
		if data == nil {
			return nil
		}

		entry = new(Entry)
		return json.Unmarshal(data, entry)
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// Clear removes all journal entries
func (j *Journal) Clear() error {
	return j.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{unitsBucket, linksBucket} {
			if err := tx.DeleteBucket([]byte(name)); err != nil {
				return err
			}

			if _, err := tx.CreateBucket([]byte(name)); err != nil {
				return err
			}
		}

		return nil
	})
}

// Stats summarises the journal and the build tree
type Stats struct {
	Units     int
	Links     int
	Failed    int
	TreeSize  int64
	TreeFiles int
}

// Stats returns journal statistics and the size of the files under
// buildDir, excluding the journal itself.
func (j *Journal) Stats(fs afero.Fs, buildDir string) (Stats, error) {
	var st Stats

	err := j.db.View(func(tx *bbolt.Tx) error {
		units := tx.Bucket([]byte(unitsBucket))
		st.Units = units.Stats().KeyN
		st.Links = tx.Bucket([]byte(linksBucket)).Stats().KeyN

		return units.ForEach(func(_, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}

			if !e.Success {
				st.Failed++
			}

			return nil
		})
	})
	if err != nil {
		return Stats{}, err
	}

	_ = afero.Walk(fs, buildDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}

		if info.IsDir() {
			if path == j.root {
				return filepath.SkipDir
			}

			return nil
		}

		st.TreeSize += info.Size()
		st.TreeFiles++
		return nil
	})

	return st, nil
}
