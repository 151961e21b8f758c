package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/repository"
)

// Store persists notifications in a local BoltDB file. Keys are descending
// sequence numbers, so a forward cursor walk yields insertion order newest
// first. Insertion order is authoritative; the timestamp field is never used
// for ordering.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

var _ repository.NotificationRepository = (*Store)(nil)

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "notifications"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

func (s *Store) Add(ctx context.Context, n *domain.Notification) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if n == nil || n.ID == "" {
		return domain.ErrInvalidPayload
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(descendingKey(seq), payload)
	})
}

func (s *Store) List(ctx context.Context) ([]domain.Notification, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}

	var notifications []domain.Notification
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var n domain.Notification
			if err := json.Unmarshal(v, &n); err != nil {
				continue
			}
			notifications = append(notifications, n)
		}
		return nil
	})
	return notifications, err
}

func (s *Store) MarkRead(ctx context.Context, id string) (bool, error) {
	if s == nil || s.db == nil {
		return false, bolt.ErrDatabaseNotOpen
	}

	changed := false
	found := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var n domain.Notification
			if err := json.Unmarshal(v, &n); err != nil {
				continue
			}
			if n.ID != id {
				continue
			}
			found = true
			if n.Read {
				return nil
			}
			n.Read = true
			payload, err := json.Marshal(n)
			if err != nil {
				return err
			}
			changed = true
			return b.Put(append([]byte(nil), k...), payload)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if !found {
		return false, domain.ErrNotificationNotFound
	}
	return changed, nil
}

func (s *Store) MarkManyRead(ctx context.Context, ids []string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if len(ids) == 0 {
		return nil
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		// Collect first, write after: Put during cursor iteration can
		// invalidate the cursor.
		updates := make(map[string][]byte)
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var n domain.Notification
			if err := json.Unmarshal(v, &n); err != nil {
				continue
			}
			if _, ok := wanted[n.ID]; !ok || n.Read {
				continue
			}
			n.Read = true
			payload, err := json.Marshal(n)
			if err != nil {
				return err
			}
			updates[string(append([]byte(nil), k...))] = payload
		}
		for k, payload := range updates {
			if err := b.Put([]byte(k), payload); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) Prune(ctx context.Context, olderThan time.Time) (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}

	pruned := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var n domain.Notification
			if err := json.Unmarshal(v, &n); err != nil {
				continue
			}
			if n.Read && n.Timestamp.Before(olderThan) {
				if err := c.Delete(); err != nil {
					return err
				}
				pruned++
			}
		}
		return nil
	})
	return pruned, err
}

func (s *Store) Size(ctx context.Context) (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func descendingKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, math.MaxUint64-seq)
	return key
}
