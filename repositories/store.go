package repositories

import (
	"chat-server/errors"
	"log/slog"
	"reflect"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
)

// Documents are stored as CBOR with times kept as tagged RFC3339 strings,
// so nanosecond ordering survives a round trip.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.EncOptions{
		Time:    cbor.TimeRFC3339Nano,
		TimeTag: cbor.EncTagRequired,
		Sort:    cbor.SortCanonical,
	}.EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

const maxConflictRetries = 16

// Store is the shared access point to the record store.
// Every repository goes through it, which keeps the encoding and the
// transaction retry policy in a single place.
type Store struct {
	db  *badger.DB
	log *slog.Logger
}

func NewStore(db *badger.DB, log *slog.Logger) *Store {
	return &Store{db: db, log: log}
}

// OpenBadger opens the database at path, or a throwaway in-memory one.
func OpenBadger(path string, inMemory bool) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	return badger.Open(opts.WithLoggingLevel(badger.WARNING))
}

// Decode reads a raw document value into v.
func Decode(value []byte, v any) error {
	return decMode.Unmarshal(value, v)
}

// Scan walks every key starting with prefix in ascending order.
// Returning an error from fn stops the walk.
func (s *Store) Scan(prefix string, fn func(key string, value []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err = fn(string(item.KeyCopy(nil)), value); err != nil {
				return err
			}
		}
		return nil
	})
}

// get loads the document under key. A missing key is reported through found.
func get[T any](s *Store, key string) (doc T, found bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return decMode.Unmarshal(val, &doc)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return doc, false, nil
	}
	if err != nil {
		return doc, false, err
	}
	return doc, true, nil
}

// put writes doc under key, replacing any previous value.
func put(s *Store, key string, doc any) error {
	data, err := encMode.Marshal(doc)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// update runs a read-modify-write cycle on one document inside a single transaction.
// mutate receives the current document (zero value when absent) and edits it in place.
// If mutate returns errSkipWrite the document is returned unchanged and nothing is written.
// Badger detects concurrent writers at commit time, so the cycle is retried on conflict.
func update[T any](s *Store, key string, mutate func(doc *T, found bool) error) (T, error) {
	var doc T
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = s.db.Update(func(txn *badger.Txn) error {
			doc = *new(T)
			found := true
			item, err := txn.Get([]byte(key))
			switch {
			case errors.Is(err, badger.ErrKeyNotFound):
				found = false
			case err != nil:
				return err
			default:
				if err = item.Value(func(val []byte) error {
					return decMode.Unmarshal(val, &doc)
				}); err != nil {
					return err
				}
			}

			if err = mutate(&doc, found); err != nil {
				return err
			}
			data, err := encMode.Marshal(doc)
			if err != nil {
				return err
			}
			return txn.Set([]byte(key), data)
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
		s.log.Debug("Transaction conflict, retrying", "key", key, "attempt", attempt+1)
	}
	if errors.Is(err, errSkipWrite) {
		return doc, nil
	}
	return doc, err
}

// errSkipWrite aborts an update without touching the stored document.
var errSkipWrite = errors.New("no change")
