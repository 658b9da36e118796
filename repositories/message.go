//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"chat-server/errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
)

type IMessageRepository interface {
	AppendMessage(message DiskMessage) (DiskMessage, error)
	ListMessages(roomID string) ([]DiskMessage, error)
}

type DiskMessage struct {
	ID       string    `cbor:"id"`
	RoomID   string    `cbor:"roomId"`
	SenderID string    `cbor:"senderId"`
	Content  string    `cbor:"content"`
	At       time.Time `cbor:"timestamp"`
}

// roomClock hands out strictly increasing timestamps for one room.
// It is seeded lazily from the newest stored message so ordering holds across restarts.
type roomClock struct {
	mu     sync.Mutex
	last   time.Time
	seeded bool
}

type MessageRepository struct {
	store  *Store
	log    *slog.Logger
	now    func() time.Time
	clocks sync.Map
}

func NewMessageRepository(store *Store, log *slog.Logger) *MessageRepository {
	return &MessageRepository{
		store: store,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func messagePrefix(roomID string) string { return fmt.Sprintf("msg:%s:", roomID) }

// messageKey is formatted as "msg:{room_id}:{timestamp_padded}:{id}":
//  1. 19-digit zero padding makes lexicographical order chronological.
//  2. The message id keeps keys unique; the room clock never stamps two messages alike.
func messageKey(m DiskMessage) string {
	return fmt.Sprintf("msg:%s:%019d:%s", m.RoomID, m.At.UnixNano(), m.ID)
}

// AppendMessage stamps the message with the room clock and persists it.
// The room clock is held for the whole write so two appends on the same room are
// stored in the order their timestamps say.
func (m *MessageRepository) AppendMessage(message DiskMessage) (DiskMessage, error) {
	clock := m.clockFor(message.RoomID)
	clock.mu.Lock()
	defer clock.mu.Unlock()

	if !clock.seeded {
		last, err := m.newestTimestamp(message.RoomID)
		if err != nil {
			return DiskMessage{}, errors.Store("seed room clock", err)
		}
		clock.last, clock.seeded = last, true
	}

	// Timestamps are strictly increasing per room: the id in the key never decides the order.
	at := m.now()
	if !at.After(clock.last) {
		at = clock.last.Add(time.Nanosecond)
	}
	message.At = at

	if err := put(m.store, messageKey(message), message); err != nil {
		return DiskMessage{}, errors.Store("append message", err)
	}
	clock.last = at
	return message, nil
}

// ListMessages returns every message of the room, oldest first.
func (m *MessageRepository) ListMessages(roomID string) ([]DiskMessage, error) {
	messages := []DiskMessage{}
	err := m.store.Scan(messagePrefix(roomID), func(_ string, value []byte) error {
		var message DiskMessage
		if err := Decode(value, &message); err != nil {
			return err
		}
		messages = append(messages, message)
		return nil
	})
	if err != nil {
		return nil, errors.Store("list messages", err)
	}
	return messages, nil
}

func (m *MessageRepository) clockFor(roomID string) *roomClock {
	clock, _ := m.clocks.LoadOrStore(roomID, &roomClock{})
	return clock.(*roomClock)
}

// newestTimestamp seeks to the end of the room prefix and reads the last key backwards.
func (m *MessageRepository) newestTimestamp(roomID string) (time.Time, error) {
	var newest time.Time
	err := m.store.db.View(func(txn *badger.Txn) error {
		prefix := []byte(messagePrefix(roomID))
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Let's go the newest position msg:{room}:9999999999999999999
		it.Seek(append(prefix, []byte("9999999999999999999")...))
		if !it.ValidForPrefix(prefix) {
			return nil
		}
		return it.Item().Value(func(value []byte) error {
			var message DiskMessage
			if err := Decode(value, &message); err != nil {
				return err
			}
			newest = message.At
			return nil
		})
	})
	return newest, err
}
