package internal

import (
	"chat-server/repositories"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type InspectRow struct {
	Key       string `json:"key"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	EntityID  string `json:"entityId"`
	Namespace string `json:"namespace"`
	Detail    string `json:"detail"`
}

type RowMapper func(key string, val []byte) InspectRow

// Inspect collects one row per document under prefix.
func Inspect(store *repositories.Store, prefix string, mapper RowMapper) ([]InspectRow, error) {
	if mapper == nil {
		mapper = DefaultMapper
	}
	rows := []InspectRow{}
	err := store.Scan(prefix, func(key string, value []byte) error {
		rows = append(rows, mapper(key, value))
		return nil
	})
	return rows, err
}

// InspectHandler serves the rows of a prefix as JSON. Only mounted in development.
func InspectHandler(log *slog.Logger, store *repositories.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = "room:"
		}
		rows, err := Inspect(store, prefix, DefaultMapper)
		if err != nil {
			log.Error("Store inspection failed", "prefix", prefix, "error", err)
			http.Error(w, "store inspection failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rows)
	})
}

// DefaultMapper reads what it can from the key layout and the decoded document:
// "user:{id}", "room:{id}" and "msg:{room}:{nanos}:{id}".
func DefaultMapper(key string, val []byte) InspectRow {
	parts := strings.Split(key, ":")
	row := InspectRow{
		Key:       key,
		Type:      "RAW",
		Timestamp: "--:--:--",
		EntityID:  "--------",
		Namespace: "default",
		Detail:    "Size: " + strconv.Itoa(len(val)) + " bytes",
	}

	switch {
	case parts[0] == "msg" && len(parts) >= 4:
		row.Type = "MESSAGE"
		row.Namespace = parts[1]
		if tsNano, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			row.Timestamp = time.Unix(0, tsNano).UTC().Format(time.RFC3339Nano)
		}
		row.EntityID = parts[3]
		var message repositories.DiskMessage
		if err := repositories.Decode(val, &message); err == nil {
			row.Detail = message.SenderID + ": " + truncate(message.Content, 40)
		}
	case parts[0] == "room" && len(parts) == 2:
		row.Type = "ROOM"
		row.EntityID = parts[1]
		var room repositories.DiskRoom
		if err := repositories.Decode(val, &room); err == nil {
			row.Namespace = room.Type
			row.Timestamp = room.CreatedAt.Format(time.RFC3339)
			row.Detail = room.Name + " members=" + strconv.Itoa(len(room.Members))
		}
	case parts[0] == "user" && len(parts) == 2:
		row.Type = "USER"
		row.EntityID = parts[1]
		var user repositories.DiskUser
		if err := repositories.Decode(val, &user); err == nil {
			row.Namespace = user.Status
			row.Timestamp = user.LastSeen.Format(time.RFC3339)
			row.Detail = user.Username + " rooms=" + strconv.Itoa(len(user.Rooms))
		}
	}
	return row
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
