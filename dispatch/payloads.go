package dispatch

import (
	"bytes"
	"chat-server/auth"
	"chat-server/errors"
	"encoding/json"
)

type profileUpdatePayload struct {
	Username    string  `json:"username"`
	Description *string `json:"description"`
}

type privateChatPayload struct {
	RecipientID string `json:"recipientId" validate:"required"`
}

type groupCreatePayload struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Members     []string `json:"members" validate:"omitempty,dive,required"`
}

type membershipPayload struct {
	GroupID  string `json:"groupId" validate:"required"`
	MemberID string `json:"memberId" validate:"required"`
}

type messagePayload struct {
	RoomID  string `json:"roomId" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// historyPayload accepts the bare room id sent by existing clients as well as {roomId}.
type historyPayload struct {
	RoomID string `json:"roomId" validate:"required"`
}

func (p *historyPayload) UnmarshalJSON(data []byte) error {
	var roomID string
	if err := json.Unmarshal(data, &roomID); err == nil {
		p.RoomID = roomID
		return nil
	}
	type plain historyPayload
	return json.Unmarshal(data, (*plain)(p))
}

// decode reads and validates an inbound payload. An absent payload decodes to the zero value,
// which validation then rejects if it carries required fields.
func decode[T any](params json.RawMessage) (T, error) {
	var payload T
	trimmed := bytes.TrimSpace(params)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return payload, errors.Validation("malformed payload: %v", err)
		}
	}
	if err := auth.ValidatePayload(payload); err != nil {
		return payload, err
	}
	return payload, nil
}
