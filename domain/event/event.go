// Package event names the inbound events accepted on a connection and
// the outbound events the server emits in response.
package event

type Name string

const (
	ProfileGet        Name = "profile:get"
	ProfileUpdate     Name = "profile:update"
	PrivateChatCreate Name = "privateChat:create"
	GroupChatCreate   Name = "groupChat:create"
	GroupAddMember    Name = "groupChat:addMember"
	GroupRemoveMember Name = "groupChat:removeMember"
	MessageSend       Name = "message:send"
	RoomListFetch     Name = "room:list:fetch"
	RoomHistoryFetch  Name = "room:history:fetch"
)

func (n Name) Success() string { return string(n) + ":success" }

func (n Name) Failure() string { return string(n) + ":error" }

// Outbound is an event pushed to a connection.
type Outbound struct {
	Name    string
	Payload any
}

// ErrorPayload is the body of every "<event>:error" event.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(name Name, payload any) Outbound {
	return Outbound{Name: name.Success(), Payload: payload}
}

func Failure(name Name, code, message string) Outbound {
	return Outbound{Name: name.Failure(), Payload: ErrorPayload{Code: code, Message: message}}
}
