package runtime

import (
	"chat-server/contract"
	"sync"
)

// Registry maps each identity to its single active connection.
// A new connection for an identity replaces the previous one, whose later
// disconnect must then leave the registry untouched.
type Registry struct {
	mu         sync.RWMutex
	byIdentity map[string]contract.Session // map participant -> Session
	byConn     map[string]string           // map connection -> participant
}

func NewRegistry() *Registry {
	return &Registry{
		byIdentity: make(map[string]contract.Session),
		byConn:     make(map[string]string),
	}
}

// Register binds userID to the connection and returns the session it replaced, if any.
// The replaced connection stays open but no longer receives targeted events.
func (r *Registry) Register(userID, connID string, sink contract.EventSink) (contract.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, replaced := r.byIdentity[userID]
	if replaced {
		delete(r.byConn, previous.ConnID)
	}
	r.byIdentity[userID] = contract.Session{UserID: userID, ConnID: connID, Sink: sink}
	r.byConn[connID] = userID
	return previous, replaced
}

// Unregister removes the connection. It reports the identity and true only when
// the connection was still the active one for that identity.
func (r *Registry) Unregister(connID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.byConn[connID]
	if !ok {
		return "", false
	}
	delete(r.byConn, connID)
	if session, exists := r.byIdentity[userID]; exists && session.ConnID == connID {
		delete(r.byIdentity, userID)
	}
	return userID, true
}

func (r *Registry) Lookup(userID string) (contract.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.byIdentity[userID]
	return session, ok
}

// Len counts identities with an active connection.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byIdentity)
}
