package ws

import (
	"chat-server/contract"
	"chat-server/domain"
	"chat-server/errors"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	CodeMissingCredential = "MISSING_CREDENTIAL"
	CodeInvalidCredential = "INVALID_CREDENTIAL"
	CodeExpiredCredential = "EXPIRED_CREDENTIAL"
	CodeIdentityProvider  = "IDENTITY_PROVIDER_ERROR"
)

// Refusal is the JSON body of a rejected upgrade.
type Refusal struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Gatekeeper authenticates the upgrade request before any websocket exists.
type Gatekeeper struct {
	log      *slog.Logger
	verifier contract.IdentityVerifier
	timeout  time.Duration
}

func NewGatekeeper(log *slog.Logger, verifier contract.IdentityVerifier, timeout time.Duration) *Gatekeeper {
	return &Gatekeeper{log: log, verifier: verifier, timeout: timeout}
}

// Authenticate extracts the bearer credential and hands it to the verifier under the handshake timeout.
func (g *Gatekeeper) Authenticate(r *http.Request) (domain.Identity, error) {
	credential := credentialFrom(r)
	if credential == "" {
		return domain.Identity{}, errors.ErrMissingCredential
	}
	ctx := r.Context()
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	return g.verifier.Verify(ctx, credential)
}

// Refuse answers the upgrade request with 401 for credential problems and 503 when
// the identity provider could not decide.
func (g *Gatekeeper) Refuse(w http.ResponseWriter, r *http.Request, err error) {
	status, refusal := refusalFor(err)
	g.log.Info("Connection refused", "remote_addr", r.RemoteAddr, "code", refusal.Code, "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(refusal); encodeErr != nil {
		g.log.Debug("Refusal body not written", "error", encodeErr)
	}
}

func refusalFor(err error) (int, Refusal) {
	switch {
	case errors.Is(err, errors.ErrMissingCredential):
		return http.StatusUnauthorized, Refusal{Code: CodeMissingCredential, Message: "Authentication token is required"}
	case errors.Is(err, errors.ErrExpiredCredential):
		return http.StatusUnauthorized, Refusal{Code: CodeExpiredCredential, Message: "Token has expired"}
	case errors.KindOf(err) == errors.KindAuth:
		return http.StatusUnauthorized, Refusal{Code: CodeInvalidCredential, Message: "Invalid token"}
	default:
		return http.StatusServiceUnavailable, Refusal{Code: CodeIdentityProvider, Message: "Authentication is temporarily unavailable"}
	}
}

// credentialFrom reads "Authorization: Bearer <token>" first, then the token query parameter
// since browsers cannot set headers on a websocket upgrade.
func credentialFrom(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}
