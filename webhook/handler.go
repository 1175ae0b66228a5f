package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-players/pkg/types"
	svix "github.com/svix/svix-webhooks/go"
)

const (
	// EventIdentityCreated is the provider event emitted after sign-up.
	EventIdentityCreated = "user.created"
	// EventIdentityUpdated is the provider event emitted after profile edits.
	EventIdentityUpdated = "user.updated"

	maxPayloadBytes = 1 << 20
)

// Payload is the signed event envelope the identity provider delivers.
type Payload struct {
	Type string      `json:"type"`
	Data PayloadData `json:"data"`
}

// PayloadData carries the identity fields referenced by the sync sequence.
type PayloadData struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ImageURL  string `json:"image_url"`
}

// Config wires the webhook receiver.
type Config struct {
	SigningSecret string
	Repository    types.ProfileRepository
	Sink          types.ActivitySink
	Hooks         types.Hooks
	Clock         types.Clock
	Logger        types.Logger
}

// Handler receives identity-change callbacks, verifies their signature, and
// applies the deterministic update-or-insert sequence. It is a plain
// http.Handler because signature verification needs the raw body bytes and
// the svix-* headers exactly as delivered.
type Handler struct {
	verifier *svix.Webhook
	repo     types.ProfileRepository
	sink     types.ActivitySink
	hooks    types.Hooks
	clock    types.Clock
	logger   types.Logger
}

// New constructs the webhook handler.
func New(cfg Config) (*Handler, error) {
	if cfg.SigningSecret == "" {
		return nil, errors.New("webhook: signing secret required")
	}
	if cfg.Repository == nil {
		return nil, types.ErrMissingProfileRepository
	}
	verifier, err := svix.NewWebhook(cfg.SigningSecret)
	if err != nil {
		return nil, err
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}
	return &Handler{
		verifier: verifier,
		repo:     cfg.Repository,
		sink:     cfg.Sink,
		hooks:    cfg.Hooks,
		clock:    clock,
		logger:   logger,
	}, nil
}

var _ http.Handler = (*Handler)(nil)

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		http.Error(w, "unable to read payload", http.StatusBadRequest)
		return
	}
	if err := h.verifier.Verify(body, r.Header); err != nil {
		h.logger.Error("webhook signature verification failed", err)
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, "malformed payload", http.StatusBadRequest)
		return
	}

	switch payload.Type {
	case EventIdentityCreated, EventIdentityUpdated:
	default:
		writeOK(w)
		return
	}

	if payload.Data.ID == "" {
		http.Error(w, "missing identity id", http.StatusBadRequest)
		return
	}

	if err := h.apply(r.Context(), payload.Data); err != nil {
		h.logger.Error("webhook apply failed", err, "identity_id", payload.Data.ID)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeOK(w)
}

// apply runs the deterministic update-or-insert sequence: overwrite the sync
// fields when a row exists, otherwise insert a fresh row with defaults.
func (h *Handler) apply(ctx context.Context, data PayloadData) error {
	handle := strings.TrimSpace(data.Username)
	if handle == "" {
		handle = fallbackHandle(data.ID)
	}
	displayName := joinNames(data.FirstName, data.LastName)
	if displayName == "" {
		displayName = handle
	}
	fields := types.SyncFields{
		Handle:      handle,
		DisplayName: displayName,
		AvatarURL:   data.ImageURL,
	}

	updated, err := h.repo.UpdateSyncFields(ctx, data.ID, fields)
	if err == nil {
		h.notify(ctx, *updated, "profile.synced")
		return nil
	}
	if !errors.Is(err, types.ErrProfileNotFound) {
		return err
	}

	created, err := h.repo.Insert(ctx, types.PlayerProfile{
		IdentityID:  data.ID,
		Handle:      handle,
		DisplayName: displayName,
		AvatarURL:   data.ImageURL,
		Region:      types.RegionNA,
		CurrentRank: types.DefaultRank,
		MainRole:    types.RoleSupport,
	})
	if err != nil {
		return err
	}
	h.notify(ctx, *created, "profile.created")
	return nil
}

func (h *Handler) notify(ctx context.Context, profile types.PlayerProfile, action string) {
	record := types.ActivityRecord{
		IdentityID: profile.IdentityID,
		Verb:       action,
		Handle:     profile.Handle,
		Data:       map[string]any{"source": "webhook"},
		OccurredAt: h.clock.Now(),
	}
	if h.sink != nil {
		_ = h.sink.Log(ctx, record)
	}
	if h.hooks.AfterActivity != nil {
		h.hooks.AfterActivity(ctx, record)
	}
	if h.hooks.AfterProfileChange != nil {
		h.hooks.AfterProfileChange(ctx, types.ProfileEvent{
			IdentityID: profile.IdentityID,
			Action:     action,
			OccurredAt: h.clock.Now(),
			Profile:    profile,
		})
	}
}

const (
	fallbackHandlePrefix = "user-"
	fallbackKeyLength    = 8
)

// fallbackHandle derives a short token from the provider subject when no
// username is present. Raw subjects are long mixed-case strings that do not
// fit the handle shape, so only a lowercased leading slice is kept.
func fallbackHandle(identityID string) string {
	key := strings.TrimPrefix(identityID, "user_")
	if len(key) > fallbackKeyLength {
		key = key[:fallbackKeyLength]
	}
	return fallbackHandlePrefix + strings.ToLower(key)
}

func joinNames(first, last string) string {
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	default:
		return last
	}
}

func writeOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"ok":true}`))
}
