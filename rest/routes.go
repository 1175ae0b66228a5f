package rest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-players/command"
	"github.com/goliatone/go-players/pkg/authctx"
	"github.com/goliatone/go-players/pkg/types"
	"github.com/goliatone/go-players/query"
	"github.com/goliatone/go-players/service"
	"github.com/goliatone/go-router"
)

// Handlers exposes the HTTP surface for player profiles.
type Handlers struct {
	svc    *service.Service
	logger types.Logger
}

// NewHandlers constructs the REST handler set.
func NewHandlers(svc *service.Service, logger types.Logger) *Handlers {
	if logger == nil {
		logger = types.NopLogger{}
	}
	return &Handlers{svc: svc, logger: logger}
}

// Register mounts the profile routes on the supplied router.
func Register[T any](r router.Router[T], h *Handlers) {
	profile := r.Group("/profile")
	profile.Post("/ensure", h.EnsureOrSync())
	profile.Get("/me", h.Me())
	profile.Post("/update", h.UpdateSettings())

	r.Get("/players/:handle", h.ByHandle())
	r.Post("/directory", h.Directory())
	r.Get("/healthz", h.Health())
}

type profileView struct {
	Handle      string           `json:"handle"`
	DisplayName string           `json:"display_name"`
	AvatarURL   string           `json:"avatar_url,omitempty"`
	Bio         string           `json:"bio,omitempty"`
	Region      types.Region     `json:"region"`
	Timezone    string           `json:"timezone,omitempty"`
	CurrentRank string           `json:"current_rank"`
	MainRole    types.Role       `json:"main_role"`
	IsLFT       bool             `json:"is_lft"`
	Platforms   []types.Platform `json:"platforms"`
}

func toProfileView(p types.PlayerProfile) profileView {
	return profileView{
		Handle:      p.Handle,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		Bio:         p.Bio,
		Region:      p.Region,
		Timezone:    p.Timezone,
		CurrentRank: p.CurrentRank,
		MainRole:    p.MainRole,
		IsLFT:       p.IsLFT,
		Platforms:   p.Platforms,
	}
}

// EnsureOrSync runs the first-touch synchronizer for the caller.
func (h *Handlers) EnsureOrSync() router.HandlerFunc {
	return func(c router.Context) error {
		identity, err := authctx.ResolveIdentityFromRouter(c)
		if err != nil {
			return respondError(c, err)
		}
		result, err := h.svc.FirstTouch(c.Context(), identity)
		if err != nil {
			h.logger.Error("profile sync failed", err, "identity_id", identity.ID)
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{
			"ok":      true,
			"created": result.Created,
			"synced":  result.Synced,
			"handle":  result.Handle,
		})
	}
}

// Me returns the caller's own profile row with its platform set.
func (h *Handlers) Me() router.HandlerFunc {
	return func(c router.Context) error {
		identity, err := authctx.ResolveIdentityFromRouter(c)
		if err != nil {
			return respondError(c, err)
		}
		profile, err := h.svc.Queries().ProfileDetail.Query(c.Context(), query.ProfileQueryInput{
			IdentityID: identity.ID,
		})
		if err != nil {
			return respondError(c, err)
		}
		if profile == nil {
			// No row yet for this identity. Not an error; the client runs
			// the ensure flow and retries.
			return c.JSON(http.StatusOK, map[string]any{
				"ok":      true,
				"profile": nil,
			})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"ok":        true,
			"profile":   toProfileView(*profile),
			"platforms": profile.Platforms,
		})
	}
}

// ByHandle serves the public profile page lookup.
func (h *Handlers) ByHandle() router.HandlerFunc {
	return func(c router.Context) error {
		profile, err := h.svc.Queries().ProfileByHandle.Query(c.Context(), query.HandleQueryInput{
			Handle: c.Param("handle", ""),
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{
			"ok":        true,
			"profile":   profile,
			"platforms": profile.Platforms,
		})
	}
}

// UpdateSettings applies the caller's submitted settings form.
func (h *Handlers) UpdateSettings() router.HandlerFunc {
	return func(c router.Context) error {
		identity, err := authctx.ResolveIdentityFromRouter(c)
		if err != nil {
			return respondError(c, err)
		}
		settings, err := settingsFromForm(c)
		if err != nil {
			return respondError(c, err)
		}
		err = h.svc.Commands().UpdateSettings.Execute(c.Context(), command.ProfileUpdateInput{
			IdentityID: identity.ID,
			Settings:   settings,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"ok": true})
	}
}

// Directory lists players for the public LFT directory.
func (h *Handlers) Directory() router.HandlerFunc {
	return func(c router.Context) error {
		filter, err := directoryFilterFromForm(c)
		if err != nil {
			return respondError(c, err)
		}
		page, err := h.svc.Queries().Directory.Query(c.Context(), query.DirectoryQueryInput{Filter: filter})
		if err != nil {
			return respondError(c, err)
		}
		players := make([]profileView, 0, len(page.Profiles))
		for _, p := range page.Profiles {
			players = append(players, toProfileView(p))
		}
		return c.JSON(http.StatusOK, map[string]any{
			"ok":       true,
			"players":  players,
			"total":    page.Total,
			"has_more": page.HasMore,
		})
	}
}

// Health reuses the service health check.
func (h *Handlers) Health() router.HandlerFunc {
	return func(c router.Context) error {
		if err := h.svc.HealthCheck(c.Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]any{"ok": true})
	}
}

func settingsFromForm(c router.Context) (types.ProfileSettings, error) {
	region, err := types.ParseRegion(c.FormValue("region"))
	if err != nil {
		return types.ProfileSettings{}, err
	}
	role, err := types.ParseRole(c.FormValue("main_role"))
	if err != nil {
		return types.ProfileSettings{}, err
	}
	platforms, err := parsePlatforms(c.FormValue("platforms"))
	if err != nil {
		return types.ProfileSettings{}, err
	}
	return types.ProfileSettings{
		Bio:         c.FormValue("bio"),
		Region:      region,
		Timezone:    c.FormValue("timezone"),
		CurrentRank: c.FormValue("current_rank"),
		MainRole:    role,
		IsLFT:       parseBool(c.FormValue("is_lft")),
		Platforms:   platforms,
	}, nil
}

func directoryFilterFromForm(c router.Context) (types.DirectoryFilter, error) {
	filter := types.DirectoryFilter{
		LFTOnly: parseBool(c.FormValue("lft_only")),
	}
	if raw := strings.TrimSpace(c.FormValue("region")); raw != "" {
		region, err := types.ParseRegion(raw)
		if err != nil {
			return types.DirectoryFilter{}, err
		}
		filter.Region = region
	}
	if raw := strings.TrimSpace(c.FormValue("main_role")); raw != "" {
		role, err := types.ParseRole(raw)
		if err != nil {
			return types.DirectoryFilter{}, err
		}
		filter.Role = role
	}
	if raw := c.FormValue("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Pagination.Limit = limit
		}
	}
	if raw := c.FormValue("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil {
			filter.Pagination.Offset = offset
		}
	}
	return filter, nil
}

func parsePlatforms(raw string) ([]types.Platform, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	platforms := make([]types.Platform, 0, len(parts))
	for _, part := range parts {
		platform, err := types.ParsePlatform(part)
		if err != nil {
			return nil, err
		}
		platforms = append(platforms, platform)
	}
	return platforms, nil
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "on", "yes":
		return true
	}
	return false
}
