package model

import (
	"time"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/permission"
)

const (
	NoticeInfo  = "info"
	NoticeError = "error"
)

// Notice is a dismissible, non-fatal message for the dashboard.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// PermissionSession is one admin's in-progress edit of a user's overrides.
// Baseline is what the backend last returned or accepted; Overrides is the
// working copy mutated by toggles.
type PermissionSession struct {
	UUID            string               `json:"uuid"`
	ActorUUID       string               `json:"actor_uuid"`
	UserID          string               `json:"user_id"`
	RoleRef         string               `json:"role_ref"`
	Role            permission.Role      `json:"role"`
	Catalog         permission.Set       `json:"catalog"`
	Baseline        permission.Overrides `json:"baseline"`
	Overrides       permission.Overrides `json:"overrides"`
	RoleLoaded      bool                 `json:"role_loaded"`
	OverridesLoaded bool                 `json:"overrides_loaded"`
	Notice          *Notice              `json:"notice,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// Ready reports whether role and overrides have both loaded at least once.
func (s *PermissionSession) Ready() bool {
	return s.RoleLoaded && s.OverridesLoaded
}

// Dirty reports unsaved edits.
func (s *PermissionSession) Dirty() bool {
	return !s.Baseline.Equal(s.Overrides)
}
