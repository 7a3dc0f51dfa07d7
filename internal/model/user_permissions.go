package model

import "github.com/Harsh28r/DeltaFrontend-sub002/internal/permission"

// UserPermissions is one entry of the backend's bulk users-permissions list.
type UserPermissions struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Role      string               `json:"role"`
	Level     int                  `json:"level"`
	IsActive  bool                 `json:"is_active"`
	Effective permission.Set       `json:"effective"`
	Custom    permission.Overrides `json:"custom"`
}
