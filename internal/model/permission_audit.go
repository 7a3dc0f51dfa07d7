package model

import "time"

// PermissionAudit records one successful save of a user's overrides.
type PermissionAudit struct {
	UUID        string    `gorm:"primaryKey;unique;not null" json:"uuid"`
	SessionUUID string    `gorm:"not null" json:"session_uuid"`
	UserID      string    `gorm:"index;not null" json:"user_id"`
	ActorUUID   string    `gorm:"not null" json:"actor_uuid"`
	RoleName    string    `json:"role_name"`
	Allowed     []string  `gorm:"serializer:json;type:jsonb" json:"allowed"`
	Denied      []string  `gorm:"serializer:json;type:jsonb" json:"denied"`
	Added       []string  `gorm:"serializer:json;type:jsonb" json:"added"`
	Removed     []string  `gorm:"serializer:json;type:jsonb" json:"removed"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}
