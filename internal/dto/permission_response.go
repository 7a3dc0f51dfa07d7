package dto

type RoleResponse struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Level       int      `json:"level"`
	Permissions []string `json:"permissions"`
}

type NoticeResponse struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type PermissionStatusResponse struct {
	Permission        string `json:"permission"`
	HasPermission     bool   `json:"has_permission"`
	Source            string `json:"source"`
	RoleHasPermission bool   `json:"role_has_permission"`
	State             string `json:"state"`
}

// PermissionGroupResponse is one resource section of the editor. AllEnabled
// and NoneEnabled drive the group's "Enable all"/"Disable all" buttons.
type PermissionGroupResponse struct {
	Resource    string                     `json:"resource"`
	AllEnabled  bool                       `json:"all_enabled"`
	NoneEnabled bool                       `json:"none_enabled"`
	Permissions []PermissionStatusResponse `json:"permissions"`
}

type PermissionSessionResponse struct {
	UUID      string                    `json:"uuid"`
	UserID    string                    `json:"user_id"`
	Role      RoleResponse              `json:"role"`
	Groups    []PermissionGroupResponse `json:"groups"`
	Allowed   []string                  `json:"allowed"`
	Denied    []string                  `json:"denied"`
	Effective []string                  `json:"effective"`
	Added     []string                  `json:"added"`
	Removed   []string                  `json:"removed"`
	Dirty     bool                      `json:"dirty"`
	CanSave   bool                      `json:"can_save"`
	Notice    *NoticeResponse           `json:"notice,omitempty"`
	CreatedAt int64                     `json:"created_at"`
	UpdatedAt int64                     `json:"updated_at"`
}

type UserPermissionsResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email,omitempty"`
	Role      string   `json:"role"`
	Level     int      `json:"level"`
	IsActive  bool     `json:"is_active"`
	Effective []string `json:"effective"`
	Allowed   []string `json:"allowed"`
	Denied    []string `json:"denied"`
}

// UsersPermissionsResponse carries a notice when the backend has no bulk
// endpoint and the list is empty for that reason.
type UsersPermissionsResponse struct {
	Users  []UserPermissionsResponse `json:"users"`
	Notice *NoticeResponse           `json:"notice,omitempty"`
}

type PermissionAuditResponse struct {
	UUID        string   `json:"uuid"`
	SessionUUID string   `json:"session_uuid"`
	UserID      string   `json:"user_id"`
	ActorUUID   string   `json:"actor_uuid"`
	RoleName    string   `json:"role_name"`
	Allowed     []string `json:"allowed"`
	Denied      []string `json:"denied"`
	Added       []string `json:"added"`
	Removed     []string `json:"removed"`
	CreatedAt   int64    `json:"created_at"`
}
