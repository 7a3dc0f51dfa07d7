package crmapi

import (
	"bytes"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/model"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/permission"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/utils/errcode"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/utils/errwrap"

	"github.com/goccy/go-json"
)

type roleRecord struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Level       int      `json:"level"`
	Permissions []string `json:"permissions"`
}

func (r roleRecord) toRole() permission.Role {
	return permission.Role{
		ID:          r.ID,
		Name:        r.Name,
		Level:       r.Level,
		Permissions: permission.SetOf(r.Permissions...),
	}
}

// parseRoles accepts a bare array or a {"roles": [...]} envelope.
func parseRoles(body []byte) ([]permission.Role, error) {
	var records []roleRecord
	if isArray(body) {
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, errwrap.Wrapf(errcode.ErrMalformedResponse, "roles response is not a list of roles: %v", err)
		}
	} else {
		var envelope struct {
			Roles *[]roleRecord `json:"roles"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil || envelope.Roles == nil {
			return nil, errwrap.WrapError(errcode.ErrMalformedResponse, "roles response has neither a list nor a roles field")
		}
		records = *envelope.Roles
	}

	roles := make([]permission.Role, len(records))
	for i, r := range records {
		roles[i] = r.toRole()
	}
	return roles, nil
}

type overridesBody struct {
	Allowed []string `json:"allowed"`
	Denied  []string `json:"denied"`
}

func (b overridesBody) toOverrides() permission.Overrides {
	return permission.FromPayload(permission.Payload{Allowed: b.Allowed, Denied: b.Denied})
}

// parseOverrides accepts both shapes the backend is known to send:
//
//	nested: {"permissions": {"allowed": [...], "denied": [...]}}
//	flat:   {"allowed": [...], "denied": [...]}
//
// A missing or null list is treated as empty; a body carrying neither list
// in either place is malformed.
func parseOverrides(body []byte) (permission.Overrides, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return permission.Overrides{}, errwrap.Wrapf(errcode.ErrMalformedResponse, "user permissions response is not an object: %v", err)
	}

	if raw, ok := top["permissions"]; ok {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(raw, &nested); err == nil && hasOverrideLists(nested) {
			return decodeOverrideLists(nested)
		}
	}
	if hasOverrideLists(top) {
		return decodeOverrideLists(top)
	}

	return permission.Overrides{}, errwrap.WrapError(errcode.ErrMalformedResponse, "user permissions response has neither nested nor flat allowed/denied lists")
}

func hasOverrideLists(fields map[string]json.RawMessage) bool {
	_, allowed := fields["allowed"]
	_, denied := fields["denied"]
	return allowed || denied
}

func decodeOverrideLists(fields map[string]json.RawMessage) (permission.Overrides, error) {
	var b overridesBody
	for key, dst := range map[string]*[]string{"allowed": &b.Allowed, "denied": &b.Denied} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return permission.Overrides{}, errwrap.Wrapf(errcode.ErrMalformedResponse, "user permissions %s list is not a list of strings", key)
		}
	}
	return b.toOverrides(), nil
}

type userPermissionsRecord struct {
	ID          string `json:"id"`
	MongoID     string `json:"_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Level       int    `json:"level"`
	IsActive    bool   `json:"isActive"`
	Permissions struct {
		Effective []string      `json:"effective"`
		Custom    overridesBody `json:"custom"`
	} `json:"permissions"`
}

func parseUsersPermissions(body []byte) ([]model.UserPermissions, error) {
	var envelope struct {
		Users *[]userPermissionsRecord `json:"users"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Users == nil {
		return nil, errwrap.WrapError(errcode.ErrMalformedResponse, "users-permissions response has no users list")
	}

	users := make([]model.UserPermissions, len(*envelope.Users))
	for i, r := range *envelope.Users {
		id := r.ID
		if id == "" {
			id = r.MongoID
		}
		users[i] = model.UserPermissions{
			ID:        id,
			Name:      r.Name,
			Email:     r.Email,
			Role:      r.Role,
			Level:     r.Level,
			IsActive:  r.IsActive,
			Effective: permission.SetOf(r.Permissions.Effective...),
			Custom:    r.Permissions.Custom.toOverrides(),
		}
	}
	return users, nil
}

func isArray(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '['
}
