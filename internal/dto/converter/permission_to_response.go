package converter

import (
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/dto"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/model"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/permission"
)

func RoleToResponse(role permission.Role) dto.RoleResponse {
	return dto.RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Level:       role.Level,
		Permissions: role.Permissions.Strings(),
	}
}

func NoticeToResponse(notice *model.Notice) *dto.NoticeResponse {
	if notice == nil {
		return nil
	}
	return &dto.NoticeResponse{Level: notice.Level, Message: notice.Message}
}

// PermissionSessionToResponse resolves every catalog permission against the
// session's role and working overrides.
func PermissionSessionToResponse(session *model.PermissionSession) *dto.PermissionSessionResponse {
	role := session.Role.Permissions
	current := permission.Effective(role, session.Overrides)
	baseline := permission.Effective(role, session.Baseline)

	groups := permission.GroupByResource(session.Catalog)
	groupResponses := make([]dto.PermissionGroupResponse, len(groups))
	for i, g := range groups {
		group := dto.PermissionGroupResponse{
			Resource:    g.Resource,
			AllEnabled:  true,
			NoneEnabled: true,
			Permissions: make([]dto.PermissionStatusResponse, len(g.Permissions)),
		}
		for j, p := range g.Permissions {
			view := permission.Status(p, role, session.Overrides)
			group.Permissions[j] = dto.PermissionStatusResponse{
				Permission:        string(view.Permission),
				HasPermission:     view.HasPermission,
				Source:            string(view.Source),
				RoleHasPermission: view.RoleHasPermission,
				State:             string(permission.StateOf(p, role, session.Overrides)),
			}
			group.AllEnabled = group.AllEnabled && view.HasPermission
			group.NoneEnabled = group.NoneEnabled && !view.HasPermission
		}
		groupResponses[i] = group
	}

	payload := permission.SerializeForSave(session.Overrides)

	return &dto.PermissionSessionResponse{
		UUID:      session.UUID,
		UserID:    session.UserID,
		Role:      RoleToResponse(session.Role),
		Groups:    groupResponses,
		Allowed:   payload.Allowed,
		Denied:    payload.Denied,
		Effective: current.Strings(),
		Added:     current.Difference(baseline).Strings(),
		Removed:   baseline.Difference(current).Strings(),
		Dirty:     session.Dirty(),
		CanSave:   session.Ready(),
		Notice:    NoticeToResponse(session.Notice),
		CreatedAt: session.CreatedAt.Unix(),
		UpdatedAt: session.UpdatedAt.Unix(),
	}
}

func UserPermissionsToResponse(user model.UserPermissions) dto.UserPermissionsResponse {
	return dto.UserPermissionsResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Level:     user.Level,
		IsActive:  user.IsActive,
		Effective: user.Effective.Strings(),
		Allowed:   user.Custom.Allowed.Strings(),
		Denied:    user.Custom.Denied.Strings(),
	}
}

func PermissionAuditToResponse(audit *model.PermissionAudit) *dto.PermissionAuditResponse {
	return &dto.PermissionAuditResponse{
		UUID:        audit.UUID,
		SessionUUID: audit.SessionUUID,
		UserID:      audit.UserID,
		ActorUUID:   audit.ActorUUID,
		RoleName:    audit.RoleName,
		Allowed:     nonNil(audit.Allowed),
		Denied:      nonNil(audit.Denied),
		Added:       nonNil(audit.Added),
		Removed:     nonNil(audit.Removed),
		CreatedAt:   audit.CreatedAt.Unix(),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
