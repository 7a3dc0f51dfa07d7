package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/env"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/constant"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/dto"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/dto/converter"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/event"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/model"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/permission"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/repository"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/utils/errcode"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/utils/errwrap"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// BackendClient is the CRM REST backend as seen by the editor.
type BackendClient interface {
	ListRoles(ctx context.Context, token string) ([]permission.Role, error)
	GetUserOverrides(ctx context.Context, token, userID string) (permission.Overrides, error)
	ListUsersPermissions(ctx context.Context, token string) ([]model.UserPermissions, error)
	SaveUserOverrides(ctx context.Context, token, userID string, payload permission.Payload) error
}

const (
	noticeOverridesNotImplemented = "Custom permissions are not available for this user yet; showing role permissions only."
	noticeOverridesUnavailable    = "Could not load custom permissions (%v); showing role permissions only. Reload before saving."
	noticeSaveNotImplemented      = "The backend does not store custom permissions yet; changes were not saved."
	noticeSaveFailed              = "Saving permissions failed (%v); your changes are kept, try again."
	noticeSaved                   = "Permissions saved."
	noticeBulkNotImplemented      = "The backend does not provide the users-permissions list yet."
)

// PermissionService owns the admin edit sessions. A session lives in Redis
// and is only visible to the admin who opened it.
type PermissionService struct {
	backend         BackendClient
	redisService    *RedisService
	auditRepository *repository.PermissionAuditRepository
	uow             *repository.UnitOfWork
	bus             *event.Bus
	config          *env.Config
	log             *logrus.Logger
	tracer          trace.Tracer
	now             func() time.Time
}

func NewPermissionService(
	backend BackendClient,
	redisService *RedisService,
	auditRepository *repository.PermissionAuditRepository,
	uow *repository.UnitOfWork,
	bus *event.Bus,
	config *env.Config,
	log *logrus.Logger,
) *PermissionService {
	return &PermissionService{
		backend:         backend,
		redisService:    redisService,
		auditRepository: auditRepository,
		uow:             uow,
		bus:             bus,
		config:          config,
		log:             log,
		tracer:          otel.Tracer("PermissionService"),
		now:             time.Now,
	}
}

// ListRoles proxies the backend role list.
func (s *PermissionService) ListRoles(ctx context.Context, token string) ([]dto.RoleResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "PermissionService.ListRoles")
	defer span.End()

	roles, err := s.backend.ListRoles(spanCtx, token)
	if err != nil {
		s.log.WithContext(spanCtx).WithError(err).Error("Failed to list roles")
		return nil, err
	}

	responses := make([]dto.RoleResponse, len(roles))
	for i, role := range roles {
		responses[i] = converter.RoleToResponse(role)
	}
	return responses, nil
}

// ListUsersPermissions returns the bulk list, or an empty list with a notice
// when the backend has no such endpoint.
func (s *PermissionService) ListUsersPermissions(ctx context.Context, token string) (*dto.UsersPermissionsResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "PermissionService.ListUsersPermissions")
	defer span.End()

	users, err := s.backend.ListUsersPermissions(spanCtx, token)
	if errors.Is(err, errcode.ErrNotImplemented) {
		return &dto.UsersPermissionsResponse{
			Users:  []dto.UserPermissionsResponse{},
			Notice: &dto.NoticeResponse{Level: model.NoticeInfo, Message: noticeBulkNotImplemented},
		}, nil
	}
	if err != nil {
		s.log.WithContext(spanCtx).WithError(err).Error("Failed to list users permissions")
		return nil, err
	}

	responses := make([]dto.UserPermissionsResponse, len(users))
	for i, user := range users {
		responses[i] = converter.UserPermissionsToResponse(user)
	}
	return &dto.UsersPermissionsResponse{Users: responses}, nil
}

// Open starts an edit session for userID under the named role. Roles and
// overrides are fetched concurrently. Failing to load roles aborts; failing
// to load overrides only degrades the session to role-only with a notice.
func (s *PermissionService) Open(ctx context.Context, token, actor string, request *dto.OpenPermissionSessionRequest) (*dto.PermissionSessionResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "PermissionService.Open", trace.WithAttributes(attribute.String("user_id", request.UserID)))
	defer span.End()

	now := s.now()
	session := &model.PermissionSession{
		UUID:      uuid.New().String(),
		ActorUUID: actor,
		UserID:    request.UserID,
		RoleRef:   request.Role,
		CreatedAt: now,
	}

	if err := s.load(spanCtx, token, session); err != nil {
		return nil, err
	}

	if err := s.store(spanCtx, session); err != nil {
		return nil, err
	}

	s.log.WithContext(spanCtx).WithFields(logrus.Fields{
		"session": session.UUID,
		"user_id": session.UserID,
		"role":    session.Role.Name,
	}).Info("Permission session opened")

	return converter.PermissionSessionToResponse(session), nil
}

// Get returns the current view of a session.
func (s *PermissionService) Get(ctx context.Context, actor, id string) (*dto.PermissionSessionResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "PermissionService.Get")
	defer span.End()

	session, err := s.fetch(spanCtx, actor, id)
	if err != nil {
		return nil, err
	}
	return converter.PermissionSessionToResponse(session), nil
}

// Toggle sets one permission to enabled.
func (s *PermissionService) Toggle(ctx context.Context, actor, id string, request *dto.TogglePermissionRequest) (*dto.PermissionSessionResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "PermissionService.Toggle")
	defer span.End()

	p := permission.Permission(strings.TrimSpace(request.Permission))
	return s.mutate(spanCtx, actor, id, func(session *model.PermissionSession) error {
		session.Overrides = permission.Toggle(p, *request.Enabled, session.Role.Permissions, session.Overrides)
		session.Catalog = session.Catalog.Union(permission.NewSet(p))
		return nil
	})
}

// BulkSet applies the same state to an explicit list of permissions.
func (s *PermissionService) BulkSet(ctx context.Context, actor, id string, request *dto.BulkPermissionRequest) (*dto.PermissionSessionResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "PermissionService.BulkSet")
	defer span.End()

	perms := permission.SetOf(request.Permissions...).Sorted()
	return s.mutate(spanCtx, actor, id, func(session *model.PermissionSession) error {
		session.Overrides = permission.BulkSetGroup(perms, *request.Enabled, session.Role.Permissions, session.Overrides)
		session.Catalog = session.Catalog.Union(permission.NewSet(perms...))
		return nil
	})
}

// SetGroup enables or disables every catalog permission of one resource.
func (s *PermissionService) SetGroup(ctx context.Context, actor, id, resource string, request *dto.GroupPermissionRequest) (*dto.PermissionSessionResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "PermissionService.SetGroup", trace.WithAttributes(attribute.String("resource", resource)))
	defer span.End()

	return s.mutate(spanCtx, actor, id, func(session *model.PermissionSession) error {
		perms := permission.InResource(session.Catalog, resource)
		if len(perms) == 0 {
			return errwrap.Wrapf(errcode.ErrUnknownGroup, "permission group %q not found", resource)
		}
		session.Overrides = permission.BulkSetGroup(perms, *request.Enabled, session.Role.Permissions, session.Overrides)
		return nil
	})
}

// Reload re-fetches role and overrides, discarding unsaved edits.
func (s *PermissionService) Reload(ctx context.Context, token, actor, id string) (*dto.PermissionSessionResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "PermissionService.Reload")
	defer span.End()

	session, err := s.fetch(spanCtx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := s.load(spanCtx, token, session); err != nil {
		return nil, err
	}

	if err := s.store(spanCtx, session); err != nil {
		return nil, err
	}
	return converter.PermissionSessionToResponse(session), nil
}

// Save sends the working overrides to the backend. On success they become
// the new baseline and an audit row is written. A backend without override
// storage yields an info notice instead of an error. Any other failure
// leaves the working overrides untouched so the save can be retried.
func (s *PermissionService) Save(ctx context.Context, token, actor, id string) (*dto.PermissionSessionResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "PermissionService.Save")
	defer span.End()

	logger := s.log.WithContext(spanCtx).WithField("session", id)

	session, err := s.fetch(spanCtx, actor, id)
	if err != nil {
		return nil, err
	}

	if !session.Ready() {
		logger.Warn("Save attempted before role and overrides loaded")
		return nil, errcode.ErrSessionNotReady
	}

	payload := permission.SerializeForSave(session.Overrides)
	err = s.backend.SaveUserOverrides(spanCtx, token, session.UserID, payload)

	switch {
	case errors.Is(err, errcode.ErrNotImplemented):
		logger.Info("Backend does not store overrides")
		session.Notice = &model.Notice{Level: model.NoticeInfo, Message: noticeSaveNotImplemented}

	case err != nil:
		logger.WithError(err).Error("Failed to save overrides")
		session.Notice = &model.Notice{Level: model.NoticeError, Message: fmt.Sprintf(noticeSaveFailed, err)}
		if storeErr := s.store(spanCtx, session); storeErr != nil {
			logger.WithError(storeErr).Warn("Failed to keep failure notice on session")
		}
		return nil, err

	default:
		s.recordAudit(spanCtx, session, payload)
		session.Baseline = session.Overrides.Clone()
		session.Notice = &model.Notice{Level: model.NoticeInfo, Message: noticeSaved}
		s.bus.Publish(event.NewRefresh(event.TopicPermissions, session.UserID))
		logger.WithField("user_id", session.UserID).Info("Permissions saved")
	}

	if err := s.store(spanCtx, session); err != nil {
		return nil, err
	}
	return converter.PermissionSessionToResponse(session), nil
}

// Discard drops the session.
func (s *PermissionService) Discard(ctx context.Context, actor, id string) error {
	spanCtx, span := s.tracer.Start(ctx, "PermissionService.Discard")
	defer span.End()

	if _, err := s.fetch(spanCtx, actor, id); err != nil {
		return err
	}

	if err := s.redisService.Del(spanCtx, sessionKey(id)); err != nil {
		return errcode.ErrRedisSet
	}
	return nil
}

// ListAudits returns one page of a user's saved changes, newest first.
func (s *PermissionService) ListAudits(ctx context.Context, userID string, request *dto.SearchAuditRequest) ([]*dto.PermissionAuditResponse, int64, error) {
	spanCtx, span := s.tracer.Start(ctx, "PermissionService.ListAudits")
	defer span.End()

	audits, total, err := s.auditRepository.FindByUserID(spanCtx, userID, request.Page, request.Size)
	if err != nil {
		s.log.WithContext(spanCtx).WithError(err).Error("Failed to list permission audits")
		return nil, 0, errcode.ErrAuditNotLoaded
	}

	responses := make([]*dto.PermissionAuditResponse, len(audits))
	for i, audit := range audits {
		responses[i] = converter.PermissionAuditToResponse(audit)
	}
	return responses, total, nil
}

// GetAudit returns a single audit row by its uuid.
func (s *PermissionService) GetAudit(ctx context.Context, id string) (*dto.PermissionAuditResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "PermissionService.GetAudit")
	defer span.End()

	audit := new(model.PermissionAudit)
	if err := s.auditRepository.FindByUUID(spanCtx, audit, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrAuditNotFound
		}
		s.log.WithContext(spanCtx).WithError(err).Error("Failed to get permission audit")
		return nil, errcode.ErrAuditNotLoaded
	}

	return converter.PermissionAuditToResponse(audit), nil
}

// load fetches roles and overrides concurrently into session, replacing any
// unsaved edits. Session fields are only touched once roles succeeded.
func (s *PermissionService) load(ctx context.Context, token string, session *model.PermissionSession) error {
	spanCtx, span := s.tracer.Start(ctx, "PermissionService.load")
	defer span.End()

	var (
		roles     []permission.Role
		overrides permission.Overrides
		notice    *model.Notice
		loaded    bool
	)

	g, gctx := errgroup.WithContext(spanCtx)
	g.Go(func() error {
		var err error
		roles, err = s.backend.ListRoles(gctx, token)
		return err
	})
	g.Go(func() error {
		overrides, notice, loaded = s.loadOverrides(gctx, token, session.UserID)
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.WithContext(spanCtx).WithError(err).Error("Failed to load roles")
		return err
	}

	role, ok := findRole(roles, session.RoleRef)
	if !ok {
		return errwrap.Wrapf(errcode.ErrRoleNotFound, "role %q not found", session.RoleRef)
	}

	session.Role = role
	session.RoleLoaded = true
	session.Baseline = overrides
	session.Overrides = overrides.Clone()
	session.OverridesLoaded = loaded
	session.Notice = notice
	session.Catalog = permission.Catalog(roles, overrides)
	return nil
}

// loadOverrides never fails. It prefers the bulk list, falls back to the
// per-user endpoint, and degrades to empty overrides with a notice. Only a
// NotImplemented backend counts as a successful, empty load.
func (s *PermissionService) loadOverrides(ctx context.Context, token, userID string) (permission.Overrides, *model.Notice, bool) {
	logger := s.log.WithContext(ctx).WithField("user_id", userID)

	users, err := s.backend.ListUsersPermissions(ctx, token)
	switch {
	case err == nil:
		for _, user := range users {
			if user.ID == userID {
				return user.Custom, nil, true
			}
		}
		logger.Debug("User missing from bulk list, asking per-user endpoint")
	case errors.Is(err, errcode.ErrNotImplemented):
		logger.Debug("Bulk list not implemented, asking per-user endpoint")
	default:
		logger.WithError(err).Warn("Failed to load users permissions")
		return permission.EmptyOverrides(), unavailable(err), false
	}

	overrides, err := s.backend.GetUserOverrides(ctx, token, userID)
	switch {
	case err == nil:
		return overrides, nil, true
	case errors.Is(err, errcode.ErrNotImplemented):
		logger.Info("Overrides not implemented for user")
		return permission.EmptyOverrides(), &model.Notice{Level: model.NoticeInfo, Message: noticeOverridesNotImplemented}, true
	default:
		logger.WithError(err).Warn("Failed to load user overrides")
		return permission.EmptyOverrides(), unavailable(err), false
	}
}

func (s *PermissionService) mutate(ctx context.Context, actor, id string, apply func(*model.PermissionSession) error) (*dto.PermissionSessionResponse, error) {
	session, err := s.fetch(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := apply(session); err != nil {
		return nil, err
	}

	if err := s.store(ctx, session); err != nil {
		return nil, err
	}
	return converter.PermissionSessionToResponse(session), nil
}

func (s *PermissionService) fetch(ctx context.Context, actor, id string) (*model.PermissionSession, error) {
	session := new(model.PermissionSession)
	found, err := s.redisService.GetJSON(ctx, sessionKey(id), session)
	if err != nil {
		return nil, errcode.ErrRedisGet
	}

	// Another admin's session is reported as missing.
	if !found || session.ActorUUID != actor {
		return nil, errcode.ErrSessionNotFound
	}

	if session.Catalog == nil {
		session.Catalog = make(permission.Set)
	}
	return session, nil
}

func (s *PermissionService) store(ctx context.Context, session *model.PermissionSession) error {
	session.UpdatedAt = s.now()
	if _, err := s.redisService.Set(ctx, sessionKey(session.UUID), session, s.config.GetSessionTTL()); err != nil {
		return errcode.ErrRedisSet
	}
	return nil
}

// recordAudit writes the audit row. The backend already accepted the save,
// so failures are logged and not returned.
func (s *PermissionService) recordAudit(ctx context.Context, session *model.PermissionSession, payload permission.Payload) {
	role := session.Role.Permissions
	saved := permission.Effective(role, session.Overrides)
	before := permission.Effective(role, session.Baseline)

	audit := &model.PermissionAudit{
		UUID:        uuid.New().String(),
		SessionUUID: session.UUID,
		UserID:      session.UserID,
		ActorUUID:   session.ActorUUID,
		RoleName:    session.Role.Name,
		Allowed:     payload.Allowed,
		Denied:      payload.Denied,
		Added:       saved.Difference(before).Strings(),
		Removed:     before.Difference(saved).Strings(),
	}

	err := s.uow.Do(ctx, func(ctx context.Context) error {
		return s.auditRepository.Create(ctx, audit)
	})
	if err != nil {
		s.log.WithContext(ctx).WithError(err).Error("Failed to write permission audit")
	}
}

// findRole matches by id exactly, then by name ignoring case.
func findRole(roles []permission.Role, ref string) (permission.Role, bool) {
	ref = strings.TrimSpace(ref)
	for _, role := range roles {
		if role.ID != "" && role.ID == ref {
			return role, true
		}
	}
	for _, role := range roles {
		if strings.EqualFold(role.Name, ref) {
			return role, true
		}
	}
	return permission.Role{}, false
}

func unavailable(err error) *model.Notice {
	return &model.Notice{Level: model.NoticeError, Message: fmt.Sprintf(noticeOverridesUnavailable, err)}
}

func sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", constant.PermissionSessionKeyPrefix, id)
}
