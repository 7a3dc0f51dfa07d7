package crmapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/env"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/model"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/permission"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/utils/errcode"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/utils/errwrap"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Client talks to the CRM REST backend on behalf of the signed-in admin.
// Every call forwards the admin's bearer token unchanged.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fiber.Client
	log     *logrus.Logger
	tracer  trace.Tracer
}

func NewClient(log *logrus.Logger, config *env.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(config.Backend.BaseURL, "/"),
		timeout: config.GetBackendTimeout(),
		http: &fiber.Client{
			UserAgent:   config.App.Name,
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		},
		log:    log,
		tracer: otel.Tracer("CrmClient"),
	}
}

// ListRoles fetches GET /roles.
func (c *Client) ListRoles(ctx context.Context, token string) ([]permission.Role, error) {
	spanCtx, span := c.tracer.Start(ctx, "CrmClient.ListRoles")
	defer span.End()

	body, err := c.do(spanCtx, fiber.MethodGet, "/roles", token, nil)
	if err != nil {
		return nil, c.fail(span, err)
	}

	roles, err := parseRoles(body)
	if err != nil {
		return nil, c.fail(span, err)
	}
	span.SetAttributes(attribute.Int("crm.roles", len(roles)))
	return roles, nil
}

// GetUserOverrides fetches GET /users/:id/permissions in either response shape.
func (c *Client) GetUserOverrides(ctx context.Context, token, userID string) (permission.Overrides, error) {
	spanCtx, span := c.tracer.Start(ctx, "CrmClient.GetUserOverrides", trace.WithAttributes(attribute.String("crm.user_id", userID)))
	defer span.End()

	body, err := c.do(spanCtx, fiber.MethodGet, userPermissionsPath(userID), token, nil)
	if err != nil {
		return permission.Overrides{}, c.fail(span, err)
	}

	overrides, err := parseOverrides(body)
	if err != nil {
		return permission.Overrides{}, c.fail(span, err)
	}
	return overrides, nil
}

// ListUsersPermissions fetches the bulk GET /users-permissions list.
func (c *Client) ListUsersPermissions(ctx context.Context, token string) ([]model.UserPermissions, error) {
	spanCtx, span := c.tracer.Start(ctx, "CrmClient.ListUsersPermissions")
	defer span.End()

	body, err := c.do(spanCtx, fiber.MethodGet, "/users-permissions", token, nil)
	if err != nil {
		return nil, c.fail(span, err)
	}

	users, err := parseUsersPermissions(body)
	if err != nil {
		return nil, c.fail(span, err)
	}
	return users, nil
}

// SaveUserOverrides replaces the stored lists with PUT /users/:id/permissions.
func (c *Client) SaveUserOverrides(ctx context.Context, token, userID string, payload permission.Payload) error {
	spanCtx, span := c.tracer.Start(ctx, "CrmClient.SaveUserOverrides", trace.WithAttributes(attribute.String("crm.user_id", userID)))
	defer span.End()

	if _, err := c.do(spanCtx, fiber.MethodPut, userPermissionsPath(userID), token, payload); err != nil {
		return c.fail(span, err)
	}
	return nil
}

// do performs one request and classifies the outcome into the errcode
// taxonomy: transport failures and unexpected statuses are network errors,
// 401/403 authorization errors, 404 not implemented.
func (c *Client) do(ctx context.Context, method, path, token string, body any) ([]byte, error) {
	logger := c.log.WithContext(ctx).WithFields(logrus.Fields{"method": method, "path": path})

	// fasthttp cannot abort a request in flight, so a cancelled caller must
	// not start one.
	if err := ctx.Err(); err != nil {
		logger.WithError(err).Debug("crm backend request skipped")
		return nil, errwrap.Wrapf(errcode.ErrBackendNetwork, "crm backend request %s %s cancelled: %v", method, path, err)
	}

	agent := c.agent(method, c.baseURL+path)
	agent.Timeout(c.requestTimeout(ctx))
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if body != nil {
		agent.JSON(body)
	}

	started := time.Now()
	status, respBody, errs := agent.Bytes()
	logger = logger.WithFields(logrus.Fields{"status": status, "elapsed": time.Since(started)})

	if len(errs) > 0 {
		logger.WithError(errs[0]).Warn("crm backend request failed")
		return nil, errwrap.Wrapf(errcode.ErrBackendNetwork, "crm backend unreachable for %s %s: %v", method, path, errs[0])
	}

	switch {
	case status == fiber.StatusUnauthorized || status == fiber.StatusForbidden:
		logger.Warn("crm backend rejected credentials")
		return nil, errwrap.Wrapf(errcode.ErrBackendAuthorization, "crm backend returned %d for %s %s", status, method, path)
	case status == fiber.StatusNotFound:
		logger.Info("crm backend endpoint not implemented")
		return nil, errwrap.Wrapf(errcode.ErrNotImplemented, "crm backend has no %s %s", method, path)
	case status < 200 || status > 299:
		logger.Warn("crm backend returned unexpected status")
		return nil, errwrap.Wrapf(errcode.ErrBackendNetwork, "crm backend returned %d for %s %s", status, method, path)
	}

	logger.Debug("crm backend request completed")
	return respBody, nil
}

func (c *Client) agent(method, target string) *fiber.Agent {
	switch method {
	case fiber.MethodPut:
		return c.http.Put(target)
	case fiber.MethodPost:
		return c.http.Post(target)
	default:
		return c.http.Get(target)
	}
}

// requestTimeout honours a context deadline shorter than the configured timeout.
func (c *Client) requestTimeout(ctx context.Context) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < c.timeout {
			return remaining
		}
	}
	return c.timeout
}

func (c *Client) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func userPermissionsPath(userID string) string {
	return fmt.Sprintf("/users/%s/permissions", url.PathEscape(userID))
}
