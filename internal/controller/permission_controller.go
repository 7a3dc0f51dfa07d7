package controller

import (
	"math"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/validation"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/dto"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/middleware"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/service"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/utils/errcode"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type PermissionController struct {
	permissionService *service.PermissionService
	validation        *validation.Validation
	logger            *logrus.Logger
	tracer            trace.Tracer
}

func NewPermissionController(permissionService *service.PermissionService, validation *validation.Validation, logger *logrus.Logger) *PermissionController {
	return &PermissionController{permissionService, validation, logger, otel.Tracer("PermissionController")}
}

func (c *PermissionController) ListRoles(ctx *fiber.Ctx) error {
	userContext, span := c.tracer.Start(ctx.UserContext(), "ListRoles")
	defer span.End()

	roles, err := c.permissionService.ListRoles(userContext, middleware.GetToken(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(dto.WebResponse[[]dto.RoleResponse]{Data: roles})
}

func (c *PermissionController) ListUsersPermissions(ctx *fiber.Ctx) error {
	userContext, span := c.tracer.Start(ctx.UserContext(), "ListUsersPermissions")
	defer span.End()

	users, err := c.permissionService.ListUsersPermissions(userContext, middleware.GetToken(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(dto.WebResponse[*dto.UsersPermissionsResponse]{Data: users})
}

func (c *PermissionController) ListAudits(ctx *fiber.Ctx) error {
	userContext, span := c.tracer.Start(ctx.UserContext(), "ListAudits")
	defer span.End()

	req := new(dto.SearchAuditRequest)
	if err := ctx.QueryParser(req); err != nil {
		c.logger.WithContext(userContext).WithError(err).Warn("failed to parse request query")
		return errcode.ErrBadRequest
	}
	req.SetDefault()

	if err := c.validation.Validate(req); err != nil {
		return err
	}

	audits, total, err := c.permissionService.ListAudits(userContext, ctx.Params("id"), req)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.WebResponse[[]*dto.PermissionAuditResponse]{
		Data: audits,
		Paging: &dto.PageMetadata{
			Page:      req.Page,
			Size:      req.Size,
			TotalItem: total,
			TotalPage: int64(math.Ceil(float64(total) / float64(req.Size))),
		},
	})
}

func (c *PermissionController) GetAudit(ctx *fiber.Ctx) error {
	userContext, span := c.tracer.Start(ctx.UserContext(), "GetAudit")
	defer span.End()

	audit, err := c.permissionService.GetAudit(userContext, ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(dto.WebResponse[*dto.PermissionAuditResponse]{Data: audit})
}

func (c *PermissionController) Open(ctx *fiber.Ctx) error {
	userContext, span := c.tracer.Start(ctx.UserContext(), "Open")
	defer span.End()

	req := new(dto.OpenPermissionSessionRequest)
	if err := c.validation.ParseAndValidate(ctx, req); err != nil {
		return err
	}

	session, err := c.permissionService.Open(userContext, middleware.GetToken(ctx), middleware.GetUser(ctx).Actor(), req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.WebResponse[*dto.PermissionSessionResponse]{Data: session})
}

func (c *PermissionController) Get(ctx *fiber.Ctx) error {
	userContext, span := c.tracer.Start(ctx.UserContext(), "Get")
	defer span.End()

	session, err := c.permissionService.Get(userContext, middleware.GetUser(ctx).Actor(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(dto.WebResponse[*dto.PermissionSessionResponse]{Data: session})
}

func (c *PermissionController) Toggle(ctx *fiber.Ctx) error {
	userContext, span := c.tracer.Start(ctx.UserContext(), "Toggle")
	defer span.End()

	req := new(dto.TogglePermissionRequest)
	if err := c.validation.ParseAndValidate(ctx, req); err != nil {
		return err
	}

	session, err := c.permissionService.Toggle(userContext, middleware.GetUser(ctx).Actor(), ctx.Params("id"), req)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.WebResponse[*dto.PermissionSessionResponse]{Data: session})
}

func (c *PermissionController) BulkSet(ctx *fiber.Ctx) error {
	userContext, span := c.tracer.Start(ctx.UserContext(), "BulkSet")
	defer span.End()

	req := new(dto.BulkPermissionRequest)
	if err := c.validation.ParseAndValidate(ctx, req); err != nil {
		return err
	}

	session, err := c.permissionService.BulkSet(userContext, middleware.GetUser(ctx).Actor(), ctx.Params("id"), req)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.WebResponse[*dto.PermissionSessionResponse]{Data: session})
}

func (c *PermissionController) SetGroup(ctx *fiber.Ctx) error {
	userContext, span := c.tracer.Start(ctx.UserContext(), "SetGroup")
	defer span.End()

	req := new(dto.GroupPermissionRequest)
	if err := c.validation.ParseAndValidate(ctx, req); err != nil {
		return err
	}

	session, err := c.permissionService.SetGroup(userContext, middleware.GetUser(ctx).Actor(), ctx.Params("id"), ctx.Params("resource"), req)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.WebResponse[*dto.PermissionSessionResponse]{Data: session})
}

func (c *PermissionController) Reload(ctx *fiber.Ctx) error {
	userContext, span := c.tracer.Start(ctx.UserContext(), "Reload")
	defer span.End()

	session, err := c.permissionService.Reload(userContext, middleware.GetToken(ctx), middleware.GetUser(ctx).Actor(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(dto.WebResponse[*dto.PermissionSessionResponse]{Data: session})
}

func (c *PermissionController) Save(ctx *fiber.Ctx) error {
	userContext, span := c.tracer.Start(ctx.UserContext(), "Save")
	defer span.End()

	session, err := c.permissionService.Save(userContext, middleware.GetToken(ctx), middleware.GetUser(ctx).Actor(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(dto.WebResponse[*dto.PermissionSessionResponse]{Data: session})
}

func (c *PermissionController) Discard(ctx *fiber.Ctx) error {
	userContext, span := c.tracer.Start(ctx.UserContext(), "Discard")
	defer span.End()

	if err := c.permissionService.Discard(userContext, middleware.GetUser(ctx).Actor(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
