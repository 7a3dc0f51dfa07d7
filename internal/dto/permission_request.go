package dto

type OpenPermissionSessionRequest struct {
	UserID string `json:"user_id" validate:"required,max=100"`
	Role   string `json:"role" validate:"required,max=100"`
}

type TogglePermissionRequest struct {
	Permission string `json:"permission" validate:"required,permission"`
	Enabled    *bool  `json:"enabled" validate:"required"`
}

type BulkPermissionRequest struct {
	Permissions []string `json:"permissions" validate:"required,min=1,dive,permission"`
	Enabled     *bool    `json:"enabled" validate:"required"`
}

type GroupPermissionRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type SearchAuditRequest struct {
	Page int `query:"page" json:"page" validate:"min=1"`
	Size int `query:"size" json:"size" validate:"min=1,max=100"`
}

func (r *SearchAuditRequest) SetDefault() {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.Size == 0 {
		r.Size = 10
	}
}
