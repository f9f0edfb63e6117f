package models

type RegisterRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=50" validate:"required,min=3,max=50"`
	Password string  `json:"password" binding:"required,min=6" validate:"required,min=6"`
	Roles    RoleSet `json:"roles,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" validate:"required"`
	Password string `json:"password" binding:"required" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required" validate:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6" validate:"required,min=6"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreateTopicRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255" validate:"required,min=1,max=255"`
	Body  string `json:"body" binding:"required" validate:"required"`
}

type PreviewRequest struct {
	Body string `json:"body"`
}

type TopicListParams struct {
	Limit int    `form:"limit"`
	Query string `form:"q"`
}
