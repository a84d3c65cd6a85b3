package models

// Request bodies bound by the controllers. Presence and format rules
// are binding tags checked by gin before a handler sees the request.
// Rules that need the database or other fields stay in the services.

type RegisterUserRequest struct {
	Username string `form:"username" json:"username" binding:"required,notblank"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	FullName string `form:"fullName" json:"fullName" binding:"required,notblank"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
}

type RegisterGuardRequest struct {
	Username  string `json:"username" binding:"required,notblank"`
	Email     string `json:"email" binding:"required,email"`
	FullName  string `json:"fullName" binding:"required,notblank"`
	Phone     string `json:"phone" binding:"required,notblank"`
	Password  string `json:"password" binding:"required,min=6"`
	Residence string `json:"residence" binding:"required,notblank"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required_without=Email"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type ComplainRequest struct {
	GuardID  string `json:"guardId" binding:"required"`
	Complain string `json:"complain" binding:"required,notblank"`
}

type AppreciationRequest struct {
	GuardID string `json:"guardId" binding:"required"`
	Message string `json:"message" binding:"required,notblank"`
}

type AssignLocationRequest struct {
	GuardID   string   `json:"guardId" binding:"required"`
	Name      string   `json:"name" binding:"required,notblank"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Radius    float64  `json:"radius"`
}

type WorkPercentRequest struct {
	WorkPercent *int `json:"workPercent" binding:"required"`
}

type LivePingRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

// TokenPair is returned on login and refresh and mirrored into cookies.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
