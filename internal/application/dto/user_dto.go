package dto

import "time"

// RegisterRequest entrada para registro. El avatar es opcional.
type RegisterRequest struct {
	Name     string    `json:"name" validate:"required,min=4,max=30"`
	Email    string    `json:"email" validate:"required,email"`
	Password string    `json:"password" validate:"required,min=8,pwbytes"`
	Avatar   *ImageDTO `json:"avatar" validate:"omitempty"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest entrada para solicitar el correo de recuperación.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest nueva contraseña para el token recibido por correo.
type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8,pwbytes"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// UpdatePasswordRequest cambio de contraseña con la sesión activa.
type UpdatePasswordRequest struct {
	OldPassword     string `json:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,pwbytes"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// UpdateProfileRequest cambios del propio perfil; los campos ausentes no se tocan.
type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=4,max=30"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// UpdateUserRequest cambios de un usuario hechos por un admin.
type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=4,max=30"`
	Email *string `json:"email" validate:"omitempty,email"`
	Role  *string `json:"role" validate:"omitempty,oneof=user admin"`
}

// UserResponse salida de un usuario (sin password ni token de recuperación).
type UserResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Avatar    ImageDTO  `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionResponse salida de register, login, reset y cambio de contraseña.
type SessionResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}

// UserEnvelope un usuario.
type UserEnvelope struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// UserListResponse listado de usuarios (admin).
type UserListResponse struct {
	Success bool           `json:"success"`
	Users   []UserResponse `json:"users"`
}
