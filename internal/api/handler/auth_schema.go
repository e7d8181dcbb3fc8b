package handler

// registerRequest carries the text fields of the multipart registration
// form; the avatar and cover image arrive as file parts.
type registerRequest struct {
	FullName string `form:"full_name" validate:"required"`
	Username string `form:"username"  validate:"required,min=3"`
	Email    string `form:"email"     validate:"required,email"`
	Password string `form:"password"  validate:"required,min=8"`
}

// loginRequest accepts either username or email as the identifier.
type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type loginResponse struct {
	User         any    `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
