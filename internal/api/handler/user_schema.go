package handler

// updateAccountRequest updates display name and/or email; at least one must
// be present (enforced by the service).
type updateAccountRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" validate:"omitempty,email"`
}
