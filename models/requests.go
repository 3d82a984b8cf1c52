package models

// RegisterRequest carries the text fields of a registration form.
type RegisterRequest struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterFiles carries the local paths of the files uploaded together with
// a registration form. Empty paths mean the file was not provided.
type RegisterFiles struct {
	AvatarPath     string
	CoverImagePath string
}

// LoginRequest identifies a user by username or email.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the optional JSON body of the refresh endpoint. The
// cookie takes precedence when present.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest is the body of the change-password endpoint.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UpdateAccountRequest is the body of the update-account endpoint.
type UpdateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}
