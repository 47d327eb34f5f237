package dto

// RegisterUserRequest represents the request body for account creation.
type RegisterUserRequest struct {
	Email       string   `json:"email" binding:"required"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	FirstName   string   `json:"first_name" binding:"required"`
	LastName    string   `json:"last_name" binding:"required"`
	DateOfBirth string   `json:"date_of_birth,omitempty"`
	Languages   []string `json:"languages,omitempty"`
	AsHost      bool     `json:"as_host"`
}

// VerifyUserRequest represents the request body for a verification step.
type VerifyUserRequest struct {
	Step string `json:"step" binding:"required,oneof=email phone id full"`
}

// VerifyUserResponse represents the outcome of a verification step.
type VerifyUserResponse struct {
	VerificationStatus string `json:"verificationStatus"`
	Advanced           bool   `json:"advanced"`
}
