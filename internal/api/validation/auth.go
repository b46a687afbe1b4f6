package validation

import "strings"

// SignupRequest mirrors the fields needed for signup validation.
type SignupRequest struct {
	Email    string
	Password string
	Name     string
}

// LoginRequest mirrors the fields needed for login validation.
type LoginRequest struct {
	Email    string
	Password string
}

// ValidateSignup checks a signup payload. Returns nil when valid, otherwise
// the first violated constraint.
func ValidateSignup(req SignupRequest) *FieldError {
	if req.Email == "" {
		return &FieldError{Field: "email", Message: "email is required"}
	}
	if !ValidEmail(req.Email) {
		return &FieldError{Field: "email", Message: "email must be a valid email address"}
	}

	if req.Password == "" {
		return &FieldError{Field: "password", Message: "password is required"}
	}
	if len(req.Password) < 8 {
		return &FieldError{Field: "password", Message: "password must be at least 8 characters"}
	}
	// bcrypt truncates beyond 72 bytes; the provider enforces the same cap.
	if len(req.Password) > 72 {
		return &FieldError{Field: "password", Message: "password must be at most 72 characters"}
	}
	if !passwordRegex.MatchString(req.Password) {
		return &FieldError{Field: "password", Message: "password may only contain printable characters without spaces"}
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return &FieldError{Field: "name", Message: "name is required"}
	}
	if len(name) > 100 {
		return &FieldError{Field: "name", Message: "name must be at most 100 characters"}
	}

	return nil
}

// ValidateLogin checks a login payload. Returns nil when valid, otherwise
// the first violated constraint.
func ValidateLogin(req LoginRequest) *FieldError {
	if req.Email == "" {
		return &FieldError{Field: "email", Message: "email is required"}
	}
	if !ValidEmail(req.Email) {
		return &FieldError{Field: "email", Message: "email must be a valid email address"}
	}

	if req.Password == "" {
		return &FieldError{Field: "password", Message: "password is required"}
	}

	return nil
}
