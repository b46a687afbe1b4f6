package identity

// Role enumerates the access levels a principal can hold.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole maps a raw role string to a Role, defaulting to RoleUser for
// anything unrecognized.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// Principal is the identity of an authenticated caller, as resolved by the
// external identity provider. It is never persisted by this service.
type Principal struct {
	SubjectID string
	Email     string
	Role      Role
}

// SignupResult is the outcome of a sign-up attempt. When the provider
// requires email verification before granting a session, Pending is true and
// no session token may be fabricated for the caller.
type SignupResult struct {
	SubjectID string
	Email     string
	Pending   bool
}

// Profile holds the descriptive attributes the provider stores for a subject.
type Profile struct {
	DisplayName string
	Phone       string
	Role        Role
}
