package domain

// UserRegister is the idempotent upsert sent once per session bootstrap
type UserRegister struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	CognitoID   string `json:"cognito_id"`
}

// User as stored by the backend
type User struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	CognitoID   string `json:"cognito_id"`
	Role        string `json:"role"`
}

// IdentityClaims are the ID token claims consumed by the client
type IdentityClaims struct {
	GivenName   string
	FamilyName  string
	Email       string
	PhoneNumber string
	Subject     string
}
