package model

// User is a registered account. Addresses cascade-delete with the user.
type User struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
	Phone string `json:"phone" db:"phone"`
	// Stored and compared as plain text today. Known gap; the comparison
	// itself goes through service.CredentialVerifier so hashing can be
	// swapped in without touching call sites.
	Password string `json:"password,omitempty" db:"password"`
}

// Address is a shipping address owned by a single user.
type Address struct {
	ID      int64  `json:"id" db:"id"`
	Street  string `json:"street" db:"street"`
	City    string `json:"city" db:"city"`
	ZipCode string `json:"zipCode" db:"zip_code"`
	UserID  int64  `json:"userId" db:"user_id"`
}

// AuthRequest is the payload for register and login.
type AuthRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}
