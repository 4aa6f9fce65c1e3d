package models

// User is the identity of a logged-in person. It never carries credentials;
// those live only in the users directory as a salted hash.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Account is one entry of the local users directory.
type Account struct {
	User         User   `json:"user"`
	Salt         []byte `json:"salt"`
	PasswordHash []byte `json:"passwordHash"`
}
