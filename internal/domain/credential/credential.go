package credential

import "fmt"

// Credential is a (username, password) pair from the user table.
// Passwords are plaintext and compared by equality only.
type Credential struct {
	username string
	password string
}

// New validates and creates a Credential.
func New(username, password string) (Credential, error) {
	if username == "" {
		return Credential{}, fmt.Errorf("username is required")
	}
	return Credential{username: username, password: password}, nil
}

// Username returns the login name.
func (c *Credential) Username() string { return c.username }

// Matches reports whether username and password both equal the record.
func (c *Credential) Matches(username, password string) bool {
	return c.username == username && c.password == password
}
