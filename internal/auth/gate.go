package auth

import (
	"crypto/subtle"
	"fmt"
)

// Gate checks operator credentials against the single configured account.
type Gate struct {
	username []byte
	password []byte
}

func NewGate(username, password string) (*Gate, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("operator credentials are required")
	}
	return &Gate{username: []byte(username), password: []byte(password)}, nil
}

// Authenticate compares both values in constant time. Both comparisons always run.
func (g *Gate) Authenticate(username, password string) bool {
	if g == nil {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), g.username)
	passOK := subtle.ConstantTimeCompare([]byte(password), g.password)
	return userOK&passOK == 1
}
