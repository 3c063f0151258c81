package domain

import "time"

// User is an owner of one or more wallets.
type User struct {
	ID             string
	Email          string
	Name           string
	PhoneNumber    string
	HashedPassword string
	OTP            string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
