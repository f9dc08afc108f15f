package model

import (
	"time"
)

// DefaultStatus is assigned at registration; the owner can change it later.
const DefaultStatus = "I am new!"

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	HashedPassword string    `json:"-"` // Not exposed
	Status         string    `json:"status"`
	Posts          []Post    `json:"posts,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
