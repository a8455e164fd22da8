package models

import "time"

// User roles.
const (
	RolePatient = "PATIENT"
	RoleNurse   = "NURSE"
	RoleAdmin   = "ADMIN"
)

// User represents an account on the platform. Nurses additionally own a
// NurseProfile; patients and admins are plain users.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	Password     string    `bson:"-" json:"password,omitempty"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	TokenHash    string    `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ValidRole reports whether role is one of the recognized account roles.
func ValidRole(role string) bool {
	switch role {
	case RolePatient, RoleNurse, RoleAdmin:
		return true
	}
	return false
}
