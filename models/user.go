package models

import (
	"slices"
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// RoleSet is a normalized set of role tags. It is persisted as a JSON array
// so the same set always round-trips, independent of input order.
type RoleSet []string

func DefaultRoles() RoleSet { return RoleSet{RoleUser} }

// Normalize returns the set sorted, deduplicated and with empty tags dropped.
func (r RoleSet) Normalize() RoleSet {
	out := make(RoleSet, 0, len(r))
	for _, role := range r {
		role = strings.TrimSpace(role)
		if role != "" {
			out = append(out, role)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func (r RoleSet) Has(role string) bool {
	return slices.Contains(r, role)
}

type User struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Salt         string    `json:"-" gorm:"not null"`
	Roles        RoleSet   `json:"roles" gorm:"serializer:json;type:text;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
