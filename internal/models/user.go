package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserPatch carries a partial update; nil fields are left untouched.
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil
}
