package entity

import (
	"servilink/internal/authz"
)

type User struct {
	Base
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password"`
	Phone        *string    `db:"phone"`
	City         *string    `db:"city"`
	Role         authz.Role `db:"role"`
	Rating       float64    `db:"rating"`
	ReviewCount  int64      `db:"review_count"`
	IsActive     bool       `db:"is_active"`
}
