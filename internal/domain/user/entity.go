package user

import "time"

type Role string

const (
	RoleDokter    Role = "dokter"
	RoleParamedis Role = "paramedis"
	RoleAdmin     Role = "admin"
)

// User is a staff account. The user ID doubles as the employee ID carried
// through schedules and attendance records.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
