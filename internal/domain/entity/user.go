package entity

import "time"

// User representa un usuario de la aplicación.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
