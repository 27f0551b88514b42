package models

import "time"

// User представляет владельца записей на сервере
type User struct {
	CreatedAt time.Time `json:"created_at"` // время создания
	ID        string    `json:"id"`         // UUID пользователя
	Username  string    `json:"username"`   // уникальный username
}
