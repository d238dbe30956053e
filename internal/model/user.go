package model

import (
	"time"

	"github.com/google/uuid"
)

// User 活動作者與報名者，登入流程不在本服務內
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
