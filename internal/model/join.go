package model

import (
	"time"

	"github.com/google/uuid"
)

// Join 使用者對活動的報名請求
type Join struct {
	ID        uuid.UUID `json:"id" db:"id"`
	EventID   uuid.UUID `json:"event_id" db:"event_id"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Author *User `json:"author,omitempty" db:"-"`
}

// JoinForm POST /events/:id/joins 的表單
type JoinForm struct {
	Content string `form:"content"`
}

// URL 活動頁並定位到該筆報名
func (j *Join) URL() string {
	return "/events/" + j.EventID.String() + "#" + j.ID.String()
}
