package model

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID                   uuid.UUID `json:"id" db:"id"`
	Title                string    `json:"title" db:"title"`
	Content              string    `json:"content" db:"content"`
	Location             string    `json:"location" db:"location"`
	StartTime            string    `json:"start_time" db:"start_time"`
	EndTime              string    `json:"end_time" db:"end_time"`
	OrganizerName        string    `json:"organizer_name" db:"organizer_name"`
	OrganizerDescription string    `json:"organizer_description" db:"organizer_description"`
	Fee                  string    `json:"fee" db:"fee"`
	Tags                 []string  `json:"tags" db:"tags"`
	AuthorID             uuid.UUID `json:"author_id" db:"author_id"`
	NumReads             int       `json:"num_reads" db:"num_reads"`
	NumJoins             int       `json:"num_joins" db:"num_joins"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`

	Author *User `json:"author,omitempty" db:"-"`
}

// EventParams 建立與更新時可寫入的欄位，更新時全部覆寫
type EventParams struct {
	Title                string
	Content              string
	Location             string
	StartTime            string
	EndTime              string
	OrganizerName        string
	OrganizerDescription string
	Fee                  string
	Tags                 []string
}

// EventDetail 單一活動頁：活動本身與所有報名
type EventDetail struct {
	Event *Event  `json:"event"`
	Joins []*Join `json:"joins"`
}

// URL 活動頁的相對路徑
func (e *Event) URL() string {
	return "/events/" + e.ID.String()
}
