package model

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// EventListParams 列表查詢條件，Term 為空表示不篩選
type EventListParams struct {
	Page  int
	Limit int
	Term  string
}

// Offset 依頁碼換算的 SQL OFFSET
func (p EventListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// EventPage 分頁結果
type EventPage struct {
	Items      []*Event `json:"items"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"total_pages"`
	HasPrev    bool     `json:"has_prev"`
	HasNext    bool     `json:"has_next"`
	PrevPage   int      `json:"prev_page,omitempty"`
	NextPage   int      `json:"next_page,omitempty"`
}

// NewEventPage 依總數計算分頁資訊
func NewEventPage(items []*Event, total int, params EventListParams) *EventPage {
	if items == nil {
		items = make([]*Event, 0)
	}
	totalPages := 0
	if params.Limit > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}

	page := &EventPage{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages,
		HasPrev:    params.Page > 1,
		HasNext:    params.Page < totalPages,
	}
	if page.HasPrev {
		page.PrevPage = params.Page - 1
	}
	if page.HasNext {
		page.NextPage = params.Page + 1
	}
	return page
}
