package model

import (
	"strconv"
	"strings"

	apperrors "go-gin-events/pkg/app_errors"
)

// EventForm 建立/編輯活動的表單，tags 以空白分隔
type EventForm struct {
	Title                string `form:"title"`
	OrganizerName        string `form:"organizerName"`
	OrganizerDescription string `form:"organizerDescription"`
	Content              string `form:"content"`
	Location             string `form:"location"`
	StartTime            string `form:"startTime"`
	EndTime              string `form:"endTime"`
	Fee                  string `form:"fee"`
	Tags                 string `form:"tags"`
}

// Validate 去除前後空白後依固定順序檢查必填欄位，只回報第一個缺少的欄位
func (f *EventForm) Validate() error {
	f.Title = strings.TrimSpace(f.Title)
	f.OrganizerName = strings.TrimSpace(f.OrganizerName)
	f.OrganizerDescription = strings.TrimSpace(f.OrganizerDescription)
	f.Content = strings.TrimSpace(f.Content)
	f.Location = strings.TrimSpace(f.Location)
	f.StartTime = strings.TrimSpace(f.StartTime)
	f.EndTime = strings.TrimSpace(f.EndTime)
	f.Fee = strings.TrimSpace(f.Fee)

	required := []struct {
		field   string
		value   string
		message string
	}{
		{"title", f.Title, "Title is required."},
		{"organizerName", f.OrganizerName, "Organizer Name is required."},
		{"organizerDescription", f.OrganizerDescription, "Organizer Description is required."},
		{"content", f.Content, "Description is required."},
		{"location", f.Location, "Location is required."},
		{"startTime", f.StartTime, "Start Time is required."},
		{"endTime", f.EndTime, "End Time is required."},
	}

	for _, r := range required {
		if r.value == "" {
			return &apperrors.ValidationError{Field: r.field, Message: r.message}
		}
	}
	return nil
}

// Params 轉成寫入用參數，呼叫前應先 Validate
func (f *EventForm) Params() EventParams {
	return EventParams{
		Title:                f.Title,
		Content:              f.Content,
		Location:             f.Location,
		StartTime:            f.StartTime,
		EndTime:              f.EndTime,
		OrganizerName:        f.OrganizerName,
		OrganizerDescription: f.OrganizerDescription,
		Fee:                  f.Fee,
		Tags:                 ParseTags(f.Tags),
	}
}

// EventFormFrom 以既有活動預填編輯表單
func EventFormFrom(e *Event) EventForm {
	return EventForm{
		Title:                e.Title,
		OrganizerName:        e.OrganizerName,
		OrganizerDescription: e.OrganizerDescription,
		Content:              e.Content,
		Location:             e.Location,
		StartTime:            e.StartTime,
		EndTime:              e.EndTime,
		Fee:                  e.Fee,
		Tags:                 strings.Join(e.Tags, " "),
	}
}

// ParseTags 以空白切開，去掉空字串與重複的 tag，保留原本順序
func ParseTags(raw string) []string {
	fields := strings.Fields(raw)
	tags := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, tag := range fields {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// EventListQuery GET /events 的查詢參數，保留原字串以便套用預設值
type EventListQuery struct {
	Page  string `form:"page"`
	Limit string `form:"limit"`
	Term  string `form:"term"`
}

// Params 非正整數的 page/limit 套用預設值，limit 上限 MaxLimit
func (q EventListQuery) Params() EventListParams {
	limit := positiveOr(q.Limit, DefaultLimit)
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return EventListParams{
		Page:  positiveOr(q.Page, DefaultPage),
		Limit: limit,
		Term:  strings.TrimSpace(q.Term),
	}
}

func positiveOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
