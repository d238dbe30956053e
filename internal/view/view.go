// Package view 內嵌 HTML 模板並提供 gin 使用的 template set。
package view

import (
	"embed"
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// 模板名稱
const (
	TemplateEventIndex = "events/index"
	TemplateEventNew   = "events/new"
	TemplateEventEdit  = "events/edit"
	TemplateEventShow  = "events/show"
	TemplateSignin     = "signin"
	TemplateError      = "error"
)

//go:embed templates
var templateFS embed.FS

var funcs = template.FuncMap{
	"pageURL":    PageURL,
	"formatTime": formatTime,
	"joinTags":   func(tags []string) string { return strings.Join(tags, " ") },
}

// Parse 解析所有內嵌模板
func Parse() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html", "templates/events/*.html")
}

// MustParse 同 Parse，失敗時 panic，啟動時使用
func MustParse() *template.Template {
	return template.Must(Parse())
}

// PageURL 列表分頁連結，保留 limit 與 term
func PageURL(page, limit int, term string) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if term != "" {
		q.Set("term", term)
	}
	return "/events?" + q.Encode()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}
