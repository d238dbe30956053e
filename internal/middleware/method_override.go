package middleware

import (
	"net/http"
	"strings"
)

const methodOverrideField = "_method"

// MethodOverride HTML 表單只能送 GET/POST，POST 帶 _method（query 或表單欄位）時改寫成 PUT/PATCH/DELETE。
// 需包在 gin engine 外層，路由比對前就要改好 method。
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			method := r.URL.Query().Get(methodOverrideField)
			if method == "" {
				method = r.PostFormValue(methodOverrideField)
			}
			switch method = strings.ToUpper(strings.TrimSpace(method)); method {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = method
			}
		}
		next.ServeHTTP(w, r)
	})
}
