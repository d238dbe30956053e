package middleware

import (
	"net/http"
	"time"

	"go-gin-events/internal/flash"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const flashSessionKey = "flash_session"

// FlashSession 以 cookie 內的 session id 綁定 flash store，沒有或格式錯誤時發新的
func FlashSession(store flash.Store, cookieName string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err != nil || uuid.Validate(sid) != nil {
			sid = uuid.NewString()
		}
		// 每次都刷新期限
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, sid, int(ttl.Seconds()), "/", "", false, true)

		c.Set(flashSessionKey, flash.NewSession(store, sid))
		c.Next()
	}
}

// Flash 取得目前請求的 flash session；未掛 FlashSession 時回 nil
func Flash(c *gin.Context) *flash.Session {
	v, ok := c.Get(flashSessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*flash.Session)
	return session
}
