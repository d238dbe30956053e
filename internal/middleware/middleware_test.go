package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go-gin-events/internal/auth"
	"go-gin-events/internal/flash"
	"go-gin-events/internal/middleware"
	"go-gin-events/internal/model"
	repoMocks "go-gin-events/internal/repository/mocks"
	"go-gin-events/internal/view"
	apperrors "go-gin-events/pkg/app_errors"
	"go-gin-events/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	authCookie  = "access_token"
	flashCookie = "flash_sid"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(view.MustParse())
	return r
}

func TestMethodOverride(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		method := method
		r.Handle(method, "/events/:id", func(c *gin.Context) { c.String(http.StatusOK, method) })
	}
	handler := middleware.MethodOverride(r)

	t.Run("FormField", func(t *testing.T) {
		form := url.Values{"_method": {"put"}, "title": {"x"}}
		req := httptest.NewRequest(http.MethodPost, "/events/1", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.MethodPut, w.Body.String())
	})

	t.Run("Query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/events/1?_method=DELETE", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.MethodDelete, w.Body.String())
	})

	t.Run("UnsupportedMethodIgnored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/events/1?_method=GET", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.MethodPost, w.Body.String())
	})

	t.Run("OnlyPostIsOverridden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/events/1?_method=DELETE", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.MethodPut, w.Body.String())
	})
}

func TestFlashSession(t *testing.T) {
	store := flash.NewMemoryStore(time.Minute)
	r := newEngine()
	r.Use(middleware.FlashSession(store, flashCookie, time.Minute))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.Flash(c).ID())
	})

	t.Run("IssuesNewSession", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		sid := w.Body.String()
		assert.NoError(t, uuid.Validate(sid))
		require.Len(t, w.Result().Cookies(), 1)
		assert.Equal(t, sid, w.Result().Cookies()[0].Value)
		assert.True(t, w.Result().Cookies()[0].HttpOnly)
	})

	t.Run("ReusesExistingSession", func(t *testing.T) {
		sid := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: flashCookie, Value: sid})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, sid, w.Body.String())
	})

	t.Run("ReplacesMalformedSession", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: flashCookie, Value: "../../etc"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.NotEqual(t, "../../etc", w.Body.String())
		assert.NoError(t, uuid.Validate(w.Body.String()))
	})
}

func setupAuthRouter(t *testing.T, users *repoMocks.MockUserRepository, store flash.Store) (*gin.Engine, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	r := newEngine()
	r.Use(middleware.FlashSession(store, flashCookie, time.Minute))
	r.Use(middleware.Authenticate(tokens, users, authCookie))
	r.GET("/public", func(c *gin.Context) {
		if user, ok := middleware.CurrentUser(c); ok {
			c.String(http.StatusOK, user.Name)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/private", middleware.RequireAuth(), func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		c.String(http.StatusOK, user.Name)
	})
	return r, tokens
}

func TestAuthenticate(t *testing.T) {
	user := &model.User{ID: uuid.New(), Name: "alice"}

	t.Run("BearerToken", func(t *testing.T) {
		users := repoMocks.NewMockUserRepository(t)
		r, tokens := setupAuthRouter(t, users, flash.NewMemoryStore(time.Minute))
		token, _, err := tokens.Issue(user.ID)
		require.NoError(t, err)

		users.EXPECT().FindByID(mock.Anything, user.ID).Return(user, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice", w.Body.String())
	})

	t.Run("Cookie", func(t *testing.T) {
		users := repoMocks.NewMockUserRepository(t)
		r, tokens := setupAuthRouter(t, users, flash.NewMemoryStore(time.Minute))
		token, _, err := tokens.Issue(user.ID)
		require.NoError(t, err)

		users.EXPECT().FindByID(mock.Anything, user.ID).Return(user, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		req.AddCookie(&http.Cookie{Name: authCookie, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "alice", w.Body.String())
	})

	t.Run("InvalidTokenIsAnonymous", func(t *testing.T) {
		users := repoMocks.NewMockUserRepository(t)
		r, _ := setupAuthRouter(t, users, flash.NewMemoryStore(time.Minute))

		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "anonymous", w.Body.String())
		users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("UnknownUserIsAnonymous", func(t *testing.T) {
		users := repoMocks.NewMockUserRepository(t)
		r, tokens := setupAuthRouter(t, users, flash.NewMemoryStore(time.Minute))
		token, _, err := tokens.Issue(user.ID)
		require.NoError(t, err)

		users.EXPECT().FindByID(mock.Anything, user.ID).Return(nil, apperrors.ErrUserNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "anonymous", w.Body.String())
	})
}

func TestRequireAuth_RedirectsToSignin(t *testing.T) {
	users := repoMocks.NewMockUserRepository(t)
	store := flash.NewMemoryStore(time.Minute)
	r, _ := setupAuthRouter(t, users, store)
	sid := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: sid})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/signin", w.Header().Get("Location"))

	messages, err := store.Pop(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, []flash.Message{{Kind: flash.KindDanger, Text: "Please signin first."}}, messages)
}

func TestRequireAuth_LogsAuthenticationRequired(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	original := logger.L
	logger.L = zap.New(core)
	t.Cleanup(func() { logger.L = original })

	users := repoMocks.NewMockUserRepository(t)
	r, _ := setupAuthRouter(t, users, flash.NewMemoryStore(time.Minute))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))

	require.Equal(t, http.StatusSeeOther, w.Code)
	entries := logs.FilterField(zap.Error(apperrors.ErrAuthenticationRequired)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "auth", entries[0].ContextMap()["component"])
	assert.Equal(t, "/private", entries[0].ContextMap()["path"])
}

func TestErrorBoundary(t *testing.T) {
	r := newEngine()
	r.Use(middleware.Recovery(), middleware.ErrorBoundary())
	r.GET("/error", func(c *gin.Context) {
		_ = c.Error(errors.New("db down"))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	r.GET("/handled", func(c *gin.Context) {
		_ = c.Error(errors.New("logged only"))
		c.String(http.StatusOK, "ok")
	})

	t.Run("AttachedError", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/error", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Something went wrong")
		assert.NotContains(t, w.Body.String(), "db down")
	})

	t.Run("Panic", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Something went wrong")
	})

	t.Run("ResponseAlreadyWritten", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/handled", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})
}
