package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go-gin-events/internal/auth"
	"go-gin-events/internal/flash"
	"go-gin-events/internal/handler"
	"go-gin-events/internal/middleware"
	"go-gin-events/internal/model"
	repoMocks "go-gin-events/internal/repository/mocks"
	"go-gin-events/internal/service/mocks"
	"go-gin-events/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	authCookie  = "access_token"
	flashCookie = "flash_sid"
)

type testEnv struct {
	t       *testing.T
	handler http.Handler
	service *mocks.MockEventService
	store   *flash.MemoryStore
	user    *model.User
	token   string
	sid     string
}

func setupEventTestRouter(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	mockService := mocks.NewMockEventService(t)
	users := repoMocks.NewMockUserRepository(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	store := flash.NewMemoryStore(time.Minute)

	user := &model.User{ID: uuid.New(), Name: "alice", Email: "alice@test.com"}
	token, _, err := tokens.Issue(user.ID)
	require.NoError(t, err)
	users.EXPECT().FindByID(mock.Anything, user.ID).Return(user, nil).Maybe()

	r := gin.New()
	r.SetHTMLTemplate(view.MustParse())
	r.Use(
		middleware.ErrorBoundary(),
		middleware.FlashSession(store, flashCookie, time.Minute),
		middleware.Authenticate(tokens, users, authCookie),
	)
	handler.NewPageHandler().RegisterRoutes(r)
	handler.NewEventHandler(mockService).RegisterRoutes(r)

	return &testEnv{
		t:       t,
		handler: middleware.MethodOverride(r),
		service: mockService,
		store:   store,
		user:    user,
		token:   token,
		sid:     uuid.NewString(),
	}
}

// do 送出請求；signedIn 時帶 token，body 非 nil 時以表單送出
func (e *testEnv) do(method, target string, form url.Values, signedIn bool, headers ...string) *httptest.ResponseRecorder {
	e.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: e.sid})
	if signedIn {
		req.AddCookie(&http.Cookie{Name: authCookie, Value: e.token})
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

// flashes 取出目前 session 的 flash 訊息
func (e *testEnv) flashes() []flash.Message {
	e.t.Helper()
	messages, err := e.store.Pop(context.Background(), e.sid)
	require.NoError(e.t, err)
	return messages
}

func validEventForm() url.Values {
	return url.Values{
		"title":                {"Go Meetup"},
		"organizerName":        {"Gophers"},
		"organizerDescription": {"Taipei Go group"},
		"content":              {"Lightning talks"},
		"location":             {"Taipei"},
		"startTime":            {"2026-11-01T18:00"},
		"endTime":              {"2026-11-01T21:00"},
		"fee":                  {"0"},
		"tags":                 {"go meetup"},
	}
}
