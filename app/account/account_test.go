package account_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitwise74/account-api/app/account"
	"bitwise74/account-api/internal"
	"bitwise74/account-api/internal/model"
	"bitwise74/account-api/pkg/middleware"
	"bitwise74/account-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type authPayload struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *internal.Deps) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(model.User{}))

	d := &internal.Deps{
		DB:     conn,
		Argon:  security.NewArgon(),
		Tokens: security.NewTokenMaker("test-secret"),
	}

	r := gin.New()
	r.Use(middleware.NewRequestIDMiddleware())

	jwt := middleware.NewJWTMiddleware(d.Tokens)

	u := r.Group("/api/users")
	{
		u.GET("", func(c *gin.Context) { account.List(c, d) })
		u.GET("/search", func(c *gin.Context) { account.Search(c, d) })
		u.GET("/me", jwt, func(c *gin.Context) { account.Me(c, d) })
		u.GET("/:id", func(c *gin.Context) { account.Fetch(c, d) })
		u.POST("", func(c *gin.Context) { account.Register(c, d) })
		u.POST("/login", func(c *gin.Context) { account.Login(c, d) })
		u.POST("/logout", account.Logout)
		u.PATCH("/me", jwt, func(c *gin.Context) { account.UpdateProfile(c, d) })
		u.PUT("/me/password", jwt, func(c *gin.Context) { account.ChangePassword(c, d) })
		u.POST("/password/forgot", func(c *gin.Context) { account.ForgotPassword(c, d) })
		u.POST("/password/reset", func(c *gin.Context) { account.ResetPassword(c, d) })
	}

	return r, d
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r *gin.Engine, email, password string) authPayload {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/users", gin.H{
		"name":     "Test User",
		"email":    email,
		"username": "user_" + t.Name(),
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var p authPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	require.NotEmpty(t, p.Token)
	require.NotZero(t, p.User.ID)
	return p
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := newTestRouter(t)

	p := register(t, r, "a@x.com", "password-1")
	require.Equal(t, "a@x.com", p.User.Email)

	w := doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{
		"email":    "a@x.com",
		"password": "password-1",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got authPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotEmpty(t, got.Token)
	require.Equal(t, p.User.ID, got.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _ := newTestRouter(t)

	register(t, r, "a@x.com", "password-1")

	w := doJSON(t, r, http.MethodPost, "/api/users", gin.H{
		"email":    "a@x.com",
		"password": "password-2",
	}, "")
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestLoginFailures(t *testing.T) {
	r, _ := newTestRouter(t)

	register(t, r, "a@x.com", "password-1")

	w := doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{
		"email":    "a@x.com",
		"password": "wrong-password",
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{
		"email":    "nobody@x.com",
		"password": "password-1",
	}, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMe(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/users/me", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	p := register(t, r, "a@x.com", "password-1")

	w = doJSON(t, r, http.MethodGet, "/api/users/me", nil, p.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got struct {
		User model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, p.User.ID, got.User.ID)
	require.Equal(t, "a@x.com", got.User.Email)
}

func TestMe_GarbageToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/users/me", nil, "garbage.token.here")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfile_Partial(t *testing.T) {
	r, d := newTestRouter(t)

	p := register(t, r, "a@x.com", "password-1")

	w := doJSON(t, r, http.MethodPatch, "/api/users/me", gin.H{
		"name": "Renamed",
	}, p.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var user model.User
	require.NoError(t, d.DB.First(&user, p.User.ID).Error)
	require.Equal(t, "Renamed", user.Name)
	require.Equal(t, "a@x.com", user.Email)
	require.NotNil(t, user.Username)
}

func TestChangePassword(t *testing.T) {
	r, _ := newTestRouter(t)

	p := register(t, r, "a@x.com", "old-password-1")

	w := doJSON(t, r, http.MethodPut, "/api/users/me/password", gin.H{
		"old_password": "not-the-old-one",
		"new_password": "new-password-1",
	}, p.Token)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/users/me/password", gin.H{
		"old_password": "old-password-1",
		"new_password": "new-password-1",
	}, p.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{
		"email":    "a@x.com",
		"password": "old-password-1",
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{
		"email":    "a@x.com",
		"password": "new-password-1",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestForgotAndResetPassword(t *testing.T) {
	r, d := newTestRouter(t)

	p := register(t, r, "a@x.com", "old-password-1")

	w := doJSON(t, r, http.MethodPost, "/api/users/password/forgot", gin.H{
		"email": "nobody@x.com",
	}, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/users/password/forgot", gin.H{
		"email": "a@x.com",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var user model.User
	require.NoError(t, d.DB.First(&user, p.User.ID).Error)
	require.NotNil(t, user.ForgotPasswordToken)
	resetToken := *user.ForgotPasswordToken

	w = doJSON(t, r, http.MethodPost, "/api/users/password/reset", gin.H{
		"token":    "garbage.token.here",
		"password": "new-password-1",
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/users/password/reset", gin.H{
		"token":    resetToken,
		"password": "new-password-1",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Single use: the column is cleared, the same token must now fail
	require.NoError(t, d.DB.First(&user, p.User.ID).Error)
	require.Nil(t, user.ForgotPasswordToken)

	w = doJSON(t, r, http.MethodPost, "/api/users/password/reset", gin.H{
		"token":    resetToken,
		"password": "another-password-1",
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{
		"email":    "a@x.com",
		"password": "new-password-1",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestResetPassword_TokenForClearedField(t *testing.T) {
	r, d := newTestRouter(t)

	p := register(t, r, "a@x.com", "old-password-1")

	// A verifiable token whose value was never stored on the row must
	// be rejected by the stored-equality check
	stray, err := d.Tokens.Issue(security.Claims{UserID: p.User.ID, Email: "a@x.com"}, security.ResetTokenTTL)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/users/password/reset", gin.H{
		"token":    stray,
		"password": "new-password-1",
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFetchListSearch(t *testing.T) {
	r, _ := newTestRouter(t)

	p := register(t, r, "a@x.com", "password-1")

	w := doJSON(t, r, http.MethodGet, "/api/users/999", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/users/1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var fetched struct {
		User model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	require.Equal(t, p.User.ID, fetched.User.ID)

	w = doJSON(t, r, http.MethodGet, "/api/users?page=1&limit=10", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Users []model.User `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Users, 1)

	w = doJSON(t, r, http.MethodGet, "/api/users/search?q=a@x", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var found struct {
		Users []model.User `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	require.Len(t, found.Users, 1)

	w = doJSON(t, r, http.MethodGet, "/api/users/search", nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/users/logout", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.True(t, got.Success)
}

func TestRegister_InvalidInput(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/users", gin.H{
		"email":    "not-an-email",
		"password": "password-1",
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/users", gin.H{
		"email":    "a@x.com",
		"password": "short",
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}
