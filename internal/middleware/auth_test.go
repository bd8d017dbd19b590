package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentacar/internal/auth"
)

const testSecret = "test-secret"

func protectedEcho(t *testing.T) (http.Handler, *int64, *string) {
	t.Helper()
	var gotID int64
	var gotUsername string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = r.Context().Value(UserIDKey).(int64)
		gotUsername, _ = r.Context().Value(UsernameKey).(string)
		w.WriteHeader(http.StatusOK)
	})
	return AuthJWT(testSecret)(next), &gotID, &gotUsername
}

func TestAuthJWT_NoCookie(t *testing.T) {
	h, _, _ := protectedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_TamperedToken(t *testing.T) {
	h, _, _ := protectedEcho(t)

	token, err := auth.GenerateToken(1, "alice", testSecret)
	require.NoError(t, err)
	b := []byte(token)
	if b[len(b)-1] == 'x' {
		b[len(b)-1] = 'y'
	} else {
		b[len(b)-1] = 'x'
	}

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: string(b)})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthJWT_ValidToken(t *testing.T) {
	h, gotID, gotUsername := protectedEcho(t)

	token, err := auth.GenerateToken(7, "alice", testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), *gotID)
	assert.Equal(t, "alice", *gotUsername)
}

func TestSessionCookieLifecycle(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "tok")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, int(auth.TokenTTL.Seconds()), cookies[0].MaxAge)

	rec = httptest.NewRecorder()
	ClearSessionCookie(rec)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)
}
