package shared_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ramatoys/storefront/internal/shared"
)

func newManager(t *testing.T) (*shared.SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return shared.NewSessionManager(client, "test_session", "session-secret", time.Hour, false), mr
}

func requestWithCookie(res *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range res.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestUntouchedSessionIsNotStored(t *testing.T) {
	sm, mr := newManager(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	res := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, res, sess))
	require.Empty(t, res.Result().Cookies())
	require.Empty(t, mr.Keys())
}

func TestFlashSurvivesRedirect(t *testing.T) {
	sm, _ := newManager(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodPost, "/", nil))
	require.NoError(t, err)
	sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Produk berhasil ditambahkan!"})
	first := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, first, sess))

	next, err := sm.Load(ctx, requestWithCookie(first))
	require.NoError(t, err)
	require.Equal(t, sess.ID, next.ID)
	flash := next.PopFlash()
	require.NotNil(t, flash)
	require.Equal(t, "Produk berhasil ditambahkan!", flash.Message)
	second := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, second, next))

	again, err := sm.Load(ctx, requestWithCookie(second))
	require.NoError(t, err)
	require.Nil(t, again.PopFlash())
}

func TestRenewDropsPreviousID(t *testing.T) {
	sm, mr := newManager(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.Set("k", "v")
	first := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, first, sess))
	oldID := sess.ID

	loaded, err := sm.Load(ctx, requestWithCookie(first))
	require.NoError(t, err)
	sm.Renew(loaded)
	require.NotEqual(t, oldID, loaded.ID)
	require.NoError(t, sm.Commit(ctx, httptest.NewRecorder(), loaded))

	require.False(t, mr.Exists("session:"+oldID))
	require.True(t, mr.Exists("session:"+loaded.ID))
}

func TestDestroyExpiresCookie(t *testing.T) {
	sm, mr := newManager(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.Set("k", "v")
	require.NoError(t, sm.Commit(ctx, httptest.NewRecorder(), sess))

	sm.Destroy(sess)
	res := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, res, sess))
	require.False(t, mr.Exists("session:"+sess.ID))
	cookies := res.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, -1, cookies[0].MaxAge)
}

func TestCSRFRoundTrip(t *testing.T) {
	sm, _ := newManager(t)
	ctx := context.Background()
	csrf := shared.NewCSRFManager("secret")

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	token, err := csrf.EnsureToken(ctx, sess)
	require.NoError(t, err)
	again, err := csrf.EnsureToken(ctx, sess)
	require.NoError(t, err)
	require.Equal(t, token, again)

	require.NoError(t, csrf.VerifyToken(ctx, sess, token))
	require.ErrorIs(t, csrf.VerifyToken(ctx, sess, "forged"), shared.ErrCSRFTokenMismatch)
	require.ErrorIs(t, csrf.VerifyToken(ctx, sess, ""), shared.ErrCSRFTokenMissing)
}

func TestTamperedCookieStartsFreshSession(t *testing.T) {
	sm, _ := newManager(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.Set("rama-admin-logged-in", "true")
	res := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, res, sess))

	cookies := res.Result().Cookies()
	require.Len(t, cookies, 1)
	require.NotEqual(t, sess.ID, cookies[0].Value)
	require.True(t, strings.HasPrefix(cookies[0].Value, sess.ID+"."))

	for _, value := range []string{sess.ID, sess.ID + ".forged", "." + cookies[0].Value} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: sm.CookieName(), Value: value})
		loaded, err := sm.Load(ctx, req)
		require.NoError(t, err)
		require.NotEqual(t, sess.ID, loaded.ID, value)
		require.Empty(t, loaded.Get("rama-admin-logged-in"))
	}

	other := shared.NewSessionManager(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), "test_session", "other-secret", time.Hour, false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	loaded, err := other.Load(ctx, req)
	require.NoError(t, err)
	require.NotEqual(t, sess.ID, loaded.ID)
}
