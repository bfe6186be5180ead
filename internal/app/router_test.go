package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ramatoys/storefront/internal/admin"
	"github.com/ramatoys/storefront/internal/auth"
	"github.com/ramatoys/storefront/internal/catalog"
	cataloghttp "github.com/ramatoys/storefront/internal/catalog/http"
	"github.com/ramatoys/storefront/internal/observability"
	"github.com/ramatoys/storefront/internal/shared"
	"github.com/ramatoys/storefront/internal/store"
	"github.com/ramatoys/storefront/internal/view"
	"github.com/ramatoys/storefront/jobs"
)

var csrfPattern = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

const adminPassword = "toko-mainan"

type browser struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	b.handler.ServeHTTP(rr, req)
	for _, c := range rr.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return rr
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (b *browser) post(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func csrfToken(t *testing.T, body string) string {
	t.Helper()
	m := csrfPattern.FindStringSubmatch(body)
	require.Len(t, m, 2, "csrf token missing from page")
	return m[1]
}

func newTestApp(t *testing.T) (*browser, *catalog.SlotRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &Config{AppEnv: "test", AppRequestTimeout: 5 * time.Second}
	metrics := observability.NewMetrics()
	sessions := shared.NewSessionManager(client, "toys_session", "session-secret", time.Hour, false)
	csrf := shared.NewCSRFManager("csrf")
	templates, err := view.NewEngine()
	require.NoError(t, err)

	repo := catalog.NewRepository(store.NewRedisStore(client))
	service := catalog.NewService(repo, metrics)
	hash, err := auth.HashPassword(adminPassword)
	require.NoError(t, err)

	router := NewRouter(RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessions,
		CSRFManager:    csrf,
		CatalogHandler: cataloghttp.NewHandler(logger, service, templates, csrf, metrics, "6285964362781"),
		AuthHandler:    auth.NewHandler(logger, auth.NewService(auth.Credentials{Username: "admin", PasswordHash: hash}), templates, sessions, csrf),
		AdminHandler:   admin.NewHandler(logger, service, nil, templates, csrf),
		JobHandler:     jobs.NewHandler(nil, logger),
		Metrics:        metrics,
		RateLimit:      1000,
	})
	return &browser{t: t, handler: router, cookies: map[string]*http.Cookie{}}, repo
}

func login(t *testing.T, b *browser) {
	t.Helper()
	page := b.get("/admin/login")
	require.Equal(t, http.StatusOK, page.Code)

	rr := b.post("/admin/login", url.Values{
		"username":   {"admin"},
		"password":   {adminPassword},
		"csrf_token": {csrfToken(t, page.Body.String())},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, auth.DashboardPath, rr.Header().Get("Location"))
}

func TestHealthz(t *testing.T) {
	b, _ := newTestApp(t)
	rr := b.get("/healthz")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestStaticAssets(t *testing.T) {
	b, _ := newTestApp(t)
	rr := b.get("/static/img/placeholder.svg")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "public, max-age=3600", rr.Header().Get("Cache-Control"))
}

func TestCatalogHasSecurityHeaders(t *testing.T) {
	b, _ := newTestApp(t)
	rr := b.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Header().Get("Content-Security-Policy"), "img-src 'self' data:")
	require.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
}

func TestDashboardRequiresLogin(t *testing.T) {
	b, _ := newTestApp(t)
	rr := b.get("/admin/dashboard")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, auth.LoginPath, rr.Header().Get("Location"))
}

func TestPostWithoutCSRFIsForbidden(t *testing.T) {
	b, _ := newTestApp(t)
	b.get("/admin/login")
	rr := b.post("/admin/login", url.Values{"username": {"admin"}, "password": {adminPassword}})
	require.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAdminAddShowsOnCatalog(t *testing.T) {
	b, repo := newTestApp(t)
	login(t, b)

	dashboard := b.get("/admin/dashboard")
	require.Equal(t, http.StatusOK, dashboard.Code)
	require.Contains(t, dashboard.Body.String(), "Selamat datang kembali")

	form := b.get("/admin/products/new")
	require.Equal(t, http.StatusOK, form.Code)

	rr := b.post("/admin/products", url.Values{
		"name":       {"Robot X"},
		"price":      {"1000"},
		"category":   {"robot"},
		"stock":      {"on"},
		"csrf_token": {csrfToken(t, form.Body.String())},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	dashboard = b.get("/admin/dashboard")
	require.Contains(t, dashboard.Body.String(), "Produk berhasil ditambahkan!")

	// The admin flow does not seed defaults, so only the new product exists.
	products, err := repo.Load(t.Context())
	require.NoError(t, err)
	require.Len(t, products, 1)

	catalogPage := b.get("/?q=robot&category=robot")
	require.Contains(t, catalogPage.Body.String(), "Robot X")

	metrics := b.get("/metrics")
	require.Contains(t, metrics.Body.String(), `toys_catalog_mutations_total{op="add",result="ok"} 1`)
}

func TestOversizedAdminBodyIsRejected(t *testing.T) {
	b, repo := newTestApp(t)
	login(t, b)

	form := b.get("/admin/products/new")
	require.Equal(t, http.StatusOK, form.Code)

	rr := b.post("/admin/products", url.Values{
		"name":        {"Robot X"},
		"price":       {"1000"},
		"category":    {"robot"},
		"description": {strings.Repeat("a", int(admin.MaxFormBytes))},
		"csrf_token":  {csrfToken(t, form.Body.String())},
	})
	require.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)

	_, err := repo.Load(t.Context())
	require.ErrorIs(t, err, catalog.ErrNoCatalog)
}

func TestLogoutEndsSession(t *testing.T) {
	b, _ := newTestApp(t)
	login(t, b)

	dashboard := b.get("/admin/dashboard")
	require.Equal(t, http.StatusOK, dashboard.Code)

	rr := b.post("/admin/logout", url.Values{"csrf_token": {csrfToken(t, dashboard.Body.String())}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = b.get("/admin/dashboard")
	require.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestJobsHealthWithoutInspector(t *testing.T) {
	b, _ := newTestApp(t)
	rr := b.get("/jobs/health")
	require.Equal(t, http.StatusOK, rr.Code)
}
