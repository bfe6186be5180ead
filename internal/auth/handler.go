package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ramatoys/storefront/internal/shared"
	"github.com/ramatoys/storefront/internal/view"
)

// DashboardPath is where a successful login lands.
const DashboardPath = "/admin/dashboard"

// Handler wires HTTP endpoints for the admin login flow.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	templates      *view.Engine
	sessionManager *shared.SessionManager
	csrfManager    *shared.CSRFManager
	validator      *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, sessions *shared.SessionManager, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:         logger,
		service:        service,
		templates:      templates,
		sessionManager: sessions,
		csrfManager:    csrf,
		validator:      validator.New(),
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/login", h.showLogin)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
}

type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type loginPageData struct {
	Form   loginForm
	Errors map[string]string
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if ResultFromSession(sess).IsAdmin() {
		http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
		return
	}
	h.render(w, r, loginPageData{Errors: map[string]string{}}, http.StatusOK)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())

	form := loginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	errors := make(map[string]string)
	if err := h.validator.Struct(form); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			errors[fieldErr.Field()] = "Wajib diisi"
		}
	}

	if len(errors) == 0 {
		result, err := h.service.Authenticate(form.Username, form.Password)
		if err == nil && sess != nil {
			h.sessionManager.Renew(sess)
			StoreResult(sess, result)
			sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Selamat datang kembali"})
			h.logger.Info("admin login", slog.String("user", result.Username))
			http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
			return
		}
		if sess == nil {
			h.logger.Error("session missing during login")
		}
		h.logger.Warn("admin login rejected", slog.String("user", form.Username), slog.String("ip", r.RemoteAddr))
		errors["general"] = "Username atau password tidak valid"
	}

	form.Password = ""
	h.render(w, r, loginPageData{Form: form, Errors: errors}, http.StatusBadRequest)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		ClearResult(sess)
		h.sessionManager.Destroy(sess)
	}
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data loginPageData, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrfManager.EnsureToken(r.Context(), sess)
	viewData := view.TemplateData{
		Title:       "Masuk Admin",
		CSRFToken:   csrfToken,
		Flash:       shared.PopFlash(r.Context()),
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if err := h.templates.Render(w, "pages/login.html", viewData, status); err != nil {
		h.logger.Error("render login", slog.Any("error", err))
	}
}
