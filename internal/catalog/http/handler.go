package cataloghttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ramatoys/storefront/internal/auth"
	"github.com/ramatoys/storefront/internal/catalog"
	"github.com/ramatoys/storefront/internal/platform/httpx"
	"github.com/ramatoys/storefront/internal/shared"
	"github.com/ramatoys/storefront/internal/view"
)

// CatalogService is the read side of the catalog used by the public pages.
type CatalogService interface {
	List(ctx context.Context, query, category string) ([]catalog.Product, error)
	Get(ctx context.Context, id string) (catalog.Product, error)
}

// OrderRecorder counts followed order links.
type OrderRecorder interface {
	RecordOrderLink(category string)
}

// Handler serves the public catalog page, order redirects and the JSON feed.
type Handler struct {
	logger    *slog.Logger
	service   CatalogService
	templates *view.Engine
	csrf      *shared.CSRFManager
	recorder  OrderRecorder
	phone     string
}

// NewHandler builds a catalog Handler. phone is the shop's WhatsApp number.
func NewHandler(logger *slog.Logger, service CatalogService, templates *view.Engine, csrf *shared.CSRFManager, recorder OrderRecorder, phone string) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		service:   service,
		templates: templates,
		csrf:      csrf,
		recorder:  recorder,
		phone:     phone,
	}
}

// MountRoutes registers the public routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showCatalog)
	r.Get("/order/{id}", h.order)
	r.Get("/api/products", h.listJSON)
}

type categoryChip struct {
	Label  string
	URL    string
	Active bool
}

type productCard struct {
	Product  catalog.Product
	OrderURL string
}

type catalogPageData struct {
	Query       string
	Category    string
	Categories  []categoryChip
	Products    []productCard
	Total       int
	ContactLink string
}

type listResponse struct {
	Products []catalog.Product `json:"products"`
	Total    int               `json:"total"`
}

func (h *Handler) showCatalog(w http.ResponseWriter, r *http.Request) {
	query, category := filterParams(r)
	products, err := h.service.List(r.Context(), query, category)
	if err != nil {
		h.logger.Error("list catalog", slog.Any("error", err))
		http.Error(w, "Gagal memuat katalog", http.StatusInternalServerError)
		return
	}

	cards := make([]productCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, productCard{Product: p, OrderURL: "/order/" + url.PathEscape(p.ID)})
	}
	h.render(w, r, catalogPageData{
		Query:       query,
		Category:    category,
		Categories:  chips(query, category),
		Products:    cards,
		Total:       len(products),
		ContactLink: catalog.ContactLink(h.phone),
	})
}

func (h *Handler) order(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			http.Error(w, "Produk tidak ditemukan", http.StatusNotFound)
			return
		}
		h.logger.Error("order link", slog.Any("error", err))
		http.Error(w, "Gagal memuat produk", http.StatusInternalServerError)
		return
	}
	if h.recorder != nil {
		h.recorder.RecordOrderLink(product.Category)
	}
	http.Redirect(w, r, catalog.OrderLink(h.phone, product), http.StatusSeeOther)
}

func (h *Handler) listJSON(w http.ResponseWriter, r *http.Request) {
	query, category := filterParams(r)
	products, err := h.service.List(r.Context(), query, category)
	if err != nil {
		h.logger.Error("list catalog json", slog.Any("error", err))
		httpx.RespondError(w, problemFor(err))
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}
	httpx.JSON(w, http.StatusOK, listResponse{Products: products, Total: len(products)})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data catalogPageData) {
	sess := shared.SessionFromContext(r.Context())
	var csrfToken string
	if h.csrf != nil && sess != nil {
		csrfToken, _ = h.csrf.EnsureToken(r.Context(), sess)
	}
	viewData := view.TemplateData{
		Title:       "Rama Toys Center",
		CSRFToken:   csrfToken,
		Flash:       shared.PopFlash(r.Context()),
		CurrentPath: r.URL.Path,
		Admin:       auth.ResultFromSession(sess).IsAdmin(),
		Data:        data,
	}
	if err := h.templates.Render(w, "pages/catalog.html", viewData, http.StatusOK); err != nil {
		h.logger.Error("render catalog", slog.Any("error", err))
	}
}

func filterParams(r *http.Request) (string, string) {
	q := r.URL.Query()
	category := strings.TrimSpace(q.Get("category"))
	if category == "" {
		category = catalog.CategoryAll
	}
	return strings.TrimSpace(q.Get("q")), category
}

func chips(query, selected string) []categoryChip {
	values := []string{catalog.CategoryAll}
	for _, c := range catalog.Categories() {
		values = append(values, c.Value)
	}
	out := make([]categoryChip, 0, len(values))
	for _, value := range values {
		params := url.Values{}
		if query != "" {
			params.Set("q", query)
		}
		if value != catalog.CategoryAll {
			params.Set("category", value)
		}
		link := "/"
		if encoded := params.Encode(); encoded != "" {
			link += "?" + encoded
		}
		out = append(out, categoryChip{
			Label:  catalog.CategoryLabel(value),
			URL:    link,
			Active: value == selected,
		})
	}
	return out
}

func problemFor(err error) error {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return fmt.Errorf("%w: %v", httpx.ErrNotFound, err)
	case errors.Is(err, catalog.ErrCorruptCatalog):
		return fmt.Errorf("%w: %v", httpx.ErrUnavailable, err)
	default:
		return err
	}
}
