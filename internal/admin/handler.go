// Package admin serves the Admin View: dashboard statistics and the add,
// edit and delete flows over the product list.
package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ramatoys/storefront/internal/auth"
	"github.com/ramatoys/storefront/internal/catalog"
	"github.com/ramatoys/storefront/internal/images"
	"github.com/ramatoys/storefront/internal/shared"
	"github.com/ramatoys/storefront/internal/view"
)

const (
	// EditingSessionKey holds the id of the product currently being edited.
	EditingSessionKey = "admin-editing"

	imageField = "image_file"
)

// MaxFormBytes bounds an admin form body: the image plus a handful of short
// text fields.
const MaxFormBytes = images.MaxUploadBytes + 1<<20

// CatalogService is the catalog surface the admin pages depend on.
type CatalogService interface {
	Current(ctx context.Context) ([]catalog.Product, error)
	Add(ctx context.Context, in catalog.ProductInput) (catalog.Product, error)
	Edit(ctx context.Context, editingID string, in catalog.ProductInput) (catalog.Product, error)
	Delete(ctx context.Context, id string, confirmed bool) error
}

// Handler wires the admin endpoints. All routes expect auth.RequireAdmin in
// front of them.
type Handler struct {
	logger    *slog.Logger
	service   CatalogService
	uploader  images.Uploader
	templates *view.Engine
	csrf      *shared.CSRFManager
	now       func() time.Time
}

// NewHandler constructs a Handler. A nil uploader stores images inline as
// data URIs.
func NewHandler(logger *slog.Logger, service CatalogService, uploader images.Uploader, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if uploader == nil {
		uploader = images.DataURIUploader{}
	}
	return &Handler{
		logger:    logger,
		service:   service,
		uploader:  uploader,
		templates: templates,
		csrf:      csrf,
		now:       time.Now,
	}
}

// MountRoutes registers admin routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Get("/products.csv", h.exportCSV)
	r.Get("/products/new", h.newForm)
	r.Post("/products", h.create)
	r.Get("/products/{id}/edit", h.editForm)
	r.Post("/products/{id}", h.update)
	r.Post("/products/{id}/cancel", h.cancelEdit)
	r.Get("/products/{id}/delete", h.confirmDelete)
	r.Post("/products/{id}/delete", h.delete)
}

type dashboardData struct {
	Stats    catalog.Stats
	Products []catalog.Product
}

type formData struct {
	EditingID  string
	Notice     string
	Form       catalog.ProductInput
	Errors     map[string]string
	Categories []catalog.Category
}

// submittedProduct is a product form whose image has not been stored yet.
type submittedProduct struct {
	input    catalog.ProductInput
	filename string
	image    []byte
}

type deleteData struct {
	Product catalog.Product
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Current(r.Context())
	if err != nil {
		h.logger.Error("load dashboard", slog.Any("error", err))
		http.Error(w, "Gagal memuat produk", http.StatusInternalServerError)
		return
	}
	h.render(w, r, "pages/admin_dashboard.html", "Admin Dashboard", dashboardData{
		Stats:    catalog.Summarise(products),
		Products: products,
	}, http.StatusOK)
}

func (h *Handler) newForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "", catalog.ProductInput{Stock: true}, nil, http.StatusOK)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	form, err := h.parseProductForm(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if fieldErrs := h.prepare(r.Context(), &form); len(fieldErrs) > 0 {
		h.renderForm(w, r, "", form.input, fieldErrs, http.StatusBadRequest)
		return
	}

	product, err := h.service.Add(r.Context(), form.input)
	if err != nil {
		h.handleMutationError(w, r, "", form.input, err)
		return
	}
	h.logger.Info("product added", slog.String("id", product.ID), slog.String("name", product.Name))
	h.redirectWithFlash(w, r, auth.DashboardPath, "success", "Produk berhasil ditambahkan!")
}

func (h *Handler) editForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := h.find(r.Context(), id)
	if err != nil {
		h.handleLookupError(w, r, err)
		return
	}
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.Set(EditingSessionKey, product.ID)
	}
	h.renderForm(w, r, product.ID, catalog.InputFromProduct(product), nil, http.StatusOK)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess := shared.SessionFromContext(r.Context())
	editingID := ""
	if sess != nil && sess.Get(EditingSessionKey) == id {
		editingID = id
	}

	form, err := h.parseProductForm(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if editingID != "" {
		if fieldErrs := h.prepare(r.Context(), &form); len(fieldErrs) > 0 {
			h.renderForm(w, r, id, form.input, fieldErrs, http.StatusBadRequest)
			return
		}
	}

	product, err := h.service.Edit(r.Context(), editingID, form.input)
	if err != nil {
		h.handleMutationError(w, r, id, form.input, err)
		return
	}
	if sess != nil {
		sess.Delete(EditingSessionKey)
	}
	h.logger.Info("product updated", slog.String("id", product.ID))
	h.redirectWithFlash(w, r, auth.DashboardPath, "success", "Produk berhasil diperbarui!")
}

func (h *Handler) cancelEdit(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.Delete(EditingSessionKey)
	}
	http.Redirect(w, r, auth.DashboardPath, http.StatusSeeOther)
}

func (h *Handler) confirmDelete(w http.ResponseWriter, r *http.Request) {
	product, err := h.find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleLookupError(w, r, err)
		return
	}
	h.render(w, r, "pages/admin_delete_confirm.html", "Hapus Produk", deleteData{Product: product}, http.StatusOK)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	confirmed := r.PostFormValue("confirm") == "yes"

	err := h.service.Delete(r.Context(), id, confirmed)
	switch {
	case err == nil:
		if sess := shared.SessionFromContext(r.Context()); sess != nil && sess.Get(EditingSessionKey) == id {
			sess.Delete(EditingSessionKey)
		}
		h.logger.Info("product deleted", slog.String("id", id))
		h.redirectWithFlash(w, r, auth.DashboardPath, "success", "Produk berhasil dihapus!")
	case errors.Is(err, catalog.ErrNotConfirmed):
		http.Redirect(w, r, "/admin/products/"+id+"/delete", http.StatusSeeOther)
	case errors.Is(err, catalog.ErrProductNotFound):
		h.redirectWithFlash(w, r, auth.DashboardPath, "error", "Produk tidak ditemukan")
	default:
		h.logger.Error("delete product", slog.String("id", id), slog.Any("error", err))
		http.Error(w, "Gagal menghapus produk", http.StatusInternalServerError)
	}
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Current(r.Context())
	if err != nil {
		h.logger.Error("export products", slog.Any("error", err))
		http.Error(w, "Gagal memuat produk", http.StatusInternalServerError)
		return
	}
	filename := fmt.Sprintf("rama-toys-products-%s.csv", h.now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := catalog.WriteCSV(w, products); err != nil {
		h.logger.Error("write csv", slog.Any("error", err))
	}
}

// parseProductForm reads the product fields and the optional image bytes.
// Nothing is uploaded here.
func (h *Handler) parseProductForm(r *http.Request) (submittedProduct, error) {
	if err := r.ParseMultipartForm(MaxFormBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return submittedProduct{}, err
	}
	form := submittedProduct{input: catalog.ProductInput{
		Name:        r.PostFormValue("name"),
		Price:       r.PostFormValue("price"),
		Category:    r.PostFormValue("category"),
		Stock:       r.PostFormValue("stock") != "",
		Description: r.PostFormValue("description"),
	}}

	file, header, err := r.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return form, nil
	}
	if err != nil {
		return form, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, images.MaxUploadBytes+1))
	if err != nil {
		return form, err
	}
	form.filename = header.Filename
	form.image = data
	return form, nil
}

// prepare validates the text fields and only then stores the image. Problems
// come back as field errors.
func (h *Handler) prepare(ctx context.Context, form *submittedProduct) map[string]string {
	if err := catalog.ValidateInput(form.input); err != nil {
		var vErr *catalog.ValidationError
		if errors.As(err, &vErr) {
			return vErr.Fields
		}
		return map[string]string{"form": err.Error()}
	}
	if len(form.image) == 0 {
		return nil
	}
	ref, err := h.uploader.Upload(ctx, form.filename, form.image)
	if err != nil {
		h.logger.Warn("image upload rejected", slog.String("file", form.filename), slog.Any("error", err))
		return map[string]string{"image": imageMessage(err)}
	}
	form.input.Image = ref
	return nil
}

func imageMessage(err error) string {
	switch {
	case errors.Is(err, images.ErrTooLarge):
		return "Ukuran gambar maksimal 2 MB"
	case errors.Is(err, images.ErrNotImage):
		return "File harus berupa gambar"
	default:
		return "Gagal mengunggah gambar"
	}
}

func (h *Handler) find(ctx context.Context, id string) (catalog.Product, error) {
	products, err := h.service.Current(ctx)
	if err != nil {
		return catalog.Product{}, err
	}
	product, ok := catalog.Find(products, id)
	if !ok {
		return catalog.Product{}, catalog.ErrProductNotFound
	}
	return product, nil
}

func (h *Handler) handleLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, catalog.ErrProductNotFound) {
		h.redirectWithFlash(w, r, auth.DashboardPath, "error", "Produk tidak ditemukan")
		return
	}
	h.logger.Error("load product", slog.Any("error", err))
	http.Error(w, "Gagal memuat produk", http.StatusInternalServerError)
}

func (h *Handler) handleMutationError(w http.ResponseWriter, r *http.Request, editingID string, in catalog.ProductInput, err error) {
	var vErr *catalog.ValidationError
	switch {
	case errors.As(err, &vErr):
		if _, noSelection := vErr.Fields["editing"]; noSelection {
			h.redirectWithFlash(w, r, auth.DashboardPath, "error", vErr.Fields["editing"])
			return
		}
		h.renderForm(w, r, editingID, in, vErr.Fields, http.StatusBadRequest)
	case errors.Is(err, catalog.ErrProductNotFound):
		if sess := shared.SessionFromContext(r.Context()); sess != nil {
			sess.Delete(EditingSessionKey)
		}
		h.redirectWithFlash(w, r, auth.DashboardPath, "error", "Produk tidak ditemukan")
	default:
		h.logger.Error("save product", slog.Any("error", err))
		http.Error(w, "Gagal menyimpan produk", http.StatusInternalServerError)
	}
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, editingID string, in catalog.ProductInput, fieldErrs map[string]string, status int) {
	data := formData{
		EditingID:  editingID,
		Form:       in,
		Errors:     fieldErrs,
		Categories: catalog.Categories(),
	}
	if data.Errors == nil {
		data.Errors = map[string]string{}
	}
	if status == http.StatusBadRequest {
		data.Notice = notice(data.Errors)
	}
	title := "Tambah Produk"
	if editingID != "" {
		title = "Edit Produk"
	}
	h.render(w, r, "pages/admin_product_form.html", title, data, status)
}

// notice picks the banner for a rejected form. Image problems alone get
// their own message.
func notice(fieldErrs map[string]string) string {
	for field := range fieldErrs {
		if field != "image" {
			return catalog.MsgIncomplete
		}
	}
	if msg, ok := fieldErrs["image"]; ok {
		return msg
	}
	return catalog.MsgIncomplete
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template, title string, data any, status int) {
	sess := shared.SessionFromContext(r.Context())
	var csrfToken string
	if h.csrf != nil && sess != nil {
		csrfToken, _ = h.csrf.EnsureToken(r.Context(), sess)
	}
	viewData := view.TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       shared.PopFlash(r.Context()),
		CurrentPath: r.URL.Path,
		Admin:       auth.ResultFromSession(sess).IsAdmin(),
		Data:        data,
	}
	if err := h.templates.Render(w, template, viewData, status); err != nil {
		h.logger.Error("render template", slog.String("template", template), slog.Any("error", err))
	}
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	shared.AddFlash(r.Context(), kind, message)
	http.Redirect(w, r, location, http.StatusSeeOther)
}
