package view

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestRenderWritesStatusAndContentType(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	err = engine.Render(rr, "pages/login.html", TemplateData{Title: "Masuk Admin", CSRFToken: "tok", Data: map[string]any{}}, http.StatusBadRequest)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	require.True(t, strings.Contains(rr.Body.String(), `name="csrf_token" value="tok"`))
}

func TestRenderUnknownTemplate(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	require.Error(t, engine.Render(rr, "pages/missing.html", TemplateData{}, http.StatusOK))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestStars(t *testing.T) {
	assert.Equal(t, []bool{true, true, true, true, false}, stars(4.8))
	assert.Equal(t, []bool{false, false, false, false, false}, stars(0))
}

func TestImageSrc(t *testing.T) {
	inline := "data:image/png;base64,iVBORw0KGgo="
	assert.Equal(t, template.URL(inline), imageSrc(inline))
	assert.Equal(t, template.URL("data:image/svg+xml;base64,PHN2Zz4="), imageSrc("data:image/svg+xml;base64,PHN2Zz4="))
	assert.Equal(t, "/static/img/placeholder.svg", imageSrc("/static/img/placeholder.svg"))
	assert.Equal(t, "data:text/html;base64,PHNjcmlwdD4=", imageSrc("data:text/html;base64,PHNjcmlwdD4="))
	assert.Equal(t, "data:image/png;base64,<x>", imageSrc("data:image/png;base64,<x>"))
}

func TestTitleSuffix(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	require.NoError(t, engine.Render(rr, "pages/login.html", TemplateData{Title: "Masuk Admin", Data: map[string]any{}}, http.StatusOK))
	require.Contains(t, rr.Body.String(), "<title>Masuk Admin · Rama Toys Center</title>")
}
