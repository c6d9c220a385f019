package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/VdBondarev/notes-management-app-backend/internal/errors"
	"github.com/VdBondarev/notes-management-app-backend/internal/note"
	"github.com/VdBondarev/notes-management-app-backend/internal/notes"
)

// Handlers contains HTTP route handlers for the notes API.
type Handlers struct {
	svc     *notes.Service
	version string
}

// HandleHealth handles GET /healthz.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// HandleCreate handles POST /notes — create a note.
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input notes.CreateInput
	if err := decodeBody(r, &input); err != nil {
		renderError(w, err)
		return
	}

	n, err := h.svc.Create(input)
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusCreated, n)
}

// HandleGet handles GET /notes/{id} — fetch a single note.
func (h *Handlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Get(r.PathValue("id"))
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, n)
}

// HandlePreview handles GET /notes/{id}/preview — note content rendered
// as HTML.
func (h *Handlers) HandlePreview(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Get(r.PathValue("id"))
	if err != nil {
		renderError(w, err)
		return
	}

	renderPreviewPage(w, n.Title, renderMarkdown(n.Content))
}

// HandleList handles GET /notes — paged listing, most recently updated
// first by default.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.List(pageSpecFromQuery(r))
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleSearch handles GET /notes/search — fuzzy field search.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	input := notes.SearchInput{
		Title:   r.URL.Query().Get("title"),
		Content: r.URL.Query().Get("content"),
		Page:    pageSpecFromQuery(r),
	}

	result, err := h.svc.Search(input)
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleUpdate handles PATCH /notes/{id} — partial update.
func (h *Handlers) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input notes.UpdateInput
	if err := decodeBody(r, &input); err != nil {
		renderError(w, err)
		return
	}
	input.ID = r.PathValue("id")

	n, err := h.svc.Update(input)
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, n)
}

// HandleDelete handles DELETE /notes/{id} — soft delete, idempotent.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.PathValue("id")); err != nil {
		renderError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeBody decodes a JSON request body, rejecting malformed input as a
// validation error.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.NewValidation("invalid request body: " + err.Error())
	}
	return nil
}

// pageSpecFromQuery builds a PageSpec from page/size/sort query params.
func pageSpecFromQuery(r *http.Request) note.PageSpec {
	return note.PageSpec{
		Page: parseIntParam(r, "page", 0),
		Size: parseIntParam(r, "size", 0),
		Sort: r.URL.Query().Get("sort"),
	}
}

// parseIntParam parses an integer query parameter with a fallback.
func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
