package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/introspection"

	"github.com/aretw0/pantry/internal/selfcheck"
	"github.com/aretw0/pantry/pkg/core"
	"github.com/aretw0/pantry/pkg/export"
)

// footerCategoryLimit is how many categories the footer links to.
const footerCategoryLimit = 4

// User-facing messages.
const (
	msgDeleted       = "Recipe deleted successfully!"
	msgDeleteFailed  = "Error deleting recipe."
	msgAdded         = "Recipe added successfully!"
	msgAddFailed     = "Error adding recipe. Please try again."
	msgUpdated       = "Recipe updated successfully!"
	msgUpdateFailed  = "Error updating recipe. Please try again."
	msgNoID          = "No recipe ID specified."
	msgRecipeMissing = "Recipe not found."
)

type chrome struct {
	Title            string
	Active           string
	Stats            core.Stats
	FooterCategories []string
	Year             int
}

type indexPage struct {
	chrome
	Search  string
	Recipes []core.Recipe
	Success string
	Error   string
}

type formPage struct {
	chrome
	Editing    bool
	ShowForm   bool
	Action     string
	Recipe     *core.Recipe
	Form       core.Draft
	Categories []string
	Errors     []string
	Success    string
}

type selfCheckPage struct {
	chrome
	Report *selfcheck.Report
	Error  string
}

func (s *Server) chrome(r *http.Request, title, active string) chrome {
	categories := s.store.Categories(r.Context())
	if len(categories) > footerCategoryLimit {
		categories = categories[:footerCategoryLimit]
	}
	return chrome{
		Title:            title,
		Active:           active,
		Stats:            s.store.Stats(r.Context()),
		FooterCategories: categories,
		Year:             s.now().Year(),
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := s.pages[page].Execute(&buf, data); err != nil {
		s.logger.Error("failed to render page", "page", page, "id", RequestID(r.Context()), "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// statusFor maps a store error to an HTTP status.
func statusFor(err error) int {
	var verr *core.ValidationError
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// parseID follows the lenient form semantics: anything unparsable is id 0,
// which matches no recipe.
func parseID(raw string) int {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return id
}

func draftFromForm(r *http.Request) core.Draft {
	return core.Draft{
		Name:         r.PostFormValue("name"),
		Ingredients:  r.PostFormValue("ingredients"),
		Instructions: r.PostFormValue("instructions"),
		Category:     r.PostFormValue("category"),
	}.Normalize()
}

func (s *Server) indexPage(r *http.Request) indexPage {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	return indexPage{
		Search:  search,
		Recipes: s.store.Search(r.Context(), search),
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := s.indexPage(r)
	page.chrome = s.chrome(r, "My Recipe Collection", "home")
	s.render(w, r, http.StatusOK, "index.tmpl", page)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	var success, failure string

	if err := r.ParseForm(); err != nil {
		status, failure = http.StatusBadRequest, msgDeleteFailed
	} else if r.PostForm.Has("delete_recipe") && r.PostForm.Has("recipe_id") {
		id := parseID(r.PostForm.Get("recipe_id"))
		if err := s.store.Delete(r.Context(), id); err != nil {
			s.logger.Warn("delete failed", "recipe", id, "id", RequestID(r.Context()), "error", err)
			status, failure = statusFor(err), msgDeleteFailed
		} else {
			success = msgDeleted
		}
	}

	page := s.indexPage(r)
	page.Success, page.Error = success, failure
	page.chrome = s.chrome(r, "My Recipe Collection", "home")
	s.render(w, r, status, "index.tmpl", page)
}

func (s *Server) newForm(r *http.Request, editing bool) formPage {
	title, active := "Add New Recipe", "add"
	if editing {
		title, active = "Edit Recipe", ""
	}
	return formPage{
		chrome:     s.chrome(r, title, active),
		Editing:    editing,
		ShowForm:   true,
		Action:     "/add",
		Categories: s.store.Categories(r.Context()),
	}
}

func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "form.tmpl", s.newForm(r, false))
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	draft := draftFromForm(r)

	status := http.StatusOK
	var problems []string
	var success string

	if err := core.Validate(draft); err != nil {
		status, problems = statusFor(err), validationProblems(err)
	} else if rec, err := s.store.Add(r.Context(), draft); err != nil {
		s.logger.Error("add failed", "id", RequestID(r.Context()), "error", err)
		status, problems = statusFor(err), []string{msgAddFailed}
	} else {
		s.logger.Info("recipe added", "recipe", rec.ID, "id", RequestID(r.Context()))
		success, draft = msgAdded, core.Draft{}
	}

	page := s.newForm(r, false)
	page.Form, page.Errors, page.Success = draft, problems, success
	s.render(w, r, status, "form.tmpl", page)
}

// lookup resolves the ?id= parameter of the edit page.
func (s *Server) lookup(r *http.Request) (core.Recipe, int, string) {
	raw := r.URL.Query().Get("id")
	if strings.TrimSpace(raw) == "" {
		return core.Recipe{}, http.StatusBadRequest, msgNoID
	}
	rec, err := s.store.Get(r.Context(), parseID(raw))
	if err != nil {
		return core.Recipe{}, statusFor(err), msgRecipeMissing
	}
	return rec, http.StatusOK, ""
}

func (s *Server) editForm(r *http.Request, rec *core.Recipe) formPage {
	page := s.newForm(r, true)
	page.Recipe = rec
	page.ShowForm = rec != nil
	if rec != nil {
		page.Action = "/edit?id=" + strconv.Itoa(rec.ID)
		page.Form = rec.Draft()
		page.keepCategory()
	}
	return page
}

// keepCategory lists the form's category even when it is no longer offered,
// so an unchanged edit resubmits it.
func (p *formPage) keepCategory() {
	c := p.Form.Category
	if c == "" || slices.Contains(p.Categories, c) {
		return
	}
	p.Categories = append(slices.Clone(p.Categories), c)
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	rec, status, msg := s.lookup(r)
	if msg != "" {
		page := s.editForm(r, nil)
		page.Errors = []string{msg}
		s.render(w, r, status, "form.tmpl", page)
		return
	}
	s.render(w, r, http.StatusOK, "form.tmpl", s.editForm(r, &rec))
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	rec, status, msg := s.lookup(r)
	if msg != "" {
		page := s.editForm(r, nil)
		page.Errors = []string{msg}
		s.render(w, r, status, "form.tmpl", page)
		return
	}

	draft := draftFromForm(r)
	if err := core.Validate(draft); err != nil {
		page := s.editForm(r, &rec)
		page.Form, page.Errors = draft, validationProblems(err)
		page.keepCategory()
		s.render(w, r, statusFor(err), "form.tmpl", page)
		return
	}

	updated, err := s.store.Update(r.Context(), rec.ID, draft)
	if err != nil {
		s.logger.Error("update failed", "recipe", rec.ID, "id", RequestID(r.Context()), "error", err)
		page := s.editForm(r, &rec)
		page.Form = draft
		page.keepCategory()
		if errors.Is(err, core.ErrNotFound) {
			page.Errors = []string{msgRecipeMissing}
		} else {
			page.Errors = []string{msgUpdateFailed}
		}
		s.render(w, r, statusFor(err), "form.tmpl", page)
		return
	}

	s.logger.Info("recipe updated", "recipe", updated.ID, "id", RequestID(r.Context()))
	page := s.editForm(r, &updated)
	page.Success = msgUpdated
	s.render(w, r, http.StatusOK, "form.tmpl", page)
}

func validationProblems(err error) []string {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		return verr.Problems
	}
	return []string{err.Error()}
}

func (s *Server) handleSelfCheck(w http.ResponseWriter, r *http.Request) {
	page := selfCheckPage{chrome: s.chrome(r, "Self-Check", "")}
	status := http.StatusOK

	report, err := s.selfCheck(r.Context())
	if err != nil {
		s.logger.Error("self-check failed", "id", RequestID(r.Context()), "error", err)
		page.Error = err.Error()
		status = http.StatusInternalServerError
	}
	if len(report.Results) > 0 {
		page.Report = &report
	}
	s.render(w, r, status, "selfcheck.tmpl", page)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("format")
	if name == "" {
		name = string(export.CSV)
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, s.store.Load(r.Context())); err != nil {
		s.logger.Error("export failed", "format", format, "id", RequestID(r.Context()), "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+format.Filename()+`"`)
	_, _ = buf.WriteTo(w)
}

type stateResponse struct {
	Store      any    `json:"store"`
	Repository any    `json:"repository,omitempty"`
	Component  string `json:"component,omitempty"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	resp := stateResponse{Store: s.store.State()}
	repo := s.store.Repository()
	if intro, ok := repo.(introspection.Introspectable); ok {
		resp.Repository = intro.State()
	}
	if comp, ok := repo.(introspection.Component); ok {
		resp.Component = comp.ComponentType()
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(resp) // nolint:errchkjson
}
