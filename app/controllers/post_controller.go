package controllers

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/policy"
	"inkwell/app/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
	templates   map[string]*template.Template
	pageSize    int
}

// NewPostController creates a new PostController. basePath locates the
// app/views directory; tests point it at a temp dir.
func NewPostController(postService *services.PostService, basePath string, pageSize int) *PostController {
	if pageSize < 1 {
		pageSize = services.DefaultPageSize
	}
	return &PostController{
		postService: postService,
		templates:   loadPostTemplates(basePath),
		pageSize:    pageSize,
	}
}

// loadPostTemplates loads and parses all post-related templates
func loadPostTemplates(basePath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	templates["index"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/posts/index.html"),
	))
	templates["show"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/posts/show.html"),
		filepath.Join(basePath, "app/views/shared/comments.html"),
	))
	templates["new"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/posts/new.html"),
	))
	templates["edit"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/posts/edit.html"),
	))
	return templates
}

// Index handles listing published posts, paginated
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	perPage := pc.pageSize
	if perPageStr := r.URL.Query().Get("per_page"); perPageStr != "" {
		if pp, err := strconv.Atoi(perPageStr); err == nil && pp > 0 {
			perPage = pp
		}
	}

	posts, err := pc.postService.ListPublished(page, perPage)
	if err != nil {
		sendError(w, r, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, http.StatusOK, map[string]interface{}{
			"posts": posts,
			"page":  page,
		})
		return
	}

	data := struct {
		Posts []*models.Post
		Page  int
		Actor policy.Actor
	}{
		Posts: posts,
		Page:  page,
		Actor: middleware.ActorFrom(r.Context()),
	}
	if err := pc.templates["index"].ExecuteTemplate(w, "layout", data); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Show handles displaying a single post by slug. Drafts resolve too; the
// listing is the only place status is filtered.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.GetBySlug(mux.Vars(r)["slug"])
	if err != nil {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, http.StatusOK, post)
		return
	}

	actor := middleware.ActorFrom(r.Context())
	data := struct {
		*models.Post
		Actor    policy.Actor
		CanEdit  bool
		Comments []*models.Comment
	}{
		Post:     post,
		Actor:    actor,
		CanEdit:  policy.Can(actor, policy.UpdatePost, post),
		Comments: post.Comments,
	}
	if err := pc.templates["show"].ExecuteTemplate(w, "layout", data); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// New displays the form for creating a new post
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	if !middleware.ActorFrom(r.Context()).Authenticated {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := pc.templates["new"].ExecuteTemplate(w, "layout", nil); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFrom(r.Context())

	var post models.Post
	if isAPIRequest(r) {
		if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
			sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		post.Title = r.FormValue("title")
		post.Content = r.FormValue("content")
		post.Image = r.FormValue("image")
		post.Status = models.Status(r.FormValue("status"))
	}

	if err := pc.postService.Create(actor, &post); err != nil {
		pc.mutationError(w, r, err)
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, http.StatusCreated, post)
	} else {
		http.Redirect(w, r, "/post/"+post.Slug, http.StatusSeeOther)
	}
}

// EditForm displays the form for editing an existing post
func (pc *PostController) EditForm(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.GetBySlug(mux.Vars(r)["slug"])
	if err != nil {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}

	actor := middleware.ActorFrom(r.Context())
	if !policy.Can(actor, policy.UpdatePost, post) {
		if !actor.Authenticated {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		sendError(w, r, "You are not the author of this post", http.StatusForbidden)
		return
	}

	if err := pc.templates["edit"].ExecuteTemplate(w, "layout", post); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Update handles editing an existing post
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFrom(r.Context())
	slug := mux.Vars(r)["slug"]

	var upd services.PostUpdate
	if isAPIRequest(r) {
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		upd.Title = r.FormValue("title")
		upd.Content = r.FormValue("content")
		upd.Image = r.FormValue("image")
		upd.Status = models.Status(r.FormValue("status"))
	}

	post, err := pc.postService.Update(actor, slug, upd)
	if err != nil {
		pc.mutationError(w, r, err)
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, http.StatusOK, post)
	} else {
		http.Redirect(w, r, "/post/"+post.Slug, http.StatusSeeOther)
	}
}

// Delete handles deleting a post; its comments go with it
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFrom(r.Context())

	if err := pc.postService.Delete(actor, mux.Vars(r)["slug"]); err != nil {
		pc.mutationError(w, r, err)
		return
	}

	if isAPIRequest(r) {
		w.WriteHeader(http.StatusNoContent)
	} else {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// mutationError reports a failed create/update/delete. On the web side an
// anonymous actor is sent to the login page instead of a hard 403.
func (pc *PostController) mutationError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrForbidden) && !isAPIRequest(r) {
		if !middleware.ActorFrom(r.Context()).Authenticated {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
	}
	sendError(w, r, err.Error(), statusFor(err))
}
