package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"inkwell/app/middleware"
	"inkwell/app/services"

	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for comments. Comments render
// inside the post detail page, so there are no templates here; web
// responses are redirects back to the parent post.
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// Index handles listing all comments for a post (API only)
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["postId"])
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	comments, err := cc.commentService.ListForPost(postID)
	if err != nil {
		sendError(w, r, "Failed to fetch comments: "+err.Error(), statusFor(err))
		return
	}
	sendJSON(w, http.StatusOK, comments)
}

// Create handles adding a comment to a post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["postId"])
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var content string
	if isAPIRequest(r) {
		var body struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		content = body.Content
	} else {
		if err := r.ParseForm(); err != nil {
			sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		content = r.FormValue("content")
	}

	actor := middleware.ActorFrom(r.Context())
	comment, err := cc.commentService.Add(actor, postID, content)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) && !isAPIRequest(r) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		sendError(w, r, err.Error(), statusFor(err))
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, http.StatusCreated, comment)
	} else {
		http.Redirect(w, r, "/post/"+comment.Post.Slug, http.StatusSeeOther)
	}
}

// Delete handles deleting a comment. On the web side a policy denial is
// non-fatal: the visitor is redirected back to the parent post either way,
// only the message differs.
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	actor := middleware.ActorFrom(r.Context())
	post, err := cc.commentService.Delete(actor, id)

	if isAPIRequest(r) {
		if err != nil {
			sendError(w, r, err.Error(), statusFor(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	switch {
	case errors.Is(err, services.ErrForbidden) && post != nil:
		http.Redirect(w, r, "/post/"+post.Slug+"?message=not+allowed", http.StatusSeeOther)
	case err != nil:
		sendError(w, r, err.Error(), statusFor(err))
	case post != nil:
		http.Redirect(w, r, "/post/"+post.Slug+"?message=comment+deleted", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Count reports the number of comments on a post as JSON
func (cc *CommentController) Count(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["postId"])
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	count, err := cc.commentService.Count(postID)
	if err != nil {
		sendJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	sendJSON(w, http.StatusOK, map[string]int{"comment_count": count})
}
