// Package policy holds the authorization rules for posts and comments as a
// single pure decision function. Every workflow mutation asks Can before it
// touches a store; nothing here performs I/O or carries state.
package policy

import "inkwell/app/models"

// Actor is the identity performing a request. The zero value is an
// anonymous visitor.
type Actor struct {
	ID            int
	IsStaff       bool
	Authenticated bool
}

// Action enumerates the operations gated by the policy.
type Action int

const (
	CreatePost Action = iota
	UpdatePost
	DeletePost
	ReadPost
	CreateComment
	DeleteComment
)

// Can decides whether actor may perform action on resource.
//
// Posts may only be updated or deleted by their author; staff get no
// override there. Comments may be deleted by their author or by staff.
// Creating anything requires an authenticated actor. Reads are open to
// everyone, drafts included.
func Can(actor Actor, action Action, resource any) bool {
	switch action {
	case CreatePost, CreateComment:
		return actor.Authenticated
	case ReadPost:
		return true
	case UpdatePost, DeletePost:
		post, ok := resource.(*models.Post)
		if !ok || post == nil {
			return false
		}
		return actor.Authenticated && actor.ID == post.AuthorID
	case DeleteComment:
		comment, ok := resource.(*models.Comment)
		if !ok || comment == nil {
			return false
		}
		return actor.Authenticated && (actor.ID == comment.AuthorID || actor.IsStaff)
	}
	return false
}
