package service

import "github.com/iliyamo/cinepedia/internal/model"

// Action names something a user may try to do to a movie or comment.
type Action string

const (
	ActionEdit    Action = "edit"
	ActionDelete  Action = "delete"
	ActionComment Action = "comment"
)

// Decision is the result of a policy check.  Reason is empty when Allowed.
type Decision struct {
	Allowed bool
	Reason  string
}

// Err converts a denial into a *ForbiddenError and an allow into nil.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &ForbiddenError{Reason: d.Reason}
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// Denial reasons.
const (
	ReasonEditNotOwner      = "You can only edit your own movies."
	ReasonDeleteNotOwner    = "You can only delete your own movies."
	ReasonCommentOwnMovie   = "You cannot comment on your own movie."
	ReasonDeleteNotAuthor   = "You can only delete your own comments."
	reasonUnsupportedAction = "This action is not allowed."
)

// AuthorizeMovie decides whether actorID may perform action on m.  Only the
// owner edits or deletes a movie; anyone except the owner may comment.
func AuthorizeMovie(action Action, m *model.Movie, actorID uint64) Decision {
	if m == nil {
		return deny(reasonUnsupportedAction)
	}
	switch action {
	case ActionEdit:
		if m.IsOwnedBy(actorID) {
			return allow()
		}
		return deny(ReasonEditNotOwner)
	case ActionDelete:
		if m.IsOwnedBy(actorID) {
			return allow()
		}
		return deny(ReasonDeleteNotOwner)
	case ActionComment:
		if m.IsOwnedBy(actorID) {
			return deny(ReasonCommentOwnMovie)
		}
		return allow()
	}
	return deny(reasonUnsupportedAction)
}

// AuthorizeComment decides whether actorID may perform action on c.  Only
// deletion is defined, and only the author may do it; a movie's owner has
// no say over comments left on it.
func AuthorizeComment(action Action, c *model.Comment, actorID uint64) Decision {
	if c == nil || action != ActionDelete {
		return deny(reasonUnsupportedAction)
	}
	if c.AuthorID == actorID {
		return allow()
	}
	return deny(ReasonDeleteNotAuthor)
}
