// Package policy holds the authorization rules mapping (actor, action,
// resource) to a decision. Route-level admin gates live in the middleware;
// the per-resource rules that need the resource itself live here.
package policy

import "github.com/taskhive-dev/taskhive/internal/models"

// Actor is the verified caller identity a decision is made against.
type Actor struct {
	ID   uint
	Role models.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// TaskUpdateScope is the field mask applied to a task update. A team member
// assigned to the task may change status and nothing else; other submitted
// fields are ignored rather than rejected.
type TaskUpdateScope int

const (
	TaskUpdateDenied TaskUpdateScope = iota
	TaskUpdateStatusOnly
	TaskUpdateAll
)

// TaskUpdateScopeFor decides which fields an actor may update on a task.
func TaskUpdateScopeFor(actor Actor, task *models.Task) TaskUpdateScope {
	switch {
	case actor.IsAdmin():
		return TaskUpdateAll
	case actor.ID == task.AssignedToID:
		return TaskUpdateStatusOnly
	default:
		return TaskUpdateDenied
	}
}

// CanMutateComment reports whether the actor may update or delete a comment.
// Only the comment's author or an admin may.
func CanMutateComment(actor Actor, comment *models.Comment) bool {
	return actor.IsAdmin() || actor.ID == comment.UserID
}

// CanManageProjects reports whether the actor may create, update, or delete
// projects. Reads are open to any authenticated actor.
func CanManageProjects(actor Actor) bool {
	return actor.IsAdmin()
}

// CanManageTasks reports whether the actor may create or delete tasks.
func CanManageTasks(actor Actor) bool {
	return actor.IsAdmin()
}

// CanListUsers reports whether the actor may enumerate user accounts.
func CanListUsers(actor Actor) bool {
	return actor.IsAdmin()
}
