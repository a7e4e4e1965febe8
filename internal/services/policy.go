package services

import "github.com/nebulavault/server/internal/models"

// Authorization policy. Pure allow/deny checks; every mutating service
// operation consults the relevant one before touching the store.

// CanMutateThread allows edit/delete only to the thread's author. There
// is no moderator override.
func CanMutateThread(identity string, thread *models.Thread) bool {
	return identity != "" && identity == thread.Author
}

// CanMutateReply allows delete only to the reply's author.
func CanMutateReply(identity string, reply *models.Reply) bool {
	return identity != "" && identity == reply.Author
}

// CanMutateCatalog allows machine create/update/delete only to admins.
func CanMutateCatalog(user *models.User) bool {
	return user != nil && user.Role == models.RoleAdmin
}
