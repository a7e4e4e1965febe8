package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nebulavault/server/internal/api/middleware"
	"github.com/nebulavault/server/internal/repositories"
	"github.com/nebulavault/server/internal/services"
	"github.com/nebulavault/server/internal/utils"
)

// GET /threads
func ListThreads(w http.ResponseWriter, r *http.Request) {
	forum := services.NewForum(repositories.DB)
	threads, err := forum.ListThreads()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.OK(w, http.StatusOK, "", threads)
}

// GET /thread/{id}
func GetThread(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	forum := services.NewForum(repositories.DB)
	thread, replies, err := forum.GetThread(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.OK(w, http.StatusOK, "", map[string]any{
		"thread":  thread,
		"replies": replies,
	})
}

// POST /thread/{id}
// Posts a reply to the thread.
func AddReply(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var input struct {
		Content string `json:"content"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	forum := services.NewForum(repositories.DB)
	reply, err := forum.AddReply(middleware.Identity(r), id, input.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.OK(w, http.StatusCreated, "Reply posted", reply)
}

// POST /create_thread
func CreateThread(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	forum := services.NewForum(repositories.DB)
	thread, err := forum.CreateThread(middleware.Identity(r), input.Title, input.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.OK(w, http.StatusCreated, "Thread created", thread)
}

// POST /edit_thread/{id}
func EditThread(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var input struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	forum := services.NewForum(repositories.DB)
	thread, err := forum.UpdateThread(middleware.Identity(r), id, input.Title, input.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.OK(w, http.StatusOK, "Changes saved", thread)
}

// GET /delete_thread/{id}
func DeleteThread(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	forum := services.NewForum(repositories.DB)
	if err := forum.DeleteThread(middleware.Identity(r), id); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.OK(w, http.StatusOK, "Thread deleted", nil)
}

// GET /delete_reply/{id}
func DeleteReply(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	forum := services.NewForum(repositories.DB)
	threadID, err := forum.DeleteReply(middleware.Identity(r), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.OK(w, http.StatusOK, "Reply deleted", map[string]any{"threadId": threadID})
}
