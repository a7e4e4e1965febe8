package services

import (
	"errors"
	"strings"

	"github.com/nebulavault/server/internal/models"
	"gorm.io/gorm"
)

// Forum handles thread and reply operations.
type Forum struct {
	db *gorm.DB
}

func NewForum(db *gorm.DB) *Forum {
	return &Forum{db: db}
}

// ListThreads returns every thread annotated with its live reply count,
// newest first.
func (s *Forum) ListThreads() ([]models.ThreadSummary, error) {
	var summaries []models.ThreadSummary
	err := s.db.Model(&models.Thread{}).
		Select("threads.*, COUNT(replies.id) AS reply_count").
		Joins("LEFT JOIN replies ON replies.thread_id = threads.id").
		Group("threads.id").
		Order("threads.id DESC").
		Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// CreateThread persists a new thread authored by identity.
func (s *Forum) CreateThread(identity, title, content string) (*models.Thread, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return nil, validationErr("title", "must not be empty")
	}
	if content == "" {
		return nil, validationErr("content", "must not be empty")
	}

	thread := models.Thread{Title: title, Content: content, Author: identity}
	if err := s.db.Create(&thread).Error; err != nil {
		return nil, err
	}
	return &thread, nil
}

// GetThread returns a thread and its replies in posting order.
func (s *Forum) GetThread(id uint) (*models.Thread, []models.Reply, error) {
	var thread models.Thread
	if err := s.db.First(&thread, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var replies []models.Reply
	if err := s.db.Where("thread_id = ?", id).Order("id ASC").Find(&replies).Error; err != nil {
		return nil, nil, err
	}
	return &thread, replies, nil
}

// UpdateThread edits a thread's title and content in place. Only the
// author may edit; denial is reported as ErrNotFound. The creation
// timestamp is not touched.
func (s *Forum) UpdateThread(identity string, id uint, title, content string) (*models.Thread, error) {
	var thread models.Thread
	if err := s.db.First(&thread, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !CanMutateThread(identity, &thread) {
		return nil, ErrNotFound
	}

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return nil, validationErr("title", "must not be empty")
	}
	if content == "" {
		return nil, validationErr("content", "must not be empty")
	}

	updates := map[string]any{"title": title, "content": content}
	if err := s.db.Model(&thread).Updates(updates).Error; err != nil {
		return nil, err
	}
	thread.Title = title
	thread.Content = content
	return &thread, nil
}

// DeleteThread removes a thread and all of its replies as one atomic
// unit; a partial failure rolls back so no orphaned replies remain.
func (s *Forum) DeleteThread(identity string, id uint) error {
	var thread models.Thread
	if err := s.db.First(&thread, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !CanMutateThread(identity, &thread) {
		return ErrNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("thread_id = ?", id).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Thread{}, id).Error
	})
}

// AddReply posts a reply to an existing thread.
func (s *Forum) AddReply(identity string, threadID uint, content string) (*models.Reply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validationErr("content", "must not be empty")
	}

	var thread models.Thread
	if err := s.db.First(&thread, threadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reply := models.Reply{Content: content, Author: identity, ThreadID: threadID}
	if err := s.db.Create(&reply).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

// DeleteReply removes a reply. Only the author may delete; denial is
// reported as ErrNotFound. Returns the owning thread id so the caller
// can send the user back to the thread.
func (s *Forum) DeleteReply(identity string, id uint) (uint, error) {
	var reply models.Reply
	if err := s.db.First(&reply, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if !CanMutateReply(identity, &reply) {
		return 0, ErrNotFound
	}

	if err := s.db.Delete(&models.Reply{}, id).Error; err != nil {
		return 0, err
	}
	return reply.ThreadID, nil
}
