package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"notely/internal/authz"
	"notely/internal/cache"
	apperrors "notely/internal/errors"
	"notely/internal/model"
	"notely/internal/repository"
)

const noteCacheTTL = 5 * time.Minute

// NoteUpdate carries the mutable note fields for partial updates. A nil or
// empty-string field is treated as not supplied and leaves the stored value
// untouched; a field cannot be cleared to empty through this path.
type NoteUpdate struct {
	Title       *string
	Description *string
}

// NoteService handles note CRUD with ownership enforcement.
type NoteService interface {
	List(ctx context.Context, caller *model.User) ([]model.Note, error)
	Create(ctx context.Context, caller *model.User, title, description string) (*model.Note, error)
	Get(ctx context.Context, caller *model.User, id uint) (*model.Note, error)
	Update(ctx context.Context, caller *model.User, id uint, update NoteUpdate) (*model.Note, error)
	Delete(ctx context.Context, caller *model.User, id uint) error
}

type noteService struct {
	repo  repository.NoteRepository
	cache *cache.Client
}

// NewNoteService creates a new note service.
func NewNoteService(repo repository.NoteRepository, cache *cache.Client) NoteService {
	return &noteService{repo: repo, cache: cache}
}

func noteCacheKey(id uint) string {
	return fmt.Sprintf("note:%d", id)
}

// List returns every note for admins and only owned notes for users. The
// scoping happens in the query, so other users' notes never load at all.
func (s *noteService) List(ctx context.Context, caller *model.User) ([]model.Note, error) {
	if authz.SeesAllNotes(caller.Role) {
		return s.repo.List(ctx)
	}
	return s.repo.ListByOwner(ctx, caller.ID)
}

// Create stores a new note owned by the caller.
func (s *noteService) Create(ctx context.Context, caller *model.User, title, description string) (*model.Note, error) {
	note := &model.Note{
		Title:       title,
		Description: description,
		UserID:      caller.ID,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// Get returns the note when it exists and the caller may see it.
func (s *noteService) Get(ctx context.Context, caller *model.User, id uint) (*model.Note, error) {
	note, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccess(caller.Role, caller.ID, note.UserID) {
		return nil, apperrors.ErrForbidden
	}
	return note, nil
}

// Update applies the supplied fields and refreshes the updated timestamp.
func (s *noteService) Update(ctx context.Context, caller *model.User, id uint, update NoteUpdate) (*model.Note, error) {
	note, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccess(caller.Role, caller.ID, note.UserID) {
		return nil, apperrors.ErrForbidden
	}

	if update.Title != nil && *update.Title != "" {
		note.Title = *update.Title
	}
	if update.Description != nil && *update.Description != "" {
		note.Description = *update.Description
	}

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	_ = s.cache.Delete(ctx, noteCacheKey(id))
	return note, nil
}

// Delete removes the note. Subsequent lookups on the id report NotFound.
func (s *noteService) Delete(ctx context.Context, caller *model.User, id uint) error {
	note, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanAccess(caller.Role, caller.ID, note.UserID) {
		return apperrors.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	_ = s.cache.Delete(ctx, noteCacheKey(id))
	return nil
}

// load fetches a note through the read cache, mapping a missing row to
// ErrNoteNotFound.
func (s *noteService) load(ctx context.Context, id uint) (*model.Note, error) {
	if data, _ := s.cache.Get(ctx, noteCacheKey(id)); data != nil {
		var cached model.Note
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(note); err == nil {
		_ = s.cache.Set(ctx, noteCacheKey(id), payload, noteCacheTTL)
	}
	return note, nil
}
