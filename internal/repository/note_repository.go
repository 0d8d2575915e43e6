package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"notely/internal/model"
)

// NoteRepository defines note persistence operations. Reads preload the owner
// for response composition; the list variants apply ownership scoping in the
// query itself.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	Update(ctx context.Context, note *model.Note) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Note, error)
	List(ctx context.Context) ([]model.Note, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Note, error)
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository builds a GORM-backed repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return err
	}
	// Reload with owner so the response carries it.
	return r.db.WithContext(ctx).Preload("Owner").First(note, note.ID).Error
}

func (r *noteRepository) Update(ctx context.Context, note *model.Note) error {
	// Owner is read-only; never write through the association.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(note).Error
}

func (r *noteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Note{}, id).Error
}

func (r *noteRepository) FindByID(ctx context.Context, id uint) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).Preload("Owner").First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) List(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	if err := r.db.WithContext(ctx).Preload("Owner").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Note, error) {
	var notes []model.Note
	if err := r.db.WithContext(ctx).Preload("Owner").Where("user_id = ?", ownerID).Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}
