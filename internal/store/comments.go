package store

import (
	"github.com/taskhive-dev/taskhive/internal/models"
)

func (s *Store) CreateComment(comment *models.Comment) error {
	if err := s.db.Create(comment).Error; err != nil {
		return err
	}

	// Reload with the author so responses can embed the name.
	return s.db.Preload("User").First(comment, comment.ID).Error
}

func (s *Store) GetComment(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.Preload("User").First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}

	return &comment, nil
}

func (s *Store) ListTaskComments(taskID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (s *Store) UpdateCommentText(id uint, text string) (*models.Comment, error) {
	if err := s.db.Model(&models.Comment{}).Where("id = ?", id).Update("text", text).Error; err != nil {
		return nil, err
	}

	return s.GetComment(id)
}

func (s *Store) DeleteComment(id uint) error {
	result := s.db.Delete(&models.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
