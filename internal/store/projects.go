package store

import (
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/types"
	"gorm.io/gorm"
)

func (s *Store) CreateProject(project *models.Project) error {
	return s.db.Create(project).Error
}

func (s *Store) GetProject(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.Preload("CreatedBy").First(&project, id).Error; err != nil {
		return nil, translate(err)
	}

	return &project, nil
}

func (s *Store) ListProjects(page, limit int) ([]models.Project, types.Pagination, error) {
	page, limit = normalizePage(page, limit)

	var total int64
	if err := s.db.Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, types.Pagination{}, err
	}

	var projects []models.Project
	err := s.db.Preload("CreatedBy").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&projects).Error
	if err != nil {
		return nil, types.Pagination{}, err
	}

	return projects, paginate(total, page, limit), nil
}

func (s *Store) UpdateProject(project *models.Project) error {
	return s.db.Save(project).Error
}

// DeleteProjectCascade removes a project together with every task under it
// and every comment under those tasks, in one transaction: a project delete
// never resolves with descendants left behind.
func (s *Store) DeleteProjectCascade(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint
		if err := tx.Model(&models.Task{}).
			Where("project_id = ?", id).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&models.Project{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		return nil
	})
}
