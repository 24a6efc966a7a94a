package store

import (
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/types"
	"gorm.io/gorm"
)

// Rank expressions order the enum columns by business meaning instead of
// lexically: High before Medium before Low, Pending before In Progress
// before Done.
const (
	priorityRank = "CASE priority WHEN 'High' THEN 0 WHEN 'Medium' THEN 1 WHEN 'Low' THEN 2 ELSE 3 END"
	statusRank   = "CASE status WHEN 'Pending' THEN 0 WHEN 'In Progress' THEN 1 WHEN 'Done' THEN 2 ELSE 3 END"
)

// TaskQuery is the filter/sort/page input for task listings. Zero values
// mean "no filter". AssigneeID is resolved by the caller from the verified
// identity, never taken from the request.
type TaskQuery struct {
	ProjectID  uint
	Status     models.TaskStatus
	Priority   models.TaskPriority
	AssigneeID uint
	Sort       string
	Page       int
	Limit      int
}

func (s *Store) CreateTask(task *models.Task) error {
	return s.db.Create(task).Error
}

// GetTask loads a task with its assignee, project, and comment thread.
// Related records are embedded at read time only; writes carry references.
func (s *Store) GetTask(id uint) (*models.Task, error) {
	var task models.Task
	err := s.db.
		Preload("AssignedTo").
		Preload("Project").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at DESC")
		}).
		Preload("Comments.User").
		First(&task, id).Error
	if err != nil {
		return nil, translate(err)
	}

	return &task, nil
}

func (s *Store) ListTasks(q TaskQuery) ([]models.Task, types.Pagination, error) {
	page, limit := normalizePage(q.Page, q.Limit)

	base := s.db.Model(&models.Task{})

	if q.ProjectID != 0 {
		base = base.Where("project_id = ?", q.ProjectID)
	}
	if q.Status != "" {
		base = base.Where("status = ?", q.Status)
	}
	if q.Priority != "" {
		base = base.Where("priority = ?", q.Priority)
	}
	if q.AssigneeID != 0 {
		base = base.Where("assigned_to_id = ?", q.AssigneeID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, types.Pagination{}, err
	}

	query := base.Session(&gorm.Session{}).
		Preload("AssignedTo").
		Preload("Project")

	switch q.Sort {
	case "priority":
		query = query.Order(priorityRank).Order("created_at DESC")
	case "status":
		query = query.Order(statusRank).Order("created_at DESC")
	case "createdAt":
		query = query.Order("created_at DESC")
	default:
		if q.ProjectID != 0 {
			// Project boards default to urgency order.
			query = query.Order(priorityRank).Order("created_at DESC")
		} else {
			query = query.Order("created_at DESC")
		}
	}

	var tasks []models.Task
	err := query.
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, types.Pagination{}, err
	}

	return tasks, paginate(total, page, limit), nil
}

// UpdateTaskFields applies the given column updates. The caller is expected
// to have narrowed updates to the actor's permitted field mask already.
func (s *Store) UpdateTaskFields(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return s.db.Model(&models.Task{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteTaskCascade removes a task and its comments in one transaction.
func (s *Store) DeleteTaskCascade(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Task{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		return nil
	})
}
