// Task service - follow-up items spun off protocol decisions
package service

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/protokollhq/protokoll/pkg/db"
	"github.com/protokollhq/protokoll/pkg/event"
	"github.com/protokollhq/protokoll/pkg/models"
	"github.com/protokollhq/protokoll/pkg/utils"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewTaskService(database *gorm.DB) *TaskService {
	return &TaskService{
		db:     database,
		logger: utils.GetLogger(),
	}
}

func (s *TaskService) Create(orgID string, req *models.CreateTaskRequest) (*db.Task, error) {
	task := &db.Task{
		ID:           uuid.New().String(),
		OrgID:        orgID,
		ProtocolID:   req.ProtocolID,
		AgendaItemID: req.AgendaItemID,
		Title:        req.Title,
		Description:  req.Description,
		AssigneeID:   req.AssigneeID,
		Status:       db.TaskStatusOpen,
		DueDate:      req.DueDate,
	}
	if err := s.db.Create(task).Error; err != nil {
		return nil, err
	}
	event.Emit(event.TaskCreatedEvent{TaskID: task.ID, OrgID: orgID})
	return task, nil
}

func (s *TaskService) Get(orgID, id string) (*db.Task, error) {
	var task db.Task
	err := s.db.First(&task, "id = ? AND org_id = ?", id, orgID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// List returns tasks for an org, optionally filtered by protocol or status.
func (s *TaskService) List(orgID, protocolID, status string) ([]db.Task, error) {
	query := s.db.Where("org_id = ?", orgID)
	if protocolID != "" {
		query = query.Where("protocol_id = ?", protocolID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var tasks []db.Task
	err := query.Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (s *TaskService) Update(orgID, id string, req *models.UpdateTaskRequest) (*db.Task, error) {
	task, err := s.Get(orgID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.AssigneeID != nil {
		updates["assignee_id"] = *req.AssigneeID
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.Status != "" {
		switch req.Status {
		case db.TaskStatusOpen, db.TaskStatusInProgress, db.TaskStatusDone:
			updates["status"] = req.Status
		default:
			return nil, errors.New("invalid task status: " + req.Status)
		}
	}
	if len(updates) > 0 {
		if err := s.db.Model(task).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	event.Emit(event.TaskUpdatedEvent{TaskID: id, OrgID: orgID})
	return s.Get(orgID, id)
}

func (s *TaskService) Delete(orgID, id string) error {
	result := s.db.Where("id = ? AND org_id = ?", id, orgID).Delete(&db.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	event.Emit(event.TaskDeletedEvent{TaskID: id, OrgID: orgID})
	return nil
}
