package service

import (
	"context"
	"log"

	apperrors "taskflow/internal/errors"
	"taskflow/internal/model"
	"taskflow/internal/tasks"
)

type TaskService struct {
	list *tasks.List
}

type CreateTaskInput struct {
	Text string `json:"text"`
}

func NewTaskService(list *tasks.List) *TaskService {
	return &TaskService{list: list}
}

func (s *TaskService) List() []model.Task {
	return s.list.List()
}

func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*model.Task, *apperrors.APIError) {
	task, err := s.list.Add(ctx, input.Text)
	if err != nil {
		log.Printf("persist tasks: %v", err)
	}
	if task == nil {
		return nil, apperrors.BadRequest("invalid_task", "text is required")
	}
	return task, nil
}

func (s *TaskService) Toggle(ctx context.Context, id string) (*model.Task, *apperrors.APIError) {
	task, ok, err := s.list.Toggle(ctx, id)
	if err != nil {
		log.Printf("persist tasks: %v", err)
	}
	if !ok {
		return nil, taskNotFound()
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) *apperrors.APIError {
	ok, err := s.list.Delete(ctx, id)
	if err != nil {
		log.Printf("persist tasks: %v", err)
	}
	if !ok {
		return taskNotFound()
	}
	return nil
}

func (s *TaskService) ClearCompleted(ctx context.Context) int {
	removed, err := s.list.ClearCompleted(ctx)
	if err != nil {
		log.Printf("persist tasks: %v", err)
	}
	return removed
}

func taskNotFound() *apperrors.APIError {
	return apperrors.NotFound("task_not_found", "task not found")
}
