package service

import (
	"context"
	"errors"
	"strings"
	"time"

	commoncrypto "github.com/ardanovsky/todo-service/internal/common/crypto"
	commonerrors "github.com/ardanovsky/todo-service/internal/common/errors"
	"github.com/ardanovsky/todo-service/internal/common/logger"
	"github.com/ardanovsky/todo-service/internal/todo/domain"
	todorepo "github.com/ardanovsky/todo-service/internal/todo/repository"
)

// TodoService applies validation and the completedAt invariant on top of the
// owner-scoped repository. The ownerID argument always comes from the guard;
// handlers never accept one from the request.
type TodoService struct {
	repo  todorepo.Repository
	idGen commoncrypto.IDGenerator
	now   func() time.Time
	log   *logger.Logger
}

func NewTodoService(repo todorepo.Repository, idGen commoncrypto.IDGenerator, log *logger.Logger) *TodoService {
	return &TodoService{
		repo:  repo,
		idGen: idGen,
		now:   time.Now,
		log:   log,
	}
}

func (s *TodoService) Create(ctx context.Context, ownerID, text string) (domain.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Todo{}, commonerrors.ErrEmptyTodoText
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return domain.Todo{}, commonerrors.ErrStoreFailure.WithCause(err)
	}

	todo := domain.Todo{
		ID:        domain.ID(id),
		OwnerID:   ownerID,
		Text:      text,
		Completed: false,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, todo); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"owner_id": ownerID,
			"action":   "todo_create_failed",
		}).Errorf("todo create failed: %v", err)
		return domain.Todo{}, commonerrors.ErrStoreFailure.WithCause(err)
	}

	return todo, nil
}

func (s *TodoService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	todos, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"owner_id": ownerID,
			"action":   "todo_list_failed",
		}).Errorf("todo list failed: %v", err)
		return nil, commonerrors.ErrStoreFailure.WithCause(err)
	}
	return todos, nil
}

func (s *TodoService) FindByIDForOwner(ctx context.Context, ownerID string, id domain.ID) (domain.Todo, error) {
	todo, err := s.repo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return domain.Todo{}, s.mapNotFound(ctx, ownerID, "todo_find_failed", err)
	}
	return todo, nil
}

// Update applies a patch in one atomic store write. A patch setting
// completed=true stamps completedAt with the current time; completed=false
// clears it; a patch without completed leaves both untouched.
func (s *TodoService) Update(ctx context.Context, ownerID string, id domain.ID, patch domain.Patch) (domain.Todo, error) {
	if patch.Text != nil {
		trimmed := strings.TrimSpace(*patch.Text)
		if trimmed == "" {
			return domain.Todo{}, commonerrors.ErrEmptyTodoText
		}
		patch.Text = &trimmed
	}

	completedAt := s.now().UnixMilli()

	todo, err := s.repo.UpdateByIDForOwner(ctx, ownerID, id, patch, completedAt)
	if err != nil {
		return domain.Todo{}, s.mapNotFound(ctx, ownerID, "todo_update_failed", err)
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, ownerID string, id domain.ID) (domain.Todo, error) {
	todo, err := s.repo.DeleteByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return domain.Todo{}, s.mapNotFound(ctx, ownerID, "todo_delete_failed", err)
	}
	return todo, nil
}

func (s *TodoService) mapNotFound(ctx context.Context, ownerID, action string, err error) error {
	if errors.Is(err, commonerrors.ErrTodoNotFound) {
		return commonerrors.ErrTodoNotFound
	}
	s.log.WithFields(ctx, logger.Fields{
		"owner_id": ownerID,
		"action":   action,
	}).Errorf("todo operation failed: %v", err)
	return commonerrors.ErrStoreFailure.WithCause(err)
}
