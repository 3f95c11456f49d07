package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	commoncrypto "github.com/ardanovsky/todo-service/internal/common/crypto"
	commonerrors "github.com/ardanovsky/todo-service/internal/common/errors"
	"github.com/ardanovsky/todo-service/internal/common/logger"
	"github.com/ardanovsky/todo-service/internal/todo/domain"
	"github.com/ardanovsky/todo-service/internal/todo/service"
)

// memTodoRepo mirrors the conditional-update semantics of the Postgres
// repository: patch application and completed_at derivation happen in one
// step under the lock.
type memTodoRepo struct {
	mu    sync.Mutex
	todos map[domain.ID]domain.Todo
}

func newMemTodoRepo() *memTodoRepo {
	return &memTodoRepo{todos: make(map[domain.ID]domain.Todo)}
}

func (m *memTodoRepo) Create(ctx context.Context, todo domain.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.todos[todo.ID] = todo
	return nil
}

func (m *memTodoRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Todo, 0)
	for _, t := range m.todos {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTodoRepo) FindByIDForOwner(ctx context.Context, ownerID string, id domain.ID) (domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.todos[id]
	if !ok || t.OwnerID != ownerID {
		return domain.Todo{}, commonerrors.ErrTodoNotFound
	}
	return t, nil
}

func (m *memTodoRepo) UpdateByIDForOwner(ctx context.Context, ownerID string, id domain.ID, patch domain.Patch, completedAt int64) (domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.todos[id]
	if !ok || t.OwnerID != ownerID {
		return domain.Todo{}, commonerrors.ErrTodoNotFound
	}
	if patch.Text != nil {
		t.Text = *patch.Text
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
		if *patch.Completed {
			ts := completedAt
			t.CompletedAt = &ts
		} else {
			t.CompletedAt = nil
		}
	}
	m.todos[id] = t
	return t, nil
}

func (m *memTodoRepo) DeleteByIDForOwner(ctx context.Context, ownerID string, id domain.ID) (domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.todos[id]
	if !ok || t.OwnerID != ownerID {
		return domain.Todo{}, commonerrors.ErrTodoNotFound
	}
	delete(m.todos, id)
	return t, nil
}

func newTestService(t *testing.T, repo *memTodoRepo) *service.TodoService {
	t.Helper()
	log, err := logger.New("", "test", "ERROR")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return service.NewTodoService(repo, commoncrypto.NewUUIDGenerator(), log)
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestCreate_Defaults(t *testing.T) {
	repo := newMemTodoRepo()
	svc := newTestService(t, repo)

	todo, err := svc.Create(context.Background(), "owner-a", "  buy milk  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if todo.Text != "buy milk" {
		t.Errorf("expected trimmed text, got %q", todo.Text)
	}
	if todo.Completed {
		t.Error("expected completed=false on creation")
	}
	if todo.CompletedAt != nil {
		t.Error("expected completedAt=nil on creation")
	}
	if todo.OwnerID != "owner-a" {
		t.Errorf("expected owner-a, got %s", todo.OwnerID)
	}
}

func TestCreate_EmptyText(t *testing.T) {
	testCases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"spaces only", "   "},
		{"tabs and newlines", "\t\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(t, newMemTodoRepo())

			_, err := svc.Create(context.Background(), "owner-a", tc.text)
			if !errors.Is(err, commonerrors.ErrEmptyTodoText) {
				t.Errorf("expected ErrEmptyTodoText, got %v", err)
			}
		})
	}
}

func TestUpdate_CompletedTransitions(t *testing.T) {
	repo := newMemTodoRepo()
	svc := newTestService(t, repo)

	todo, err := svc.Create(context.Background(), "owner-a", "buy milk")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), "owner-a", todo.ID, domain.Patch{Completed: boolPtr(true)})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.Completed {
		t.Error("expected completed=true")
	}
	if updated.CompletedAt == nil || *updated.CompletedAt <= 0 {
		t.Fatal("expected a concrete completedAt timestamp")
	}

	updated, err = svc.Update(context.Background(), "owner-a", todo.ID, domain.Patch{Completed: boolPtr(false)})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Completed {
		t.Error("expected completed=false")
	}
	if updated.CompletedAt != nil {
		t.Error("expected completedAt cleared when completed=false")
	}
}

func TestUpdate_TextOnlyPreservesCompletion(t *testing.T) {
	repo := newMemTodoRepo()
	svc := newTestService(t, repo)

	todo, err := svc.Create(context.Background(), "owner-a", "buy milk")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	completed, err := svc.Update(context.Background(), "owner-a", todo.ID, domain.Patch{Completed: boolPtr(true)})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	stamp := *completed.CompletedAt

	renamed, err := svc.Update(context.Background(), "owner-a", todo.ID, domain.Patch{Text: strPtr("buy bread")})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if renamed.Text != "buy bread" {
		t.Errorf("expected updated text, got %q", renamed.Text)
	}
	if !renamed.Completed {
		t.Error("text-only patch must not reset completed")
	}
	if renamed.CompletedAt == nil || *renamed.CompletedAt != stamp {
		t.Error("text-only patch must not recompute completedAt")
	}
}

func TestUpdate_EmptyTextRejected(t *testing.T) {
	repo := newMemTodoRepo()
	svc := newTestService(t, repo)

	todo, err := svc.Create(context.Background(), "owner-a", "buy milk")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.Update(context.Background(), "owner-a", todo.ID, domain.Patch{Text: strPtr("   ")})
	if !errors.Is(err, commonerrors.ErrEmptyTodoText) {
		t.Errorf("expected ErrEmptyTodoText, got %v", err)
	}
}

func TestOwnershipMismatchLooksLikeAbsence(t *testing.T) {
	repo := newMemTodoRepo()
	svc := newTestService(t, repo)

	todo, err := svc.Create(context.Background(), "owner-a", "buy milk")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, foreignErr := svc.FindByIDForOwner(context.Background(), "owner-b", todo.ID)
	_, missingErr := svc.FindByIDForOwner(context.Background(), "owner-a", domain.ID("00000000-0000-0000-0000-000000000000"))

	if !errors.Is(foreignErr, commonerrors.ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound for foreign owner, got %v", foreignErr)
	}
	if !errors.Is(missingErr, commonerrors.ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound for missing id, got %v", missingErr)
	}
	if foreignErr.Error() != missingErr.Error() {
		t.Error("foreign-owner and missing-id errors must be identical")
	}

	if _, err := svc.Update(context.Background(), "owner-b", todo.ID, domain.Patch{Completed: boolPtr(true)}); !errors.Is(err, commonerrors.ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound on foreign update, got %v", err)
	}
	if _, err := svc.Delete(context.Background(), "owner-b", todo.ID); !errors.Is(err, commonerrors.ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound on foreign delete, got %v", err)
	}
}

func TestListByOwner_ScopesToOwner(t *testing.T) {
	repo := newMemTodoRepo()
	svc := newTestService(t, repo)

	if _, err := svc.Create(context.Background(), "owner-a", "a's todo"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "owner-b", "b's todo"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	todos, err := svc.ListByOwner(context.Background(), "owner-a")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("expected 1 todo, got %d", len(todos))
	}
	if todos[0].Text != "a's todo" {
		t.Errorf("unexpected todo: %+v", todos[0])
	}
}
