package firebase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	fb "firebase.google.com/go"
	"golang.org/x/oauth2"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"planify/internal/logging"
	"planify/internal/service"
)

// StoreTimeout is the timeout for document store calls.
const StoreTimeout = 10 * time.Second

// Document fields.
const (
	fieldTitle     = "title"
	fieldIsChecked = "isChecked"
	fieldDueDate   = "dueDate"
	fieldCreatedAt = "createdAt"
	fieldUpdatedAt = "updatedAt"
)

// Tasks implements service.TaskStore on a Firestore collection.
type Tasks struct {
	client     *firestore.Client
	collection string
	logger     *slog.Logger
	now        func() time.Time
}

// NewTasks connects to the project's Firestore database, authenticating
// requests with ts (the signed-in user's ID token).
func NewTasks(ctx context.Context, projectID, collection string, ts oauth2.TokenSource, logger *slog.Logger, opts ...option.ClientOption) (*Tasks, error) {
	if projectID == "" {
		return nil, errors.New("firebase project id not configured")
	}
	if ts != nil {
		opts = append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	}
	app, err := fb.NewApp(ctx, &fb.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return NewTasksWithClient(client, collection, logger), nil
}

// NewTasksWithClient wraps an existing Firestore client.
func NewTasksWithClient(client *firestore.Client, collection string, logger *slog.Logger) *Tasks {
	if collection == "" {
		collection = "tasks"
	}
	return &Tasks{
		client:     client,
		collection: collection,
		logger:     logging.OrDiscard(logger),
		now:        time.Now,
	}
}

// Close releases the Firestore connection.
func (t *Tasks) Close() error {
	return t.client.Close()
}

// CreateTask stores a new unchecked task.
func (t *Tasks) CreateTask(ctx context.Context, nt service.NewTask) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	now := t.now().UTC()
	task := service.Task{
		Title:     nt.Title,
		DueDate:   nt.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	ref, _, err := t.client.Collection(t.collection).Add(ctx, encodeTask(task))
	if err != nil {
		return service.Task{}, wrapStoreError("create", err)
	}
	task.ID = ref.ID
	t.logger.Debug("task created", "id", task.ID)
	return task, nil
}

// ListTasks reads the whole collection, dropping malformed documents.
func (t *Tasks) ListTasks(ctx context.Context) (service.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	var out service.Listing
	iter := t.client.Collection(t.collection).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return service.Listing{}, wrapStoreError("list", err)
		}
		task, ok := decodeTask(doc.Ref.ID, doc.Data())
		if !ok {
			t.logger.Warn("skipping malformed task document", "id", doc.Ref.ID)
			out.Skipped = append(out.Skipped, doc.Ref.ID)
			continue
		}
		out.Tasks = append(out.Tasks, task)
	}
	return out, nil
}

// UpdateTask merges patch into the document. It fails with a StoreError
// when the document no longer exists, and never creates one.
func (t *Tasks) UpdateTask(ctx context.Context, id string, patch service.TaskPatch) error {
	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	if patch.UpdatedAt.IsZero() {
		patch.UpdatedAt = t.now()
	}
	if _, err := t.client.Collection(t.collection).Doc(id).Update(ctx, patchUpdates(patch)); err != nil {
		return wrapStoreError("update", err)
	}
	return nil
}

// DeleteTask removes the document. Missing documents are not an error.
func (t *Tasks) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, StoreTimeout)
	defer cancel()

	_, err := t.client.Collection(t.collection).Doc(id).Delete(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return wrapStoreError("delete", err)
	}
	return nil
}

func wrapStoreError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || status.Code(err) == codes.DeadlineExceeded {
		err = errors.New("request timed out")
	}
	return &service.StoreError{Op: op, Err: err}
}
