package services

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ytakahashi/habit-tracker/internal/models"
)

type FirestoreService struct {
	client     *firestore.Client
	collection string
}

var _ HabitStore = (*FirestoreService)(nil)

// NewFirestoreService connects to Firestore. FIRESTORE_EMULATOR_HOST is honoured by the SDK.
func NewFirestoreService(ctx context.Context, projectID, collection string, opts ...option.ClientOption) (*FirestoreService, error) {
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &FirestoreService{
		client:     client,
		collection: collection,
	}, nil
}

func (fs *FirestoreService) Close() error {
	return fs.client.Close()
}

func (fs *FirestoreService) habits() *firestore.CollectionRef {
	return fs.client.Collection(fs.collection)
}

func (fs *FirestoreService) List(ctx context.Context) ([]models.Habit, error) {
	iter := fs.habits().
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	habits := []models.Habit{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate habits: %w", err)
		}

		var habit models.Habit
		if err := doc.DataTo(&habit); err != nil {
			return nil, fmt.Errorf("failed to unmarshal habit %s: %w", doc.Ref.ID, err)
		}
		habit.ID = doc.Ref.ID

		habits = append(habits, habit)
	}

	return habits, nil
}

func (fs *FirestoreService) Create(ctx context.Context, in models.HabitInput) (*models.Habit, error) {
	habit := &models.Habit{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Category:  in.Category,
		Completed: in.Completed,
		CreatedAt: time.Now().UTC(),
	}

	_, err := fs.habits().Doc(habit.ID).Set(ctx, habit)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	return habit, nil
}

func (fs *FirestoreService) Update(ctx context.Context, id string, patch models.HabitPatch) (*models.Habit, error) {
	ref := fs.habits().Doc(id)

	// Firestore rejects an update with no fields; an empty patch is a read.
	if !patch.IsEmpty() {
		_, err := ref.Update(ctx, patchUpdates(patch))
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to update habit %s: %w", id, err)
		}
	}

	doc, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read habit %s: %w", id, err)
	}

	var habit models.Habit
	if err := doc.DataTo(&habit); err != nil {
		return nil, fmt.Errorf("failed to unmarshal habit %s: %w", id, err)
	}
	habit.ID = doc.Ref.ID

	return &habit, nil
}

func (fs *FirestoreService) Delete(ctx context.Context, id string) error {
	_, err := fs.habits().Doc(id).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete habit %s: %w", id, err)
	}

	return nil
}

func patchUpdates(patch models.HabitPatch) []firestore.Update {
	var updates []firestore.Update
	if patch.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *patch.Name})
	}
	if patch.Category != nil {
		updates = append(updates, firestore.Update{Path: "category", Value: *patch.Category})
	}
	if patch.Completed != nil {
		updates = append(updates, firestore.Update{Path: "completed", Value: *patch.Completed})
	}
	return updates
}
