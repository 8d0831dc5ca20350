package firestore

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"duit/internal/domain/user"
)

// UserRepository implements user.Repository over Firestore
type UserRepository struct {
	client *firestore.Client
}

// NewUserRepository creates a new user repository
func NewUserRepository(client *firestore.Client) *UserRepository {
	return &UserRepository{client: client}
}

type userDoc struct {
	Email       string        `firestore:"email"`
	DisplayName string        `firestore:"displayName"`
	FCMTokens   []fcmTokenDoc `firestore:"fcmTokens"`
}

type fcmTokenDoc struct {
	Token string `firestore:"token"`
}

func (d *userDoc) toDomain(id string) *user.User {
	tokens := make([]string, 0, len(d.FCMTokens))
	for _, t := range d.FCMTokens {
		if t.Token != "" {
			tokens = append(tokens, t.Token)
		}
	}

	return &user.User{
		ID:           id,
		Email:        d.Email,
		DisplayName:  d.DisplayName,
		DeviceTokens: tokens,
	}
}

// GetByID returns one user, or user.ErrUserNotFound when the document does
// not exist.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	snap, err := r.client.Collection(collectionUsers).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}

	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", id, err)
	}
	return doc.toDomain(snap.Ref.ID), nil
}

// ListAll returns every user. Malformed documents are skipped with a log
// line.
func (r *UserRepository) ListAll(ctx context.Context) ([]*user.User, error) {
	iter := r.client.Collection(collectionUsers).Documents(ctx)
	defer iter.Stop()

	var users []*user.User
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate users: %w", err)
		}

		var doc userDoc
		if err := snap.DataTo(&doc); err != nil {
			log.Printf("Skipping malformed user %s: %v", snap.Ref.ID, err)
			continue
		}
		users = append(users, doc.toDomain(snap.Ref.ID))
	}

	return users, nil
}
