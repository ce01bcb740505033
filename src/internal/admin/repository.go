package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"recipebox-svc/src/clients"
	"recipebox-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository interface {
	// FindByUsername looks up the identity by its lowercased username.
	// Returns (nil, nil) when no identity exists.
	FindByUsername(ctx context.Context, username string) (*Identity, error)
	Insert(ctx context.Context, identity *Identity) error
	UpdatePasswordHash(ctx context.Context, username, passwordHash string) error
}

type adminRepository struct {
	collection *mongo.Collection
}

func NewAdminRepository(mongodb *clients.MongoDB, collectionName string) Repository {
	return &adminRepository{
		collection: mongodb.Database.Collection(collectionName),
	}
}

func (r *adminRepository) FindByUsername(ctx context.Context, username string) (*Identity, error) {
	filter := bson.M{"username": strings.ToLower(username)}

	var identity Identity
	err := r.collection.FindOne(ctx, filter).Decode(&identity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logrus.WithError(err).WithField("username", username).Error("Failed to find admin identity")
		return nil, models.ErrDatabaseQuery
	}

	return &identity, nil
}

func (r *adminRepository) Insert(ctx context.Context, identity *Identity) error {
	identity.Username = strings.ToLower(identity.Username)
	identity.CreatedAt = time.Now()
	identity.UpdatedAt = identity.CreatedAt

	if _, err := r.collection.InsertOne(ctx, identity); err != nil {
		logrus.WithError(err).WithField("username", identity.Username).Error("Failed to insert admin identity")
		return models.ErrDatabaseInsert
	}

	return nil
}

func (r *adminRepository) UpdatePasswordHash(ctx context.Context, username, passwordHash string) error {
	filter := bson.M{"username": strings.ToLower(username)}
	update := bson.M{
		"$set": bson.M{
			"password":   passwordHash,
			"updated_at": time.Now(),
		},
	}

	if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		logrus.WithError(err).WithField("username", username).Error("Failed to update admin password hash")
		return models.ErrDatabaseUpdate
	}

	return nil
}
