package recipe

import (
	"context"
	"errors"
	"time"

	"recipebox-svc/src/clients"
	"recipebox-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	FindAll(ctx context.Context) ([]*Recipe, error)
	FindByID(ctx context.Context, id string) (*Recipe, error)
	Insert(ctx context.Context, recipe *Recipe) (*Recipe, error)
	Update(ctx context.Context, id string, req *UpsertRequest) (*Recipe, error)
	Delete(ctx context.Context, id string) (*Recipe, error)
}

type recipeRepository struct {
	collection *mongo.Collection
}

func NewRecipeRepository(mongodb *clients.MongoDB, collectionName string) Repository {
	return &recipeRepository{
		collection: mongodb.Database.Collection(collectionName),
	}
}

func (r *recipeRepository) FindAll(ctx context.Context) ([]*Recipe, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		logrus.WithError(err).Error("Failed to find recipes")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	recipes := []*Recipe{}
	for cursor.Next(ctx) {
		var recipe Recipe
		if err := cursor.Decode(&recipe); err != nil {
			logrus.WithError(err).Error("Failed to decode recipe")
			continue
		}
		recipes = append(recipes, &recipe)
	}

	if err := cursor.Err(); err != nil {
		logrus.WithError(err).Error("Cursor error")
		return nil, models.ErrDatabaseQuery
	}

	return recipes, nil
}

func (r *recipeRepository) FindByID(ctx context.Context, id string) (*Recipe, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidRecipeID
	}

	var recipe Recipe
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&recipe)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecipeNotFound
		}
		logrus.WithError(err).WithField("recipe_id", id).Error("Failed to find recipe")
		return nil, models.ErrDatabaseQuery
	}

	return &recipe, nil
}

func (r *recipeRepository) Insert(ctx context.Context, recipe *Recipe) (*Recipe, error) {
	recipe.CreatedAt = time.Now()
	recipe.UpdatedAt = recipe.CreatedAt

	result, err := r.collection.InsertOne(ctx, recipe)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert recipe")
		return nil, models.ErrDatabaseInsert
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		recipe.ID = oid
	}

	return recipe, nil
}

func (r *recipeRepository) Update(ctx context.Context, id string, req *UpsertRequest) (*Recipe, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidRecipeID
	}

	update := bson.M{
		"$set": bson.M{
			"title":        req.Title,
			"description":  req.Description,
			"ingredients":  req.Ingredients,
			"instructions": req.Instructions,
			"updated_at":   time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Recipe
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecipeNotFound
		}
		logrus.WithError(err).WithField("recipe_id", id).Error("Failed to update recipe")
		return nil, models.ErrDatabaseUpdate
	}

	return &updated, nil
}

func (r *recipeRepository) Delete(ctx context.Context, id string) (*Recipe, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidRecipeID
	}

	var deleted Recipe
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": objectID}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecipeNotFound
		}
		logrus.WithError(err).WithField("recipe_id", id).Error("Failed to delete recipe")
		return nil, models.ErrDatabaseDelete
	}

	return &deleted, nil
}
