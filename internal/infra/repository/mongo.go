package repository

import (
	"context"
	"errors"
	"fmt"

	repo "health-assistant/internal/domain/interfaces/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepository stores each entity as one document keyed by "_id".
type MongoRepository[T any] struct {
	mongo *mongo.Database
}

func NewMongoRepository[T any](mongo *mongo.Database) *MongoRepository[T] {
	return &MongoRepository[T]{mongo: mongo}
}

func (r *MongoRepository[T]) Create(ctx context.Context, collectionName string, entity T) (T, error) {
	collection := r.mongo.Collection(collectionName)
	if _, err := collection.InsertOne(ctx, entity); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entity, fmt.Errorf("%s: %w", collectionName, repo.ErrDuplicate)
		}
		return entity, err
	}
	return entity, nil
}

func (r *MongoRepository[T]) Update(ctx context.Context, collectionName string, id string, entity T) (T, error) {
	collection := r.mongo.Collection(collectionName)
	res, err := collection.ReplaceOne(ctx, bson.M{"_id": id}, entity)
	if err != nil {
		return entity, err
	}
	if res.MatchedCount == 0 {
		return entity, fmt.Errorf("%s/%s: %w", collectionName, id, repo.ErrNotFound)
	}
	return entity, nil
}

func (r *MongoRepository[T]) Delete(ctx context.Context, collectionName string, id string) error {
	collection := r.mongo.Collection(collectionName)
	res, err := collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s/%s: %w", collectionName, id, repo.ErrNotFound)
	}
	return nil
}

func (r *MongoRepository[T]) FindByID(ctx context.Context, collectionName string, id string) (T, error) {
	var entity T
	collection := r.mongo.Collection(collectionName)
	err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity, fmt.Errorf("%s/%s: %w", collectionName, id, repo.ErrNotFound)
	}
	return entity, err
}

func (r *MongoRepository[T]) FindAll(ctx context.Context, collectionName string) ([]T, error) {
	collection := r.mongo.Collection(collectionName)
	cursor, err := collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entities []T
	for cursor.Next(ctx) {
		var entity T
		if err := cursor.Decode(&entity); err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, cursor.Err()
}
