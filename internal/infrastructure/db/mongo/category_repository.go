package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/handyman/marketplace-api/internal/core/domain"
)

const (
	collectionCategories = "service_categories"
	collectionServices   = "services"
)

// CategoryRepository reads the service catalog.
type CategoryRepository struct {
	categories *mongo.Collection
	services   *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		categories: db.Collection(collectionCategories),
		services:   db.Collection(collectionServices),
	}
}

type categoryDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	IconURL     string             `bson:"icon_url,omitempty"`
}

type serviceDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	CategoryID  string             `bson:"category_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
}

func (r *CategoryRepository) ListCategories(ctx context.Context) ([]*domain.ServiceCategory, error) {
	cursor, err := r.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.ServiceCategory
	for cursor.Next(ctx) {
		var doc categoryDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		out = append(out, &domain.ServiceCategory{
			ID:          doc.ID.Hex(),
			Name:        doc.Name,
			Description: doc.Description,
			IconURL:     doc.IconURL,
		})
	}
	return out, cursor.Err()
}

func (r *CategoryRepository) ListServices(ctx context.Context) ([]*domain.Service, error) {
	cursor, err := r.services.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Service
	for cursor.Next(ctx) {
		var doc serviceDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode service: %w", err)
		}
		out = append(out, &domain.Service{
			ID:          doc.ID.Hex(),
			CategoryID:  doc.CategoryID,
			Name:        doc.Name,
			Description: doc.Description,
		})
	}
	return out, cursor.Err()
}

func (r *CategoryRepository) FindService(ctx context.Context, id string) (*domain.Service, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrServiceNotFound
	}

	var doc serviceDoc
	if err := r.services.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("find service: %w", err)
	}
	return &domain.Service{
		ID:          doc.ID.Hex(),
		CategoryID:  doc.CategoryID,
		Name:        doc.Name,
		Description: doc.Description,
	}, nil
}
