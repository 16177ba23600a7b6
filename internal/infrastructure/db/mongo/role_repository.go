package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskmanagement/task-system/internal/core/domain"
	"github.com/taskmanagement/task-system/internal/core/ports"
)

const rolesCollection = "roles"

type RoleRepository struct {
	collection *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{collection: db.Collection(rolesCollection)}
}

var _ ports.RoleRepository = (*RoleRepository)(nil)

type mongoRole struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var doc mongoRole
	if err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &domain.Role{ID: doc.ID.Hex(), Name: doc.Name}, nil
}

// Ensure upserts the role by name. $setOnInsert keeps the operation a no-op
// when the role already exists, which makes startup seeding idempotent.
func (r *RoleRepository) Ensure(ctx context.Context, name string) (*domain.Role, error) {
	filter := bson.M{"name": name}
	update := bson.M{"$setOnInsert": bson.M{"name": name}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc mongoRole
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("ensure role %q: %w", name, err)
	}
	return &domain.Role{ID: doc.ID.Hex(), Name: doc.Name}, nil
}
