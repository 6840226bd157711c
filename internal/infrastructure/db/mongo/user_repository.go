package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/handyman/marketplace-api/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository persists users and their session tokens. It also acts
// as the session resolver: a bearer token resolves only while the stored
// expiry lies in the future.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	PhoneNumber  string             `bson:"phone_number"`
	PasswordHash string             `bson:"password_hash"`
	Address      string             `bson:"address"`
	City         string             `bson:"city"`
	State        string             `bson:"state"`
	PostalCode   string             `bson:"postal_code"`
	UserType     string             `bson:"user_type"`
	Token        string             `bson:"token,omitempty"`
	TokenExpiry  time.Time          `bson:"token_expiry,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		PhoneNumber:  d.PhoneNumber,
		PasswordHash: d.PasswordHash,
		Address:      d.Address,
		City:         d.City,
		State:        d.State,
		PostalCode:   d.PostalCode,
		Role:         d.UserType,
		Token:        d.Token,
		TokenExpiry:  d.TokenExpiry,
		CreatedAt:    d.CreatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := userDoc{
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		PhoneNumber:  user.PhoneNumber,
		PasswordHash: user.PasswordHash,
		Address:      user.Address,
		City:         user.City,
		State:        user.State,
		PostalCode:   user.PostalCode,
		UserType:     user.Role,
		CreatedAt:    user.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) FindByPhone(ctx context.Context, phoneNumber string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"phone_number": phoneNumber})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// SetToken replaces the user's session token and expiry in one write, so
// the previous token stops resolving the moment the new one exists.
func (r *UserRepository) SetToken(ctx context.Context, userID, token string, expiry time.Time) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"token": token, "token_expiry": expiry},
	})
	if err != nil {
		return fmt.Errorf("set token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, nil
	}

	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	for cursor.Next(ctx) {
		var doc userDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, doc.toDomain())
	}
	return users, cursor.Err()
}

// Resolve implements the session resolver: an unknown token or one past
// its expiry yields ErrUnauthenticated.
func (r *UserRepository) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	var doc userDoc
	err := r.col.FindOne(ctx, bson.M{
		"token":        token,
		"token_expiry": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	return &domain.Session{UserID: doc.ID.Hex(), Role: doc.UserType}, nil
}

// EnsureIndexes creates the unique phone index and the token lookup index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "phone_number", Value: 1}},
			Options: optionsIndexUnique(),
		},
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: optionsIndexSparse(),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
