package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/handyman/marketplace-api/internal/core/domain"
)

const collectionJobs = "jobs"

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

type jobDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	ClientID          string             `bson:"client_id"`
	Title             string             `bson:"title"`
	Description       string             `bson:"description"`
	Address           string             `bson:"address"`
	City              string             `bson:"city"`
	State             string             `bson:"state"`
	PostalCode        string             `bson:"postal_code"`
	PreferredDateTime time.Time          `bson:"preferred_date_time"`
	FlexibleTiming    bool               `bson:"flexible_timing"`
	BudgetRangeMin    int64              `bson:"budget_range_min"`
	BudgetRangeMax    int64              `bson:"budget_range_max"`
	Status            string             `bson:"status"`
	CreatedAt         time.Time          `bson:"created_at"`
}

func jobToDoc(j *domain.Job) jobDoc {
	return jobDoc{
		ClientID:          j.ClientID,
		Title:             j.Title,
		Description:       j.Description,
		Address:           j.Address,
		City:              j.City,
		State:             j.State,
		PostalCode:        j.PostalCode,
		PreferredDateTime: j.PreferredDateTime,
		FlexibleTiming:    j.FlexibleTiming,
		BudgetRangeMin:    j.BudgetRangeMin,
		BudgetRangeMax:    j.BudgetRangeMax,
		Status:            string(j.Status),
		CreatedAt:         j.CreatedAt,
	}
}

func (d *jobDoc) toDomain() *domain.Job {
	return &domain.Job{
		ID:                d.ID.Hex(),
		ClientID:          d.ClientID,
		Title:             d.Title,
		Description:       d.Description,
		Address:           d.Address,
		City:              d.City,
		State:             d.State,
		PostalCode:        d.PostalCode,
		PreferredDateTime: d.PreferredDateTime,
		FlexibleTiming:    d.FlexibleTiming,
		BudgetRangeMin:    d.BudgetRangeMin,
		BudgetRangeMax:    d.BudgetRangeMax,
		Status:            domain.JobStatus(d.Status),
		CreatedAt:         d.CreatedAt,
	}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (string, error) {
	res, err := r.col.InsertOne(ctx, jobToDoc(job))
	if err != nil {
		return "", fmt.Errorf("insert job: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	var doc jobDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *JobRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Job, error) {
	return r.list(ctx, bson.M{"client_id": clientID})
}

func (r *JobRepository) ListAll(ctx context.Context) ([]*domain.Job, error) {
	return r.list(ctx, bson.M{})
}

// list returns jobs matching the filter, newest first.
func (r *JobRepository) list(ctx context.Context, filter bson.M) ([]*domain.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []*domain.Job
	for cursor.Next(ctx) {
		var doc jobDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, doc.toDomain())
	}
	return jobs, cursor.Err()
}

// MarkAssigned moves the job from open to assigned in a single
// conditional update. Returns false when the job was not open, so a
// concurrent winner has already claimed it.
func (r *JobRepository) MarkAssigned(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, domain.ErrJobNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(domain.StatusOpen)},
		bson.M{"$set": bson.M{"status": string(domain.StatusAssigned)}},
	)
	if err != nil {
		return false, fmt.Errorf("mark assigned: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

// EnsureIndexes creates the listing indexes on the jobs collection.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
