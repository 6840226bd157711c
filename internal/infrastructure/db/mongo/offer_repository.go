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

const collectionOffers = "job_applications"

type OfferRepository struct {
	col *mongo.Collection
}

func NewOfferRepository(db *mongo.Database) *OfferRepository {
	return &OfferRepository{col: db.Collection(collectionOffers)}
}

type offerDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	JobID            string             `bson:"job_id"`
	HandymanID       string             `bson:"handyman_id"`
	PriceQuote       float64            `bson:"price_quote"`
	AvailabilityDate string             `bson:"availability_date"`
	EstimatedHours   int                `bson:"estimated_hours"`
	AdditionalNotes  string             `bson:"additional_notes"`
	PostedBy         string             `bson:"posted_by"`
	CreatedAt        time.Time          `bson:"created_at"`
}

func (d *offerDoc) toDomain() *domain.Offer {
	return &domain.Offer{
		ID:               d.ID.Hex(),
		JobID:            d.JobID,
		HandymanID:       d.HandymanID,
		PriceQuote:       d.PriceQuote,
		AvailabilityDate: d.AvailabilityDate,
		EstimatedHours:   d.EstimatedHours,
		AdditionalNotes:  d.AdditionalNotes,
		PostedBy:         d.PostedBy,
		CreatedAt:        d.CreatedAt,
	}
}

// Upsert stores the offer in a single atomic ReplaceOne keyed on the
// (job_id, handyman_id) pair. The compound unique index makes concurrent
// resubmissions converge on one row; a replaced offer keeps its id.
func (r *OfferRepository) Upsert(ctx context.Context, offer *domain.Offer) (string, bool, error) {
	filter := bson.M{"job_id": offer.JobID, "handyman_id": offer.HandymanID}
	doc := offerDoc{
		JobID:            offer.JobID,
		HandymanID:       offer.HandymanID,
		PriceQuote:       offer.PriceQuote,
		AvailabilityDate: offer.AvailabilityDate,
		EstimatedHours:   offer.EstimatedHours,
		AdditionalNotes:  offer.AdditionalNotes,
		PostedBy:         offer.PostedBy,
		CreatedAt:        offer.CreatedAt,
	}

	res, err := r.col.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return "", false, fmt.Errorf("upsert offer: %w", err)
	}

	if res.UpsertedID != nil {
		return res.UpsertedID.(primitive.ObjectID).Hex(), false, nil
	}

	// Replacement path: the id predates this call, fetch it back.
	var stored offerDoc
	if err := r.col.FindOne(ctx, filter).Decode(&stored); err != nil {
		return "", false, fmt.Errorf("upsert offer: read back: %w", err)
	}
	return stored.ID.Hex(), true, nil
}

func (r *OfferRepository) ListByJob(ctx context.Context, jobID string) ([]*domain.Offer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"job_id": jobID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer cursor.Close(ctx)

	var offers []*domain.Offer
	for cursor.Next(ctx) {
		var doc offerDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode offer: %w", err)
		}
		offers = append(offers, doc.toDomain())
	}
	return offers, cursor.Err()
}

func (r *OfferRepository) DeleteByJob(ctx context.Context, jobID string) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{"job_id": jobID}); err != nil {
		return fmt.Errorf("delete offers: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique (job_id, handyman_id) index backing
// the one-offer-per-pair invariant.
func (r *OfferRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "job_id", Value: 1}, {Key: "handyman_id", Value: 1}},
			Options: optionsIndexUnique(),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

const collectionAssignments = "job_assignments"

// AssignmentRepository persists hires. The unique job_id index is what
// makes a hire a single-winner operation under concurrency.
type AssignmentRepository struct {
	col *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{col: db.Collection(collectionAssignments)}
}

type assignmentDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	JobID       string             `bson:"job_id"`
	HandymanID  string             `bson:"handyman_id"`
	ClientID    string             `bson:"client_id"`
	AgreedPrice float64            `bson:"agreed_price"`
	AgreedHours int                `bson:"agreed_hours"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (r *AssignmentRepository) Create(ctx context.Context, a *domain.Assignment) (string, error) {
	doc := assignmentDoc{
		JobID:       a.JobID,
		HandymanID:  a.HandymanID,
		ClientID:    a.ClientID,
		AgreedPrice: a.AgreedPrice,
		AgreedHours: a.AgreedHours,
		CreatedAt:   a.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrAlreadyAssigned
		}
		return "", fmt.Errorf("insert assignment: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *AssignmentRepository) FindByJob(ctx context.Context, jobID string) (*domain.Assignment, error) {
	var doc assignmentDoc
	if err := r.col.FindOne(ctx, bson.M{"job_id": jobID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	return &domain.Assignment{
		ID:          doc.ID.Hex(),
		JobID:       doc.JobID,
		HandymanID:  doc.HandymanID,
		ClientID:    doc.ClientID,
		AgreedPrice: doc.AgreedPrice,
		AgreedHours: doc.AgreedHours,
		CreatedAt:   doc.CreatedAt,
	}, nil
}

// EnsureIndexes creates the unique job_id index enforcing one assignment per job.
func (r *AssignmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "job_id", Value: 1}},
			Options: optionsIndexUnique(),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
