package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dhruvi159/Voxhire-Project/internal/models"
)

// InterviewFilter narrows ListInterviews. Empty fields match everything.
type InterviewFilter struct {
	Status models.SessionStatus
	Type   models.InterviewType
}

type InterviewRepo struct{ col *mongo.Collection }

func NewInterviewRepo(db *mongo.Database) *InterviewRepo {
	return &InterviewRepo{col: db.Collection(interviewsCollection)}
}

func (r *InterviewRepo) Create(ctx context.Context, s *models.InterviewSession) error {
	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *InterviewRepo) FindByID(ctx context.Context, id string) (*models.InterviewSession, error) {
	var s models.InterviewSession
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

// List returns one page of sessions, newest first, and the total match count.
func (r *InterviewRepo) List(ctx context.Context, f InterviewFilter, page, limit int) ([]models.InterviewSession, int64, error) {
	query := bson.M{}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.Type != "" {
		query["type"] = f.Type
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := []models.InterviewSession{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ForCandidateSince returns sessions listing email whose day is on or after
// the given day, ordered by date then time.
func (r *InterviewRepo) ForCandidateSince(ctx context.Context, email string, day time.Time) ([]models.InterviewSession, error) {
	query := bson.M{
		"candidates.email": email,
		"date":             bson.M{"$gte": day},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.InterviewSession{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
