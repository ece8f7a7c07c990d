package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dhruvi159/Voxhire-Project/internal/models"
)

type EvaluationRepo struct{ col *mongo.Collection }

func NewEvaluationRepo(db *mongo.Database) *EvaluationRepo {
	return &EvaluationRepo{col: db.Collection(evaluationsCollection)}
}

func (r *EvaluationRepo) Insert(ctx context.Context, e *models.Evaluation) error {
	_, err := r.col.InsertOne(ctx, e)
	return err
}

// AddCodingScore increments the candidate's aggregate coding record,
// creating it on first use. The update is atomic per document.
func (r *EvaluationRepo) AddCodingScore(ctx context.Context, candidateID, sessionID string, delta float64, at time.Time) error {
	filter := bson.M{"candidate_id": candidateID, "kind": models.KindCoding}
	onInsert := bson.M{"_id": uuid.NewString()}
	if sessionID != "" {
		onInsert["interview_id"] = sessionID
	}
	update := bson.M{
		"$inc":         bson.M{"score": delta},
		"$set":         bson.M{"timestamp": at},
		"$setOnInsert": onInsert,
	}
	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// ListBetween returns records stamped in [from, to), oldest first.
func (r *EvaluationRepo) ListBetween(ctx context.Context, from, to time.Time) ([]models.Evaluation, error) {
	query := bson.M{"timestamp": bson.M{"$gte": from, "$lt": to}}
	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Evaluation{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
