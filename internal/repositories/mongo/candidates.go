package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dhruvi159/Voxhire-Project/internal/models"
)

type CandidateRepo struct{ col *mongo.Collection }

func NewCandidateRepo(db *mongo.Database) *CandidateRepo {
	return &CandidateRepo{col: db.Collection(candidatesCollection)}
}

func (r *CandidateRepo) Create(ctx context.Context, c *models.Candidate) error {
	_, err := r.col.InsertOne(ctx, c)
	return duplicate(err)
}
