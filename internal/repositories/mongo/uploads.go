package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dhruvi159/Voxhire-Project/internal/models"
)

type UploadRepo struct{ col *mongo.Collection }

func NewUploadRepo(db *mongo.Database) *UploadRepo {
	return &UploadRepo{col: db.Collection(uploadsCollection)}
}

func (r *UploadRepo) Create(ctx context.Context, f *models.UploadedFile) error {
	_, err := r.col.InsertOne(ctx, f)
	return err
}
