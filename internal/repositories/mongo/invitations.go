package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dhruvi159/Voxhire-Project/internal/models"
)

type InvitationRepo struct{ col *mongo.Collection }

func NewInvitationRepo(db *mongo.Database) *InvitationRepo {
	return &InvitationRepo{col: db.Collection(invitationsCollection)}
}

// InsertMany writes the whole batch in one round trip.
func (r *InvitationRepo) InsertMany(ctx context.Context, invs []models.Invitation) error {
	if len(invs) == 0 {
		return nil
	}
	docs := make([]interface{}, len(invs))
	for i := range invs {
		docs[i] = invs[i]
	}
	_, err := r.col.InsertMany(ctx, docs)
	return duplicate(err)
}
