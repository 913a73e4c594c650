package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yalajobs/jobboard-api/internal/core/domain"
)

const (
	blueProfilesCollection  = "blue_collar_profiles"
	whiteProfilesCollection = "white_collar_profiles"
)

// MongoProfileRepository persists jobseeker profiles, one collection per
// role like the original tables. Documents are keyed by the auth account id,
// so the upsert is naturally idempotent.
type MongoProfileRepository struct {
	db *mongo.Database
}

func NewProfileRepository(db *mongo.Database) *MongoProfileRepository {
	return &MongoProfileRepository{db: db}
}

func (r *MongoProfileRepository) collection(role domain.Role) (*mongo.Collection, error) {
	switch role {
	case domain.RoleBlue:
		return r.db.Collection(blueProfilesCollection), nil
	case domain.RoleWhite:
		return r.db.Collection(whiteProfilesCollection), nil
	default:
		return nil, fmt.Errorf("no profile table for role %q", role)
	}
}

func (r *MongoProfileRepository) Upsert(ctx context.Context, profile *domain.JobseekerProfile) error {
	coll, err := r.collection(profile.Role)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": profile.UserID}
	_, err = coll.ReplaceOne(ctx, filter, profile, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *MongoProfileRepository) Find(ctx context.Context, role domain.Role, userID string) (*domain.JobseekerProfile, error) {
	coll, err := r.collection(role)
	if err != nil {
		return nil, err
	}

	var profile domain.JobseekerProfile
	if err := coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &profile, nil
}

// FindEmailByPhone looks up the blue-collar row holding the phone and
// returns its login email.
func (r *MongoProfileRepository) FindEmailByPhone(ctx context.Context, phone string) (string, error) {
	coll := r.db.Collection(blueProfilesCollection)

	var row struct {
		Email string `bson:"email"`
	}
	if err := coll.FindOne(ctx, bson.M{"phone": phone}).Decode(&row); err != nil {
		if err == mongo.ErrNoDocuments {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("find email by phone: %w", err)
	}
	if row.Email == "" {
		return "", domain.ErrUserNotFound
	}
	return row.Email, nil
}

func (r *MongoProfileRepository) DeleteByUser(ctx context.Context, role domain.Role, userID string) error {
	coll, err := r.collection(role)
	if err != nil {
		return err
	}
	if _, err := coll.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
