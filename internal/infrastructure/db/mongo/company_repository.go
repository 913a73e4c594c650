package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yalajobs/jobboard-api/internal/core/domain"
)

const (
	companyProfilesCollection = "company_profiles"
	jobListingsCollection     = "job_listings"
)

type MongoCompanyRepository struct {
	profiles *mongo.Collection
	jobs     *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *MongoCompanyRepository {
	return &MongoCompanyRepository{
		profiles: db.Collection(companyProfilesCollection),
		jobs:     db.Collection(jobListingsCollection),
	}
}

func (r *MongoCompanyRepository) UpsertProfile(ctx context.Context, profile *domain.CompanyProfile) error {
	filter := bson.M{"_id": profile.UserID}
	_, err := r.profiles.ReplaceOne(ctx, filter, profile, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert company profile: %w", err)
	}
	return nil
}

func (r *MongoCompanyRepository) FindProfile(ctx context.Context, userID string) (*domain.CompanyProfile, error) {
	var profile domain.CompanyProfile
	if err := r.profiles.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("find company profile: %w", err)
	}
	return &profile, nil
}

type mongoJob struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	CompanyID  string             `bson:"company_id"`
	Title      string             `bson:"title"`
	Type       string             `bson:"type"`
	Skills     string             `bson:"skills"`
	Experience string             `bson:"experience"`
	Education  string             `bson:"education"`
	Notes      string             `bson:"notes"`
	CreatedAt  int64              `bson:"created_at"`
}

func (r *MongoCompanyRepository) InsertJob(ctx context.Context, job *domain.JobListing) (*domain.JobListing, error) {
	doc := mongoJob{
		CompanyID:  job.CompanyID,
		Title:      job.Title,
		Type:       string(job.Type),
		Skills:     job.Skills,
		Experience: job.Experience,
		Education:  job.Education,
		Notes:      job.Notes,
		CreatedAt:  job.CreatedAt.Unix(),
	}

	res, err := r.jobs.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	created := *job
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoCompanyRepository) ListJobs(ctx context.Context, companyID string) ([]*domain.JobListing, error) {
	cur, err := r.jobs.Find(ctx, bson.M{"company_id": companyID})
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer cur.Close(ctx)

	var jobs []*domain.JobListing
	for cur.Next(ctx) {
		var doc mongoJob
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, &domain.JobListing{
			ID:         doc.ID.Hex(),
			CompanyID:  doc.CompanyID,
			Title:      doc.Title,
			Type:       domain.Role(doc.Type),
			Skills:     doc.Skills,
			Experience: doc.Experience,
			Education:  doc.Education,
			Notes:      doc.Notes,
			CreatedAt:  unixToTime(doc.CreatedAt),
		})
	}
	return jobs, cur.Err()
}

// DeleteJobs removes the given listings, always scoped to the company id so
// one company cannot delete another's rows.
func (r *MongoCompanyRepository) DeleteJobs(ctx context.Context, companyID string, ids ...string) (int64, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return 0, nil
	}

	res, err := r.jobs.DeleteMany(ctx, bson.M{
		"_id":        bson.M{"$in": oids},
		"company_id": companyID,
	})
	if err != nil {
		return 0, fmt.Errorf("delete jobs: %w", err)
	}
	return res.DeletedCount, nil
}
