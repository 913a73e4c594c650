package ports

import (
	"context"

	"github.com/yalajobs/jobboard-api/internal/core/domain"
)

// CompanyRepository defines persistence for company profiles and their job
// listings.
type CompanyRepository interface {
	UpsertProfile(ctx context.Context, profile *domain.CompanyProfile) error
	FindProfile(ctx context.Context, userID string) (*domain.CompanyProfile, error)
	InsertJob(ctx context.Context, job *domain.JobListing) (*domain.JobListing, error)
	ListJobs(ctx context.Context, companyID string) ([]*domain.JobListing, error)
	// DeleteJobs removes the listings with the given ids scoped to the
	// company and reports how many rows went away.
	DeleteJobs(ctx context.Context, companyID string, ids ...string) (int64, error)
}
