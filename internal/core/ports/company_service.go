package ports

import (
	"context"

	"github.com/yalajobs/jobboard-api/internal/core/domain"
)

// CompanyProfileInput carries the employer profile form.
type CompanyProfileInput struct {
	CompanyName string
	Email       string
	Description string
	Location    string
}

// JobListingInput carries one open position.
type JobListingInput struct {
	Title      string
	Type       string
	Skills     string
	Experience string
	Education  string
	Notes      string
}

// CompanyService defines the employer-side use cases.
type CompanyService interface {
	UpsertProfile(ctx context.Context, session *domain.Session, input CompanyProfileInput) (*domain.CompanyProfile, error)
	Profile(ctx context.Context, session *domain.Session) (*domain.CompanyProfile, error)
	PostJob(ctx context.Context, session *domain.Session, input JobListingInput) (*domain.JobListing, error)
	ListJobs(ctx context.Context, session *domain.Session) ([]*domain.JobListing, error)
	DeleteJob(ctx context.Context, session *domain.Session, jobID string) error
}
