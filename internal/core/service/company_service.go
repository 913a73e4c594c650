package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/yalajobs/jobboard-api/internal/core/domain"
	"github.com/yalajobs/jobboard-api/internal/core/ports"
)

// CompanyService implements the employer use cases: profile upsert and job
// listing CRUD, always scoped to the session's company.
type CompanyService struct {
	repo   ports.CompanyRepository
	logger zerolog.Logger
}

func NewCompanyService(repo ports.CompanyRepository, logger zerolog.Logger) *CompanyService {
	return &CompanyService{repo: repo, logger: logger}
}

// UpsertProfile overwrites the company profile row keyed by the account id.
func (s *CompanyService) UpsertProfile(ctx context.Context, session *domain.Session, input ports.CompanyProfileInput) (*domain.CompanyProfile, error) {
	profile := &domain.CompanyProfile{
		UserID:      session.UserID,
		CompanyName: input.CompanyName,
		Email:       input.Email,
		Description: input.Description,
		Location:    input.Location,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		s.logger.Error().Err(err).Str("user_id", session.UserID).Msg("failed to save company profile")
		return nil, err
	}
	return profile, nil
}

// Profile returns the company profile row of the session's account.
func (s *CompanyService) Profile(ctx context.Context, session *domain.Session) (*domain.CompanyProfile, error) {
	return s.repo.FindProfile(ctx, session.UserID)
}

// PostJob inserts one open position for the company.
func (s *CompanyService) PostJob(ctx context.Context, session *domain.Session, input ports.JobListingInput) (*domain.JobListing, error) {
	jobType := domain.Role(input.Type)
	if jobType != domain.RoleBlue && jobType != domain.RoleWhite {
		return nil, domain.ErrInvalidRole
	}

	job := &domain.JobListing{
		CompanyID:  session.UserID,
		Title:      input.Title,
		Type:       jobType,
		Skills:     input.Skills,
		Experience: input.Experience,
		Education:  input.Education,
		Notes:      input.Notes,
		CreatedAt:  time.Now().UTC(),
	}
	created, err := s.repo.InsertJob(ctx, job)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("company_id", session.UserID).Str("job_id", created.ID).Msg("job listing posted")
	return created, nil
}

// ListJobs returns all listings of the session's company.
func (s *CompanyService) ListJobs(ctx context.Context, session *domain.Session) ([]*domain.JobListing, error) {
	return s.repo.ListJobs(ctx, session.UserID)
}

// DeleteJob removes one listing; deleting someone else's listing reads as
// not found.
func (s *CompanyService) DeleteJob(ctx context.Context, session *domain.Session, jobID string) error {
	deleted, err := s.repo.DeleteJobs(ctx, session.UserID, jobID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}
