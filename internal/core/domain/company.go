package domain

import (
	"errors"
	"time"
)

var ErrCompanyNotFound = errors.New("company profile not found")
var ErrJobNotFound = errors.New("job listing not found")

// CompanyProfile is the employer-side profile row, keyed by the auth
// account id like the jobseeker profiles.
type CompanyProfile struct {
	UserID      string    `json:"user_id" bson:"_id"`
	CompanyName string    `json:"company_name" bson:"company_name"`
	Email       string    `json:"email" bson:"email"`
	Description string    `json:"description" bson:"description"`
	Location    string    `json:"location" bson:"location"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// JobListing is one open position posted by a company. Type says which kind
// of jobseeker the position targets.
type JobListing struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	CompanyID  string    `json:"company_id" bson:"company_id"`
	Title      string    `json:"title" bson:"title"`
	Type       Role      `json:"type" bson:"type"`
	Skills     string    `json:"skills" bson:"skills"`
	Experience string    `json:"experience" bson:"experience"`
	Education  string    `json:"education" bson:"education"`
	Notes      string    `json:"notes" bson:"notes"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
