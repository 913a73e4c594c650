package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/yalajobs/jobboard-api/internal/api/metrics"
	"github.com/yalajobs/jobboard-api/internal/core/domain"
	"github.com/yalajobs/jobboard-api/internal/core/ports"
	sessionbroker "github.com/yalajobs/jobboard-api/internal/session"
)

const (
	otpPurpose   = "otp"
	resetPurpose = "reset"
	otpTTL       = 5 * time.Minute
	resetTTL     = time.Hour
)

// AuthService implements signup, sign-in (password and one-time code),
// sign-out, session lookup and password reset. It is the only writer of
// session state: every mutation goes through the store and is announced on
// the broker.
type AuthService struct {
	repo      ports.AuthRepository
	profiles  ports.ProfileRepository
	companies ports.CompanyRepository
	sessions  ports.SessionStore
	codes     ports.CodeStore
	broker    *sessionbroker.Broker
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

// AuthServiceOptions groups the dependencies of AuthService.
type AuthServiceOptions struct {
	Repo      ports.AuthRepository
	Profiles  ports.ProfileRepository
	Companies ports.CompanyRepository
	Sessions  ports.SessionStore
	Codes     ports.CodeStore
	Broker    *sessionbroker.Broker
	JWTSecret string
	TokenTTL  time.Duration
	Logger    zerolog.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      opts.Repo,
		profiles:  opts.Profiles,
		companies: opts.Companies,
		sessions:  opts.Sessions,
		codes:     opts.Codes,
		broker:    opts.Broker,
		jwtSecret: opts.JWTSecret,
		tokenTTL:  opts.TokenTTL,
		logger:    opts.Logger,
	}
}

// SignUp creates the auth account with the role type in its metadata, then
// the initial profile row for the role. The two writes are not atomic: when
// the profile insert fails the fresh account is deleted so no orphan is left
// behind.
func (s *AuthService) SignUp(ctx context.Context, input ports.SignUpInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := domain.Role(input.Type)
	if role != domain.RoleBlue && role != domain.RoleWhite && role != domain.RoleCompany {
		return nil, domain.ErrInvalidRole
	}
	if role == domain.RoleBlue && input.Phone == "" {
		// Blue-collar accounts sign in by phone; without one the account
		// would be unreachable.
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hash),
		Metadata:     map[string]string{domain.MetadataTypeKey: string(role)},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.insertInitialProfile(ctx, created, role); err != nil {
		// Compensating cleanup: drop the auth account so signup either fully
		// succeeds or leaves nothing behind.
		if delErr := s.repo.Delete(ctx, created.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("user_id", created.ID).
				Msg("signup rollback failed, orphaned auth account")
		}
		metrics.SignUpRollbacksTotal.Inc()
		return nil, fmt.Errorf("create initial profile: %w", err)
	}

	metrics.SignUpsTotal.WithLabelValues(string(role)).Inc()
	s.logger.Info().Str("user_id", created.ID).Str("type", string(role)).Msg("user signed up")
	return created, nil
}

func (s *AuthService) insertInitialProfile(ctx context.Context, user *domain.User, role domain.Role) error {
	now := time.Now().UTC()
	if role == domain.RoleCompany {
		return s.companies.UpsertProfile(ctx, &domain.CompanyProfile{
			UserID:    user.ID,
			Email:     user.Email,
			UpdatedAt: now,
		})
	}
	form := domain.NewWizardForm()
	return s.profiles.Upsert(ctx, &domain.JobseekerProfile{
		UserID:     user.ID,
		Role:       role,
		Email:      user.Email,
		Phone:      user.Phone,
		Experience: form.Experience,
		Education:  form.Education,
		Skills:     form.Skills,
		UpdatedAt:  now,
	})
}

// SignIn authenticates with identifier + password. A blue role hint (or a
// plain non-email identifier) is treated as a phone number and resolved to
// the account email through the blue-collar profile table first.
func (s *AuthService) SignIn(ctx context.Context, input ports.SignInInput) (*ports.AuthResult, error) {
	if input.Identifier == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	email := input.Identifier
	if input.Hint == domain.RoleBlue && !strings.Contains(input.Identifier, "@") {
		resolved, err := s.profiles.FindEmailByPhone(ctx, input.Identifier)
		if err != nil {
			return nil, err
		}
		email = resolved
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}
	metrics.SignInsTotal.WithLabelValues("password").Inc()
	return result, nil
}

// RequestCode issues a one-time sign-in code for the phone. Without an SMS
// provider wired the code is only logged.
func (s *AuthService) RequestCode(ctx context.Context, phone string) error {
	if phone == "" {
		return domain.ErrInvalidCredentials
	}
	if _, err := s.profiles.FindEmailByPhone(ctx, phone); err != nil {
		return err
	}
	code := generateCode()
	if err := s.codes.Issue(ctx, otpPurpose, phone, code, otpTTL); err != nil {
		return err
	}
	s.logger.Info().Str("phone", phone).Msg("one-time sign-in code issued")
	// The code itself only reaches the log at debug level; production runs
	// at info and never records the credential.
	s.logger.Debug().Str("phone", phone).Str("code", code).Msg("one-time sign-in code (no sms provider configured)")
	return nil
}

// SignInWithCode signs in with a previously requested one-time code.
func (s *AuthService) SignInWithCode(ctx context.Context, phone, code string) (*ports.AuthResult, error) {
	ok, err := s.codes.Verify(ctx, otpPurpose, phone, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	email, err := s.profiles.FindEmailByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	result, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}
	metrics.SignInsTotal.WithLabelValues("otp").Inc()
	return result, nil
}

// SignOut destroys the session. Unknown ids are not an error: sign-out is
// idempotent.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if err == domain.ErrSessionNotFound {
			return nil
		}
		return err
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	if s.broker != nil {
		s.broker.Publish(sessionbroker.Event{Kind: sessionbroker.SignedOut, UserID: sess.UserID})
	}
	s.logger.Info().Str("user_id", sess.UserID).Msg("user signed out")
	return nil
}

// CurrentSession returns the live session for the id.
func (s *AuthService) CurrentSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// SendPasswordReset issues a reset code for the email. The caller always
// gets a message either way; only infrastructure failures surface as errors.
func (s *AuthService) SendPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return domain.ErrInvalidCredentials
	}
	code := generateCode()
	if err := s.codes.Issue(ctx, resetPurpose, email, code, resetTTL); err != nil {
		return err
	}
	s.logger.Info().Str("email", email).Msg("password reset issued")
	return nil
}

// SelectRole assigns an account type to a session that has none yet: the
// signup race can leave a session whose metadata write has not landed, and
// such users pick their role from the selector page. The metadata is written
// to the account, the initial profile row is created, the stored session
// snapshot is refreshed and the change is broadcast, so guards re-evaluate
// the role without a new sign-in.
func (s *AuthService) SelectRole(ctx context.Context, sessionID string, role domain.Role) (*ports.AuthResult, error) {
	if role != domain.RoleBlue && role != domain.RoleWhite && role != domain.RoleCompany {
		return nil, domain.ErrInvalidRole
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Role() != domain.RoleNone {
		// An established role is never rewritten through the selector.
		return nil, domain.ErrInvalidRole
	}

	user, err := s.repo.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if role == domain.RoleBlue && user.Phone == "" {
		return nil, domain.ErrInvalidCredentials
	}

	metadata := make(map[string]string, len(user.Metadata)+1)
	for k, v := range user.Metadata {
		metadata[k] = v
	}
	metadata[domain.MetadataTypeKey] = string(role)

	if err := s.repo.UpdateMetadata(ctx, user.ID, metadata); err != nil {
		return nil, err
	}
	user.Metadata = metadata

	if err := s.insertInitialProfile(ctx, user, role); err != nil {
		return nil, fmt.Errorf("create initial profile: %w", err)
	}

	sess.Metadata = metadata
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	if s.broker != nil {
		s.broker.Publish(sessionbroker.Event{Kind: sessionbroker.MetadataUpdated, UserID: user.ID, Session: &sess})
	}
	s.logger.Info().Str("user_id", user.ID).Str("type", string(role)).Msg("account role selected")

	return &ports.AuthResult{
		Session:    sess,
		User:       user,
		RedirectTo: domain.LandingPath(role),
	}, nil
}

func (s *AuthService) openSession(ctx context.Context, user *domain.User) (*ports.AuthResult, error) {
	now := time.Now().UTC()
	sess := domain.Session{
		ID:        generateSessionID(),
		UserID:    user.ID,
		Email:     user.Email,
		Phone:     user.Phone,
		Metadata:  user.Metadata,
		ExpiresAt: now.Add(s.tokenTTL),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	token, err := s.generateToken(sess)
	if err != nil {
		return nil, err
	}

	if s.broker != nil {
		s.broker.Publish(sessionbroker.Event{Kind: sessionbroker.SignedIn, UserID: user.ID, Session: &sess})
	}

	return &ports.AuthResult{
		Token:      token,
		Session:    sess,
		User:       user,
		RedirectTo: domain.LandingPath(sess.Role()),
	}, nil
}

func (s *AuthService) generateToken(sess domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":   sess.UserID,
		"sid":   sess.ID,
		"email": sess.Email,
		"type":  sess.Metadata[domain.MetadataTypeKey],
		"exp":   sess.ExpiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateSessionID returns a random 32-hex-char session id.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// generateCode returns a 6-digit one-time code.
func generateCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
	}
	n := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return fmt.Sprintf("%06d", n%1000000)
}
