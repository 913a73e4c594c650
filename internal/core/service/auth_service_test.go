package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/yalajobs/jobboard-api/internal/core/domain"
	"github.com/yalajobs/jobboard-api/internal/core/ports"
	sessionbroker "github.com/yalajobs/jobboard-api/internal/session"
)

type stubAuthRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = "user_" + string(rune('a'+r.nextID))
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) UpdateMetadata(_ context.Context, id string, metadata map[string]string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Metadata = metadata
	return nil
}

func (r *stubAuthRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type stubProfileRepo struct {
	profiles  map[string]*domain.JobseekerProfile
	upsertErr error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.JobseekerProfile)}
}

func (r *stubProfileRepo) Upsert(_ context.Context, profile *domain.JobseekerProfile) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *stubProfileRepo) Find(_ context.Context, role domain.Role, userID string) (*domain.JobseekerProfile, error) {
	p, ok := r.profiles[userID]
	if !ok || p.Role != role {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) FindEmailByPhone(_ context.Context, phone string) (string, error) {
	for _, p := range r.profiles {
		if p.Role == domain.RoleBlue && p.Phone == phone {
			return p.Email, nil
		}
	}
	return "", domain.ErrUserNotFound
}

func (r *stubProfileRepo) DeleteByUser(_ context.Context, _ domain.Role, userID string) error {
	delete(r.profiles, userID)
	return nil
}

type stubCompanyRepo struct {
	profiles map[string]*domain.CompanyProfile
	jobs     map[string]*domain.JobListing
	nextID   int
}

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{
		profiles: make(map[string]*domain.CompanyProfile),
		jobs:     make(map[string]*domain.JobListing),
	}
}

func (r *stubCompanyRepo) UpsertProfile(_ context.Context, profile *domain.CompanyProfile) error {
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *stubCompanyRepo) FindProfile(_ context.Context, userID string) (*domain.CompanyProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubCompanyRepo) InsertJob(_ context.Context, job *domain.JobListing) (*domain.JobListing, error) {
	r.nextID++
	clone := *job
	clone.ID = "job_" + string(rune('a'+r.nextID))
	r.jobs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCompanyRepo) ListJobs(_ context.Context, companyID string) ([]*domain.JobListing, error) {
	var out []*domain.JobListing
	for _, j := range r.jobs {
		if j.CompanyID == companyID {
			clone := *j
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCompanyRepo) DeleteJobs(_ context.Context, companyID string, ids ...string) (int64, error) {
	var n int64
	for _, id := range ids {
		if j, ok := r.jobs[id]; ok && j.CompanyID == companyID {
			delete(r.jobs, id)
			n++
		}
	}
	return n, nil
}

type stubSessionStore struct {
	sessions map[string]domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, session domain.Session) error {
	s.sessions[session.ID] = session
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type stubCodeStore struct {
	codes map[string]string
}

func newStubCodeStore() *stubCodeStore {
	return &stubCodeStore{codes: make(map[string]string)}
}

func (s *stubCodeStore) Issue(_ context.Context, purpose, identifier, code string, _ time.Duration) error {
	s.codes[purpose+":"+identifier] = code
	return nil
}

func (s *stubCodeStore) Verify(_ context.Context, purpose, identifier, code string) (bool, error) {
	key := purpose + ":" + identifier
	stored, ok := s.codes[key]
	if !ok || stored != code {
		return false, nil
	}
	delete(s.codes, key)
	return true, nil
}

type authFixture struct {
	svc       *AuthService
	repo      *stubAuthRepo
	profiles  *stubProfileRepo
	companies *stubCompanyRepo
	sessions  *stubSessionStore
	codes     *stubCodeStore
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		repo:      newStubAuthRepo(),
		profiles:  newStubProfileRepo(),
		companies: newStubCompanyRepo(),
		sessions:  newStubSessionStore(),
		codes:     newStubCodeStore(),
	}
	f.svc = NewAuthService(AuthServiceOptions{
		Repo:      f.repo,
		Profiles:  f.profiles,
		Companies: f.companies,
		Sessions:  f.sessions,
		Codes:     f.codes,
		JWTSecret: "secret",
		TokenTTL:  time.Hour,
		Logger:    zerolog.Nop(),
	})
	return f
}

func TestAuthService_SignUp_Jobseeker(t *testing.T) {
	f := newAuthFixture()

	user, err := f.svc.SignUp(context.Background(), ports.SignUpInput{
		Email:    "alice@example.com",
		Phone:    "0791234567",
		Password: "pass1234",
		Type:     "blue",
	})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if user.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if got := user.Metadata[domain.MetadataTypeKey]; got != "blue" {
		t.Fatalf("unexpected metadata type: %q", got)
	}

	profile, err := f.profiles.Find(context.Background(), domain.RoleBlue, user.ID)
	if err != nil {
		t.Fatalf("expected initial profile row: %v", err)
	}
	if profile.Email != "alice@example.com" || profile.Phone != "0791234567" {
		t.Fatalf("profile row not seeded from account: %+v", profile)
	}
}

func TestAuthService_SignUp_Company(t *testing.T) {
	f := newAuthFixture()

	user, err := f.svc.SignUp(context.Background(), ports.SignUpInput{
		Email:    "hr@acme.example",
		Password: "pass1234",
		Type:     "company",
	})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if _, err := f.companies.FindProfile(context.Background(), user.ID); err != nil {
		t.Fatalf("expected initial company profile: %v", err)
	}
}

func TestAuthService_SignUp_Validation(t *testing.T) {
	f := newAuthFixture()

	if _, err := f.svc.SignUp(context.Background(), ports.SignUpInput{Email: "", Password: "x", Type: "blue"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.svc.SignUp(context.Background(), ports.SignUpInput{Email: "a@b.c", Password: "x", Type: "purple"}); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	// Blue collar without a phone would be unreachable at sign-in.
	if _, err := f.svc.SignUp(context.Background(), ports.SignUpInput{Email: "a@b.c", Password: "x", Type: "blue"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for missing phone, got %v", err)
	}
}

func TestAuthService_SignUp_Duplicate(t *testing.T) {
	f := newAuthFixture()

	input := ports.SignUpInput{Email: "bob@example.com", Password: "pass1234", Type: "white"}
	if _, err := f.svc.SignUp(context.Background(), input); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := f.svc.SignUp(context.Background(), input); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_SignUp_RollsBackAccountOnProfileFailure(t *testing.T) {
	f := newAuthFixture()
	f.profiles.upsertErr = errors.New("profile table down")

	_, err := f.svc.SignUp(context.Background(), ports.SignUpInput{
		Email:    "carol@example.com",
		Password: "pass1234",
		Type:     "white",
	})
	if err == nil {
		t.Fatalf("expected signup to fail")
	}
	if len(f.repo.users) != 0 {
		t.Fatalf("expected auth account rollback, %d accounts remain", len(f.repo.users))
	}
}

func TestAuthService_SignIn_Password(t *testing.T) {
	f := newAuthFixture()
	_, _ = f.svc.SignUp(context.Background(), ports.SignUpInput{
		Email: "dave@example.com", Password: "s3cretpw", Type: "white",
	})

	result, err := f.svc.SignIn(context.Background(), ports.SignInInput{
		Identifier: "dave@example.com",
		Password:   "s3cretpw",
	})
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if result.RedirectTo != "/whitecollar" {
		t.Fatalf("unexpected redirect: %s", result.RedirectTo)
	}
	if _, err := f.sessions.Get(context.Background(), result.Session.ID); err != nil {
		t.Fatalf("session not stored: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["type"] != "white" {
		t.Fatalf("expected type claim white, got %v", claims["type"])
	}
	if claims["sid"] != result.Session.ID {
		t.Fatalf("sid claim does not match session id")
	}
}

func TestAuthService_SignIn_PhoneResolvesBlueCollar(t *testing.T) {
	f := newAuthFixture()
	_, _ = f.svc.SignUp(context.Background(), ports.SignUpInput{
		Email: "erin@example.com", Phone: "0785550001", Password: "s3cretpw", Type: "blue",
	})

	result, err := f.svc.SignIn(context.Background(), ports.SignInInput{
		Identifier: "0785550001",
		Password:   "s3cretpw",
		Hint:       domain.RoleBlue,
	})
	if err != nil {
		t.Fatalf("phone sign-in failed: %v", err)
	}
	if result.Session.Email != "erin@example.com" {
		t.Fatalf("phone did not resolve to account email: %+v", result.Session)
	}
	if result.RedirectTo != "/bluecollar" {
		t.Fatalf("unexpected redirect: %s", result.RedirectTo)
	}
}

func TestAuthService_SignIn_InvalidPassword(t *testing.T) {
	f := newAuthFixture()
	_, _ = f.svc.SignUp(context.Background(), ports.SignUpInput{
		Email: "frank@example.com", Password: "goodpass", Type: "white",
	})

	if _, err := f.svc.SignIn(context.Background(), ports.SignInInput{
		Identifier: "frank@example.com", Password: "badpass",
	}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_SignOut_RevokesAndIsIdempotent(t *testing.T) {
	f := newAuthFixture()
	_, _ = f.svc.SignUp(context.Background(), ports.SignUpInput{
		Email: "gina@example.com", Password: "s3cretpw", Type: "company",
	})
	result, err := f.svc.SignIn(context.Background(), ports.SignInInput{
		Identifier: "gina@example.com", Password: "s3cretpw",
	})
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	if err := f.svc.SignOut(context.Background(), result.Session.ID); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}
	if _, err := f.svc.CurrentSession(context.Background(), result.Session.ID); err != domain.ErrSessionNotFound {
		t.Fatalf("expected revoked session, got %v", err)
	}
	// Second sign-out of the same id must not error.
	if err := f.svc.SignOut(context.Background(), result.Session.ID); err != nil {
		t.Fatalf("repeat SignOut errored: %v", err)
	}
}

func TestAuthService_OneTimeCodeFlow(t *testing.T) {
	f := newAuthFixture()
	_, _ = f.svc.SignUp(context.Background(), ports.SignUpInput{
		Email: "hank@example.com", Phone: "0785550002", Password: "s3cretpw", Type: "blue",
	})

	if err := f.svc.RequestCode(context.Background(), "0785550002"); err != nil {
		t.Fatalf("RequestCode failed: %v", err)
	}
	code := f.codes.codes[otpPurpose+":0785550002"]
	if code == "" {
		t.Fatalf("expected a code to be issued")
	}

	if _, err := f.svc.SignInWithCode(context.Background(), "0785550002", "000000"); err != domain.ErrInvalidCredentials {
		if code == "000000" {
			t.Skip("collided with the generated code")
		}
		t.Fatalf("expected ErrInvalidCredentials for wrong code, got %v", err)
	}

	// The wrong attempt must not have consumed the stored code.
	result, err := f.svc.SignInWithCode(context.Background(), "0785550002", code)
	if err != nil {
		t.Fatalf("SignInWithCode failed: %v", err)
	}
	if result.Session.Role() != domain.RoleBlue {
		t.Fatalf("unexpected session role: %s", result.Session.Role())
	}

	// The code is consumed on success.
	if _, err := f.svc.SignInWithCode(context.Background(), "0785550002", code); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected consumed code to be rejected, got %v", err)
	}
}

func TestAuthService_RequestCode_UnknownPhone(t *testing.T) {
	f := newAuthFixture()
	if err := f.svc.RequestCode(context.Background(), "0780000000"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// seedRolelessAccount plants an account whose metadata never got a type,
// together with a live session carrying the same empty metadata.
func (f *authFixture) seedRolelessAccount(t *testing.T, id, email, phone string) domain.Session {
	t.Helper()
	f.repo.users[id] = &domain.User{ID: id, Email: email, Phone: phone, Metadata: map[string]string{}}
	sess := domain.Session{
		ID:        "sess_" + id,
		UserID:    id,
		Email:     email,
		Phone:     phone,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := f.sessions.Save(context.Background(), sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return sess
}

func TestAuthService_SelectRole(t *testing.T) {
	f := newAuthFixture()
	sess := f.seedRolelessAccount(t, "user_x", "ivy@example.com", "")

	result, err := f.svc.SelectRole(context.Background(), sess.ID, domain.RoleWhite)
	if err != nil {
		t.Fatalf("SelectRole failed: %v", err)
	}
	if result.RedirectTo != "/whitecollar" {
		t.Fatalf("unexpected redirect: %s", result.RedirectTo)
	}

	user, err := f.repo.FindByID(context.Background(), "user_x")
	if err != nil {
		t.Fatalf("account lookup failed: %v", err)
	}
	if got := user.Metadata[domain.MetadataTypeKey]; got != "white" {
		t.Fatalf("account metadata not updated, type=%q", got)
	}

	stored, err := f.sessions.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("session lookup failed: %v", err)
	}
	if stored.Role() != domain.RoleWhite {
		t.Fatalf("stored session role not refreshed, got %s", stored.Role())
	}

	if _, err := f.profiles.Find(context.Background(), domain.RoleWhite, "user_x"); err != nil {
		t.Fatalf("expected initial profile row: %v", err)
	}
}

func TestAuthService_SelectRole_BroadcastsMetadataUpdate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := sessionbroker.NewBroker(2, zerolog.Nop())
	broker.Start(ctx)
	subID, events := broker.Subscribe()
	defer broker.Unsubscribe(subID)

	f := newAuthFixture()
	f.svc = NewAuthService(AuthServiceOptions{
		Repo:      f.repo,
		Profiles:  f.profiles,
		Companies: f.companies,
		Sessions:  f.sessions,
		Codes:     f.codes,
		Broker:    broker,
		JWTSecret: "secret",
		TokenTTL:  time.Hour,
		Logger:    zerolog.Nop(),
	})
	sess := f.seedRolelessAccount(t, "user_y", "jo@example.com", "")

	if _, err := f.svc.SelectRole(ctx, sess.ID, domain.RoleCompany); err != nil {
		t.Fatalf("SelectRole failed: %v", err)
	}

	select {
	case event := <-events:
		if event.Kind != sessionbroker.MetadataUpdated {
			t.Fatalf("unexpected event kind: %s", event.Kind)
		}
		if event.UserID != "user_y" || event.Session == nil || event.Session.Role() != domain.RoleCompany {
			t.Fatalf("unexpected event payload: %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatalf("no metadata event observed")
	}
}

func TestAuthService_SelectRole_Refusals(t *testing.T) {
	f := newAuthFixture()
	roleless := f.seedRolelessAccount(t, "user_z", "kim@example.com", "")

	_, _ = f.svc.SignUp(context.Background(), ports.SignUpInput{
		Email: "lou@example.com", Password: "s3cretpw", Type: "white",
	})
	established, err := f.svc.SignIn(context.Background(), ports.SignInInput{
		Identifier: "lou@example.com", Password: "s3cretpw",
	})
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	cases := []struct {
		name      string
		sessionID string
		role      domain.Role
		want      error
	}{
		{"unknown role", roleless.ID, domain.Role("admin"), domain.ErrInvalidRole},
		{"established role is immutable", established.Session.ID, domain.RoleBlue, domain.ErrInvalidRole},
		{"blue requires a phone", roleless.ID, domain.RoleBlue, domain.ErrInvalidCredentials},
		{"unknown session", "sess_gone", domain.RoleWhite, domain.ErrSessionNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.svc.SelectRole(context.Background(), tc.sessionID, tc.role); err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
