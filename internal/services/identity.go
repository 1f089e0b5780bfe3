package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/harentsoaR/safebridge-api/internal/apperrors"
	"github.com/harentsoaR/safebridge-api/internal/models"
	"github.com/harentsoaR/safebridge-api/internal/storage"
)

// Issuer produces opaque session tokens.
type Issuer interface {
	Issue(email, role string) (string, error)
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     string
	Location string
}

type VolunteerInput struct {
	Email        string
	Name         string
	Role         string
	Location     string
	Specialties  []string
	Availability string
	Experience   string
}

// IdentityService is mock authentication: passwords are stored and compared
// in plaintext and tokens are never verified. It is not a security boundary.
type IdentityService struct {
	users      storage.Collection
	volunteers storage.Collection
	tokens     Issuer
	log        *zap.SugaredLogger
	now        func() time.Time

	// serializes the email check and the insert in Register
	registerMu sync.Mutex
}

func NewIdentityService(store storage.Store, tokens Issuer, log *zap.SugaredLogger) *IdentityService {
	return &IdentityService{
		users:      store.Collection(storage.CollectionUsers),
		volunteers: store.Collection(storage.CollectionVolunteers),
		tokens:     tokens,
		log:        log,
		now:        time.Now,
	}
}

var errInvalidCredentials = apperrors.Auth("Invalid email or password")

// Login fails with the same error whether the email or the password is wrong.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if email == "" || password == "" {
		return nil, apperrors.Validation("Email and password are required")
	}

	var user models.User
	if err := s.users.FindOne(ctx, "email", email, &user); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, apperrors.Storage("failed to load user", err)
	}
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return nil, errInvalidCredentials
	}

	return s.session(&user)
}

func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (*models.Session, error) {
	if in.Email == "" || in.Password == "" || in.FullName == "" || in.Role == "" || in.Location == "" {
		return nil, apperrors.Validation("All fields are required")
	}

	s.registerMu.Lock()
	defer s.registerMu.Unlock()

	var existing models.User
	err := s.users.FindOne(ctx, "email", in.Email, &existing)
	switch {
	case err == nil:
		return nil, apperrors.Conflict("User already exists")
	case !errors.Is(err, storage.ErrNotFound):
		return nil, apperrors.Storage("failed to check user", err)
	}

	user := &models.User{
		Email:    in.Email,
		Password: in.Password,
		FullName: in.FullName,
		Location: in.Location,
		Role:     in.Role,
	}
	if _, err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, apperrors.Conflict("User already exists")
		}
		return nil, apperrors.Storage("failed to save user", err)
	}

	s.log.Infow("user registered", "email", user.Email, "role", user.Role)
	return s.session(user)
}

// RegisterVolunteer stores a helper profile and returns its id. No field is
// required.
func (s *IdentityService) RegisterVolunteer(ctx context.Context, in VolunteerInput) (string, error) {
	profile := &models.VolunteerProfile{
		Email:        in.Email,
		Name:         in.Name,
		Role:         in.Role,
		Location:     in.Location,
		Specialties:  in.Specialties,
		Availability: in.Availability,
		Experience:   in.Experience,
		CreatedAt:    millis(s.now()),
	}
	if profile.Role == "" {
		profile.Role = models.RoleVolunteer
	}
	if profile.Specialties == nil {
		profile.Specialties = []string{}
	}

	id, err := s.volunteers.Insert(ctx, profile)
	if err != nil {
		return "", apperrors.Storage("failed to save volunteer profile", err)
	}

	s.log.Infow("volunteer registered", "id", id, "role", profile.Role)
	return id, nil
}

func (s *IdentityService) session(user *models.User) (*models.Session, error) {
	token, err := s.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &models.Session{
		Token:    token,
		Role:     user.Role,
		FullName: user.FullName,
		Location: user.Location,
	}, nil
}
