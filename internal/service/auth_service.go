package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iliyamo/cinepedia/internal/metrics"
	"github.com/iliyamo/cinepedia/internal/model"
	"github.com/iliyamo/cinepedia/internal/repository"
)

// RegisterInput is the sign-up form.  Field order in the rules passed to
// check decides which message wins when several fields are wrong.
type RegisterInput struct {
	FirstName string `form:"first_name" validate:"required,min=2"`
	LastName  string `form:"last_name" validate:"required,min=2"`
	Email     string `form:"email" validate:"required,emailshape"`
	Password  string `form:"password" validate:"required,bcryptmax"`
	Confirm   string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// LoginInput is the sign-in form.
type LoginInput struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// AuthService registers users and checks their credentials.
type AuthService struct {
	users  UserStore
	hasher *passwordHasher
	log    zerolog.Logger
}

// NewAuthService wires an AuthService.  bcryptCost outside bcrypt's range
// falls back to bcrypt.DefaultCost.
func NewAuthService(users UserStore, bcryptCost int, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: newPasswordHasher(bcryptCost), log: log}
}

// Register validates in, rejects a taken email and stores the new user
// with a bcrypt password hash.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (u *model.User, err error) {
	defer func() { metrics.AuthAttemptsTotal.WithLabelValues("register", Outcome(err)).Inc() }()

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = repository.NormalizeEmail(in.Email)

	if err := check(in,
		rule{"required", MsgAllFieldsRequired},
		rule{"min", MsgNameTooShort},
		rule{"eqfield", MsgPasswordMismatch},
		rule{"emailshape", MsgInvalidEmail},
		rule{"bcryptmax", MsgPasswordTooLong},
	); err != nil {
		return nil, err
	}

	exists, err := s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ConflictError{Msg: MsgEmailTaken}
	}

	hash, err := s.hasher.hash(in.Password)
	if err != nil {
		return nil, err
	}
	u = &model.User{
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// lost a race with a concurrent sign-up; the unique index decided
		if errors.Is(err, repository.ErrConflict) {
			return nil, &ConflictError{Msg: MsgEmailTaken}
		}
		return nil, err
	}
	s.log.Info().Uint64("user_id", u.ID).Msg("user registered")
	return u, nil
}

// Login returns the user whose email and password match.  Unknown emails
// and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (u *model.User, err error) {
	defer func() { metrics.AuthAttemptsTotal.WithLabelValues("login", Outcome(err)).Inc() }()

	in := LoginInput{Email: repository.NormalizeEmail(email), Password: password}
	if err := check(in, rule{"required", MsgCredentialsRequired}); err != nil {
		return nil, err
	}

	u, err = s.users.GetByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		s.hasher.burn(in.Password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.verify(u.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Profile returns the stored user for id.
func (s *AuthService) Profile(ctx context.Context, id uint64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}
