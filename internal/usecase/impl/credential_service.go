// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "authgate/internal/delivery/context"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"
	"authgate/internal/domain/service"
	"authgate/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// timingPadPassword is hashed once and compared against on unknown names, so a
// miss costs about as much as a wrong password.
const timingPadPassword = "authgate-timing-pad"

// credentialService implements the CredentialUsecase interface.
type credentialService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	notifier     service.SigninNotifier
	logger       *slog.Logger

	padOnce sync.Once
	padHash string
}

// CredentialServiceParams holds dependencies for CredentialService, injected by Fx.
type CredentialServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Notifier     service.SigninNotifier
	Logger       *slog.Logger
}

// NewCredentialService is the constructor for credentialService.
func NewCredentialService(params CredentialServiceParams) usecase.CredentialUsecase {
	return &credentialService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		notifier:     params.Notifier,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *credentialService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

// Signup registers a user and returns a token for it.
//
// The name check runs before the email check, so a request colliding on both
// reports the name.
func (srv *credentialService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.TokenOutput, error) {
	var created *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		taken, err := exists(userRepo.FindByName(ctx, input.Name))
		if err != nil {
			return errors.Wrap(err, "failed to look up name")
		}
		if taken {
			return domainerrors.ErrUserAlreadyExists
		}

		taken, err = exists(userRepo.FindByEmail(ctx, input.Email))
		if err != nil {
			return errors.Wrap(err, "failed to look up email")
		}
		if taken {
			return domainerrors.ErrEmailAlreadyInUse
		}

		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}

		user := &entity.User{
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: hash,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		created = user

		return nil
	})
	if err != nil {
		return nil, srv.clientError(ctx, "Signup failed", err)
	}

	token, err := srv.tokenService.GenerateToken(created.ID)
	if err != nil {
		return nil, srv.clientError(ctx, "Failed to issue token after signup", err)
	}

	srv.log(ctx).Info("User signed up", slog.String("userID", created.ID.String()))

	return &usecase.TokenOutput{Token: token}, nil
}

// Signin verifies the credentials, issues a token and reports the sign-in.
func (srv *credentialService) Signin(ctx context.Context, input *usecase.SigninInput) (*usecase.TokenOutput, error) {
	user, err := srv.userRepo.FindByName(ctx, input.Name)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.hasher.Check(input.Password, srv.timingPad())
		srv.log(ctx).Debug("Signin for unknown name")

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "unknown name")
	}
	if err != nil {
		return nil, srv.clientError(ctx, "Failed to load user for signin", err)
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Debug("Signin password mismatch", slog.String("userID", user.ID.String()))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	token, err := srv.tokenService.GenerateToken(user.ID)
	if err != nil {
		return nil, srv.clientError(ctx, "Failed to issue token at signin", err)
	}

	srv.notifier.NotifySignin(ctx, &service.SigninEvent{
		RequestID: deliverycontext.RequestID(ctx),
		Name:      user.Name,
		Password:  input.Password,
		Message:   service.SigninSuccessMessage,
	})

	return &usecase.TokenOutput{Token: token}, nil
}

func exists(_ *entity.User, err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrUserNotFound):
		return false, nil
	default:
		return false, err
	}
}

// clientError logs err and returns what the caller may see: 4xx application errors pass
// through, everything else becomes a generic server error.
func (srv *credentialService) clientError(ctx context.Context, msg string, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() < 500 {
		srv.log(ctx).Debug(msg, slog.String("reason", appErr.ErrorCode()))

		return err
	}

	srv.log(ctx).Error(msg, slog.Any("error", err))

	return errors.Wrap(domainerrors.ErrInternalError, msg)
}

func (srv *credentialService) timingPad() string {
	srv.padOnce.Do(func() {
		hash, err := srv.hasher.Hash(timingPadPassword)
		if err == nil {
			srv.padHash = hash
		}
	})

	return srv.padHash
}
