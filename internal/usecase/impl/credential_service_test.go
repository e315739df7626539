package impl

import (
	"context"
	"testing"

	deliverycontext "authgate/internal/delivery/context"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"
	"authgate/internal/domain/service"
	mockRepo "authgate/internal/mocks/repository"
	mockSvc "authgate/internal/mocks/service"
	"authgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// credentialServiceFixtures holds all test dependencies for credential service tests.
type credentialServiceFixtures struct {
	service      usecase.CredentialUsecase
	txManager    *mockRepo.MockTransactionManager
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	notifier     *mockSvc.MockSigninNotifier
}

func createTestCredentialService(t *testing.T) credentialServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	notifier := mockSvc.NewMockSigninNotifier(t)

	svc := NewCredentialService(CredentialServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Notifier:     notifier,
		Logger:       newDiscardLogger(),
	})

	return credentialServiceFixtures{
		service:      svc,
		txManager:    txManager,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		notifier:     notifier,
	}
}

// runTx makes the transaction manager run the callback against txRepo and return its result.
func runTx(t *testing.T, f credentialServiceFixtures, txRepo *mockRepo.MockUserRepository) {
	t.Helper()

	f.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().UserRepo().Return(txRepo)

			return fn(factory)
		})
}

func signupInput() *usecase.SignupInput {
	return &usecase.SignupInput{Name: "alice", Email: "alice@example.com", Password: "s3cret"}
}

func TestCredentialService_Signup_Success(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	input := signupInput()
	txRepo := mockRepo.NewMockUserRepository(t)
	newID := uuid.New()

	runTx(t, f, txRepo)
	txRepo.EXPECT().FindByName(ctx, input.Name).Return(nil, repository.ErrUserNotFound)
	txRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	f.hasher.EXPECT().Hash(input.Password).Return("$2a$10$hashed", nil)
	txRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			assert.Equal(t, input.Name, user.Name)
			assert.Equal(t, input.Email, user.Email)
			assert.Equal(t, "$2a$10$hashed", user.PasswordHash)
			assert.NotEqual(t, input.Password, user.PasswordHash)
			user.ID = newID
		}).
		Return(nil)
	f.tokenService.EXPECT().GenerateToken(newID).Return("signed.token", nil)

	output, err := f.service.Signup(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "signed.token", output.Token)
}

func TestCredentialService_Signup_DuplicateName(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	input := signupInput()
	txRepo := mockRepo.NewMockUserRepository(t)

	runTx(t, f, txRepo)
	txRepo.EXPECT().FindByName(ctx, input.Name).Return(&entity.User{ID: uuid.New(), Name: input.Name}, nil)

	output, err := f.service.Signup(ctx, input)

	assert.Nil(t, output)
	require.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestCredentialService_Signup_DuplicateEmail(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	input := signupInput()
	txRepo := mockRepo.NewMockUserRepository(t)

	runTx(t, f, txRepo)
	txRepo.EXPECT().FindByName(ctx, input.Name).Return(nil, repository.ErrUserNotFound)
	txRepo.EXPECT().FindByEmail(ctx, input.Email).Return(&entity.User{ID: uuid.New(), Email: input.Email}, nil)

	output, err := f.service.Signup(ctx, input)

	assert.Nil(t, output)
	require.ErrorIs(t, err, domainerrors.ErrEmailAlreadyInUse)
	txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCredentialService_Signup_ConstraintViolationOnInsert(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	input := signupInput()
	txRepo := mockRepo.NewMockUserRepository(t)

	runTx(t, f, txRepo)
	txRepo.EXPECT().FindByName(ctx, input.Name).Return(nil, repository.ErrUserNotFound)
	txRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	f.hasher.EXPECT().Hash(input.Password).Return("hash", nil)
	txRepo.EXPECT().Create(ctx, mock.Anything).Return(domainerrors.ErrEmailAlreadyInUse)

	_, err := f.service.Signup(ctx, input)

	require.ErrorIs(t, err, domainerrors.ErrEmailAlreadyInUse)
}

func TestCredentialService_Signup_StoreFailureIsServerError(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	input := signupInput()
	txRepo := mockRepo.NewMockUserRepository(t)

	runTx(t, f, txRepo)
	txRepo.EXPECT().FindByName(ctx, input.Name).
		Return(nil, domainerrors.NewDatabaseExecuteError(errors.New("connection refused"), "failed to find user"))

	_, err := f.service.Signup(ctx, input)

	require.ErrorIs(t, err, domainerrors.ErrInternalError)
	assert.NotContains(t, err.Error(), "connection refused")
}

func TestCredentialService_Signup_HashFailureIsServerError(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	input := signupInput()
	txRepo := mockRepo.NewMockUserRepository(t)

	runTx(t, f, txRepo)
	txRepo.EXPECT().FindByName(ctx, input.Name).Return(nil, repository.ErrUserNotFound)
	txRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	f.hasher.EXPECT().Hash(input.Password).Return("", errors.New("entropy exhausted"))

	_, err := f.service.Signup(ctx, input)

	require.ErrorIs(t, err, domainerrors.ErrInternalError)
}

func TestCredentialService_Signin_Success(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := deliverycontext.WithRequestScope(context.Background(), "req-42", nil)
	user := &entity.User{ID: uuid.New(), Name: "alice", PasswordHash: "hash"}

	f.userRepo.EXPECT().FindByName(ctx, "alice").Return(user, nil)
	f.hasher.EXPECT().Check("s3cret", "hash").Return(true)
	f.tokenService.EXPECT().GenerateToken(user.ID).Return("signed.token", nil)
	f.notifier.EXPECT().NotifySignin(ctx, &service.SigninEvent{
		RequestID: "req-42",
		Name:      "alice",
		Password:  "s3cret",
		Message:   "Login successfully",
	}).Return()

	output, err := f.service.Signin(ctx, &usecase.SigninInput{Name: "alice", Password: "s3cret"})

	require.NoError(t, err)
	assert.Equal(t, "signed.token", output.Token)
}

func TestCredentialService_Signin_UnknownNameAndWrongPasswordMatch(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Name: "alice", PasswordHash: "hash"}

	f.userRepo.EXPECT().FindByName(ctx, "ghost").Return(nil, repository.ErrUserNotFound)
	f.hasher.EXPECT().Hash(timingPadPassword).Return("pad", nil).Once()
	f.hasher.EXPECT().Check("whatever", "pad").Return(false)

	f.userRepo.EXPECT().FindByName(ctx, "alice").Return(user, nil)
	f.hasher.EXPECT().Check("wrong", "hash").Return(false)

	_, unknownErr := f.service.Signin(ctx, &usecase.SigninInput{Name: "ghost", Password: "whatever"})
	_, wrongErr := f.service.Signin(ctx, &usecase.SigninInput{Name: "alice", Password: "wrong"})

	require.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, domainerrors.ErrInvalidCredentials)

	var a, b domainerrors.AppError
	require.True(t, errors.As(unknownErr, &a))
	require.True(t, errors.As(wrongErr, &b))
	assert.Equal(t, a.HTTPCode(), b.HTTPCode())
	assert.Equal(t, a.Message(), b.Message())

	f.tokenService.AssertNotCalled(t, "GenerateToken", mock.Anything)
	f.notifier.AssertNotCalled(t, "NotifySignin", mock.Anything, mock.Anything)
}

func TestCredentialService_Signin_StoreFailureIsServerError(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()

	f.userRepo.EXPECT().FindByName(ctx, "alice").
		Return(nil, domainerrors.NewDatabaseExecuteError(errors.New("timeout"), "failed to find user"))

	_, err := f.service.Signin(ctx, &usecase.SigninInput{Name: "alice", Password: "pw"})

	require.ErrorIs(t, err, domainerrors.ErrInternalError)
	f.notifier.AssertNotCalled(t, "NotifySignin", mock.Anything, mock.Anything)
}

func TestCredentialService_Signin_TokenFailureSkipsNotification(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Name: "alice", PasswordHash: "hash"}

	f.userRepo.EXPECT().FindByName(ctx, "alice").Return(user, nil)
	f.hasher.EXPECT().Check("pw", "hash").Return(true)
	f.tokenService.EXPECT().GenerateToken(user.ID).Return("", errors.New("signing failed"))

	_, err := f.service.Signin(ctx, &usecase.SigninInput{Name: "alice", Password: "pw"})

	require.ErrorIs(t, err, domainerrors.ErrInternalError)
	f.notifier.AssertNotCalled(t, "NotifySignin", mock.Anything, mock.Anything)
}
