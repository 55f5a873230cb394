package commands

import (
	"context"
	"log/slog"

	"roomdesk/internal/domain/user"
	reqdto "roomdesk/internal/handler/dto/request"
	"roomdesk/internal/infra"
	"roomdesk/internal/infra/db"
	"roomdesk/internal/pkg/errs"
	"roomdesk/internal/pkg/jwt"
	"roomdesk/internal/pkg/password"
	"roomdesk/internal/usecase/queries"
	"roomdesk/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrEmailAlreadyTaken    = errs.New("email already registered")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	UserID    uuid.UUID
	Role      user.Role
	TokenPair *TokenPair
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error)
	FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error)
}

type AuthCommands interface {
	Register(ctx context.Context, req reqdto.RegisterRequest) (*LoginResult, error)
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	userRepo   UserRepository
	clients    ClientRegistry
	readStore  UserReadStore
	jwtService *jwt.Service
	db         *pgxpool.Pool
}

func NewAuthCommands(
	userRepo UserRepository,
	clients ClientRegistry,
	readStore UserReadStore,
	jwtService *jwt.Service,
	pool *pgxpool.Pool,
) AuthCommands {
	return &authCommandsImpl{
		userRepo:   userRepo,
		clients:    clients,
		readStore:  readStore,
		jwtService: jwtService,
		db:         pool,
	}
}

// Register creates the account and its client profile in one
// transaction, then hands back a token pair so signup doubles as login.
func (a *authCommandsImpl) Register(ctx context.Context, req reqdto.RegisterRequest) (*LoginResult, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	if _, err := user.NewPassword(req.Password); err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	newUser := user.NewUser(email, hash, user.RoleClient)

	_, err = shared.RunInTx(ctx, a.db, func(tx db.DBTX) (struct{}, error) {
		if createErr := a.userRepo.Create(ctx, tx, newUser); createErr != nil {
			if infra.IsKind(createErr, infra.KindDuplicateKey) {
				return struct{}{}, errs.Mark(createErr, ErrEmailAlreadyTaken)
			}
			return struct{}{}, errs.Mark(createErr, ErrDatabaseOperationFailed)
		}

		if _, clientErr := a.clients.CreateForUser(ctx, tx, newUser.ID(), req.TrimmedName(), email.Value()); clientErr != nil {
			return struct{}{}, errs.Mark(clientErr, ErrDatabaseOperationFailed)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}

	return a.issueTokens(newUser.ID(), user.RoleClient)
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	account, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(account.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	result, err := a.issueTokens(account.ID, role)
	if err != nil {
		return nil, err
	}

	_, txErr := shared.RunInTx(ctx, a.db, func(tx db.DBTX) (struct{}, error) {
		if updErr := a.userRepo.UpdateLastLogin(ctx, tx, account.ID); updErr != nil {
			slog.Warn("failed to update last login", "user_id", account.ID, "error", updErr.Error())
			// Continue without failing - this is not critical
		}
		return struct{}{}, nil
	})
	if txErr != nil {
		slog.Warn("transaction failed during login", "user_id", account.ID, "error", txErr.Error())
	}

	return result, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	// Validate user still exists and is active
	account, err := a.readStore.FindByID(ctx, claims.UserID)
	if err != nil || account == nil {
		return nil, ErrUserNotFound
	}
	if !account.IsActive {
		return nil, ErrUserInactive
	}

	result, err := a.issueTokens(claims.UserID, role)
	if err != nil {
		return nil, err
	}
	return result.TokenPair, nil
}

func (a *authCommandsImpl) issueTokens(userID uuid.UUID, role user.Role) (*LoginResult, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	refreshToken, err := a.jwtService.GenerateRefreshToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID: userID,
		Role:   role,
		TokenPair: &TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials user.Credentials) (*queries.AuthorizedUserView, error) {
	account, hashedPassword, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		// Return same error as password mismatch to prevent user enumeration attacks
		return nil, ErrInvalidCredentials
	}

	if account == nil {
		return nil, ErrUserNotFound
	}
	if !account.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.Verify(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	return account, nil
}
