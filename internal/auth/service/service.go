package service

import (
	"context"
	"errors"
	"time"

	authdomain "github.com/ardanovsky/todo-service/internal/auth/domain"
	authrepo "github.com/ardanovsky/todo-service/internal/auth/repository"
	commoncrypto "github.com/ardanovsky/todo-service/internal/common/crypto"
	commonerrors "github.com/ardanovsky/todo-service/internal/common/errors"
	"github.com/ardanovsky/todo-service/internal/common/logger"
	"github.com/ardanovsky/todo-service/internal/observability/metrics"
	userdomain "github.com/ardanovsky/todo-service/internal/user/domain"
	userrepo "github.com/ardanovsky/todo-service/internal/user/repository"
)

type AuthService struct {
	users     userrepo.Repository
	tokens    authrepo.TokenRepository
	hasher    commoncrypto.PasswordHasher
	idGen     commoncrypto.IDGenerator
	jwtSecret []byte
	now       func() time.Time
	log       *logger.Logger
}

func NewAuthService(
	users userrepo.Repository,
	tokens authrepo.TokenRepository,
	hasher commoncrypto.PasswordHasher,
	idGen commoncrypto.IDGenerator,
	jwtSecret string,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		idGen:     idGen,
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
		log:       log,
	}
}

// Register creates a user and issues their first auth token. The plaintext
// password is hashed immediately and never stored or logged.
func (s *AuthService) Register(ctx context.Context, email, password string) (userdomain.User, string, error) {
	if err := validateCredentials(email, password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return userdomain.User{}, "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return userdomain.User{}, "", commonerrors.ErrStoreFailure.WithCause(err)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return userdomain.User{}, "", commonerrors.ErrStoreFailure.WithCause(err)
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, commonerrors.ErrEmailTaken) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  email,
				"action": "register_email_taken",
			}).Warn("register failed: email already registered")
			return userdomain.User{}, "", commonerrors.ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_create_failed",
		}).Errorf("register failed: %v", err)
		return userdomain.User{}, "", commonerrors.ErrStoreFailure.WithCause(err)
	}

	token, err := s.Issue(ctx, string(user.ID), authdomain.PurposeAuth)
	if err != nil {
		return userdomain.User{}, "", err
	}

	metrics.AuthRegistrationsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "register_success",
	}).Info("register success")

	return user, token, nil
}

// Login verifies credentials and issues a fresh token. Unknown email and
// wrong password collapse into the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (userdomain.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, commonerrors.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			return userdomain.User{}, "", commonerrors.ErrInvalidCredentials
		}
		return userdomain.User{}, "", commonerrors.ErrStoreFailure.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "login_invalid_password",
		}).Warn("login failed: invalid password")
		return userdomain.User{}, "", commonerrors.ErrInvalidCredentials
	}

	token, err := s.Issue(ctx, string(user.ID), authdomain.PurposeAuth)
	if err != nil {
		return userdomain.User{}, "", err
	}

	metrics.AuthLoginsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	return user, token, nil
}

// Issue signs a token and appends it to the user's allow-list. The append is
// a required side effect: a valid signature alone grants nothing.
func (s *AuthService) Issue(ctx context.Context, userID, purpose string) (string, error) {
	jti, err := s.idGen.NewID()
	if err != nil {
		return "", commonerrors.ErrStoreFailure.WithCause(err)
	}

	token, err := signToken(s.jwtSecret, userID, purpose, jti)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "token_sign_failed",
		}).Errorf("token issue failed: %v", err)
		return "", commonerrors.ErrStoreFailure.WithCause(err)
	}

	entry := authdomain.UserToken{
		UserID:    userID,
		Purpose:   purpose,
		Token:     token,
		CreatedAt: s.now(),
	}
	if err := s.tokens.Append(ctx, entry); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "token_append_failed",
		}).Errorf("token issue failed: %v", err)
		return "", commonerrors.ErrStoreFailure.WithCause(err)
	}

	metrics.AuthTokensIssued.Inc()
	return token, nil
}

// Verify checks the signature and the allow-list. Every failure mode — bad
// signature, undecodable payload, revoked token — collapses into the same
// opaque unauthorized error so callers cannot tell them apart.
func (s *AuthService) Verify(ctx context.Context, token string) (userID, purpose string, err error) {
	metrics.AuthTokenVerifications.Inc()

	userID, purpose, parseErr := parseToken(s.jwtSecret, token)
	if parseErr != nil {
		metrics.AuthTokenVerificationsFailed.Inc()
		s.log.WithFields(ctx, logger.Fields{
			"action": "token_parse_failed",
		}).Debugf("token verification failed: %v", parseErr)
		return "", "", commonerrors.ErrUnauthorized
	}

	exists, err := s.tokens.Exists(ctx, userID, purpose, token)
	if err != nil {
		metrics.AuthTokenVerificationsFailed.Inc()
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "token_lookup_failed",
		}).Errorf("token verification failed: %v", err)
		return "", "", commonerrors.ErrUnauthorized
	}
	if !exists {
		metrics.AuthTokenVerificationsFailed.Inc()
		return "", "", commonerrors.ErrUnauthorized
	}

	return userID, purpose, nil
}

// Revoke removes the matching allow-list entry. Revoking an already-revoked
// token succeeds.
func (s *AuthService) Revoke(ctx context.Context, userID, token string) error {
	if err := s.tokens.Delete(ctx, userID, token); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "token_revoke_failed",
		}).Errorf("token revoke failed: %v", err)
		return commonerrors.ErrStoreFailure.WithCause(err)
	}

	metrics.AuthTokensRevoked.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": userID,
		"action":  "token_revoked",
	}).Info("token revoked")
	return nil
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (userdomain.User, error) {
	user, err := s.users.FindByID(ctx, userdomain.ID(userID))
	if err != nil {
		if errors.Is(err, commonerrors.ErrUserNotFound) {
			return userdomain.User{}, commonerrors.ErrUserNotFound
		}
		return userdomain.User{}, commonerrors.ErrStoreFailure.WithCause(err)
	}
	return user, nil
}
