// Package firebase wraps the Firebase Admin SDK used to verify the ID tokens
// that identify platform users.
package firebase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"collab_hub_backend/internal/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// ErrEmptyToken is returned for a blank ID token.
var ErrEmptyToken = errors.New("ID token must not be empty")

// idTokenVerifier is the part of *auth.Client the service relies on.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseService verifies Firebase ID tokens.
type FirebaseService struct {
	authClient idTokenVerifier
	logger     *zap.Logger
}

// NewFirebaseService initializes the Firebase Admin SDK from the service
// account key named in the configuration.
func NewFirebaseService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*FirebaseService, error) {
	if cfg.FirebaseServiceAccountKeyPath == "" {
		return nil, fmt.Errorf("firebase service account key path is required")
	}
	cleanPath := filepath.Clean(cfg.FirebaseServiceAccountKeyPath)

	var conf *firebase.Config
	if cfg.FirebaseProjectID != "" {
		conf = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}
	app, err := firebase.NewApp(ctx, conf, option.WithCredentialsFile(cleanPath))
	if err != nil {
		logger.Error("Failed to initialize Firebase Admin SDK app", zap.Error(err), zap.String("keyPath", cleanPath))
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		logger.Error("Failed to get Firebase Auth client", zap.Error(err))
		return nil, fmt.Errorf("error getting Firebase Auth client: %w", err)
	}

	logger.Info("Firebase Admin SDK initialized successfully.")
	return newWithClient(authClient, logger), nil
}

func newWithClient(client idTokenVerifier, logger *zap.Logger) *FirebaseService {
	return &FirebaseService{authClient: client, logger: logger}
}

// VerifyIDToken verifies a Firebase ID token and returns its claims.
func (s *FirebaseService) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if idToken == "" {
		return nil, ErrEmptyToken
	}

	token, err := s.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Warn("Firebase ID token verification failed", zap.Error(err))
		return nil, fmt.Errorf("failed to verify Firebase ID token: %w", err)
	}

	s.logger.Debug("Firebase ID token verified successfully", zap.String("uid", token.UID))
	return token, nil
}
