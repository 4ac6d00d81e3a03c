package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/internal/store"
	"github.com/MKhiriev/go-shop-guard/internal/validators"
	"github.com/MKhiriev/go-shop-guard/models"
)

// profileService is the concrete implementation of ProfileService.
//
// The repository seals and opens the protected attributes; this service owns
// validation and the rule that a profile update and its audit entry commit
// together or not at all.
type profileService struct {
	db              store.Database
	userRepository  store.UserRepository
	auditRepository store.AuditRepository
	validator       validators.Validator
	logger          *logger.Logger
}

// NewProfileService constructs a ProfileService over the given repositories.
func NewProfileService(db store.Database, users store.UserRepository, audit store.AuditRepository, logger *logger.Logger) ProfileService {
	return &profileService{
		db:              db,
		userRepository:  users,
		auditRepository: audit,
		validator:       validators.NewEntityValidator(),
		logger:          logger,
	}
}

// GetProfile returns the user with protected attributes decrypted. A row
// whose sealed columns cannot be opened surfaces store.ErrStorageIntegrity
// unchanged; no partial profile is returned.
func (s *profileService) GetProfile(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	return user, nil
}

// UpdateProfile rewrites the mutable profile attributes of user.UserID and
// appends the UPDATE audit entry in the same transaction. The audit detail
// names which attributes changed but never their values; phone and address
// plaintext stays out of the log.
func (s *profileService) UpdateProfile(ctx context.Context, user models.User, address string) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, user, validators.FieldUserID, validators.FieldUsername); err != nil {
		log.Error().Err(err).Msg("invalid profile data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	changed := []string{"username", "first_name", "last_name"}
	if user.Phone != nil {
		changed = append(changed, "phone")
	}
	if user.Address != nil {
		changed = append(changed, "address")
	}

	var updated models.User
	err := s.db.WithinTransaction(ctx, func(q store.Querier) error {
		var txErr error
		updated, txErr = s.userRepository.UpdateProfile(ctx, q, user)
		if txErr != nil {
			return txErr
		}

		detail, txErr := json.Marshal(map[string]any{"changed": changed})
		if txErr != nil {
			return txErr
		}
		entry := models.AuditEntry{
			ActorID:      &user.UserID,
			ResourceType: user.TableName(),
			ResourceID:   fmt.Sprintf("%d", user.UserID),
			Action:       models.AuditActionUpdate,
			Detail:       strPointer(string(detail)),
			Address:      address,
			Timestamp:    time.Now(),
		}
		_, txErr = s.auditRepository.Append(ctx, q, entry)
		return txErr
	})
	if err != nil {
		log.Err(err).Int64("userID", user.UserID).Msg("profile update ended with error")
		return models.User{}, fmt.Errorf("profile update ended with error: %w", err)
	}

	return updated, nil
}
