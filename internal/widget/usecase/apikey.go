package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"widget-srv/internal/model"
	"widget-srv/internal/widget"
	"widget-srv/internal/widget/repository"
)

const apiKeyBytes = 24

// generateAPIKey returns a fresh plaintext key and its bcrypt hash.
func generateAPIKey() (string, string, error) {
	raw := make([]byte, apiKeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	key := fmt.Sprintf("wk_%s", hex.EncodeToString(raw))

	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return key, string(hash), nil
}

// RotateAPIKey replaces the widget's API key. The old key stops working
// immediately.
func (uc *implUseCase) RotateAPIKey(ctx context.Context, sc model.Scope, input widget.RotateKeyInput) (widget.RotateKeyOutput, error) {
	if _, err := uc.getOwned(ctx, sc, input.WidgetID); err != nil {
		return widget.RotateKeyOutput{}, err
	}

	apiKey, keyHash, err := generateAPIKey()
	if err != nil {
		uc.l.Errorf(ctx, "widget.usecase.RotateAPIKey: Failed to generate api key: %v", err)
		return widget.RotateKeyOutput{}, widget.ErrOperationFailed
	}

	if err := uc.repo.UpdateKeyHash(ctx, repository.UpdateKeyHashOptions{
		WidgetID:   input.WidgetID,
		APIKeyHash: keyHash,
	}); err != nil {
		uc.l.Errorf(ctx, "widget.usecase.RotateAPIKey: Failed to store key hash: %v", err)
		return widget.RotateKeyOutput{}, widget.ErrOperationFailed
	}

	return widget.RotateKeyOutput{APIKey: apiKey}, nil
}

// VerifyKey checks an API key against the stored hash. Used by the
// embed bootstrap endpoint, which carries no user session.
func (uc *implUseCase) VerifyKey(ctx context.Context, input widget.VerifyKeyInput) (model.Widget, error) {
	w, err := uc.repo.GetByID(ctx, input.WidgetID)
	if err == repository.ErrWidgetNotFound {
		return model.Widget{}, widget.ErrWidgetNotFound
	}
	if err != nil {
		uc.l.Errorf(ctx, "widget.usecase.VerifyKey: Failed to get widget: %v", err)
		return model.Widget{}, widget.ErrOperationFailed
	}
	if w.Status != widget.StatusActive {
		return model.Widget{}, widget.ErrWidgetNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(w.APIKeyHash), []byte(input.APIKey)); err != nil {
		return model.Widget{}, widget.ErrKeyMismatch
	}

	return *w, nil
}
