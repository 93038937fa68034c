// Package http provides HTTP handlers for sealing and unsealing burn-after-read
// secrets. A secret can be read exactly once; the handler never caches plaintext.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/allisson/nyx/internal/crypto/domain"
	"github.com/allisson/nyx/internal/httputil"
	"github.com/allisson/nyx/internal/secrets/http/dto"
	secretsUseCase "github.com/allisson/nyx/internal/secrets/usecase"
	customValidation "github.com/allisson/nyx/internal/validation"
)

// SecretHandler handles HTTP requests for secret operations.
type SecretHandler struct {
	secretUseCase   secretsUseCase.SecretUseCase
	maxContentBytes int
	logger          *slog.Logger
}

// NewSecretHandler creates a new secret handler with required dependencies.
func NewSecretHandler(
	secretUseCase secretsUseCase.SecretUseCase,
	maxContentBytes int,
	logger *slog.Logger,
) *SecretHandler {
	return &SecretHandler{
		secretUseCase:   secretUseCase,
		maxContentBytes: maxContentBytes,
		logger:          logger,
	}
}

// SealHandler seals a secret and returns its reference.
// POST /v1/secrets
// Returns 201 Created with the reference (never the key or ciphertext).
func (h *SecretHandler) SealHandler(c *gin.Context) {
	var req dto.SealSecretRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.maxContentBytes); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	plaintext := []byte(req.Content)
	defer cryptoDomain.Zero(plaintext)

	sealed, err := h.secretUseCase.Seal(c.Request.Context(), plaintext, req.KeySizeBits)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapSealedSecretToResponse(sealed))
}

// UnsealHandler consumes a secret and returns its content.
// GET /v1/secrets/:reference
// Returns 200 OK with the plaintext. A second request for the same reference gets 404.
func (h *SecretHandler) UnsealHandler(c *gin.Context) {
	h.unseal(c, c.Param("reference"))
}

// LegacyEncryptHandler seals a secret using the first-generation request shape.
// POST /encrypt
// Returns 200 OK with {"key": reference}.
func (h *SecretHandler) LegacyEncryptHandler(c *gin.Context) {
	var req dto.LegacyEncryptRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.maxContentBytes); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	plaintext := []byte(req.Content)
	defer cryptoDomain.Zero(plaintext)

	sealed, err := h.secretUseCase.Seal(c.Request.Context(), plaintext, 0)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.LegacyEncryptResponse{Key: sealed.Reference})
}

// LegacyDecryptHandler consumes a secret through the first-generation route.
// GET /decrypt/:key
func (h *SecretHandler) LegacyDecryptHandler(c *gin.Context) {
	h.unseal(c, c.Param("key"))
}

func (h *SecretHandler) unseal(c *gin.Context, reference string) {
	ctx := c.Request.Context()

	plaintext, err := h.secretUseCase.Unseal(ctx, reference)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// SECURITY: Zero plaintext after the response is written
	defer cryptoDomain.Zero(plaintext)

	// The record is already gone. If the client left, the secret is lost with it.
	if ctxErr := ctx.Err(); ctxErr != nil && h.logger != nil {
		h.logger.Warn("client disconnected before secret was delivered",
			slog.Bool("canceled", errors.Is(ctxErr, context.Canceled)),
			slog.Any("error", ctxErr),
		)
	}

	c.JSON(http.StatusOK, dto.UnsealSecretResponse{Content: string(plaintext)})
}
