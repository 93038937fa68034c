package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/nyx/internal/crypto/domain"

	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

var kmsProbe = []byte("nyx-kms-probe")

// KMSService opens the keeper that wraps stored private key material.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}

type kmsService struct{}

// NewKMSService returns a KMSService backed by gocloud.dev/secrets.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens keyURI (gcpkms://, awskms://, azurekeyvault://, hashivault://
// or base64key://) and proves the key works with an encrypt/decrypt round trip.
// A key that cannot round-trip would make every sealed secret unreadable, so it is
// rejected at startup rather than on the first unseal.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}

	if err := probeKeeper(ctx, keeper); err != nil {
		return nil, errors.Join(err, keeper.Close())
	}
	return keeper, nil
}

func probeKeeper(ctx context.Context, keeper cryptoDomain.KMSKeeper) error {
	wrapped, err := keeper.Encrypt(ctx, kmsProbe)
	if err != nil {
		return fmt.Errorf("kms probe encrypt failed: %w", err)
	}
	unwrapped, err := keeper.Decrypt(ctx, wrapped)
	if err != nil {
		return fmt.Errorf("kms probe decrypt failed: %w", err)
	}
	if !bytes.Equal(unwrapped, kmsProbe) {
		return errors.New("kms probe returned different bytes")
	}
	return nil
}
