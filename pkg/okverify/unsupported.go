package okverify

import (
	"context"

	"github.com/okhi/okverify/pkg/errors"
)

// unsupportedVerifier serves platforms without the native module. Operations
// that only read state or are already satisfied succeed; operations that
// would change native state fail with errors.UnsupportedPlatformCode.
type unsupportedVerifier struct{}

func (unsupportedVerifier) Supported() bool { return false }

func (unsupportedVerifier) Init(context.Context, *Notification) error { return nil }

func (unsupportedVerifier) StartVerification(context.Context, StartConfig) (string, error) {
	return "", errors.UnsupportedPlatform()
}

func (unsupportedVerifier) StopVerification(_ context.Context, locationID string) (string, error) {
	return locationID, nil
}

func (unsupportedVerifier) CanStartVerification(context.Context, CanStartOptions) (bool, error) {
	return false, errors.UnsupportedPlatform()
}

func (unsupportedVerifier) StartForegroundService(context.Context) (bool, error) {
	return false, errors.UnsupportedPlatform()
}

func (unsupportedVerifier) StopForegroundService(context.Context) (bool, error) {
	return false, errors.UnsupportedPlatform()
}

func (unsupportedVerifier) IsForegroundServiceRunning(context.Context) (bool, error) {
	return false, nil
}
