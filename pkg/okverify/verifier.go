package okverify

import (
	"context"

	"github.com/okhi/okverify/pkg/core"
	"github.com/okhi/okverify/pkg/errors"
	"github.com/okhi/okverify/pkg/platform"
)

// Verifier is the address verification API.
type Verifier interface {
	// Supported reports whether the running platform can verify addresses.
	Supported() bool

	// Init prepares the native module. A nil notification initializes it
	// without a foreground service notification. An invalid notification
	// fails with errors.BadRequestCode before the native module is called.
	Init(ctx context.Context, notification *Notification) error

	// StartVerification starts verifying cfg.Location and returns its id.
	StartVerification(ctx context.Context, cfg StartConfig) (string, error)

	// StopVerification stops verifying a location and returns its id.
	StopVerification(ctx context.Context, locationID string) (string, error)

	// CanStartVerification reports whether every permission and device
	// service needed for verification is in place, optionally asking the
	// user for the missing ones first.
	CanStartVerification(ctx context.Context, opts CanStartOptions) (bool, error)

	// StartForegroundService starts the native upload service. It only has
	// an effect after a successful StartVerification and an Init with a
	// notification; otherwise the native module rejects the call.
	StartForegroundService(ctx context.Context) (bool, error)
	StopForegroundService(ctx context.Context) (bool, error)
	IsForegroundServiceRunning(ctx context.Context) (bool, error)
}

// Options configures New.
type Options struct {
	// Platform overrides the detected platform. Empty means platform.OS().
	Platform string
	// Native overrides the native module. Nil means NewChannelNative().
	Native Native
	// Services overrides the permission and service checks.
	// Nil means core.NewChannelServices().
	Services core.Services
	// RequireAuth makes StartConfig.Auth mandatory.
	RequireAuth bool
}

// New returns the Verifier for the configured platform.
func New(opts Options) Verifier {
	p := opts.Platform
	if p == "" {
		p = platform.OS()
	}
	if p != platform.Android {
		return unsupportedVerifier{}
	}
	if opts.Native == nil {
		opts.Native = NewChannelNative()
	}
	if opts.Services == nil {
		opts.Services = core.NewChannelServices()
	}
	return &verifier{
		native:      opts.Native,
		services:    opts.Services,
		requireAuth: opts.RequireAuth,
	}
}

type verifier struct {
	native      Native
	services    core.Services
	requireAuth bool
}

func (v *verifier) Supported() bool { return true }

func (v *verifier) Init(ctx context.Context, notification *Notification) error {
	args := map[string]any{}
	if notification != nil {
		if !ValidateNotification(*notification) {
			return errors.BadRequest("invalid notification structure")
		}
		args = notification.toArgs()
	}
	return v.initNative(ctx, args)
}

func (v *verifier) initNative(ctx context.Context, args map[string]any) error {
	if err := v.native.Init(ctx, args); err != nil {
		return v.fail("okverify.init", err)
	}
	return nil
}

func (v *verifier) StartVerification(ctx context.Context, cfg StartConfig) (string, error) {
	req, err := buildRequest(cfg, v.requireAuth)
	if err != nil {
		return "", err
	}
	return v.startNative(ctx, req)
}

func (v *verifier) startNative(ctx context.Context, req VerificationRequest) (string, error) {
	id, err := v.native.Start(ctx, req)
	if err != nil {
		return "", v.fail("okverify.start", err)
	}
	return id, nil
}

func (v *verifier) StopVerification(ctx context.Context, locationID string) (string, error) {
	id, err := v.native.Stop(ctx, locationID)
	if err != nil {
		return "", v.fail("okverify.stop", err)
	}
	return id, nil
}

func (v *verifier) CanStartVerification(ctx context.Context, opts CanStartOptions) (bool, error) {
	steps, checks := v.preflight(opts)
	return runPreflight(ctx, steps, checks)
}

func (v *verifier) StartForegroundService(ctx context.Context) (bool, error) {
	ok, err := v.native.StartForegroundService(ctx)
	if err != nil {
		return false, v.fail("okverify.startForegroundService", err)
	}
	return ok, nil
}

func (v *verifier) StopForegroundService(ctx context.Context) (bool, error) {
	ok, err := v.native.StopForegroundService(ctx)
	if err != nil {
		return false, v.fail("okverify.stopForegroundService", err)
	}
	return ok, nil
}

func (v *verifier) IsForegroundServiceRunning(ctx context.Context) (bool, error) {
	ok, err := v.native.IsForegroundServiceRunning(ctx)
	if err != nil {
		return false, v.fail("okverify.isForegroundServiceRunning", err)
	}
	return ok, nil
}

// fail reports a native failure and returns its normalized form.
func (v *verifier) fail(op string, err error) error {
	errors.Report(&errors.BridgeError{
		Op:      op,
		Kind:    errors.KindOf(err, errors.KindNative),
		Channel: ChannelName,
		Err:     err,
	})
	return errors.Normalize(err)
}
