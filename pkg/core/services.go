package core

import (
	"context"

	"github.com/okhi/okverify/pkg/errors"
	"github.com/okhi/okverify/pkg/platform"
)

// ChannelName is the method channel served by the native core module.
const ChannelName = "okhi/core"

// LocationPermissionRationale is shown before the system location prompt
// when the platform asks for one (Android).
type LocationPermissionRationale struct {
	Title           string
	Text            string
	GrantButtonText string
	DenyButtonText  string
}

func (r *LocationPermissionRationale) toArgs() map[string]any {
	if r == nil {
		return nil
	}
	args := map[string]any{}
	if r.Title != "" {
		args["title"] = r.Title
	}
	if r.Text != "" {
		args["text"] = r.Text
	}
	if r.GrantButtonText != "" {
		args["grantButtonText"] = r.GrantButtonText
	}
	if r.DenyButtonText != "" {
		args["denyButtonText"] = r.DenyButtonText
	}
	return args
}

// Services checks and requests the permissions and device services needed to
// start verification.
type Services interface {
	IsGooglePlayServicesAvailable(ctx context.Context) (bool, error)
	IsLocationPermissionGranted(ctx context.Context) (bool, error)
	IsBackgroundLocationPermissionGranted(ctx context.Context) (bool, error)
	IsLocationServicesEnabled(ctx context.Context) (bool, error)

	// RequestEnableGooglePlayServices prompts the user to install or enable
	// Google Play services.
	RequestEnableGooglePlayServices(ctx context.Context) error
	// RequestEnableLocationServices prompts the user to turn on location.
	RequestEnableLocationServices(ctx context.Context) error
	// RequestLocationPermission prompts for foreground location access.
	// The rationale may be nil.
	RequestLocationPermission(ctx context.Context, rationale *LocationPermissionRationale) error
	// RequestBackgroundLocationPermission prompts for background location access.
	RequestBackgroundLocationPermission(ctx context.Context) error
}

// ChannelServices implements Services over the native core module.
type ChannelServices struct {
	channel *platform.MethodChannel
}

// NewChannelServices returns Services backed by the "okhi/core" channel.
func NewChannelServices() *ChannelServices {
	return &ChannelServices{channel: platform.NewMethodChannel(ChannelName)}
}

func (s *ChannelServices) IsGooglePlayServicesAvailable(ctx context.Context) (bool, error) {
	return s.check(ctx, "isGooglePlayServicesAvailable")
}

func (s *ChannelServices) IsLocationPermissionGranted(ctx context.Context) (bool, error) {
	return s.check(ctx, "isLocationPermissionGranted")
}

func (s *ChannelServices) IsBackgroundLocationPermissionGranted(ctx context.Context) (bool, error) {
	return s.check(ctx, "isBackgroundLocationPermissionGranted")
}

func (s *ChannelServices) IsLocationServicesEnabled(ctx context.Context) (bool, error) {
	return s.check(ctx, "isLocationServicesEnabled")
}

func (s *ChannelServices) RequestEnableGooglePlayServices(ctx context.Context) error {
	return s.request(ctx, "requestEnableGooglePlayServices", nil)
}

func (s *ChannelServices) RequestEnableLocationServices(ctx context.Context) error {
	return s.request(ctx, "requestEnableLocationServices", nil)
}

func (s *ChannelServices) RequestLocationPermission(ctx context.Context, rationale *LocationPermissionRationale) error {
	var args map[string]any
	if r := rationale.toArgs(); r != nil {
		args = map[string]any{"rationale": r}
	}
	return s.request(ctx, "requestLocationPermission", args)
}

func (s *ChannelServices) RequestBackgroundLocationPermission(ctx context.Context) error {
	return s.request(ctx, "requestBackgroundLocationPermission", nil)
}

func (s *ChannelServices) check(ctx context.Context, method string) (bool, error) {
	result, err := s.channel.InvokeContext(ctx, method, nil)
	if err != nil {
		return false, s.fail(method, err)
	}
	ok, err := platform.ResultBool(ChannelName, result, "result")
	if err != nil {
		return false, s.fail(method, err)
	}
	return ok, nil
}

func (s *ChannelServices) request(ctx context.Context, method string, args map[string]any) error {
	if _, err := s.channel.InvokeContext(ctx, method, args); err != nil {
		return s.fail(method, err)
	}
	return nil
}

// fail reports err and returns its normalized form.
func (s *ChannelServices) fail(method string, err error) error {
	errors.Report(&errors.BridgeError{
		Op:      "core." + method,
		Kind:    errors.KindOf(err, errors.KindPermission),
		Channel: s.channel.Name(),
		Err:     err,
	})
	return errors.Normalize(err)
}
