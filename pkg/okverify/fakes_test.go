package okverify

import (
	"context"
	"sync"
	"testing"

	"github.com/okhi/okverify/pkg/core"
	"github.com/okhi/okverify/pkg/errors"
	"github.com/okhi/okverify/pkg/platform"
)

// fakeNative records calls and returns canned results.
type fakeNative struct {
	initArgs  map[string]any
	initCalls int
	startReq  *VerificationRequest
	startID   string
	startErr  error
	stopID    string
	stopErr   error
	fgRunning bool
	fgErr     error
	calls     []string
}

func (n *fakeNative) Init(_ context.Context, args map[string]any) error {
	n.initCalls++
	n.initArgs = args
	n.calls = append(n.calls, "init")
	return nil
}

func (n *fakeNative) Start(_ context.Context, req VerificationRequest) (string, error) {
	n.calls = append(n.calls, "start")
	n.startReq = &req
	return n.startID, n.startErr
}

func (n *fakeNative) Stop(_ context.Context, locationID string) (string, error) {
	n.calls = append(n.calls, "stop")
	if n.stopErr != nil {
		return "", n.stopErr
	}
	if n.stopID != "" {
		return n.stopID, nil
	}
	return locationID, nil
}

func (n *fakeNative) StartForegroundService(context.Context) (bool, error) {
	n.calls = append(n.calls, "startForegroundService")
	return n.fgErr == nil, n.fgErr
}

func (n *fakeNative) StopForegroundService(context.Context) (bool, error) {
	n.calls = append(n.calls, "stopForegroundService")
	return n.fgErr == nil, n.fgErr
}

func (n *fakeNative) IsForegroundServiceRunning(context.Context) (bool, error) {
	n.calls = append(n.calls, "isForegroundServiceRunning")
	return n.fgRunning, n.fgErr
}

// fakeServices answers checks from status and fails requests from errs.
// It is safe for the concurrent status checks.
type fakeServices struct {
	mu        sync.Mutex
	status    map[string]bool
	errs      map[string]error
	requests  []string
	checks    []string
	rationale *core.LocationPermissionRationale
}

func allGranted() *fakeServices {
	return &fakeServices{status: map[string]bool{
		"isGooglePlayServicesAvailable":         true,
		"isLocationPermissionGranted":           true,
		"isLocationServicesEnabled":             true,
		"isBackgroundLocationPermissionGranted": true,
	}}
}

func (s *fakeServices) check(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks = append(s.checks, name)
	if err := s.errs[name]; err != nil {
		return false, err
	}
	return s.status[name], nil
}

func (s *fakeServices) request(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, name)
	return s.errs[name]
}

func (s *fakeServices) IsGooglePlayServicesAvailable(context.Context) (bool, error) {
	return s.check("isGooglePlayServicesAvailable")
}

func (s *fakeServices) IsLocationPermissionGranted(context.Context) (bool, error) {
	return s.check("isLocationPermissionGranted")
}

func (s *fakeServices) IsBackgroundLocationPermissionGranted(context.Context) (bool, error) {
	return s.check("isBackgroundLocationPermissionGranted")
}

func (s *fakeServices) IsLocationServicesEnabled(context.Context) (bool, error) {
	return s.check("isLocationServicesEnabled")
}

func (s *fakeServices) RequestEnableGooglePlayServices(context.Context) error {
	return s.request("requestEnableGooglePlayServices")
}

func (s *fakeServices) RequestEnableLocationServices(context.Context) error {
	return s.request("requestEnableLocationServices")
}

func (s *fakeServices) RequestLocationPermission(_ context.Context, r *core.LocationPermissionRationale) error {
	s.mu.Lock()
	s.rationale = r
	s.mu.Unlock()
	return s.request("requestLocationPermission")
}

func (s *fakeServices) RequestBackgroundLocationPermission(context.Context) error {
	return s.request("requestBackgroundLocationPermission")
}

type quietHandler struct{}

func (quietHandler) HandleError(*errors.BridgeError) {}
func (quietHandler) HandlePanic(*errors.PanicError)  {}

// newAndroid returns an Android Verifier over the given fakes with error
// reporting silenced for the test.
func newAndroid(t *testing.T, n Native, s core.Services) Verifier {
	t.Helper()
	old := errors.DefaultHandler
	errors.SetHandler(quietHandler{})
	t.Cleanup(func() { errors.SetHandler(old) })
	return New(Options{Platform: platform.Android, Native: n, Services: s})
}

func validNotification() Notification {
	return Notification{
		Title:              "Verifying your address",
		Text:               "We're making sure you're at home",
		ChannelID:          "okhi",
		ChannelName:        "OkHi",
		ChannelDescription: "Address verification",
	}
}

func validConfig() StartConfig {
	return StartConfig{
		Location: Location{ID: "loc-1", Lat: -1.2921, Lon: 36.8219},
		User:     User{Phone: "+254700110590"},
		Auth:     &Auth{BranchID: "branch", ClientKey: "key", Mode: "sandbox"},
	}
}

func assertException(t *testing.T, err error, code, message string) {
	t.Helper()
	var ex *errors.Exception
	if !errors.As(err, &ex) {
		t.Fatalf("expected *errors.Exception, got %T (%v)", err, err)
	}
	if ex.Code != code || ex.Message != message {
		t.Errorf("got {%q %q}, want {%q %q}", ex.Code, ex.Message, code, message)
	}
}
