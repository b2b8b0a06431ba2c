package okverify

import (
	"context"
	"reflect"
	"testing"

	"github.com/okhi/okverify/pkg/errors"
	"github.com/okhi/okverify/pkg/platform"
)

func TestNewSelectsStrategy(t *testing.T) {
	if New(Options{Platform: platform.IOS}).Supported() {
		t.Error("iOS should be unsupported")
	}
	v := New(Options{Platform: platform.Android, Native: &fakeNative{}, Services: allGranted()})
	if !v.Supported() {
		t.Error("Android should be supported")
	}
}

func TestInit(t *testing.T) {
	ctx := context.Background()

	t.Run("valid notification is forwarded", func(t *testing.T) {
		n := &fakeNative{}
		v := newAndroid(t, n, allGranted())
		cfg := validNotification()
		if err := v.Init(ctx, &cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(n.initArgs, cfg.toArgs()) {
			t.Errorf("native init got %v, want %v", n.initArgs, cfg.toArgs())
		}
	})

	t.Run("invalid notification is rejected", func(t *testing.T) {
		n := &fakeNative{}
		v := newAndroid(t, n, allGranted())
		cfg := validNotification()
		cfg.ChannelID = ""
		err := v.Init(ctx, &cfg)
		assertException(t, err, errors.BadRequestCode, "invalid notification structure")
		if n.initCalls != 0 {
			t.Error("native init should not be called")
		}
	})

	t.Run("no notification sends empty object", func(t *testing.T) {
		n := &fakeNative{}
		v := newAndroid(t, n, allGranted())
		if err := v.Init(ctx, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.initCalls != 1 || n.initArgs == nil || len(n.initArgs) != 0 {
			t.Errorf("expected one init with empty args, got %d calls with %v", n.initCalls, n.initArgs)
		}
	})

	t.Run("unsupported platform is a no-op", func(t *testing.T) {
		cfg := validNotification()
		cfg.Title = ""
		if err := New(Options{Platform: platform.IOS}).Init(ctx, &cfg); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

func TestStartVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves with native id", func(t *testing.T) {
		n := &fakeNative{startID: "loc-1-native"}
		v := newAndroid(t, n, allGranted())
		id, err := v.StartVerification(ctx, validConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "loc-1-native" {
			t.Errorf("got %q, want %q", id, "loc-1-native")
		}
		want := VerificationRequest{
			LocationID: "loc-1",
			Phone:      "+254700110590",
			Lat:        -1.2921,
			Lon:        36.8219,
			BranchID:   "branch",
			ClientKey:  "key",
			Mode:       "sandbox",
		}
		if *n.startReq != want {
			t.Errorf("native start got %+v, want %+v", *n.startReq, want)
		}
	})

	t.Run("id is checked before phone", func(t *testing.T) {
		n := &fakeNative{}
		v := newAndroid(t, n, allGranted())
		cfg := validConfig()
		cfg.Location.ID = ""
		cfg.User.Phone = ""
		_, err := v.StartVerification(ctx, cfg)
		assertException(t, err, errors.BadRequestCode, "Missing id from location object")
		if len(n.calls) != 0 {
			t.Errorf("native should not be called, got %v", n.calls)
		}
	})

	t.Run("native rejection without code", func(t *testing.T) {
		n := &fakeNative{startErr: platform.NewChannelError("", "timeout")}
		v := newAndroid(t, n, allGranted())
		_, err := v.StartVerification(ctx, validConfig())
		assertException(t, err, errors.UnknownErrorCode, "timeout")
	})

	t.Run("native rejection with code", func(t *testing.T) {
		n := &fakeNative{startErr: platform.NewChannelError("network_error", "offline")}
		v := newAndroid(t, n, allGranted())
		_, err := v.StartVerification(ctx, validConfig())
		assertException(t, err, "network_error", "offline")
	})

	t.Run("unsupported platform", func(t *testing.T) {
		_, err := New(Options{Platform: platform.IOS}).StartVerification(ctx, validConfig())
		assertException(t, err, errors.UnsupportedPlatformCode, errors.UnsupportedPlatformMessage)
	})

	t.Run("auth required", func(t *testing.T) {
		old := errors.DefaultHandler
		errors.SetHandler(quietHandler{})
		t.Cleanup(func() { errors.SetHandler(old) })

		v := New(Options{Platform: platform.Android, Native: &fakeNative{}, Services: allGranted(), RequireAuth: true})
		cfg := validConfig()
		cfg.Auth = nil
		_, err := v.StartVerification(ctx, cfg)
		assertException(t, err, errors.UnauthorizedCode, "Missing credentials from authentication object")
	})
}

func TestStopVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported resolves with input", func(t *testing.T) {
		id, err := New(Options{Platform: platform.IOS}).StopVerification(ctx, "loc-9")
		if err != nil || id != "loc-9" {
			t.Errorf("got %q, %v; want %q, nil", id, err, "loc-9")
		}
	})

	t.Run("returns native result unchanged", func(t *testing.T) {
		n := &fakeNative{stopID: "stopped-loc-9"}
		id, err := newAndroid(t, n, allGranted()).StopVerification(ctx, "loc-9")
		if err != nil || id != "stopped-loc-9" {
			t.Errorf("got %q, %v", id, err)
		}
	})

	t.Run("native rejection is normalized", func(t *testing.T) {
		n := &fakeNative{stopErr: platform.NewChannelError("E3", "not found")}
		_, err := newAndroid(t, n, allGranted()).StopVerification(ctx, "loc-9")
		assertException(t, err, "E3", "not found")
	})
}

func TestForegroundService(t *testing.T) {
	ctx := context.Background()

	t.Run("pass-through", func(t *testing.T) {
		n := &fakeNative{fgRunning: true}
		v := newAndroid(t, n, allGranted())
		if ok, err := v.StartForegroundService(ctx); err != nil || !ok {
			t.Errorf("start: got %v, %v", ok, err)
		}
		if running, err := v.IsForegroundServiceRunning(ctx); err != nil || !running {
			t.Errorf("running: got %v, %v", running, err)
		}
		if ok, err := v.StopForegroundService(ctx); err != nil || !ok {
			t.Errorf("stop: got %v, %v", ok, err)
		}
		want := []string{"startForegroundService", "isForegroundServiceRunning", "stopForegroundService"}
		if !reflect.DeepEqual(n.calls, want) {
			t.Errorf("calls = %v, want %v", n.calls, want)
		}
	})

	t.Run("rejection is normalized", func(t *testing.T) {
		n := &fakeNative{fgErr: platform.NewChannelError("", "no notification configured")}
		v := newAndroid(t, n, allGranted())
		_, err := v.StartForegroundService(ctx)
		assertException(t, err, errors.UnknownErrorCode, "no notification configured")
		_, err = v.StopForegroundService(ctx)
		assertException(t, err, errors.UnknownErrorCode, "no notification configured")
		_, err = v.IsForegroundServiceRunning(ctx)
		assertException(t, err, errors.UnknownErrorCode, "no notification configured")
	})

	t.Run("unsupported platform", func(t *testing.T) {
		v := New(Options{Platform: platform.IOS})
		_, err := v.StartForegroundService(ctx)
		assertException(t, err, errors.UnsupportedPlatformCode, errors.UnsupportedPlatformMessage)
		_, err = v.StopForegroundService(ctx)
		assertException(t, err, errors.UnsupportedPlatformCode, errors.UnsupportedPlatformMessage)
		if running, err := v.IsForegroundServiceRunning(ctx); err != nil || running {
			t.Errorf("got %v, %v; want false, nil", running, err)
		}
	})
}

func TestNativeFailuresAreReported(t *testing.T) {
	var reported []*errors.BridgeError
	old := errors.DefaultHandler
	errors.SetHandler(&captureHandler{errs: &reported})
	t.Cleanup(func() { errors.SetHandler(old) })

	v := New(Options{
		Platform: platform.Android,
		Native:   &fakeNative{startErr: platform.NewChannelError("E1", "boom")},
		Services: allGranted(),
	})
	_, _ = v.StartVerification(context.Background(), validConfig())

	if len(reported) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reported))
	}
	if reported[0].Op != "okverify.start" || reported[0].Kind != errors.KindNative {
		t.Errorf("unexpected report %+v", reported[0])
	}
}

type captureHandler struct {
	errs *[]*errors.BridgeError
}

func (h *captureHandler) HandleError(err *errors.BridgeError) { *h.errs = append(*h.errs, err) }
func (h *captureHandler) HandlePanic(*errors.PanicError)      {}

func TestMissingBridgeIsReportedAsPlatform(t *testing.T) {
	var reported []*errors.BridgeError
	old := errors.DefaultHandler
	errors.SetHandler(&captureHandler{errs: &reported})
	t.Cleanup(func() { errors.SetHandler(old) })
	platform.ResetForTest()

	v := New(Options{Platform: platform.Android, Services: allGranted()})
	_, err := v.StopVerification(context.Background(), "loc-1")
	assertException(t, err, errors.UnsupportedPlatformCode, "platform feature unavailable")

	if len(reported) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reported))
	}
	if r := reported[0]; r.Op != "okverify.stop" || r.Kind != errors.KindPlatform || r.Channel != ChannelName {
		t.Errorf("unexpected report %+v", r)
	}
}
