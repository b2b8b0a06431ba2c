package okverify

import (
	"context"

	"github.com/okhi/okverify/pkg/core"
	"github.com/okhi/okverify/pkg/errors"
	"github.com/okhi/okverify/pkg/platform"
)

// HostChannelName is the method channel on which Serve exposes a Verifier to
// native or JS hosts.
const HostChannelName = "okhi/okverify/host"

// Serve exposes v on HostChannelName so a host can call it with untyped
// arguments. After the platform gate, arguments are checked for presence and
// JSON type in the order StartVerification and Init check their typed inputs.
// Present but empty strings are accepted.
func Serve(v Verifier) *platform.MethodChannel {
	ch := platform.NewMethodChannel(HostChannelName)
	ch.SetHandler(func(method string, args any) (any, error) {
		return dispatch(context.Background(), v, method, args)
	})
	return ch
}

func dispatch(ctx context.Context, v Verifier, method string, args any) (any, error) {
	switch method {
	case "init":
		if !v.Supported() {
			return nil, nil
		}
		if args == nil {
			return nil, v.Init(ctx, nil)
		}
		n, ok := DecodeNotification(args)
		if !ok {
			return nil, errors.BadRequest("invalid notification structure")
		}
		if sv, ok := v.(*verifier); ok {
			return nil, sv.initNative(ctx, n.toArgs())
		}
		return nil, v.Init(ctx, n)

	case "startVerification":
		if !v.Supported() {
			return nil, errors.UnsupportedPlatform()
		}
		cfg, err := DecodeStartConfig(args)
		if err != nil {
			return nil, err
		}
		id, err := startDecoded(ctx, v, cfg)
		if err != nil {
			return nil, err
		}
		return map[string]any{"locationId": id}, nil

	case "stopVerification":
		id, ok := args.(string)
		if !ok {
			id, ok = platform.StringField(platform.ParseMap(args), "locationId")
		}
		if !ok {
			return nil, errors.BadRequest("Missing locationId")
		}
		id, err := v.StopVerification(ctx, id)
		if err != nil {
			return nil, err
		}
		return map[string]any{"locationId": id}, nil

	case "canStartVerification":
		ready, err := v.CanStartVerification(ctx, decodeCanStartOptions(args))
		if err != nil {
			return nil, err
		}
		return map[string]any{"result": ready}, nil

	case "startForegroundService":
		return boolResult(v.StartForegroundService(ctx))
	case "stopForegroundService":
		return boolResult(v.StopForegroundService(ctx))
	case "isForegroundServiceRunning":
		return boolResult(v.IsForegroundServiceRunning(ctx))
	}
	return nil, platform.ErrMethodNotFound
}

// startDecoded starts a cfg produced by DecodeStartConfig. The decoder has
// already checked presence, so empty strings go through to the native module.
func startDecoded(ctx context.Context, v Verifier, cfg StartConfig) (string, error) {
	sv, ok := v.(*verifier)
	if !ok {
		return v.StartVerification(ctx, cfg)
	}
	req, err := assembleRequest(cfg, sv.requireAuth)
	if err != nil {
		return "", err
	}
	return sv.startNative(ctx, req)
}

func decodeCanStartOptions(args any) CanStartOptions {
	m := platform.ParseMap(args)
	opts := CanStartOptions{}
	opts.RequestServices, _ = m["requestServices"].(bool)
	opts.Background, _ = m["background"].(bool)
	if r := platform.ParseMap(m["rationale"]); r != nil {
		rationale := &core.LocationPermissionRationale{}
		rationale.Title, _ = platform.StringField(r, "title")
		rationale.Text, _ = platform.StringField(r, "text")
		rationale.GrantButtonText, _ = platform.StringField(r, "grantButtonText")
		rationale.DenyButtonText, _ = platform.StringField(r, "denyButtonText")
		opts.Rationale = rationale
	}
	return opts
}

func boolResult(ok bool, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return map[string]any{"result": ok}, nil
}
