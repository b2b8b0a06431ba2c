package okverify

import (
	"context"

	"github.com/okhi/okverify/pkg/platform"
)

// ChannelName is the method channel served by the native OkVerify module.
const ChannelName = "okhi/okverify"

// Native is the native verification module. Implementations return native
// rejections as they are; the Verifier normalizes them.
type Native interface {
	// Init prepares the module. args is a notification payload or empty.
	Init(ctx context.Context, args map[string]any) error
	// Start begins verification and returns the location id.
	Start(ctx context.Context, req VerificationRequest) (string, error)
	// Stop ends verification for a location and returns the location id.
	Stop(ctx context.Context, locationID string) (string, error)
	StartForegroundService(ctx context.Context) (bool, error)
	StopForegroundService(ctx context.Context) (bool, error)
	IsForegroundServiceRunning(ctx context.Context) (bool, error)
}

// ChannelNative implements Native over the "okhi/okverify" method channel.
type ChannelNative struct {
	channel *platform.MethodChannel
}

// NewChannelNative returns a Native backed by the platform channel.
func NewChannelNative() *ChannelNative {
	return &ChannelNative{channel: platform.NewMethodChannel(ChannelName)}
}

func (n *ChannelNative) Init(ctx context.Context, args map[string]any) error {
	if args == nil {
		args = map[string]any{}
	}
	_, err := n.channel.InvokeContext(ctx, "init", args)
	return err
}

func (n *ChannelNative) Start(ctx context.Context, req VerificationRequest) (string, error) {
	result, err := n.channel.InvokeContext(ctx, "start", req.toArgs())
	if err != nil {
		return "", err
	}
	return platform.ResultString(ChannelName, result, "locationId")
}

func (n *ChannelNative) Stop(ctx context.Context, locationID string) (string, error) {
	result, err := n.channel.InvokeContext(ctx, "stop", map[string]any{"locationId": locationID})
	if err != nil {
		return "", err
	}
	return platform.ResultString(ChannelName, result, "locationId")
}

func (n *ChannelNative) StartForegroundService(ctx context.Context) (bool, error) {
	return n.invokeBool(ctx, "startForegroundService")
}

func (n *ChannelNative) StopForegroundService(ctx context.Context) (bool, error) {
	return n.invokeBool(ctx, "stopForegroundService")
}

func (n *ChannelNative) IsForegroundServiceRunning(ctx context.Context) (bool, error) {
	return n.invokeBool(ctx, "isForegroundServiceRunning")
}

func (n *ChannelNative) invokeBool(ctx context.Context, method string) (bool, error) {
	result, err := n.channel.InvokeContext(ctx, method, nil)
	if err != nil {
		return false, err
	}
	return platform.ResultBool(ChannelName, result, "result")
}
