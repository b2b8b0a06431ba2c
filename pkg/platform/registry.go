package platform

import (
	"fmt"
	"sync"

	"github.com/okhi/okverify/pkg/errors"
)

// channelRegistry manages all registered method channels.
type channelRegistry struct {
	methodChannels map[string]*MethodChannel
	mu             sync.RWMutex
}

var registry = &channelRegistry{
	methodChannels: make(map[string]*MethodChannel),
}

func (r *channelRegistry) registerMethod(name string, ch *MethodChannel) {
	r.mu.Lock()
	r.methodChannels[name] = ch
	r.mu.Unlock()
}

func (r *channelRegistry) getMethodChannel(name string) *MethodChannel {
	r.mu.RLock()
	ch := r.methodChannels[name]
	r.mu.RUnlock()
	return ch
}

// NativeBridge defines the interface for calling native platform code.
type NativeBridge interface {
	// InvokeMethod calls a method on the native side. A native rejection is
	// returned as a *ChannelError.
	InvokeMethod(channel, method string, args []byte) ([]byte, error)
}

var (
	bridgeMu     sync.RWMutex
	nativeBridge NativeBridge
)

// SetNativeBridge sets the native bridge implementation.
// Called by the host during initialization; nil uninstalls the bridge.
func SetNativeBridge(bridge NativeBridge) {
	bridgeMu.Lock()
	nativeBridge = bridge
	bridgeMu.Unlock()
}

// HasNativeBridge reports whether a native bridge is installed.
func HasNativeBridge() bool {
	bridgeMu.RLock()
	defer bridgeMu.RUnlock()
	return nativeBridge != nil
}

func invokeNative(channel, method string, args any) (any, error) {
	bridgeMu.RLock()
	bridge := nativeBridge
	bridgeMu.RUnlock()
	if bridge == nil {
		return nil, ErrPlatformUnavailable
	}

	argsData, err := DefaultCodec.Encode(args)
	if err != nil {
		return nil, err
	}

	resultData, err := bridge.InvokeMethod(channel, method, argsData)
	if err != nil {
		return nil, err
	}

	return DefaultCodec.Decode(resultData)
}

// HandleMethodCall is called from the bridge when native invokes a Go method.
// Handler failures are returned as a *ChannelError carrying the normalized
// code and message, so the native side always sees {code, message}.
func HandleMethodCall(channel, method string, argsData []byte) (result []byte, err error) {
	ch := registry.getMethodChannel(channel)
	if ch == nil {
		return nil, toChannelError(fmt.Errorf("%w: %s", ErrChannelNotFound, channel))
	}

	args, err := DefaultCodec.Decode(argsData)
	if err != nil {
		errors.Report(&errors.BridgeError{
			Op:      "platform.HandleMethodCall",
			Kind:    errors.KindParsing,
			Channel: ch.Name(),
			Err:     err,
		})
		return nil, toChannelError(errors.BadRequest(err.Error()))
	}

	defer errors.RecoverWithCallback("platform.HandleMethodCall", func(r any) {
		result = nil
		err = NewChannelError(errors.UnknownErrorCode, fmt.Sprint(r))
	})

	value, err := ch.handleCall(method, args)
	if err != nil {
		return nil, toChannelError(err)
	}

	data, err := DefaultCodec.Encode(value)
	if err != nil {
		errors.Report(&errors.BridgeError{
			Op:      "platform.HandleMethodCall",
			Kind:    errors.KindPlatform,
			Channel: ch.Name(),
			Err:     err,
		})
		return nil, NewChannelError(errors.UnknownErrorCode, err.Error())
	}
	return data, nil
}

func toChannelError(err error) *ChannelError {
	ex := errors.Normalize(err)
	return NewChannelError(ex.Code, ex.Message)
}

// ResetForTest clears the native bridge and every channel handler so tests
// start from a fresh state. This should only be called from tests.
func ResetForTest() {
	SetNativeBridge(nil)

	registry.mu.Lock()
	for _, ch := range registry.methodChannels {
		ch.handler = nil
	}
	registry.mu.Unlock()
}
