// Package okverify starts and stops address verification on the device.
//
// The verification itself runs in the native OkVerify module. This package
// checks inputs before they reach it, gates every operation on platform
// support, runs the permission pre-flight, and turns every native failure
// into an *errors.Exception with a code and message.
//
// Typical use:
//
//	v := okverify.New(okverify.Options{})
//	if err := v.Init(ctx, &notification); err != nil {
//		return err
//	}
//	ready, err := v.CanStartVerification(ctx, okverify.CanStartOptions{RequestServices: true})
//	if err != nil || !ready {
//		return err
//	}
//	id, err := v.StartVerification(ctx, okverify.StartConfig{
//		Location: okverify.Location{ID: locationID, Lat: lat, Lon: lon},
//		User:     okverify.User{Phone: phone},
//		Auth:     &okverify.Auth{BranchID: branchID, ClientKey: clientKey},
//	})
//
// Only Android is supported. On other platforms New returns a Verifier whose
// Init and StopVerification succeed without doing anything and whose
// state-changing operations fail with errors.UnsupportedPlatformCode.
package okverify
