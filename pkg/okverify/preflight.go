package okverify

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/okhi/okverify/pkg/core"
	"github.com/okhi/okverify/pkg/errors"
)

// CanStartOptions configures CanStartVerification.
type CanStartOptions struct {
	// RequestServices asks the user to enable whatever is missing before the
	// checks run.
	RequestServices bool
	// Background also requires background location permission.
	Background bool
	// Rationale is shown before the location permission prompt. Optional.
	Rationale *core.LocationPermissionRationale
}

// ensureStep is a fallible request that must succeed before the next runs.
type ensureStep struct {
	name string
	run  func(ctx context.Context) error
}

// statusCheck is an independent predicate.
type statusCheck struct {
	name  string
	check func(ctx context.Context) (bool, error)
}

// preflight lists the requests and checks for opts. Services are enabled
// before permission is requested because the permission prompt needs them.
func (v *verifier) preflight(opts CanStartOptions) ([]ensureStep, []statusCheck) {
	s := v.services
	var steps []ensureStep
	if opts.RequestServices {
		steps = []ensureStep{
			{"requestEnableGooglePlayServices", s.RequestEnableGooglePlayServices},
			{"requestEnableLocationServices", s.RequestEnableLocationServices},
			{"requestLocationPermission", func(ctx context.Context) error {
				return s.RequestLocationPermission(ctx, opts.Rationale)
			}},
		}
		if opts.Background {
			steps = append(steps, ensureStep{"requestBackgroundLocationPermission", s.RequestBackgroundLocationPermission})
		}
	}

	checks := []statusCheck{
		{"isGooglePlayServicesAvailable", s.IsGooglePlayServicesAvailable},
		{"isLocationPermissionGranted", s.IsLocationPermissionGranted},
		{"isLocationServicesEnabled", s.IsLocationServicesEnabled},
	}
	if opts.Background {
		checks = append(checks, statusCheck{"isBackgroundLocationPermissionGranted", s.IsBackgroundLocationPermissionGranted})
	}
	return steps, checks
}

// runPreflight runs steps in order, stopping at the first failure, then runs
// checks concurrently and reports whether all of them passed.
func runPreflight(ctx context.Context, steps []ensureStep, checks []statusCheck) (bool, error) {
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			return false, errors.Normalize(err)
		}
	}

	results := make([]bool, len(checks))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range checks {
		g.Go(func() error {
			ok, err := c.check(gctx)
			if err != nil {
				return err
			}
			results[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, errors.Normalize(err)
	}

	for _, ok := range results {
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
