package okverify

import (
	"math"

	"github.com/okhi/okverify/pkg/errors"
	"github.com/okhi/okverify/pkg/platform"
)

// DefaultMode is the auth context mode used when Auth.Mode is empty.
const DefaultMode = "prod"

// Messages for the start validation failures, in check order.
const (
	msgMissingID          = "Missing id from location object"
	msgMissingCoords      = "Missing coords from location object"
	msgMissingPhone       = "Missing phone from user object"
	msgMissingCredentials = "Missing credentials from authentication object"
)

// Location is a created address.
type Location struct {
	ID  string
	Lat float64
	Lon float64
}

// User is the owner of the address.
type User struct {
	Phone string
}

// Auth carries the client credentials for the verification backend.
type Auth struct {
	BranchID  string `yaml:"branchId"`
	ClientKey string `yaml:"clientKey"`
	// Mode is the backend environment, e.g. "sandbox" or "prod".
	Mode string `yaml:"mode,omitempty"`
}

// StartConfig is what a caller has after an address has been created.
type StartConfig struct {
	Location Location
	User     User
	// Auth may be nil unless the Verifier was built with RequireAuth.
	Auth *Auth
}

// VerificationRequest is the payload dispatched to the native start call.
// Mode is set exactly when the request carries credentials.
type VerificationRequest struct {
	LocationID string
	Phone      string
	Lat        float64
	Lon        float64
	BranchID   string
	ClientKey  string
	Mode       string
}

func (r VerificationRequest) toArgs() map[string]any {
	args := map[string]any{
		"locationId": r.LocationID,
		"phone":      r.Phone,
		"lat":        r.Lat,
		"lon":        r.Lon,
	}
	if r.Mode != "" {
		args["branchId"] = r.BranchID
		args["clientKey"] = r.ClientKey
		args["mode"] = r.Mode
	}
	return args
}

// buildRequest validates cfg and assembles the native payload. Checks run in
// a fixed order and the first failure is returned.
func buildRequest(cfg StartConfig, requireAuth bool) (VerificationRequest, error) {
	if cfg.Location.ID == "" {
		return VerificationRequest{}, errors.BadRequest(msgMissingID)
	}
	if !finite(cfg.Location.Lat) || !finite(cfg.Location.Lon) {
		return VerificationRequest{}, errors.BadRequest(msgMissingCoords)
	}
	if cfg.User.Phone == "" {
		return VerificationRequest{}, errors.BadRequest(msgMissingPhone)
	}
	if cfg.Auth != nil && (cfg.Auth.BranchID == "" || cfg.Auth.ClientKey == "") {
		return VerificationRequest{}, errors.Unauthorized(msgMissingCredentials)
	}
	return assembleRequest(cfg, requireAuth)
}

// assembleRequest builds the native payload from a cfg whose fields are
// already known to be present. Only the auth requirement is checked here.
func assembleRequest(cfg StartConfig, requireAuth bool) (VerificationRequest, error) {
	req := VerificationRequest{
		LocationID: cfg.Location.ID,
		Phone:      cfg.User.Phone,
		Lat:        cfg.Location.Lat,
		Lon:        cfg.Location.Lon,
	}
	if cfg.Auth == nil {
		if requireAuth {
			return VerificationRequest{}, errors.Unauthorized(msgMissingCredentials)
		}
		return req, nil
	}
	req.BranchID = cfg.Auth.BranchID
	req.ClientKey = cfg.Auth.ClientKey
	req.Mode = cfg.Auth.Mode
	if req.Mode == "" {
		req.Mode = DefaultMode
	}
	return req, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// DecodeStartConfig builds a StartConfig from an untyped payload of the form
// {location: {id, lat, lon}, user: {phone}, auth?: {branchId, clientKey, mode}}.
// Fields are type-checked in the same order as StartVerification checks them,
// and a failure yields the same exception. A present string field is accepted
// even when empty.
func DecodeStartConfig(raw any) (StartConfig, error) {
	m := platform.ParseMap(raw)
	location := platform.ParseMap(m["location"])
	user := platform.ParseMap(m["user"])

	id, ok := platform.StringField(location, "id")
	if !ok {
		return StartConfig{}, errors.BadRequest(msgMissingID)
	}
	lat, latOK := platform.NumberField(location, "lat")
	lon, lonOK := platform.NumberField(location, "lon")
	if !latOK || !lonOK {
		return StartConfig{}, errors.BadRequest(msgMissingCoords)
	}
	phone, ok := platform.StringField(user, "phone")
	if !ok {
		return StartConfig{}, errors.BadRequest(msgMissingPhone)
	}
	cfg := StartConfig{
		Location: Location{ID: id, Lat: lat, Lon: lon},
		User:     User{Phone: phone},
	}

	if rawAuth, present := m["auth"]; present && rawAuth != nil {
		auth := platform.ParseMap(rawAuth)
		branchID, branchOK := platform.StringField(auth, "branchId")
		clientKey, keyOK := platform.StringField(auth, "clientKey")
		if !branchOK || !keyOK {
			return StartConfig{}, errors.Unauthorized(msgMissingCredentials)
		}
		mode, _ := platform.StringField(auth, "mode")
		cfg.Auth = &Auth{BranchID: branchID, ClientKey: clientKey, Mode: mode}
	}
	return cfg, nil
}
