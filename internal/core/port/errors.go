package port

import "errors"

var (
	// ErrNotFound is returned when a campaign or URL does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStateConflict is returned when a campaign's state changed between
	// the controller's snapshot and its commit.
	ErrStateConflict = errors.New("campaign state changed concurrently")
	// ErrMisconfigured marks a campaign with traffic control enabled but no
	// external campaign id. It needs an operator; the controller never
	// repairs it.
	ErrMisconfigured = errors.New("traffic control enabled without external campaign id")
	// ErrNotManaged is returned by overrides on campaigns the controller
	// does not drive.
	ErrNotManaged = errors.New("campaign is not platform-managed")
	// ErrBusy is returned when another pass holds the campaign's lease.
	ErrBusy = errors.New("campaign pass already in progress")
	// ErrNotForceActivated is returned when releasing a campaign that is not
	// force-activated.
	ErrNotForceActivated = errors.New("campaign is not force-activated")
	// ErrInvalidClicks is returned for manually entered click values that
	// are not a non-negative number.
	ErrInvalidClicks = errors.New("clicks must be a non-negative number")
)
