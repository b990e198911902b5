// Package directory abstracts the external user directory. The notification
// engine never validates that an identifier exists; it only asks the
// directory for display data (the sender avatar) and treats absence as
// "no avatar", never as an error.
package directory

import "context"

type Profile struct {
	Exists            bool
	FullName          string
	ProfilePictureURL string
}

type Directory interface {
	// Lookup resolves a directory key. A missing user yields
	// Profile{Exists: false} with a nil error; a non-nil error means the
	// directory itself was unreachable.
	Lookup(ctx context.Context, userID string) (Profile, error)
}
