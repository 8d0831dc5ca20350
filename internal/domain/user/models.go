package user

import "errors"

// ErrUserNotFound is returned when the referenced owner does not exist.
var ErrUserNotFound = errors.New("user not found")

// User is a notification target: an owner and the device tokens registered
// for push delivery. Read-only to this core.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	DeviceTokens []string
}
