package auth

import "github.com/dukerupert/dishly/internal/apperr"

// AssertOwner fails with a permission error unless callerID owns the
// resource. action names the attempted operation, e.g. "update this recipe".
func AssertOwner(resourceOwnerID, callerID, action string) error {
	if resourceOwnerID != callerID {
		return apperr.Forbiddenf("you do not have permission to %s", action)
	}
	return nil
}

// IsOwner reports whether callerID owns the resource.
func IsOwner(resourceOwnerID, callerID string) bool {
	return callerID != "" && resourceOwnerID == callerID
}
