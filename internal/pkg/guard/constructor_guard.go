// Package guard provides a constructor guard that ensures value objects and
// commands are only created through their designated constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied
// for a zero-value guard.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects whether the embedding struct was created through its
// constructor. The zero value fails validation; NewConstructorGuard produces a
// guard that passes. Embed it as a private field and call Validate with the
// object's own "not constructed" sentinel.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard marking the object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil when the object was created via its constructor.
// For a zero-value guard it returns notConstructed, or ErrDefaultConstructorGuard
// when notConstructed is nil.
func (g ConstructorGuard) Validate(notConstructed error) error {
	if g.constructed {
		return nil
	}
	if notConstructed == nil {
		return ErrDefaultConstructorGuard
	}
	return notConstructed
}
