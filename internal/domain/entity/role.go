package entity

import (
	"fmt"
	"strings"

	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

// Role is a capability held by a user. Roles are totally ordered by Rank.
type Role int

const (
	RoleGuest Role = iota + 1
	RoleHost
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleGuest: "GUEST",
	RoleHost:  "HOST",
	RoleAdmin: "ADMIN",
}

// ParseRole converts a role name, case-insensitively.
func ParseRole(name string) (Role, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for role, n := range roleNames {
		if n == name {
			return role, nil
		}
	}
	return 0, domainerror.NewUserError(
		domainerror.ErrCodeInvalidRole,
		fmt.Sprintf("unknown role %q", name),
		domainerror.ErrInvalidRole,
	)
}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	_, ok := roleNames[r]
	return ok
}

// Rank orders roles from least to most privileged.
func (r Role) Rank() int {
	return int(r)
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// VerificationStatus is a rung of the identity verification ladder.
type VerificationStatus int

const (
	VerificationUnverified VerificationStatus = iota
	VerificationEmailVerified
	VerificationPhoneVerified
	VerificationIDVerified
	VerificationFullyVerified
)

var verificationNames = []string{
	"UNVERIFIED",
	"EMAIL_VERIFIED",
	"PHONE_VERIFIED",
	"ID_VERIFIED",
	"FULLY_VERIFIED",
}

// ParseVerificationStatus converts a rung name.
func ParseVerificationStatus(name string) (VerificationStatus, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range verificationNames {
		if n == name {
			return VerificationStatus(i), nil
		}
	}
	return 0, domainerror.NewUserError(
		domainerror.ErrCodeInvalidUserField,
		fmt.Sprintf("unknown verification status %q", name),
		domainerror.ErrInvalidUserField,
	)
}

// IsValid reports whether v is a rung of the ladder.
func (v VerificationStatus) IsValid() bool {
	return v >= VerificationUnverified && v <= VerificationFullyVerified
}

// Rank is the position of v on the ladder, starting at 0.
func (v VerificationStatus) Rank() int {
	return int(v)
}

// Next returns the rung above v. ok is false at the top of the ladder.
func (v VerificationStatus) Next() (next VerificationStatus, ok bool) {
	if !v.IsValid() || v == VerificationFullyVerified {
		return v, false
	}
	return v + 1, true
}

// CanAdvanceTo reports whether target is exactly one rung above v. Rungs cannot be skipped.
func (v VerificationStatus) CanAdvanceTo(target VerificationStatus) bool {
	next, ok := v.Next()
	return ok && next == target
}

func (v VerificationStatus) String() string {
	if v.IsValid() {
		return verificationNames[v]
	}
	return fmt.Sprintf("VerificationStatus(%d)", int(v))
}

// MarshalText implements encoding.TextMarshaler.
func (v VerificationStatus) MarshalText() ([]byte, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("invalid verification status %d", int(v))
	}
	return []byte(v.String()), nil
}
