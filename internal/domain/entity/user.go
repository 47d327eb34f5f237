package entity

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
)

// Profile limits.
const (
	MaxNameLength = 50
	MaxBioLength  = 1000
	MinimumAge    = 18
)

// Superhost thresholds.
const (
	SuperhostMinResponseRate     = 90.0
	SuperhostMaxResponseTimeHour = 24.0
	SuperhostMinBookings         = 10
)

// UserStatus represents the account state of a user.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusInactive  UserStatus = "INACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
	UserStatusBanned    UserStatus = "BANNED"
)

// UserProfile is the public profile of a user.
type UserProfile struct {
	FirstName   string
	LastName    string
	Bio         string
	DateOfBirth *time.Time
	Languages   []string
	AvatarURL   string
}

// FullName joins first and last name.
func (p UserProfile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p UserProfile) normalize() UserProfile {
	out := UserProfile{
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Bio:       strings.TrimSpace(p.Bio),
		AvatarURL: strings.TrimSpace(p.AvatarURL),
		Languages: []string{},
	}
	if p.DateOfBirth != nil {
		dob := p.DateOfBirth.UTC()
		out.DateOfBirth = &dob
	}
	for _, lang := range p.Languages {
		if lang = strings.TrimSpace(lang); lang != "" {
			out.Languages = append(out.Languages, lang)
		}
	}
	return out
}

func (p UserProfile) validate(now time.Time) error {
	switch {
	case p.FirstName == "":
		return userFieldError("first name is required")
	case p.LastName == "":
		return userFieldError("last name is required")
	case utf8.RuneCountInString(p.FirstName) > MaxNameLength || utf8.RuneCountInString(p.LastName) > MaxNameLength:
		return userFieldError(fmt.Sprintf("names must be at most %d characters", MaxNameLength))
	case utf8.RuneCountInString(p.Bio) > MaxBioLength:
		return userFieldError(fmt.Sprintf("bio must be at most %d characters", MaxBioLength))
	}

	if p.AvatarURL != "" {
		u, err := url.Parse(p.AvatarURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return userFieldError(fmt.Sprintf("%q is not a valid avatar url", p.AvatarURL))
		}
	}

	if p.DateOfBirth != nil {
		if p.DateOfBirth.After(now) {
			return userFieldError("date of birth must be in the past")
		}
		if ageAt(*p.DateOfBirth, now) < MinimumAge {
			return domainerror.NewUserError(
				domainerror.ErrCodeUnderage,
				fmt.Sprintf("users must be at least %d years old", MinimumAge),
				domainerror.ErrUnderage,
			)
		}
	}
	return nil
}

func ageAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// HostProfile holds hosting metrics. It exists only while the user holds the HOST role.
type HostProfile struct {
	ResponseRate      float64
	ResponseTimeHours float64
	IsSuperhost       bool
	TotalBookings     int
	TotalReviews      int
	HostingSince      time.Time
}

// HostMetrics are the inputs of a host metrics update.
type HostMetrics struct {
	ResponseRate      float64
	ResponseTimeHours float64
	TotalBookings     int
	TotalReviews      int
}

// QualifiesAsSuperhost reports whether the metrics meet every superhost threshold.
func (m HostMetrics) QualifiesAsSuperhost() bool {
	return m.ResponseRate > SuperhostMinResponseRate &&
		m.ResponseTimeHours < SuperhostMaxResponseTimeHour &&
		m.TotalBookings >= SuperhostMinBookings
}

// CreateUserParams holds the values needed to create a user.
type CreateUserParams struct {
	Email       valueobject.Email
	PhoneNumber *valueobject.PhoneNumber
	Profile     UserProfile
	Roles       []Role // Optional, defaults to GUEST
}

// User is a marketplace account that can book as a guest and list as a host.
type User struct {
	Base
	email              valueobject.Email
	phoneNumber        *valueobject.PhoneNumber
	roles              []Role
	status             UserStatus
	statusReason       string
	verificationStatus VerificationStatus
	profile            UserProfile
	hostProfile        *HostProfile
	lastLoginAt        *time.Time
}

// NewUser creates an ACTIVE, UNVERIFIED user.
func NewUser(params CreateUserParams, opts ...Option) (*User, error) {
	if params.Email.String() == "" {
		return nil, userFieldError("email is required")
	}

	u := &User{
		Base:               newBase(buildConfig(opts)),
		email:              params.Email,
		status:             UserStatusActive,
		verificationStatus: VerificationUnverified,
	}

	profile := params.Profile.normalize()
	if err := profile.validate(u.now()); err != nil {
		return nil, err
	}
	u.profile = profile

	if params.PhoneNumber != nil {
		phone := *params.PhoneNumber
		u.phoneNumber = &phone
	}

	roles := params.Roles
	if len(roles) == 0 {
		roles = []Role{RoleGuest}
	}
	for _, role := range roles {
		if err := u.AddRole(role); err != nil {
			return nil, err
		}
	}

	u.updatedAt = u.createdAt
	return u, nil
}

func (u *User) Email() valueobject.Email               { return u.email }
func (u *User) Status() UserStatus                     { return u.status }
func (u *User) StatusReason() string                   { return u.statusReason }
func (u *User) VerificationStatus() VerificationStatus { return u.verificationStatus }
func (u *User) LastLoginAt() *time.Time                { return copyTime(u.lastLoginAt) }

// PhoneNumber returns a copy of the phone number, or nil.
func (u *User) PhoneNumber() *valueobject.PhoneNumber {
	if u.phoneNumber == nil {
		return nil
	}
	p := *u.phoneNumber
	return &p
}

// Roles returns the held roles ordered by rank.
func (u *User) Roles() []Role {
	return append([]Role(nil), u.roles...)
}

// Profile returns a copy of the profile.
func (u *User) Profile() UserProfile {
	p := u.profile
	p.Languages = append([]string{}, u.profile.Languages...)
	p.DateOfBirth = copyTime(u.profile.DateOfBirth)
	return p
}

// HostProfile returns a copy of the host profile, or nil for non-hosts.
func (u *User) HostProfile() *HostProfile {
	if u.hostProfile == nil {
		return nil
	}
	hp := *u.hostProfile
	return &hp
}

// HasRole reports whether the user holds role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsHost() bool  { return u.HasRole(RoleHost) }
func (u *User) IsAdmin() bool { return u.HasRole(RoleAdmin) }

// IsActive reports whether the account is ACTIVE.
func (u *User) IsActive() bool {
	return u.status == UserStatusActive
}

// CanBook reports whether the user may make bookings.
func (u *User) CanBook() bool {
	return u.IsActive() && u.HasRole(RoleGuest)
}

// CanHost reports whether the user may create and manage listings.
func (u *User) CanHost() bool {
	return u.IsActive() && u.IsHost()
}

// AddRole grants role. Granting HOST creates an empty host profile. Held roles are ignored.
func (u *User) AddRole(role Role) error {
	if !role.IsValid() {
		return domainerror.NewUserError(
			domainerror.ErrCodeInvalidRole,
			fmt.Sprintf("unknown role %d", role),
			domainerror.ErrInvalidRole,
		)
	}
	if u.HasRole(role) {
		return nil
	}

	u.roles = append(u.roles, role)
	sort.Slice(u.roles, func(i, j int) bool { return u.roles[i].Rank() < u.roles[j].Rank() })

	now := u.touch()
	if role == RoleHost && u.hostProfile == nil {
		u.hostProfile = &HostProfile{HostingSince: now}
	}
	return nil
}

// RemoveRole revokes role. Revoking HOST discards the host profile.
// The last remaining role cannot be revoked.
func (u *User) RemoveRole(role Role) error {
	if !u.HasRole(role) {
		return nil
	}
	if len(u.roles) == 1 {
		return domainerror.NewUserError(
			domainerror.ErrCodeCannotRemoveLastRole,
			fmt.Sprintf("cannot remove %s, it is the only remaining role", role),
			domainerror.ErrCannotRemoveLastRole,
		)
	}

	kept := u.roles[:0:0]
	for _, r := range u.roles {
		if r != role {
			kept = append(kept, r)
		}
	}
	u.roles = kept
	if role == RoleHost {
		u.hostProfile = nil
	}
	u.touch()
	return nil
}

// VerifyEmail advances UNVERIFIED to EMAIL_VERIFIED.
func (u *User) VerifyEmail() bool {
	return u.advanceVerification(VerificationEmailVerified)
}

// VerifyPhone advances EMAIL_VERIFIED to PHONE_VERIFIED when a phone number is on file.
func (u *User) VerifyPhone() bool {
	if u.phoneNumber == nil {
		return false
	}
	return u.advanceVerification(VerificationPhoneVerified)
}

// VerifyID advances PHONE_VERIFIED to ID_VERIFIED.
func (u *User) VerifyID() bool {
	return u.advanceVerification(VerificationIDVerified)
}

// MarkFullyVerified advances ID_VERIFIED to FULLY_VERIFIED.
func (u *User) MarkFullyVerified() bool {
	return u.advanceVerification(VerificationFullyVerified)
}

// advanceVerification moves one rung up the ladder. Out-of-order calls are no-ops.
func (u *User) advanceVerification(target VerificationStatus) bool {
	if !u.verificationStatus.CanAdvanceTo(target) {
		return false
	}
	u.verificationStatus = target
	u.touch()
	return true
}

// UpdateHostMetrics replaces the hosting metrics and recomputes the superhost flag.
func (u *User) UpdateHostMetrics(metrics HostMetrics) error {
	if u.hostProfile == nil {
		return domainerror.NewUserError(
			domainerror.ErrCodeNotHost,
			"host metrics can only be updated for hosts",
			domainerror.ErrNotHost,
		)
	}
	switch {
	case metrics.ResponseRate < 0 || metrics.ResponseRate > 100:
		return userFieldError("response rate must be between 0 and 100")
	case metrics.ResponseTimeHours < 0:
		return userFieldError("response time must not be negative")
	case metrics.TotalBookings < 0 || metrics.TotalReviews < 0:
		return userFieldError("totals must not be negative")
	}

	u.hostProfile.ResponseRate = metrics.ResponseRate
	u.hostProfile.ResponseTimeHours = metrics.ResponseTimeHours
	u.hostProfile.TotalBookings = metrics.TotalBookings
	u.hostProfile.TotalReviews = metrics.TotalReviews
	u.hostProfile.IsSuperhost = metrics.QualifiesAsSuperhost()
	u.touch()
	return nil
}

// UpdateProfile replaces the profile after validation.
func (u *User) UpdateProfile(profile UserProfile) error {
	profile = profile.normalize()
	if err := profile.validate(u.now()); err != nil {
		return err
	}
	u.profile = profile
	u.touch()
	return nil
}

// UpdatePhoneNumber sets or clears the phone number. A changed number drops phone-level verification.
func (u *User) UpdatePhoneNumber(phone *valueobject.PhoneNumber) {
	changed := (u.phoneNumber == nil) != (phone == nil) ||
		(phone != nil && !u.phoneNumber.Equals(*phone))
	if !changed {
		return
	}

	if phone == nil {
		u.phoneNumber = nil
	} else {
		p := *phone
		u.phoneNumber = &p
	}
	if u.verificationStatus.Rank() >= VerificationPhoneVerified.Rank() {
		u.verificationStatus = VerificationEmailVerified
	}
	u.touch()
}

// Suspend moves an ACTIVE or INACTIVE user to SUSPENDED.
func (u *User) Suspend(reason string) error {
	if u.status != UserStatusActive && u.status != UserStatusInactive {
		return u.transitionError(UserStatusSuspended)
	}
	reason, err := requireUserReason(reason)
	if err != nil {
		return err
	}
	u.status = UserStatusSuspended
	u.statusReason = reason
	u.touch()
	return nil
}

// Ban permanently bans the user.
func (u *User) Ban(reason string) error {
	if u.status == UserStatusBanned {
		return u.transitionError(UserStatusBanned)
	}
	reason, err := requireUserReason(reason)
	if err != nil {
		return err
	}
	u.status = UserStatusBanned
	u.statusReason = reason
	u.touch()
	return nil
}

// Activate reactivates an INACTIVE or SUSPENDED user. Active users are left untouched.
func (u *User) Activate() error {
	switch u.status {
	case UserStatusActive:
		return nil
	case UserStatusBanned:
		return u.transitionError(UserStatusActive)
	}
	u.status = UserStatusActive
	u.statusReason = ""
	u.touch()
	return nil
}

// Deactivate moves an ACTIVE user to INACTIVE at their own request.
func (u *User) Deactivate() error {
	switch u.status {
	case UserStatusInactive:
		return nil
	case UserStatusActive:
	default:
		return u.transitionError(UserStatusInactive)
	}
	u.status = UserStatusInactive
	u.touch()
	return nil
}

// RecordLogin stamps the last login time.
func (u *User) RecordLogin() {
	now := u.now()
	u.lastLoginAt = &now
}

func (u *User) transitionError(target UserStatus) error {
	return domainerror.NewUserError(
		domainerror.ErrCodeInvalidUserTransition,
		fmt.Sprintf("cannot move a %s user to %s", strings.ToLower(string(u.status)), strings.ToLower(string(target))),
		domainerror.ErrInvalidUserTransition,
	)
}

func requireUserReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", domainerror.NewUserError(
			domainerror.ErrCodeUserReasonRequired,
			"a reason is required",
			domainerror.ErrUserReasonRequired,
		)
	}
	return reason, nil
}

func userFieldError(message string) error {
	return domainerror.NewUserError(domainerror.ErrCodeInvalidUserField, message, domainerror.ErrInvalidUserField)
}

// UserProfileJSON is the plain projection of a UserProfile.
type UserProfileJSON struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Bio         string   `json:"bio,omitempty"`
	DateOfBirth *string  `json:"dateOfBirth,omitempty"`
	Languages   []string `json:"languages"`
	AvatarURL   string   `json:"avatarUrl,omitempty"`
}

// HostProfileJSON is the plain projection of a HostProfile.
type HostProfileJSON struct {
	ResponseRate      float64 `json:"responseRate"`
	ResponseTimeHours float64 `json:"responseTimeHours"`
	IsSuperhost       bool    `json:"isSuperhost"`
	TotalBookings     int     `json:"totalBookings"`
	TotalReviews      int     `json:"totalReviews"`
	HostingSince      string  `json:"hostingSince"`
}

// UserJSON is the plain projection of a User.
type UserJSON struct {
	ID                 string           `json:"id"`
	Email              string           `json:"email"`
	PhoneNumber        *string          `json:"phoneNumber,omitempty"`
	Roles              []string         `json:"roles"`
	Status             UserStatus       `json:"status"`
	VerificationStatus string           `json:"verificationStatus"`
	Profile            UserProfileJSON  `json:"profile"`
	HostProfile        *HostProfileJSON `json:"hostProfile,omitempty"`
	LastLoginAt        *string          `json:"lastLoginAt,omitempty"`
	CreatedAt          string           `json:"createdAt"`
	UpdatedAt          string           `json:"updatedAt"`
}

// ToJSON returns the plain projection of the user.
func (u *User) ToJSON() UserJSON {
	out := UserJSON{
		ID:                 u.id.String(),
		Email:              u.email.String(),
		Roles:              make([]string, 0, len(u.roles)),
		Status:             u.status,
		VerificationStatus: u.verificationStatus.String(),
		Profile: UserProfileJSON{
			FirstName:   u.profile.FirstName,
			LastName:    u.profile.LastName,
			Bio:         u.profile.Bio,
			DateOfBirth: formatOptionalTime(u.profile.DateOfBirth),
			Languages:   append([]string{}, u.profile.Languages...),
			AvatarURL:   u.profile.AvatarURL,
		},
		LastLoginAt: formatOptionalTime(u.lastLoginAt),
		CreatedAt:   formatTime(u.createdAt),
		UpdatedAt:   formatTime(u.updatedAt),
	}
	for _, r := range u.roles {
		out.Roles = append(out.Roles, r.String())
	}
	if u.phoneNumber != nil {
		phone := u.phoneNumber.String()
		out.PhoneNumber = &phone
	}
	if hp := u.hostProfile; hp != nil {
		out.HostProfile = &HostProfileJSON{
			ResponseRate:      hp.ResponseRate,
			ResponseTimeHours: hp.ResponseTimeHours,
			IsSuperhost:       hp.IsSuperhost,
			TotalBookings:     hp.TotalBookings,
			TotalReviews:      hp.TotalReviews,
			HostingSince:      formatTime(hp.HostingSince),
		}
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (u *User) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.ToJSON())
}

// UserSnapshot exposes the full state of a User for the storage adapter.
type UserSnapshot struct {
	ID                 uuid.UUID
	Email              valueobject.Email
	PhoneNumber        *valueobject.PhoneNumber
	Roles              []Role
	Status             UserStatus
	StatusReason       string
	VerificationStatus VerificationStatus
	Profile            UserProfile
	HostProfile        *HostProfile
	LastLoginAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Snapshot returns a copy of the user state.
func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{
		ID:                 u.id,
		Email:              u.email,
		PhoneNumber:        u.PhoneNumber(),
		Roles:              u.Roles(),
		Status:             u.status,
		StatusReason:       u.statusReason,
		VerificationStatus: u.verificationStatus,
		Profile:            u.Profile(),
		HostProfile:        u.HostProfile(),
		LastLoginAt:        u.LastLoginAt(),
		CreatedAt:          u.createdAt,
		UpdatedAt:          u.updatedAt,
	}
}

// RestoreUser rebuilds a user from persisted state without re-running creation rules.
func RestoreUser(s UserSnapshot, opts ...Option) *User {
	u := &User{
		Base:               restoreBase(s.ID, s.CreatedAt, s.UpdatedAt, opts),
		email:              s.Email,
		roles:              append([]Role(nil), s.Roles...),
		status:             s.Status,
		statusReason:       s.StatusReason,
		verificationStatus: s.VerificationStatus,
		profile:            s.Profile.normalize(),
		lastLoginAt:        copyTime(s.LastLoginAt),
	}
	sort.Slice(u.roles, func(i, j int) bool { return u.roles[i].Rank() < u.roles[j].Rank() })
	if s.PhoneNumber != nil {
		p := *s.PhoneNumber
		u.phoneNumber = &p
	}
	if s.HostProfile != nil {
		hp := *s.HostProfile
		u.hostProfile = &hp
	}
	return u
}
