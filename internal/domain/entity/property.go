// Package entity defines the core business entities for the domain layer.
package entity

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
)

// Listing limits.
const (
	MaxTitleLength              = 100
	MaxDescriptionLength        = 5000
	MinPublishDescriptionLength = 50
	MaxGuestsLimit              = 50
)

// PropertyType represents the kind of listing.
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "APARTMENT"
	PropertyTypeHouse     PropertyType = "HOUSE"
	PropertyTypeVilla     PropertyType = "VILLA"
	PropertyTypeCabin     PropertyType = "CABIN"
	PropertyTypeCondo     PropertyType = "CONDO"
	PropertyTypeStudio    PropertyType = "STUDIO"
	PropertyTypeLoft      PropertyType = "LOFT"
	PropertyTypeOther     PropertyType = "OTHER"
)

// IsValid reports whether t is a known property type.
func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeVilla, PropertyTypeCabin,
		PropertyTypeCondo, PropertyTypeStudio, PropertyTypeLoft, PropertyTypeOther:
		return true
	}
	return false
}

// PropertyStatus represents the publish lifecycle state of a listing.
type PropertyStatus string

const (
	PropertyStatusDraft     PropertyStatus = "DRAFT"
	PropertyStatusPublished PropertyStatus = "PUBLISHED"
	PropertyStatusUnlisted  PropertyStatus = "UNLISTED"
	PropertyStatusSuspended PropertyStatus = "SUSPENDED"
)

// Amenity is a feature offered by a property, identified by ID.
type Amenity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// CreatePropertyParams holds the values needed to create a property.
type CreatePropertyParams struct {
	HostID         uuid.UUID
	Title          string
	Description    string
	Type           PropertyType
	Address        valueobject.Address
	BasePrice      valueobject.Money
	CleaningFee    *valueobject.Money
	MaxGuests      int
	Bedrooms       int
	Bathrooms      int
	Beds           int
	Rules          *PropertyRules // Optional, defaults to DefaultPropertyRules
	MinimumStay    int            // Optional, defaults to 1
	MaximumStay    *int
	InstantBooking bool
	Amenities      []Amenity
	Images         []string
}

// Property is a rental listing owned by a host.
type Property struct {
	Base
	hostID           uuid.UUID
	title            string
	description      string
	propertyType     PropertyType
	status           PropertyStatus
	address          valueobject.Address
	basePrice        valueobject.Money
	cleaningFee      *valueobject.Money
	maxGuests        int
	bedrooms         int
	bathrooms        int
	beds             int
	amenities        []Amenity
	images           []string
	rules            PropertyRules
	minimumStay      int
	maximumStay      *int
	instantBooking   bool
	publishedAt      *time.Time
	suspensionReason string
}

// NewProperty creates a DRAFT property after validating every field.
func NewProperty(params CreatePropertyParams, opts ...Option) (*Property, error) {
	if params.HostID == uuid.Nil {
		return nil, propertyFieldError("host id is required")
	}
	if !params.Type.IsValid() {
		return nil, propertyFieldError(fmt.Sprintf("unknown property type %q", params.Type))
	}

	rules := DefaultPropertyRules()
	if params.Rules != nil {
		rules = params.Rules.clone()
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	minimumStay := params.MinimumStay
	if minimumStay == 0 {
		minimumStay = 1
	}

	p := &Property{
		Base:           newBase(buildConfig(opts)),
		hostID:         params.HostID,
		propertyType:   params.Type,
		status:         PropertyStatusDraft,
		address:        params.Address,
		rules:          rules,
		instantBooking: params.InstantBooking,
	}

	if err := p.setDetails(params.Title, params.Description); err != nil {
		return nil, err
	}
	if err := p.setPricing(params.BasePrice, params.CleaningFee); err != nil {
		return nil, err
	}
	if err := p.setCapacity(params.MaxGuests, params.Bedrooms, params.Bathrooms, params.Beds); err != nil {
		return nil, err
	}
	if err := p.setStayLimits(minimumStay, params.MaximumStay); err != nil {
		return nil, err
	}
	for _, amenity := range params.Amenities {
		if err := p.AddAmenity(amenity); err != nil {
			return nil, err
		}
	}
	for _, image := range params.Images {
		if err := p.AddImage(image); err != nil {
			return nil, err
		}
	}

	p.updatedAt = p.createdAt
	return p, nil
}

func (p *Property) HostID() uuid.UUID            { return p.hostID }
func (p *Property) Title() string                { return p.title }
func (p *Property) Description() string          { return p.description }
func (p *Property) Type() PropertyType           { return p.propertyType }
func (p *Property) Status() PropertyStatus       { return p.status }
func (p *Property) Address() valueobject.Address { return p.address }
func (p *Property) BasePrice() valueobject.Money { return p.basePrice }
func (p *Property) MaxGuests() int               { return p.maxGuests }
func (p *Property) Bedrooms() int                { return p.bedrooms }
func (p *Property) Bathrooms() int               { return p.bathrooms }
func (p *Property) Beds() int                    { return p.beds }
func (p *Property) MinimumStay() int             { return p.minimumStay }
func (p *Property) InstantBooking() bool         { return p.instantBooking }
func (p *Property) SuspensionReason() string     { return p.suspensionReason }
func (p *Property) PublishedAt() *time.Time      { return copyTime(p.publishedAt) }
func (p *Property) Rules() PropertyRules         { return p.rules.clone() }

// CleaningFee returns a copy of the cleaning fee, or nil when none is charged.
func (p *Property) CleaningFee() *valueobject.Money {
	if p.cleaningFee == nil {
		return nil
	}
	fee := *p.cleaningFee
	return &fee
}

// MaximumStay returns a copy of the maximum stay, or nil when unbounded.
func (p *Property) MaximumStay() *int {
	if p.maximumStay == nil {
		return nil
	}
	v := *p.maximumStay
	return &v
}

// Amenities returns a copy of the amenity list in insertion order.
func (p *Property) Amenities() []Amenity {
	return append([]Amenity(nil), p.amenities...)
}

// Images returns a copy of the ordered image URLs.
func (p *Property) Images() []string {
	return append([]string(nil), p.images...)
}

// HasAmenity reports whether the amenity id is present.
func (p *Property) HasAmenity(id string) bool {
	return p.amenityIndex(id) >= 0
}

// IsBookable reports whether guests can book the property.
func (p *Property) IsBookable() bool {
	return p.status == PropertyStatusPublished
}

// CanAccommodate reports whether guestCount is within capacity.
func (p *Property) CanAccommodate(guestCount int) bool {
	return guestCount >= 1 && guestCount <= p.maxGuests
}

// IsOwnedBy reports whether userID is the host of the property.
func (p *Property) IsOwnedBy(userID uuid.UUID) bool {
	return p.hostID == userID
}

// UpdateDetails changes title and description.
func (p *Property) UpdateDetails(title, description string) error {
	if p.status == PropertyStatusPublished && utf8.RuneCountInString(strings.TrimSpace(description)) < MinPublishDescriptionLength {
		return domainerror.NewPropertyError(
			domainerror.ErrCodePropertyInvariant,
			fmt.Sprintf("a published listing needs a description of at least %d characters", MinPublishDescriptionLength),
			domainerror.ErrPropertyInvariant,
		)
	}
	if err := p.setDetails(title, description); err != nil {
		return err
	}
	p.touch()
	return nil
}

// UpdatePricing changes the nightly base price and optional cleaning fee.
func (p *Property) UpdatePricing(basePrice valueobject.Money, cleaningFee *valueobject.Money) error {
	if err := p.setPricing(basePrice, cleaningFee); err != nil {
		return err
	}
	p.touch()
	return nil
}

// UpdateCapacity changes guest capacity and room counts.
func (p *Property) UpdateCapacity(maxGuests, bedrooms, bathrooms, beds int) error {
	if err := p.setCapacity(maxGuests, bedrooms, bathrooms, beds); err != nil {
		return err
	}
	p.touch()
	return nil
}

// UpdateStayLimits changes minimum and maximum stay in nights.
func (p *Property) UpdateStayLimits(minimumStay int, maximumStay *int) error {
	if err := p.setStayLimits(minimumStay, maximumStay); err != nil {
		return err
	}
	p.touch()
	return nil
}

// UpdateRules replaces the house rules.
func (p *Property) UpdateRules(rules PropertyRules) error {
	if err := rules.Validate(); err != nil {
		return err
	}
	p.rules = rules.clone()
	p.touch()
	return nil
}

// UpdateAddress replaces the address.
func (p *Property) UpdateAddress(address valueobject.Address) {
	p.address = address
	p.touch()
}

// SetInstantBooking toggles auto-confirmation of new bookings.
func (p *Property) SetInstantBooking(enabled bool) {
	p.instantBooking = enabled
	p.touch()
}

// Publish moves a DRAFT or UNLISTED property to PUBLISHED.
// It requires at least one image and a description of MinPublishDescriptionLength characters.
func (p *Property) Publish() error {
	switch p.status {
	case PropertyStatusDraft, PropertyStatusUnlisted:
	case PropertyStatusPublished:
		return p.transitionError("property is already published")
	default:
		return p.transitionError(fmt.Sprintf("cannot publish a %s property", strings.ToLower(string(p.status))))
	}

	if len(p.images) == 0 {
		return domainerror.NewPropertyError(
			domainerror.ErrCodePublishRequirementsNotMet,
			"at least one image is required to publish",
			domainerror.ErrPublishRequirementsNotMet,
		)
	}
	if utf8.RuneCountInString(p.description) < MinPublishDescriptionLength {
		return domainerror.NewPropertyError(
			domainerror.ErrCodePublishRequirementsNotMet,
			fmt.Sprintf("description must be at least %d characters to publish", MinPublishDescriptionLength),
			domainerror.ErrPublishRequirementsNotMet,
		)
	}

	now := p.touch()
	p.status = PropertyStatusPublished
	p.publishedAt = &now
	return nil
}

// Unlist hides a PUBLISHED property.
func (p *Property) Unlist() error {
	if p.status != PropertyStatusPublished {
		return p.transitionError(fmt.Sprintf("only published properties can be unlisted, status is %s", p.status))
	}
	p.status = PropertyStatusUnlisted
	p.touch()
	return nil
}

// Suspend forces the property into SUSPENDED from any state. Admin only.
func (p *Property) Suspend(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return propertyFieldError("a suspension reason is required")
	}
	p.status = PropertyStatusSuspended
	p.suspensionReason = reason
	p.touch()
	return nil
}

// AddAmenity adds an amenity. Duplicate ids fail.
func (p *Property) AddAmenity(amenity Amenity) error {
	amenity.ID = strings.TrimSpace(amenity.ID)
	if amenity.ID == "" {
		return propertyFieldError("amenity id is required")
	}
	if p.HasAmenity(amenity.ID) {
		return domainerror.NewPropertyError(
			domainerror.ErrCodeAmenityExists,
			fmt.Sprintf("amenity %q already added", amenity.ID),
			domainerror.ErrAmenityExists,
		)
	}
	p.amenities = append(p.amenities, amenity)
	p.touch()
	return nil
}

// RemoveAmenity removes an amenity by id.
func (p *Property) RemoveAmenity(id string) error {
	idx := p.amenityIndex(id)
	if idx < 0 {
		return domainerror.NewPropertyError(
			domainerror.ErrCodeAmenityNotFound,
			fmt.Sprintf("amenity %q not found", id),
			domainerror.ErrAmenityNotFound,
		)
	}
	p.amenities = append(p.amenities[:idx:idx], p.amenities[idx+1:]...)
	p.touch()
	return nil
}

// AddImage appends an absolute http(s) image URL. Duplicates fail.
func (p *Property) AddImage(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return propertyFieldError(fmt.Sprintf("%q is not a valid image url", rawURL))
	}
	if p.imageIndex(rawURL) >= 0 {
		return domainerror.NewPropertyError(
			domainerror.ErrCodeImageExists,
			fmt.Sprintf("image %q already added", rawURL),
			domainerror.ErrImageExists,
		)
	}
	p.images = append(p.images, rawURL)
	p.touch()
	return nil
}

// RemoveImage removes an image URL. A published property must keep at least one image.
func (p *Property) RemoveImage(rawURL string) error {
	idx := p.imageIndex(strings.TrimSpace(rawURL))
	if idx < 0 {
		return domainerror.NewPropertyError(
			domainerror.ErrCodeImageNotFound,
			fmt.Sprintf("image %q not found", rawURL),
			domainerror.ErrImageNotFound,
		)
	}
	if p.status == PropertyStatusPublished && len(p.images) == 1 {
		return domainerror.NewPropertyError(
			domainerror.ErrCodePropertyInvariant,
			"cannot remove the last image of a published property",
			domainerror.ErrPropertyInvariant,
		)
	}
	p.images = append(p.images[:idx:idx], p.images[idx+1:]...)
	p.touch()
	return nil
}

func (p *Property) amenityIndex(id string) int {
	for i, a := range p.amenities {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (p *Property) imageIndex(rawURL string) int {
	for i, img := range p.images {
		if img == rawURL {
			return i
		}
	}
	return -1
}

func (p *Property) setDetails(title, description string) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" {
		return propertyFieldError("title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return propertyFieldError(fmt.Sprintf("title must be at most %d characters", MaxTitleLength))
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return propertyFieldError(fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength))
	}
	p.title = title
	p.description = description
	return nil
}

func (p *Property) setPricing(basePrice valueobject.Money, cleaningFee *valueobject.Money) error {
	if basePrice.Currency() == "" || !basePrice.Amount().IsPositive() {
		return propertyFieldError("base price must be greater than zero")
	}
	if cleaningFee != nil && cleaningFee.Currency() != basePrice.Currency() {
		return domainerror.NewPropertyError(
			domainerror.ErrCodePriceCurrencyMismatch,
			fmt.Sprintf("cleaning fee in %s but base price in %s", cleaningFee.Currency(), basePrice.Currency()),
			domainerror.ErrPriceCurrencyMismatch,
		)
	}
	p.basePrice = basePrice
	p.cleaningFee = nil
	if cleaningFee != nil {
		fee := *cleaningFee
		p.cleaningFee = &fee
	}
	return nil
}

func (p *Property) setCapacity(maxGuests, bedrooms, bathrooms, beds int) error {
	if maxGuests < 1 || maxGuests > MaxGuestsLimit {
		return propertyFieldError(fmt.Sprintf("max guests must be between 1 and %d", MaxGuestsLimit))
	}
	if bedrooms < 0 || bathrooms < 0 || beds < 0 {
		return propertyFieldError("bedrooms, bathrooms and beds must not be negative")
	}
	p.maxGuests = maxGuests
	p.bedrooms = bedrooms
	p.bathrooms = bathrooms
	p.beds = beds
	return nil
}

func (p *Property) setStayLimits(minimumStay int, maximumStay *int) error {
	if minimumStay < 1 {
		return propertyFieldError("minimum stay must be at least 1 night")
	}
	if maximumStay != nil && *maximumStay < minimumStay {
		return propertyFieldError("maximum stay must not be less than minimum stay")
	}
	p.minimumStay = minimumStay
	p.maximumStay = nil
	if maximumStay != nil {
		v := *maximumStay
		p.maximumStay = &v
	}
	return nil
}

func (p *Property) transitionError(message string) error {
	return domainerror.NewPropertyError(
		domainerror.ErrCodeInvalidPropertyTransition,
		message,
		domainerror.ErrInvalidPropertyTransition,
	)
}

func propertyFieldError(message string) error {
	return domainerror.NewPropertyError(
		domainerror.ErrCodeInvalidPropertyField,
		message,
		domainerror.ErrInvalidPropertyField,
	)
}

// PropertyJSON is the plain projection of a Property.
type PropertyJSON struct {
	ID               string                  `json:"id"`
	HostID           string                  `json:"hostId"`
	Title            string                  `json:"title"`
	Description      string                  `json:"description"`
	Type             PropertyType            `json:"type"`
	Status           PropertyStatus          `json:"status"`
	Address          valueobject.AddressJSON `json:"address"`
	BasePrice        valueobject.MoneyJSON   `json:"basePrice"`
	CleaningFee      *valueobject.MoneyJSON  `json:"cleaningFee,omitempty"`
	MaxGuests        int                     `json:"maxGuests"`
	Bedrooms         int                     `json:"bedrooms"`
	Bathrooms        int                     `json:"bathrooms"`
	Beds             int                     `json:"beds"`
	Amenities        []Amenity               `json:"amenities"`
	Images           []string                `json:"images"`
	Rules            PropertyRules           `json:"rules"`
	MinimumStay      int                     `json:"minimumStay"`
	MaximumStay      *int                    `json:"maximumStay,omitempty"`
	InstantBooking   bool                    `json:"instantBooking"`
	PublishedAt      *string                 `json:"publishedAt,omitempty"`
	SuspensionReason string                  `json:"suspensionReason,omitempty"`
	CreatedAt        string                  `json:"createdAt"`
	UpdatedAt        string                  `json:"updatedAt"`
}

// ToJSON returns the plain projection of the property.
func (p *Property) ToJSON() PropertyJSON {
	out := PropertyJSON{
		ID:               p.id.String(),
		HostID:           p.hostID.String(),
		Title:            p.title,
		Description:      p.description,
		Type:             p.propertyType,
		Status:           p.status,
		Address:          p.address.ToJSON(),
		BasePrice:        p.basePrice.ToJSON(),
		MaxGuests:        p.maxGuests,
		Bedrooms:         p.bedrooms,
		Bathrooms:        p.bathrooms,
		Beds:             p.beds,
		Amenities:        p.Amenities(),
		Images:           p.Images(),
		Rules:            p.Rules(),
		MinimumStay:      p.minimumStay,
		MaximumStay:      p.MaximumStay(),
		InstantBooking:   p.instantBooking,
		PublishedAt:      formatOptionalTime(p.publishedAt),
		SuspensionReason: p.suspensionReason,
		CreatedAt:        formatTime(p.createdAt),
		UpdatedAt:        formatTime(p.updatedAt),
	}
	if out.Amenities == nil {
		out.Amenities = []Amenity{}
	}
	if out.Images == nil {
		out.Images = []string{}
	}
	if p.cleaningFee != nil {
		fee := p.cleaningFee.ToJSON()
		out.CleaningFee = &fee
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (p *Property) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToJSON())
}

// PropertySnapshot exposes the full state of a Property for the storage adapter.
type PropertySnapshot struct {
	ID               uuid.UUID
	HostID           uuid.UUID
	Title            string
	Description      string
	Type             PropertyType
	Status           PropertyStatus
	Address          valueobject.Address
	BasePrice        valueobject.Money
	CleaningFee      *valueobject.Money
	MaxGuests        int
	Bedrooms         int
	Bathrooms        int
	Beds             int
	Amenities        []Amenity
	Images           []string
	Rules            PropertyRules
	MinimumStay      int
	MaximumStay      *int
	InstantBooking   bool
	PublishedAt      *time.Time
	SuspensionReason string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Snapshot returns a copy of the property state.
func (p *Property) Snapshot() PropertySnapshot {
	return PropertySnapshot{
		ID:               p.id,
		HostID:           p.hostID,
		Title:            p.title,
		Description:      p.description,
		Type:             p.propertyType,
		Status:           p.status,
		Address:          p.address,
		BasePrice:        p.basePrice,
		CleaningFee:      p.CleaningFee(),
		MaxGuests:        p.maxGuests,
		Bedrooms:         p.bedrooms,
		Bathrooms:        p.bathrooms,
		Beds:             p.beds,
		Amenities:        p.Amenities(),
		Images:           p.Images(),
		Rules:            p.Rules(),
		MinimumStay:      p.minimumStay,
		MaximumStay:      p.MaximumStay(),
		InstantBooking:   p.instantBooking,
		PublishedAt:      p.PublishedAt(),
		SuspensionReason: p.suspensionReason,
		CreatedAt:        p.createdAt,
		UpdatedAt:        p.updatedAt,
	}
}

// RestoreProperty rebuilds a property from persisted state without re-running creation rules.
func RestoreProperty(s PropertySnapshot, opts ...Option) *Property {
	p := &Property{
		Base:             restoreBase(s.ID, s.CreatedAt, s.UpdatedAt, opts),
		hostID:           s.HostID,
		title:            s.Title,
		description:      s.Description,
		propertyType:     s.Type,
		status:           s.Status,
		address:          s.Address,
		basePrice:        s.BasePrice,
		maxGuests:        s.MaxGuests,
		bedrooms:         s.Bedrooms,
		bathrooms:        s.Bathrooms,
		beds:             s.Beds,
		amenities:        append([]Amenity(nil), s.Amenities...),
		images:           append([]string(nil), s.Images...),
		rules:            s.Rules.clone(),
		minimumStay:      s.MinimumStay,
		instantBooking:   s.InstantBooking,
		publishedAt:      copyTime(s.PublishedAt),
		suspensionReason: s.SuspensionReason,
	}
	if s.CleaningFee != nil {
		fee := *s.CleaningFee
		p.cleaningFee = &fee
	}
	if s.MaximumStay != nil {
		v := *s.MaximumStay
		p.maximumStay = &v
	}
	return p
}
