// Package resio provides typed facades over the resident-portal API.
package resio

import "time"

// User is the authenticated resident's profile.
type User struct {
	ID            int    `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone,omitempty"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
	UserType      string `json:"userType,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
}

// LoginResult is the inner payload of a successful login response.
type LoginResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// Lease ties a resident to a unit for a term.
type Lease struct {
	ID        int       `json:"id"`
	UnitID    int       `json:"unitId"`
	UnitName  string    `json:"unitName"`
	Property  string    `json:"propertyName"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
	Current   bool      `json:"isCurrent"`
}

// Event is a community calendar entry.
type Event struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	RSVPStatus  string    `json:"rsvpStatus,omitempty"`
	Attendees   int       `json:"attendeeCount"`
}

// RSVP statuses accepted by SetEventRSVP.
const (
	RSVPGoing    = "going"
	RSVPMaybe    = "maybe"
	RSVPDeclined = "declined"
)

// File is an attachment on a bulletin or resource.
type File struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Mime string `json:"mimeType,omitempty"`
}

// Bulletin is a community announcement.
type Bulletin struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Author      string    `json:"authorName,omitempty"`
	Pinned      bool      `json:"pinned"`
	Read        bool      `json:"read"`
	Attachments []File    `json:"attachments,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Page wraps a paginated listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	PageNumber int `json:"page"`
	PerPage    int `json:"perPage"`
}

// CommunityResource is a property amenity or service listing.
type CommunityResource struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	URL         string `json:"url,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// LinkedAccount is another resident sharing the unit.
type LinkedAccount struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role,omitempty"`
}

// Address is a postal address.
type Address struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2,omitempty"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

// OfficeHours is one day's office schedule.
type OfficeHours struct {
	Day   string `json:"day"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Property is a property's office details.
type Property struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Address     Address       `json:"address"`
	OfficePhone string        `json:"officePhone,omitempty"`
	OfficeEmail string        `json:"officeEmail,omitempty"`
	OfficeHours []OfficeHours `json:"officeHours,omitempty"`
}

// Invitation is a pending invite for another person to join the unit.
type Invitation struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Message   string    `json:"message,omitempty"`
	Status    string    `json:"status"`
	Sender    string    `json:"senderName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UnitInfo carries unit-level connectivity details, including wifi
// credentials for move-in.
type UnitInfo struct {
	UnitID       int    `json:"unitId"`
	UnitName     string `json:"unitName"`
	WifiNetwork  string `json:"wifiNetwork,omitempty"`
	WifiPassword string `json:"wifiPassword,omitempty"`
	Provider     string `json:"provider,omitempty"`
}

// SignupRequest is the payload for account creation.
type SignupRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	InviteCode string `json:"inviteCode,omitempty"`
}

// UpdateUserRequest carries profile fields to change. Empty fields are
// left untouched.
type UpdateUserRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
}
