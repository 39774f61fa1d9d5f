package resio

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/resio/resio-cli/internal/api"
	"github.com/resio/resio-cli/internal/apierr"
	"github.com/resio/resio-cli/internal/endpoint"
)

// HomeAPI groups the resident home-screen operations: events,
// bulletins, leases, invitations, and unit details.
type HomeAPI struct {
	client *api.Client
}

// NewHomeAPI returns a HomeAPI over client.
func NewHomeAPI(client *api.Client) *HomeAPI {
	return &HomeAPI{client: client}
}

// Events lists upcoming community events.
func (h *HomeAPI) Events(ctx context.Context) ([]Event, error) {
	return getList[Event](ctx, h, endpoint.V1, "home/events")
}

// Event fetches a single event.
func (h *HomeAPI) Event(ctx context.Context, id int) (*Event, error) {
	if err := validatePositiveID("eventId", id); err != nil {
		return nil, err
	}
	return getOne[Event](ctx, h, endpoint.V1, fmt.Sprintf("home/events/%d", id))
}

// SetEventRSVP records the resident's RSVP for an event.
func (h *HomeAPI) SetEventRSVP(ctx context.Context, id int, status string) error {
	if err := validatePositiveID("eventId", id); err != nil {
		return err
	}
	if err := validateRSVP(status); err != nil {
		return err
	}
	_, err := h.client.Put(ctx, h.ep(endpoint.V1, fmt.Sprintf("home/events/%d/rsvp", id)), map[string]string{
		"status": status,
	})
	return err
}

// Bulletins lists a property's announcements, newest first.
func (h *HomeAPI) Bulletins(ctx context.Context, propertyID, page, perPage int) (*Page[Bulletin], error) {
	if err := validatePositiveID("propertyId", propertyID); err != nil {
		return nil, err
	}
	if err := validatePagination(page, perPage); err != nil {
		return nil, err
	}
	path := fmt.Sprintf("home/bulletins?propertyId=%d&page=%d&perPage=%d", propertyID, page, perPage)
	resp, err := h.client.Get(ctx, h.ep(endpoint.V2, path))
	if err != nil {
		return nil, err
	}
	var out Page[Bulletin]
	if err := decode(resp, &out); err != nil {
		return nil, fmt.Errorf("decoding bulletins: %w", err)
	}
	return &out, nil
}

// Bulletin fetches a single announcement.
func (h *HomeAPI) Bulletin(ctx context.Context, id int) (*Bulletin, error) {
	if err := validatePositiveID("bulletinId", id); err != nil {
		return nil, err
	}
	return getOne[Bulletin](ctx, h, endpoint.V2, fmt.Sprintf("home/bulletins/%d", id))
}

// MarkBulletinRead marks an announcement as read.
func (h *HomeAPI) MarkBulletinRead(ctx context.Context, id int) error {
	if err := validatePositiveID("bulletinId", id); err != nil {
		return err
	}
	_, err := h.client.Post(ctx, h.ep(endpoint.V2, fmt.Sprintf("home/bulletins/%d/read", id)), nil)
	return err
}

// UnreadBulletinsCount returns the number of unread announcements for
// a property.
func (h *HomeAPI) UnreadBulletinsCount(ctx context.Context, propertyID int) (int, error) {
	if err := validatePositiveID("propertyId", propertyID); err != nil {
		return 0, err
	}
	path := fmt.Sprintf("home/bulletins/unread-count?propertyId=%d", propertyID)
	resp, err := h.client.Get(ctx, h.ep(endpoint.V4, path))
	if err != nil {
		return 0, err
	}
	var out struct {
		Count int `json:"count"`
	}
	if err := decode(resp, &out); err != nil {
		return 0, fmt.Errorf("decoding unread count: %w", err)
	}
	return out.Count, nil
}

// CommunityResources lists a property's amenities and services.
func (h *HomeAPI) CommunityResources(ctx context.Context, propertyID int) ([]CommunityResource, error) {
	if err := validatePositiveID("propertyId", propertyID); err != nil {
		return nil, err
	}
	return getList[CommunityResource](ctx, h, endpoint.V1, fmt.Sprintf("home/community-resources?propertyId=%d", propertyID))
}

// Leases lists the resident's leases, past and present.
func (h *HomeAPI) Leases(ctx context.Context) ([]Lease, error) {
	return getList[Lease](ctx, h, endpoint.V1, "home/leases")
}

// CurrentLease returns the active lease.
func (h *HomeAPI) CurrentLease(ctx context.Context) (*Lease, error) {
	return getOne[Lease](ctx, h, endpoint.V1, "home/leases/current")
}

// LinkedAccounts lists other residents sharing the unit.
func (h *HomeAPI) LinkedAccounts(ctx context.Context) ([]LinkedAccount, error) {
	return getList[LinkedAccount](ctx, h, endpoint.V2, "connections")
}

// PropertyInfo returns a property's office details.
func (h *HomeAPI) PropertyInfo(ctx context.Context, propertyID int) (*Property, error) {
	if err := validatePositiveID("propertyId", propertyID); err != nil {
		return nil, err
	}
	return getOne[Property](ctx, h, endpoint.V1, fmt.Sprintf("home/properties/%d", propertyID))
}

// Invitations lists pending invitations for the unit.
func (h *HomeAPI) Invitations(ctx context.Context) ([]Invitation, error) {
	return getList[Invitation](ctx, h, endpoint.V1, "home/invitations")
}

// AcceptInvitation accepts an invitation addressed to the resident.
func (h *HomeAPI) AcceptInvitation(ctx context.Context, id int) error {
	if err := validatePositiveID("invitationId", id); err != nil {
		return err
	}
	_, err := h.client.Post(ctx, h.ep(endpoint.V1, fmt.Sprintf("home/invitations/%d/accept", id)), nil)
	return err
}

// DeclineInvitation declines an invitation. The sender's name is
// included so the server can notify them.
func (h *HomeAPI) DeclineInvitation(ctx context.Context, id int, sender string) error {
	if err := validatePositiveID("invitationId", id); err != nil {
		return err
	}
	_, err := h.client.Post(ctx, h.ep(endpoint.V1, fmt.Sprintf("home/invitations/%d/decline", id)), map[string]string{
		"sender": sender,
	})
	return err
}

// SendInvitation invites another person to the unit. A conflict means
// that address was already invited, and gets a friendlier message.
func (h *HomeAPI) SendInvitation(ctx context.Context, email, message string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	_, err := h.client.Post(ctx, h.ep(endpoint.V1, "home/invitations"), map[string]string{
		"email":   email,
		"message": message,
	})
	if err != nil {
		if e, ok := apierr.As(err); ok && e.HTTPStatus == 409 {
			return apierr.WithMessage(e, "This person has already been invited")
		}
		return err
	}
	return nil
}

// UnitInfo returns connectivity details for the leased unit.
func (h *HomeAPI) UnitInfo(ctx context.Context, leaseID int) (*UnitInfo, error) {
	if err := validatePositiveID("leaseId", leaseID); err != nil {
		return nil, err
	}
	return getOne[UnitInfo](ctx, h, endpoint.V1, fmt.Sprintf("home/leases/%d/unit-info", leaseID))
}

func (h *HomeAPI) ep(v endpoint.Version, path string) endpoint.Endpoint {
	return h.client.Resolver().Resio(v, path)
}

func getList[T any](ctx context.Context, h *HomeAPI, v endpoint.Version, path string) ([]T, error) {
	resp, err := h.client.Get(ctx, h.ep(v, path))
	if err != nil {
		return nil, err
	}
	var out []T
	if err := decode(resp, &out); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return out, nil
}

func getOne[T any](ctx context.Context, h *HomeAPI, v endpoint.Version, path string) (*T, error) {
	resp, err := h.client.Get(ctx, h.ep(v, path))
	if err != nil {
		return nil, err
	}
	var out T
	if err := decode(resp, &out); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &out, nil
}

// decode unmarshals a payload that may arrive bare or wrapped in one of
// the server's envelope forms ({"response": ...} or {"data": ...}).
func decode(resp *api.Response, out any) error {
	var env struct {
		Response json.RawMessage `json:"response"`
		Data     json.RawMessage `json:"data"`
	}
	if err := resp.Decode(&env); err == nil {
		if len(env.Response) > 0 {
			return json.Unmarshal(env.Response, out)
		}
		if len(env.Data) > 0 {
			return json.Unmarshal(env.Data, out)
		}
	}
	return resp.Decode(out)
}
