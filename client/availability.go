package client

import (
	"context"
	"net/http"
	"net/url"
)

// Availability endpoints: the weekly slots a tutor offers and the
// booking flow books against.

const availabilityPath = "/api/v1/availability"

// AvailabilitySlot is one recurring weekly opening.
type AvailabilitySlot struct {
	ID        string `json:"id"`
	TutorID   string `json:"tutorId"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// CreateSlotInput is the payload for opening a slot.
type CreateSlotInput struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// MyAvailability lists the authenticated tutor's own slots.
func (c *Client) MyAvailability(ctx context.Context, token string) ([]AvailabilitySlot, error) {
	var slots []AvailabilitySlot
	if err := c.do(ctx, http.MethodGet, availabilityPath+"/me", token, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// CreateSlot opens a weekly slot for the authenticated tutor.
func (c *Client) CreateSlot(ctx context.Context, token string, input CreateSlotInput) (*AvailabilitySlot, error) {
	var slot AvailabilitySlot
	if err := c.do(ctx, http.MethodPost, availabilityPath, token, input, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

// DeleteSlot closes a slot.
func (c *Client) DeleteSlot(ctx context.Context, token, slotID string) error {
	return c.do(ctx, http.MethodDelete, availabilityPath+"/"+url.PathEscape(slotID), token, nil, nil)
}

// TutorAvailability lists a tutor's open slots for the booking flow.
func (c *Client) TutorAvailability(ctx context.Context, token, tutorID string) ([]AvailabilitySlot, error) {
	var slots []AvailabilitySlot
	path := availabilityPath + "/tutor/" + url.PathEscape(tutorID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}
