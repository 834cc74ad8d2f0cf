package client

import (
	"context"
	"net/http"
	"net/url"
)

// Thin typed wrappers over the marketplace endpoints. These mirror the
// backend's read/write surface one-to-one; all business rules live on
// the server.

const (
	tutorsPath   = "/api/v1/tutors"
	bookingsPath = "/api/v1/bookings"
)

// TutorProfile is a tutor's public listing.
type TutorProfile struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Bio          *string   `json:"bio,omitempty"`
	Subjects     []string  `json:"subjects"`
	HourlyRate   float64   `json:"hourlyRate"`
	Experience   *string   `json:"experience,omitempty"`
	Education    *string   `json:"education,omitempty"`
	Rating       float64   `json:"rating"`
	TotalReviews int       `json:"totalReviews"`
	User         TutorUser `json:"user"`
}

// TutorUser is the profile owner's public identity subset.
type TutorUser struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Image *string `json:"image,omitempty"`
}

// BookingStatus enumerates the session states the backend reports.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking is a tutoring session between a student and a tutor.
type Booking struct {
	ID        string        `json:"id"`
	StudentID string        `json:"studentId"`
	TutorID   string        `json:"tutorId"`
	Date      string        `json:"date"`
	StartTime string        `json:"startTime"`
	EndTime   string        `json:"endTime"`
	Subject   string        `json:"subject"`
	Notes     *string       `json:"notes,omitempty"`
	Status    BookingStatus `json:"status"`
	CreatedAt string        `json:"createdAt"`
}

// CreateBookingInput is the payload for booking a session.
type CreateBookingInput struct {
	TutorID   string  `json:"tutorId"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Subject   string  `json:"subject"`
	Notes     *string `json:"notes,omitempty"`
}

// Review is a student's rating of a completed session.
type Review struct {
	ID        string `json:"id"`
	BookingID string `json:"sessionId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt"`
}

// CreateReviewInput is the payload for reviewing a completed session.
type CreateReviewInput struct {
	BookingID string `json:"sessionId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// Tutors lists tutor profiles, optionally filtered by subject.
func (c *Client) Tutors(ctx context.Context, subject string) ([]TutorProfile, error) {
	path := tutorsPath
	if subject != "" {
		path += "?subject=" + url.QueryEscape(subject)
	}

	var tutors []TutorProfile
	if err := c.do(ctx, http.MethodGet, path, "", nil, &tutors); err != nil {
		return nil, err
	}
	return tutors, nil
}

// Tutor fetches a single tutor profile.
func (c *Client) Tutor(ctx context.Context, id string) (*TutorProfile, error) {
	var tutor TutorProfile
	if err := c.do(ctx, http.MethodGet, tutorsPath+"/"+url.PathEscape(id), "", nil, &tutor); err != nil {
		return nil, err
	}
	return &tutor, nil
}

// TutorReviews lists the reviews left for a tutor.
func (c *Client) TutorReviews(ctx context.Context, tutorID string) ([]Review, error) {
	var reviews []Review
	path := tutorsPath + "/" + url.PathEscape(tutorID) + "/reviews"
	if err := c.do(ctx, http.MethodGet, path, "", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateBooking books a session on behalf of the authenticated student.
func (c *Client) CreateBooking(ctx context.Context, token string, input CreateBookingInput) (*Booking, error) {
	var booking Booking
	if err := c.do(ctx, http.MethodPost, bookingsPath, token, input, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// MyBookings lists the authenticated user's sessions.
func (c *Client) MyBookings(ctx context.Context, token string) ([]Booking, error) {
	var bookings []Booking
	if err := c.do(ctx, http.MethodGet, bookingsPath+"/my-bookings", token, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CancelBooking cancels a session.
func (c *Client) CancelBooking(ctx context.Context, token, bookingID string) error {
	return c.do(ctx, http.MethodDelete, bookingsPath+"/"+url.PathEscape(bookingID), token, nil, nil)
}

// CreateReview posts a review for a completed session.
func (c *Client) CreateReview(ctx context.Context, token string, input CreateReviewInput) (*Review, error) {
	var review Review
	if err := c.do(ctx, http.MethodPost, "/api/v1/reviews", token, input, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
