package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tutorlink/authgate/core"
)

// Admin endpoints. All of them require a token belonging to an ADMIN
// identity; the backend enforces the role, these wrappers just carry it.

const (
	adminPath      = "/api/v1/admin"
	categoriesPath = "/api/v1/categories"
)

// UserStatus is an account's moderation state.
type UserStatus string

const (
	UserActive UserStatus = "ACTIVE"
	UserBanned UserStatus = "BANNED"
)

// AdminUser is the moderation view of an account, richer than the
// public Identity.
type AdminUser struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Role          core.Role  `json:"role"`
	EmailVerified bool       `json:"emailVerified"`
	Image         *string    `json:"image,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	Status        UserStatus `json:"status,omitempty"`
	CreatedAt     string     `json:"createdAt"`
	UpdatedAt     string     `json:"updatedAt"`
}

// Category is a subject grouping managed from the admin screens.
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// CategoryInput is the payload for creating or updating a category.
type CategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// DashboardStats is the admin dashboard's aggregate view.
type DashboardStats struct {
	Users struct {
		Total    int `json:"total"`
		Students int `json:"students"`
		Tutors   int `json:"tutors"`
	} `json:"users"`
	Bookings struct {
		Total     int `json:"total"`
		Confirmed int `json:"confirmed"`
		Completed int `json:"completed"`
		Cancelled int `json:"cancelled"`
	} `json:"bookings"`
	Reviews struct {
		Total int `json:"total"`
	} `json:"reviews"`
	Categories struct {
		Total int `json:"total"`
	} `json:"categories"`
}

// UserFilter narrows AdminUsers. Zero values mean no filter.
type UserFilter struct {
	Search string
	Role   core.Role
	Status UserStatus
}

func (f UserFilter) query() string {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Role != "" {
		params.Set("role", string(f.Role))
	}
	if f.Status != "" {
		params.Set("status", string(f.Status))
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

// BookingFilter narrows AdminBookings. Zero values mean no filter.
type BookingFilter struct {
	Status    BookingStatus
	StudentID string
	TutorID   string
}

func (f BookingFilter) query() string {
	params := url.Values{}
	if f.Status != "" {
		params.Set("status", string(f.Status))
	}
	if f.StudentID != "" {
		params.Set("studentId", f.StudentID)
	}
	if f.TutorID != "" {
		params.Set("tutorId", f.TutorID)
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

// DashboardStats fetches the admin dashboard aggregates.
func (c *Client) DashboardStats(ctx context.Context, token string) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, adminPath+"/stats", token, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// AdminUsers lists accounts matching the filter.
func (c *Client) AdminUsers(ctx context.Context, token string, filter UserFilter) ([]AdminUser, error) {
	var users []AdminUser
	if err := c.do(ctx, http.MethodGet, adminPath+"/users"+filter.query(), token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetUserStatus bans or reinstates an account.
func (c *Client) SetUserStatus(ctx context.Context, token, userID string, status UserStatus) error {
	path := adminPath + "/users/" + url.PathEscape(userID) + "/status"
	body := map[string]UserStatus{"status": status}
	return c.do(ctx, http.MethodPatch, path, token, body, nil)
}

// AdminBookings lists sessions across all users matching the filter.
func (c *Client) AdminBookings(ctx context.Context, token string, filter BookingFilter) ([]Booking, error) {
	var bookings []Booking
	if err := c.do(ctx, http.MethodGet, adminPath+"/bookings"+filter.query(), token, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Categories lists all subject categories.
func (c *Client) Categories(ctx context.Context, token string) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, categoriesPath, token, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory adds a subject category.
func (c *Client) CreateCategory(ctx context.Context, token string, input CategoryInput) (*Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodPost, categoriesPath, token, input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory renames or redescribes a category.
func (c *Client) UpdateCategory(ctx context.Context, token, id string, input CategoryInput) (*Category, error) {
	var category Category
	path := categoriesPath + "/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, token, input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, categoriesPath+"/"+url.PathEscape(id), token, nil, nil)
}
