package api

// Client for the FreshNest booking backend. The backend owns leads,
// scheduling and payment; the bot only submits and reads back errors.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// BookingRequest is the POST /api/bookings payload.
type BookingRequest struct {
	Reference   string  `json:"reference"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	ServiceType string  `json:"service_type"` // residential|commercial|move-in-out|recurring
	BookingDate string  `json:"booking_date"` // ISO-8601
	Time        string  `json:"time"`
	Message     string  `json:"message"`
	Frequency   string  `json:"frequency,omitempty"`
	Subtotal    float64 `json:"subtotal,omitempty"`
	Discount    float64 `json:"discount,omitempty"`
	Tip         float64 `json:"tip,omitempty"`
	Total       float64 `json:"total,omitempty"`
}

type BookingResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ApplicationRequest is the POST /api/join-team payload.
type ApplicationRequest struct {
	FirstName             string `json:"firstName"`
	LastName              string `json:"lastName"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	CleaningExperience    string `json:"cleaningExperience"`
	HasLicenseAndVehicle  string `json:"hasLicenseAndVehicle"`
	Availability          string `json:"availability"`
	Message               string `json:"message"`
	AdditionalInfo        string `json:"additionalInfo"`
	Resume                string `json:"resume"`
}

// APIError carries the backend's user-facing error message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status: %d", e.StatusCode)
}

func NewClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// CreateBooking submits a booking. Single attempt; callers surface the
// APIError message to the user on failure.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (*BookingResponse, error) {
	var resp BookingResponse
	if err := c.post(ctx, "/api/bookings", req, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("Booking submitted to backend",
		zap.String("reference", req.Reference),
		zap.String("backend_id", resp.ID))
	return &resp, nil
}

// SubmitApplication submits a join-team application.
func (c *Client) SubmitApplication(ctx context.Context, req ApplicationRequest) error {
	if err := c.post(ctx, "/api/join-team", req, nil); err != nil {
		return err
	}

	c.logger.Info("Application submitted to backend",
		zap.String("email", req.Email))
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+path,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var body struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &body) == nil {
			apiErr.Message = body.Error
		}
	}

	c.logger.Warn("Backend rejected request",
		zap.Int("status", resp.StatusCode),
		zap.String("error", apiErr.Message))
	return apiErr
}
