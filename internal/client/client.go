// ABOUTME: HTTP client for the OneStepGreener customer API
// ABOUTME: Wraps login, OTP, signup, profile, logout and notification calls with a bounded timeout

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every request
const DefaultTimeout = 60 * time.Second

// Client is the API client for the customer backend
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient swaps the underlying transport
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		timeout:    DefaultTimeout,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the response shape shared by every endpoint
type envelope struct {
	Status           string          `json:"status"`
	Message          string          `json:"message"`
	ErrorCode        string          `json:"errorCode,omitempty"`
	RedirectToSignup bool            `json:"redirectToSignup,omitempty"`
	UserExists       bool            `json:"userExists,omitempty"`
	UserApproved     bool            `json:"userApproved,omitempty"`
	UnreadCount      int             `json:"unreadCount,omitempty"`
	Data             json.RawMessage `json:"data,omitempty"`
}

// mobileRequest is the body for OTP generation and resend
type mobileRequest struct {
	MobileNumber string `json:"mobileNumber"`
}

type verifyRequest struct {
	MobileNumber string `json:"mobileNumber"`
	OTP          string `json:"otp"`
}

type logoutRequest struct {
	CustomerID   CustomerID `json:"customerId"`
	SessionToken string     `json:"sessionToken,omitempty"`
}

type markReadRequest struct {
	CustomerID     CustomerID `json:"customerId"`
	NotificationID *int       `json:"notificationId,omitempty"`
}

type registerDeviceRequest struct {
	CustomerID  CustomerID `json:"customerId"`
	DeviceToken string     `json:"deviceToken"`
	Platform    string     `json:"platform"`
}

// Health calls GET /health
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	env, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}
	return &HealthResponse{Status: env.Status, Message: env.Message}, nil
}

// GenerateOTP calls POST /api/login/generate-otp.
// The caller validates the mobile number before calling.
func (c *Client) GenerateOTP(ctx context.Context, mobileNumber string) (*OTPIssued, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/login/generate-otp", mobileRequest{MobileNumber: mobileNumber})
	if err != nil {
		return nil, err
	}

	issued := &OTPIssued{Message: env.Message}
	if err := decodeData(env, issued); err != nil {
		return nil, err
	}
	return issued, nil
}

// ResendOTP calls POST /api/login/resend-otp. Only registered, approved
// customers may ask for a new code.
func (c *Client) ResendOTP(ctx context.Context, mobileNumber string) (*OTPIssued, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/login/resend-otp", mobileRequest{MobileNumber: mobileNumber})
	if err != nil {
		return nil, err
	}

	issued := &OTPIssued{Message: env.Message, MobileNumber: mobileNumber, SMSSent: true}
	if err := decodeData(env, issued); err != nil {
		return nil, err
	}
	return issued, nil
}

// VerifyOTP calls POST /api/login/verify-otp
func (c *Client) VerifyOTP(ctx context.Context, mobileNumber, code string) (*VerifyResult, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/login/verify-otp", verifyRequest{MobileNumber: mobileNumber, OTP: code})
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{
		Message:      env.Message,
		UserExists:   env.UserExists,
		UserApproved: env.UserApproved,
	}
	if len(env.Data) > 0 {
		var customer Customer
		if err := decodeData(env, &customer); err != nil {
			return nil, err
		}
		result.Customer = &customer
	}
	return result, nil
}

// Signup calls POST /api/signup
func (c *Client) Signup(ctx context.Context, req *SignupRequest) (*Ack, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/signup", req)
	if err != nil {
		return nil, err
	}
	return &Ack{Message: env.Message}, nil
}

// EditProfile calls PUT /api/profile/edit and returns the updated customer
func (c *Client) EditProfile(ctx context.Context, req *EditProfileRequest) (*Customer, error) {
	env, err := c.do(ctx, http.MethodPut, "/api/profile/edit", req)
	if err != nil {
		return nil, err
	}

	var customer Customer
	if err := decodeData(env, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Logout calls POST /api/logout. Callers treat failures as best-effort.
func (c *Client) Logout(ctx context.Context, customerID CustomerID, sessionToken string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/logout", logoutRequest{CustomerID: customerID, SessionToken: sessionToken})
	return err
}

// Notifications calls GET /api/notifications
func (c *Client) Notifications(ctx context.Context, customerID CustomerID) ([]Notification, error) {
	path := "/api/notifications?customerId=" + url.QueryEscape(customerID.String())
	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	notifications := []Notification{}
	if err := decodeData(env, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead marks a single notification as read
func (c *Client) MarkNotificationRead(ctx context.Context, customerID CustomerID, notificationID int) error {
	return c.markRead(ctx, customerID, &notificationID)
}

// MarkAllNotificationsRead marks every notification of the customer as read
func (c *Client) MarkAllNotificationsRead(ctx context.Context, customerID CustomerID) error {
	return c.markRead(ctx, customerID, nil)
}

// markRead calls POST /api/notifications/mark-read; a nil id means all
func (c *Client) markRead(ctx context.Context, customerID CustomerID, notificationID *int) error {
	_, err := c.do(ctx, http.MethodPost, "/api/notifications/mark-read", markReadRequest{CustomerID: customerID, NotificationID: notificationID})
	return err
}

// RegisterDevice calls POST /api/notifications/register-device
func (c *Client) RegisterDevice(ctx context.Context, customerID CustomerID, deviceToken, platform string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/notifications/register-device", registerDeviceRequest{
		CustomerID:  customerID,
		DeviceToken: deviceToken,
		Platform:    platform,
	})
	return err
}

// do sends one request bounded by the client timeout and decodes the envelope.
// Non-success responses come back as *APIError, transport failures as *NetworkError.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if ctx.Err() != nil {
			return nil, c.handleRequestError(ctx, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("backend returned status %d", resp.StatusCode)}
		}
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.success() {
		return nil, &APIError{
			StatusCode:       resp.StatusCode,
			Message:          env.Message,
			ErrorCode:        env.ErrorCode,
			RedirectToSignup: env.RedirectToSignup,
		}
	}

	return &env, nil
}

// success accepts the "healthy" status used by the health endpoint
func (e *envelope) success() bool {
	return e.Status == "success" || e.Status == "healthy"
}

// handleRequestError converts transport and context errors to a NetworkError
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &NetworkError{Timeout: true, Err: fmt.Errorf("request timeout after %d seconds", int(c.timeout.Seconds()))}
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return &NetworkError{Err: fmt.Errorf("request canceled")}
	}
	return &NetworkError{Err: fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)}
}

// decodeData unmarshals the envelope's data field into v; absent data leaves v untouched
func decodeData(env *envelope, v interface{}) error {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}
