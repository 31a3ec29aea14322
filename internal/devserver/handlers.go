// ABOUTME: HTTP handlers for the customer API served by the dev server
// ABOUTME: Reproduces the production responses and business errors for local runs

package devserver

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/onestepgreener/greener-cli/internal/client"
)

// DefaultOTPTTL is how long an issued code stays valid
const DefaultOTPTTL = 5 * time.Minute

var (
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
	otpPattern    = regexp.MustCompile(`^[0-9]{6}$`)
	nonNumeric    = regexp.MustCompile(`[^0-9.]`)
)

// Server serves the customer API from a Directory and an OTPStore
type Server struct {
	dir     *Directory
	otps    OTPStore
	otpTTL  time.Duration
	now     func() time.Time
	newCode func() (string, error)

	mu      sync.Mutex
	devices map[client.CustomerID][]string
}

// Option configures a Server
type Option func(*Server)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithCodeGenerator replaces the random OTP generator
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(s *Server) { s.newCode = gen }
}

// New creates a Server
func New(dir *Directory, otps OTPStore, otpTTL time.Duration, opts ...Option) *Server {
	if otpTTL <= 0 {
		otpTTL = DefaultOTPTTL
	}
	s := &Server{
		dir:     dir,
		otps:    otps,
		otpTTL:  otpTTL,
		now:     time.Now,
		newCode: randomCode,
		devices: make(map[client.CustomerID][]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// randomCode returns a six digit code between 100000 and 999999
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// response is the JSON envelope every endpoint answers with
type response struct {
	Status           string      `json:"status"`
	Message          string      `json:"message,omitempty"`
	ErrorCode        string      `json:"errorCode,omitempty"`
	RedirectToSignup bool        `json:"redirectToSignup,omitempty"`
	UserExists       *bool       `json:"userExists,omitempty"`
	UserApproved     *bool       `json:"userApproved,omitempty"`
	Count            *int        `json:"count,omitempty"`
	UnreadCount      *int        `json:"unreadCount,omitempty"`
	Data             interface{} `json:"data,omitempty"`
}

type otpData struct {
	MobileNumber string `json:"mobileNumber"`
	SMSSent      bool   `json:"smsSent"`
	UserExists   bool   `json:"userExists"`
	OTP          string `json:"otp"`
	OTPMessage   string `json:"otpMessage"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, response{Status: "error", Message: message})
}

func success(message string, data interface{}) response {
	return response{Status: "success", Message: message, Data: data}
}

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

// decode reads a JSON body; a missing or broken body decodes to the zero value
func decode(r *http.Request, v interface{}) {
	if r.Body == nil {
		return
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Debug("Ignoring undecodable request body", "path", r.URL.Path, "error", err)
	}
}

// Health handles GET /health
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Dev backend is running",
	})
}

type mobileBody struct {
	MobileNumber string `json:"mobileNumber"`
}

func validMobile(w http.ResponseWriter, mobile string) bool {
	if mobile == "" {
		writeError(w, "Mobile number is required", http.StatusBadRequest)
		return false
	}
	if !mobilePattern.MatchString(mobile) {
		writeError(w, "Please enter a valid 10-digit mobile number", http.StatusBadRequest)
		return false
	}
	return true
}

// issue stores a fresh code for mobile
func (s *Server) issue(ctx context.Context, mobile string, customer client.Customer, exists bool) (string, error) {
	code, err := s.newCode()
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	rec := OTPRecord{
		Code:       code,
		ExpiresAt:  s.now().Add(s.otpTTL),
		UserExists: exists,
		CustomerID: customer.CustomerID,
		Status:     customer.Status,
	}
	if err := s.otps.Put(ctx, mobile, rec); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

func (s *Server) otpResponse(mobile, code string, exists bool) otpData {
	return otpData{
		MobileNumber: mobile,
		SMSSent:      false,
		UserExists:   exists,
		OTP:          code,
		OTPMessage:   fmt.Sprintf("OTP: %s (Valid for %d minutes)", code, int(s.otpTTL.Minutes())),
	}
}

// GenerateOTP handles POST /api/login/generate-otp. Unknown numbers get a
// code too; verification then routes them to signup.
func (s *Server) GenerateOTP(w http.ResponseWriter, r *http.Request) {
	var body mobileBody
	decode(r, &body)
	mobile := strings.TrimSpace(body.MobileNumber)
	if !validMobile(w, mobile) {
		return
	}

	customer, exists := s.dir.ByMobile(mobile)
	code, err := s.issue(r.Context(), mobile, customer, exists)
	if err != nil {
		slog.Error("Failed to issue OTP", "mobile", mobile, "error", err)
		writeError(w, "Failed to generate OTP: "+err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("OTP generated", "mobile", mobile, "user_exists", exists)
	writeJSON(w, http.StatusOK, success(
		"OTP generated. Please check SMS on "+mobile,
		s.otpResponse(mobile, code, exists),
	))
}

// ResendOTP handles POST /api/login/resend-otp
func (s *Server) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var body mobileBody
	decode(r, &body)
	mobile := strings.TrimSpace(body.MobileNumber)
	if !validMobile(w, mobile) {
		return
	}

	customer, exists := s.dir.ByMobile(mobile)
	if !exists {
		writeJSON(w, http.StatusNotFound, response{
			Status:           "error",
			Message:          "Mobile number not registered. Please sign up first.",
			ErrorCode:        client.ErrorCodeMobileNotFound,
			RedirectToSignup: true,
		})
		return
	}
	if customer.Status != StatusApproved {
		writeError(w, "Your profile is under consideration. Please wait for approval.", http.StatusForbidden)
		return
	}

	code, err := s.issue(r.Context(), mobile, customer, true)
	if err != nil {
		slog.Error("Failed to reissue OTP", "mobile", mobile, "error", err)
		writeError(w, "Failed to resend OTP: "+err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("OTP resent", "mobile", mobile)
	writeJSON(w, http.StatusOK, success(
		"New OTP generated. Please check SMS on "+mobile,
		s.otpResponse(mobile, code, true),
	))
}

type verifyBody struct {
	MobileNumber string `json:"mobileNumber"`
	OTP          string `json:"otp"`
}

// VerifyOTP handles POST /api/login/verify-otp
func (s *Server) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var body verifyBody
	decode(r, &body)
	mobile := strings.TrimSpace(body.MobileNumber)
	code := strings.TrimSpace(body.OTP)

	switch {
	case mobile == "":
		writeError(w, "Mobile number is required", http.StatusBadRequest)
		return
	case code == "":
		writeError(w, "OTP is required", http.StatusBadRequest)
		return
	case !mobilePattern.MatchString(mobile):
		writeError(w, "Invalid mobile number format", http.StatusBadRequest)
		return
	case !otpPattern.MatchString(code):
		writeError(w, "OTP must be 6 digits", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	rec, err := s.otps.Get(ctx, mobile)
	if err != nil {
		slog.Error("Failed to load OTP", "mobile", mobile, "error", err)
		writeError(w, "Failed to verify OTP: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if rec == nil {
		writeError(w, "OTP not found. Please generate a new OTP.", http.StatusNotFound)
		return
	}
	if !s.now().Before(rec.ExpiresAt) {
		s.otps.Delete(ctx, mobile)
		writeError(w, "OTP has expired. Please generate a new OTP.", http.StatusBadRequest)
		return
	}
	if rec.Code != code {
		writeError(w, "Invalid OTP. Please try again.", http.StatusBadRequest)
		return
	}

	if err := s.otps.Delete(ctx, mobile); err != nil {
		slog.Warn("Failed to delete used OTP", "mobile", mobile, "error", err)
	}

	if rec.UserExists {
		if customer, ok := s.dir.ByID(rec.CustomerID); ok {
			customer.MobileNumber = mobile
			approved := customer.Status == StatusApproved
			slog.Info("OTP verified", "customer_id", customer.CustomerID, "approved", approved)
			writeJSON(w, http.StatusOK, response{
				Status:       "success",
				Message:      "OTP verified successfully",
				UserExists:   boolPtr(true),
				UserApproved: boolPtr(approved),
				Data:         customer,
			})
			return
		}
	}

	slog.Info("OTP verified for new user", "mobile", mobile)
	writeJSON(w, http.StatusOK, response{
		Status:     "success",
		Message:    "OTP verified successfully",
		UserExists: boolPtr(false),
		Data:       map[string]string{"mobileNumber": mobile},
	})
}

// Signup handles POST /api/signup
func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	var req client.SignupRequest
	decode(r, &req)

	fields := []struct{ name, value string }{
		{"fullName", req.FullName},
		{"email", req.Email},
		{"mobileNumber", req.MobileNumber},
		{"houseNumber", req.HouseNumber},
		{"address", req.Address},
		{"city", req.City},
		{"state", req.State},
		{"userType", req.UserType},
		{"knowAboutUs", req.KnowAboutUs},
		{"expectation", req.Expectation},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		writeError(w, "Missing required fields: "+strings.Join(missing, ", "), http.StatusBadRequest)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.MobileNumber = strings.TrimSpace(req.MobileNumber)
	req.AlternateContact = strings.TrimSpace(req.AlternateContact)

	if !mobilePattern.MatchString(req.MobileNumber) {
		writeError(w, "Invalid mobile number. Must be 10 digits.", http.StatusBadRequest)
		return
	}
	if req.AlternateContact != "" && !mobilePattern.MatchString(req.AlternateContact) {
		writeError(w, "Invalid alternate contact number. Must be 10 digits.", http.StatusBadRequest)
		return
	}
	if at := strings.Index(req.Email, "@"); at < 0 || !strings.Contains(req.Email[at+1:], ".") {
		writeError(w, "Invalid email format.", http.StatusBadRequest)
		return
	}
	if qty, err := strconv.ParseFloat(nonNumeric.ReplaceAllString(req.Expectation, ""), 64); err != nil || qty <= 0 {
		writeError(w, "Please enter a valid waste quantity (must be greater than 0).", http.StatusBadRequest)
		return
	}

	customer, err := s.dir.Register(&req)
	if err != nil {
		writeError(w, err.Error(), http.StatusConflict)
		return
	}

	slog.Info("Customer registered", "customer_id", customer.CustomerID)
	writeJSON(w, http.StatusCreated, success(
		"Account created successfully! Your profile is under consideration.",
		map[string]interface{}{"customerId": customer.CustomerID, "status": customer.Status},
	))
}

// EditProfile handles PUT /api/profile/edit
func (s *Server) EditProfile(w http.ResponseWriter, r *http.Request) {
	var req client.EditProfileRequest
	decode(r, &req)

	if req.CustomerID.IsZero() {
		writeError(w, "Customer ID is required", http.StatusBadRequest)
		return
	}
	customer, ok := s.dir.ByID(req.CustomerID)
	if !ok {
		writeError(w, "Customer not found", http.StatusNotFound)
		return
	}
	if customer.Status != StatusApproved {
		writeError(w, "Your profile is under consideration. Cannot edit profile at this time.", http.StatusForbidden)
		return
	}

	name := strings.TrimSpace(req.FullName)
	address := strings.TrimSpace(req.Address)
	if name == "" && address == "" {
		writeError(w, "No fields provided for update", http.StatusBadRequest)
		return
	}

	updated, _ := s.dir.UpdateProfile(req.CustomerID, name, address)
	slog.Info("Profile updated", "customer_id", req.CustomerID)
	writeJSON(w, http.StatusOK, success("Profile updated successfully", updated))
}

// Notifications handles GET /api/notifications
func (s *Server) Notifications(w http.ResponseWriter, r *http.Request) {
	id := client.CustomerID(strings.TrimSpace(r.URL.Query().Get("customerId")))
	if id.IsZero() {
		writeError(w, "Customer ID is required", http.StatusBadRequest)
		return
	}

	items := s.dir.Notifications(id)
	writeJSON(w, http.StatusOK, response{
		Status:      "success",
		Data:        items,
		Count:       intPtr(len(items)),
		UnreadCount: intPtr(client.UnreadCount(items)),
	})
}

type markReadBody struct {
	CustomerID     client.CustomerID `json:"customerId"`
	NotificationID *int              `json:"notificationId"`
}

// MarkRead handles POST /api/notifications/mark-read
func (s *Server) MarkRead(w http.ResponseWriter, r *http.Request) {
	var body markReadBody
	decode(r, &body)
	if body.CustomerID.IsZero() {
		writeError(w, "Customer ID is required", http.StatusBadRequest)
		return
	}

	s.dir.MarkRead(body.CustomerID, body.NotificationID)
	message := "All notifications marked as read"
	if body.NotificationID != nil {
		message = "Notification marked as read"
	}
	writeJSON(w, http.StatusOK, success(message, nil))
}

type registerDeviceBody struct {
	CustomerID  client.CustomerID `json:"customerId"`
	DeviceToken string            `json:"deviceToken"`
	Platform    string            `json:"platform"`
}

// RegisterDevice handles POST /api/notifications/register-device
func (s *Server) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	var body registerDeviceBody
	decode(r, &body)
	if body.CustomerID.IsZero() {
		writeError(w, "Customer ID is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.DeviceToken) == "" {
		writeError(w, "Device token is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.devices[body.CustomerID] = append(s.devices[body.CustomerID], body.DeviceToken)
	s.mu.Unlock()

	slog.Info("Device registered", "customer_id", body.CustomerID, "platform", body.Platform)
	writeJSON(w, http.StatusOK, success("Device token registered successfully", nil))
}

// Devices returns the tokens registered for a customer
func (s *Server) Devices(id client.CustomerID) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.devices[id]...)
}

type logoutBody struct {
	CustomerID   client.CustomerID `json:"customerId"`
	SessionToken string            `json:"sessionToken"`
}

// Logout handles POST /api/logout. Sessions live on the client, so this only logs.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	var body logoutBody
	decode(r, &body)
	if !body.CustomerID.IsZero() {
		slog.Info("Customer logged out", "customer_id", body.CustomerID)
	}
	writeJSON(w, http.StatusOK, success("Logged out successfully", nil))
}

// NotFound answers unknown paths
func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, "Endpoint not found", http.StatusNotFound)
}
