// ABOUTME: Data models for customer API responses
// ABOUTME: Matches JSON structure returned by the customer backend

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CustomerID identifies a customer. The backend sends it as a number,
// older payloads as a string; both decode to the same value.
type CustomerID string

func (id CustomerID) String() string {
	return string(id)
}

// IsZero reports whether the id is missing
func (id CustomerID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// MarshalJSON writes numeric ids as JSON numbers
func (id CustomerID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a number, a string or null
func (id *CustomerID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = CustomerID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid customerId %s", data)
	}
	*id = CustomerID(n.String())
	return nil
}

// Customer is the customer record returned by verify-otp and profile edit
type Customer struct {
	CustomerID   CustomerID `json:"customerId"`
	CustomerName string     `json:"customerName,omitempty"`
	Username     string     `json:"username,omitempty"`
	Email        string     `json:"email,omitempty"`
	MobileNumber string     `json:"mobileNumber,omitempty"`
	HouseNumber  string     `json:"houseNumber,omitempty"`
	Address      string     `json:"address,omitempty"`
	City         string     `json:"city,omitempty"`
	State        string     `json:"state,omitempty"`
	UserType     string     `json:"userType,omitempty"`
	Status       string     `json:"status,omitempty"`
}

// DisplayName prefers the customer name over the username
func (c Customer) DisplayName() string {
	if c.CustomerName != "" {
		return c.CustomerName
	}
	return c.Username
}

// OTPIssued is the generate-otp acknowledgement. When SMSSent is false
// the backend returns the code so the client can show it.
type OTPIssued struct {
	Message      string `json:"-"`
	MobileNumber string `json:"mobileNumber,omitempty"`
	OTP          string `json:"otp,omitempty"`
	SMSSent      bool   `json:"smsSent"`
	UserExists   bool   `json:"userExists"`
}

// Ack is a plain acknowledgement carrying the server message
type Ack struct {
	Message string
}

// VerifyResult is the verify-otp outcome
type VerifyResult struct {
	Message      string
	UserExists   bool
	UserApproved bool
	Customer     *Customer
}

// SignupRequest is the body of POST /api/signup
type SignupRequest struct {
	FullName         string   `json:"fullName"`
	Email            string   `json:"email"`
	MobileNumber     string   `json:"mobileNumber"`
	HouseNumber      string   `json:"houseNumber"`
	Address          string   `json:"address"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	UserType         string   `json:"userType"`
	KnowAboutUs      string   `json:"knowAboutUs"`
	Expectation      string   `json:"expectation"`
	AlternateContact string   `json:"alternateContact,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
}

// EditProfileRequest is the body of PUT /api/profile/edit
type EditProfileRequest struct {
	CustomerID CustomerID `json:"customerId"`
	FullName   string     `json:"fullName"`
	Address    string     `json:"address,omitempty"`
}

// Notification is a single customer notification
type Notification struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Time     string `json:"time"`
	Type     string `json:"type"`
	Icon     string `json:"icon,omitempty"`
	IsRead   bool   `json:"isRead"`
	Priority string `json:"priority,omitempty"`
}

// UnreadCount counts notifications not yet read
func UnreadCount(notifications []Notification) int {
	n := 0
	for _, item := range notifications {
		if !item.IsRead {
			n++
		}
	}
	return n
}

// HealthResponse represents the /health endpoint response
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
