// ABOUTME: Client-side validation for login, signup and profile edit input
// ABOUTME: Errors are caught here and shown inline; invalid input never reaches the API

package forms

import (
	"regexp"
	"strings"

	"github.com/onestepgreener/greener-cli/internal/client"
)

// MobileLength is the number of digits in a mobile number
const MobileLength = 10

// SelectPlaceholder is the unset value of a choice field
const SelectPlaceholder = "Select"

// UserTypes are the choices for the signup user type
var UserTypes = []string{
	"Household Apartment",
	"School/Institution",
	"Office",
	"Shop",
	"Other",
}

// ReferralSources are the choices for "how did you hear about us"
var ReferralSources = []string{
	"Referred",
	"Social Media",
	"Other",
}

// Mobile number messages
const (
	ErrMobileTooShort = "Mobile number must be 10 digits"
	ErrMobileTooLong  = "Mobile number cannot exceed 10 digits"
	ErrMobileInvalid  = "Please enter a valid 10-digit mobile number"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// CleanMobile strips everything but digits
func CleanMobile(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MobileHint is the inline message shown while the number is typed.
// Empty input shows nothing.
func MobileHint(clean string) string {
	switch {
	case len(clean) == 0:
		return ""
	case len(clean) < MobileLength:
		return ErrMobileTooShort
	case len(clean) > MobileLength:
		return ErrMobileTooLong
	default:
		return ""
	}
}

// ValidateMobile is the check run on submit
func ValidateMobile(s string) string {
	if !mobilePattern.MatchString(s) {
		return ErrMobileInvalid
	}
	return ""
}

// IsValidEmail reports whether s looks like an email address
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Errors maps field names to messages
type Errors map[string]string

// Signup is the signup form as typed by the user
type Signup struct {
	FullName         string
	Email            string
	MobileNumber     string
	HouseNumber      string
	Address          string
	City             string
	State            string
	UserType         string
	KnowAboutUs      string
	Expectation      string
	AlternateContact string
	Latitude         *float64
	Longitude        *float64
}

// NewSignup returns an empty form, with mobile prefilled when given
func NewSignup(mobile string) *Signup {
	return &Signup{
		MobileNumber: mobile,
		UserType:     SelectPlaceholder,
		KnowAboutUs:  SelectPlaceholder,
	}
}

// Validate checks every field and returns one message per invalid field
func (f *Signup) Validate() Errors {
	errs := Errors{}

	name := strings.TrimSpace(f.FullName)
	switch {
	case name == "":
		errs["fullName"] = "Full name is required"
	case len([]rune(name)) < 2:
		errs["fullName"] = "Full name must be at least 2 characters"
	}

	email := strings.TrimSpace(f.Email)
	switch {
	case email == "":
		errs["email"] = "Email is required"
	case !IsValidEmail(email):
		errs["email"] = "Please enter a valid email address"
	}

	mobile := strings.TrimSpace(f.MobileNumber)
	switch {
	case mobile == "":
		errs["mobileNumber"] = "Mobile number is required"
	case !mobilePattern.MatchString(mobile):
		errs["mobileNumber"] = ErrMobileInvalid
	}

	required := []struct {
		field, value, msg string
	}{
		{"houseNumber", f.HouseNumber, "House number is required"},
		{"address", f.Address, "Address is required"},
		{"city", f.City, "City is required"},
		{"state", f.State, "State is required"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs[r.field] = r.msg
		}
	}

	if !isChoice(f.UserType, UserTypes) {
		errs["userType"] = "Please select user type"
	}
	if !isChoice(f.KnowAboutUs, ReferralSources) {
		errs["knowAboutUs"] = "Please select how you know about us"
	}
	if strings.TrimSpace(f.Expectation) == "" {
		errs["expectation"] = "Estimated waste quantity is required"
	}

	return errs
}

// Request builds the trimmed API payload
func (f *Signup) Request() *client.SignupRequest {
	return &client.SignupRequest{
		FullName:         strings.TrimSpace(f.FullName),
		Email:            strings.TrimSpace(f.Email),
		MobileNumber:     strings.TrimSpace(f.MobileNumber),
		HouseNumber:      strings.TrimSpace(f.HouseNumber),
		Address:          strings.TrimSpace(f.Address),
		City:             strings.TrimSpace(f.City),
		State:            strings.TrimSpace(f.State),
		UserType:         f.UserType,
		KnowAboutUs:      f.KnowAboutUs,
		Expectation:      strings.TrimSpace(f.Expectation),
		AlternateContact: strings.TrimSpace(f.AlternateContact),
		Latitude:         f.Latitude,
		Longitude:        f.Longitude,
	}
}

func isChoice(v string, options []string) bool {
	if v == "" || v == SelectPlaceholder {
		return false
	}
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

// Signup result messages
const (
	SignupValidationMessage = "Please fill all required fields correctly."
	SignupSuccessMessage    = "Your profile is under consideration. We will review your application and notify you soon."
	SignupExistsMessage     = "An account with this email or mobile number already exists. Please use a different one or try logging in."
	SignupFailedMessage     = "Failed to create account. Please try again."
)

// SignupFailure maps a signup error to the message shown to the user
func SignupFailure(err error) string {
	if client.IsNetworkError(err) {
		return client.NetworkErrorMessage
	}
	apiErr, ok := client.AsAPIError(err)
	if !ok || apiErr.Message == "" {
		return SignupFailedMessage
	}
	if apiErr.AlreadyExists() {
		return SignupExistsMessage
	}
	return apiErr.Message
}

// ProfileEdit is the edit profile form
type ProfileEdit struct {
	FullName string
	Address  string
}

// Validate requires a name of at least two characters
func (p *ProfileEdit) Validate() Errors {
	errs := Errors{}
	name := strings.TrimSpace(p.FullName)
	switch {
	case name == "":
		errs["fullName"] = "Full name is required"
	case len([]rune(name)) < 2:
		errs["fullName"] = "Full name must be at least 2 characters"
	}
	return errs
}

// Request builds the edit payload; an empty address is left out
func (p *ProfileEdit) Request(id client.CustomerID) *client.EditProfileRequest {
	return &client.EditProfileRequest{
		CustomerID: id,
		FullName:   strings.TrimSpace(p.FullName),
		Address:    strings.TrimSpace(p.Address),
	}
}
