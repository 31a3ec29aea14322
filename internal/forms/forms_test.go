// ABOUTME: Tests for login, signup and profile edit validation
// ABOUTME: Table-driven checks of the inline error messages

package forms

import (
	"errors"
	"testing"

	"github.com/onestepgreener/greener-cli/internal/client"
)

func TestCleanMobile(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"98765 43210", "9876543210"},
		{"+91-98765", "9198765"},
		{"abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanMobile(tt.in); got != tt.want {
			t.Errorf("CleanMobile(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMobileHint(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"98765", ErrMobileTooShort},
		{"9876543210", ""},
		{"98765432101", ErrMobileTooLong},
	}
	for _, tt := range tests {
		if got := MobileHint(tt.in); got != tt.want {
			t.Errorf("MobileHint(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateMobile(t *testing.T) {
	if msg := ValidateMobile("9876543210"); msg != "" {
		t.Errorf("valid number rejected: %q", msg)
	}
	for _, bad := range []string{"", "987654321", "98765432100", "98765 4321"} {
		if ValidateMobile(bad) != ErrMobileInvalid {
			t.Errorf("expected %q rejected", bad)
		}
	}
}

func validSignup() *Signup {
	f := NewSignup("9876543210")
	f.FullName = "Asha Rao"
	f.Email = "asha@example.com"
	f.HouseNumber = "12"
	f.Address = "Park Lane"
	f.City = "Pune"
	f.State = "MH"
	f.UserType = "Office"
	f.KnowAboutUs = "Referred"
	f.Expectation = "10kg a week"
	return f
}

func TestSignupValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *Signup)
		field  string
		want   string
	}{
		{"blank name", func(f *Signup) { f.FullName = "   " }, "fullName", "Full name is required"},
		{"short name", func(f *Signup) { f.FullName = " A " }, "fullName", "Full name must be at least 2 characters"},
		{"no email", func(f *Signup) { f.Email = "" }, "email", "Email is required"},
		{"bad email", func(f *Signup) { f.Email = "asha@example" }, "email", "Please enter a valid email address"},
		{"no mobile", func(f *Signup) { f.MobileNumber = "" }, "mobileNumber", "Mobile number is required"},
		{"short mobile", func(f *Signup) { f.MobileNumber = "12345" }, "mobileNumber", ErrMobileInvalid},
		{"no house", func(f *Signup) { f.HouseNumber = "" }, "houseNumber", "House number is required"},
		{"no address", func(f *Signup) { f.Address = " " }, "address", "Address is required"},
		{"no city", func(f *Signup) { f.City = "" }, "city", "City is required"},
		{"no state", func(f *Signup) { f.State = "" }, "state", "State is required"},
		{"user type unset", func(f *Signup) { f.UserType = SelectPlaceholder }, "userType", "Please select user type"},
		{"user type unknown", func(f *Signup) { f.UserType = "Factory" }, "userType", "Please select user type"},
		{"referral unset", func(f *Signup) { f.KnowAboutUs = SelectPlaceholder }, "knowAboutUs", "Please select how you know about us"},
		{"no expectation", func(f *Signup) { f.Expectation = "" }, "expectation", "Estimated waste quantity is required"},
	}

	if errs := validSignup().Validate(); len(errs) != 0 {
		t.Fatalf("valid form rejected: %v", errs)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validSignup()
			tt.mutate(f)
			errs := f.Validate()
			if len(errs) != 1 {
				t.Errorf("expected exactly one error, got %v", errs)
			}
			if errs[tt.field] != tt.want {
				t.Errorf("errs[%s] = %q, want %q", tt.field, errs[tt.field], tt.want)
			}
		})
	}
}

func TestNewSignupStartsUnselected(t *testing.T) {
	errs := NewSignup("").Validate()
	for _, field := range []string{"fullName", "email", "mobileNumber", "userType", "knowAboutUs", "expectation"} {
		if errs[field] == "" {
			t.Errorf("expected error for %s", field)
		}
	}
}

func TestSignupRequestTrims(t *testing.T) {
	f := validSignup()
	f.FullName = "  Asha Rao "
	f.AlternateContact = "   "

	req := f.Request()
	if req.FullName != "Asha Rao" {
		t.Errorf("FullName = %q", req.FullName)
	}
	if req.AlternateContact != "" {
		t.Errorf("blank alternate contact should be empty, got %q", req.AlternateContact)
	}
}

func TestSignupFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"exists", &client.APIError{Message: "Customer with this email already exists"}, SignupExistsMessage},
		{"server", &client.APIError{Message: "Invalid email format."}, "Invalid email format."},
		{"empty", &client.APIError{}, SignupFailedMessage},
		{"network", &client.NetworkError{Err: errors.New("refused")}, client.NetworkErrorMessage},
		{"other", errors.New("boom"), SignupFailedMessage},
	}
	for _, tt := range tests {
		if got := SignupFailure(tt.err); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestProfileEdit(t *testing.T) {
	p := &ProfileEdit{FullName: " X ", Address: ""}
	if p.Validate()["fullName"] == "" {
		t.Error("expected short name rejected")
	}

	p.FullName = " Asha R "
	if errs := p.Validate(); len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	req := p.Request("42")
	if req.FullName != "Asha R" || req.Address != "" || req.CustomerID != "42" {
		t.Errorf("unexpected request %+v", req)
	}
}
