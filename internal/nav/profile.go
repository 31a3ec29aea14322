// ABOUTME: ProfileData, the in-memory projection of the session used for rendering
// ABOUTME: Placeholder values fill anything the customer record does not provide

package nav

import (
	"strings"

	"github.com/onestepgreener/greener-cli/internal/client"
	"github.com/onestepgreener/greener-cli/internal/session"
)

// Placeholder profile values shown before a customer is known
const (
	DefaultUsername    = "John Smith"
	DefaultMobilePhone = "+44 555 5555 55"
	DefaultAddress     = "hno 2-250,"
	countryPrefix      = "+91"
)

// Stats are the dashboard counters
type Stats struct {
	Pickups       int
	WasteRecycled string
	Efficiency    string
}

// ProfileData is what the screens render about the customer
type ProfileData struct {
	Username     string
	CustomerName string
	CustomerID   client.CustomerID
	Email        string
	MobilePhone  string
	Address      string
	City         string
	State        string
	UserType     string
	Status       string
	Stats        Stats
}

// DefaultProfile is the logged-out profile
func DefaultProfile() ProfileData {
	return ProfileData{
		Username:    DefaultUsername,
		MobilePhone: DefaultMobilePhone,
		Address:     DefaultAddress,
		Stats: Stats{
			Pickups:       156,
			WasteRecycled: "2.5T",
			Efficiency:    "85%",
		},
	}
}

// ProfileFromCustomer projects a customer record onto the defaults
func ProfileFromCustomer(c client.Customer) ProfileData {
	p := DefaultProfile()
	name := c.DisplayName()
	if name != "" {
		p.Username = name
		p.CustomerName = name
	} else {
		p.CustomerName = DefaultUsername
	}
	p.CustomerID = c.CustomerID
	p.Email = c.Email
	if c.MobileNumber != "" {
		p.MobilePhone = countryPrefix + c.MobileNumber
	}
	if c.Address != "" {
		p.Address = c.Address
	}
	p.City = c.City
	p.State = c.State
	p.UserType = c.UserType
	p.Status = c.Status
	return p
}

// ProfileFromSession restores the profile from a stored session
func ProfileFromSession(s *session.Session) ProfileData {
	if s == nil {
		return DefaultProfile()
	}
	return ProfileFromCustomer(client.Customer{
		CustomerID:   s.CustomerID,
		CustomerName: s.CustomerName,
		Email:        s.Email,
		MobileNumber: s.MobileNumber,
		Address:      s.Address,
		City:         s.City,
		State:        s.State,
		UserType:     s.UserType,
		Status:       s.Status,
	})
}

// WithUpdate applies an edited customer record, keeping fields it leaves empty
func (p ProfileData) WithUpdate(c client.Customer) ProfileData {
	if name := c.DisplayName(); name != "" {
		p.Username = name
		p.CustomerName = name
	}
	if c.Email != "" {
		p.Email = c.Email
	}
	if c.Address != "" {
		p.Address = c.Address
	}
	if c.City != "" {
		p.City = c.City
	}
	if c.State != "" {
		p.State = c.State
	}
	return p
}

// LoggedIn reports whether the profile belongs to a known customer
func (p ProfileData) LoggedIn() bool {
	return !p.CustomerID.IsZero()
}

// LocalMobile strips the country prefix and spaces from MobilePhone
func (p ProfileData) LocalMobile() string {
	m := strings.TrimPrefix(p.MobilePhone, countryPrefix)
	return strings.ReplaceAll(m, " ", "")
}

// Initials are the first letters of the first and last name
func (p ProfileData) Initials() string {
	words := strings.Fields(p.Username)
	switch len(words) {
	case 0:
		return "JS"
	case 1:
		return strings.ToUpper(firstRune(words[0]))
	default:
		return strings.ToUpper(firstRune(words[0]) + firstRune(words[len(words)-1]))
	}
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
