// ABOUTME: In-memory customer and notification records served by the dev server
// ABOUTME: Seeded with one approved and one pending customer

package devserver

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/onestepgreener/greener-cli/internal/client"
)

// Customer statuses
const (
	StatusApproved = "APPROVED"
	StatusPending  = "PENDING"
)

type customerRecord struct {
	client.Customer
	KnowAboutUs      string
	Expectation      string
	AlternateContact string
}

type notificationRecord struct {
	ID        int
	Customer  client.CustomerID
	Title     string
	Message   string
	Type      string
	Priority  string
	IsRead    bool
	CreatedAt time.Time
}

// Directory holds customers and their notifications
type Directory struct {
	mu            sync.Mutex
	customers     map[client.CustomerID]*customerRecord
	notifications []*notificationRecord
	nextCustomer  int
	nextNotice    int
	now           func() time.Time
}

// NewDirectory returns an empty directory
func NewDirectory() *Directory {
	return &Directory{
		customers:    make(map[client.CustomerID]*customerRecord),
		nextCustomer: 1001,
		nextNotice:   1,
		now:          time.Now,
	}
}

// SeededDirectory returns a directory with demo customers and notifications
func SeededDirectory() *Directory {
	d := NewDirectory()
	asha := d.add(client.Customer{
		CustomerName: "Asha Rao",
		Email:        "asha@example.com",
		MobileNumber: "9876543210",
		HouseNumber:  "12",
		Address:      "Park Lane",
		City:         "Pune",
		State:        "Maharashtra",
		UserType:     "Household Apartment",
		Status:       StatusApproved,
	})
	d.add(client.Customer{
		CustomerName: "Ravi Kumar",
		Email:        "ravi@example.com",
		MobileNumber: "9123456780",
		Address:      "4 Lake View",
		City:         "Hyderabad",
		State:        "Telangana",
		UserType:     "Office",
		Status:       StatusPending,
	})

	now := d.now()
	d.notify(asha, "Pickup scheduled", "Your pickup is scheduled for tomorrow between 9 and 11 AM.", "pickup", "high", now.Add(-2*time.Hour))
	d.notify(asha, "Reward earned", "You earned 50 green points for your last pickup.", "reward", "medium", now.Add(-26*time.Hour))
	d.notify(asha, "Milestone reached", "You have recycled 2.5 tonnes of waste. Thank you!", "achievement", "low", now.Add(-10*24*time.Hour))
	return d
}

func (d *Directory) add(c client.Customer) client.CustomerID {
	c.CustomerID = client.CustomerID(strconv.Itoa(d.nextCustomer))
	d.nextCustomer++
	d.customers[c.CustomerID] = &customerRecord{Customer: c}
	return c.CustomerID
}

func (d *Directory) notify(id client.CustomerID, title, message, kind, priority string, at time.Time) {
	d.notifications = append(d.notifications, &notificationRecord{
		ID:        d.nextNotice,
		Customer:  id,
		Title:     title,
		Message:   message,
		Type:      kind,
		Priority:  priority,
		CreatedAt: at,
	})
	d.nextNotice++
}

// ByMobile finds a customer by mobile number
func (d *Directory) ByMobile(mobile string) (client.Customer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range d.customers {
		if c.MobileNumber == mobile {
			return c.Customer, true
		}
	}
	return client.Customer{}, false
}

// ByID finds a customer by id
func (d *Directory) ByID(id client.CustomerID) (client.Customer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.customers[id]
	if !ok {
		return client.Customer{}, false
	}
	return c.Customer, true
}

// ErrDuplicate reports a signup clashing with an existing customer
type ErrDuplicate struct {
	Field string
}

func (e *ErrDuplicate) Error() string {
	return fmt.Sprintf("An account with this %s already exists.", e.Field)
}

// Register adds a pending customer from a signup request
func (d *Directory) Register(req *client.SignupRequest) (client.Customer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, c := range d.customers {
		if c.Email == req.Email {
			return client.Customer{}, &ErrDuplicate{Field: "email"}
		}
		if c.MobileNumber == req.MobileNumber {
			return client.Customer{}, &ErrDuplicate{Field: "mobile number"}
		}
	}

	id := d.add(client.Customer{
		CustomerName: req.FullName,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		HouseNumber:  req.HouseNumber,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		UserType:     req.UserType,
		Status:       StatusPending,
	})
	rec := d.customers[id]
	rec.KnowAboutUs = req.KnowAboutUs
	rec.Expectation = req.Expectation
	rec.AlternateContact = req.AlternateContact
	return rec.Customer, nil
}

// UpdateProfile changes the name and, when given, the address
func (d *Directory) UpdateProfile(id client.CustomerID, fullName, address string) (client.Customer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.customers[id]
	if !ok {
		return client.Customer{}, false
	}
	if fullName != "" {
		c.CustomerName = fullName
	}
	if address != "" {
		c.Address = address
	}
	return c.Customer, true
}

// Approve marks a customer approved
func (d *Directory) Approve(id client.CustomerID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.customers[id]
	if ok {
		c.Status = StatusApproved
	}
	return ok
}

var typeIcons = map[string]string{
	"pickup":      "♻️",
	"achievement": "🌱",
	"reward":      "🎁",
	"update":      "📢",
	"impact":      "🌍",
	"payment":     "💳",
	"system":      "🔔",
}

// Notifications lists a customer's notifications, newest first
func (d *Directory) Notifications(id client.CustomerID) []client.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	out := []client.Notification{}
	for i := len(d.notifications) - 1; i >= 0; i-- {
		n := d.notifications[i]
		if n.Customer != id {
			continue
		}
		icon, ok := typeIcons[n.Type]
		if !ok {
			icon = typeIcons["system"]
		}
		out = append(out, client.Notification{
			ID:       n.ID,
			Title:    n.Title,
			Message:  n.Message,
			Time:     timeAgo(now.Sub(n.CreatedAt)),
			Type:     n.Type,
			Icon:     icon,
			IsRead:   n.IsRead,
			Priority: n.Priority,
		})
	}
	return out
}

// MarkRead marks one notification, or all when notificationID is nil
func (d *Directory) MarkRead(id client.CustomerID, notificationID *int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, n := range d.notifications {
		if n.Customer != id {
			continue
		}
		if notificationID == nil || n.ID == *notificationID {
			n.IsRead = true
		}
	}
}

// timeAgo renders an age the way the notifications list shows it
func timeAgo(d time.Duration) string {
	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s ago", n, unit)
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	default:
		return plural(int(d.Hours()/(24*7)), "week")
	}
}
