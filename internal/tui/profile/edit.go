// ABOUTME: Edit profile form for the customer's name and address
// ABOUTME: Built on huh; a saved form is sent as a PUT /api/profile/edit request

package profile

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/onestepgreener/greener-cli/internal/client"
	"github.com/onestepgreener/greener-cli/internal/forms"
	"github.com/onestepgreener/greener-cli/internal/nav"
	"github.com/onestepgreener/greener-cli/internal/tui/icons"
	"github.com/onestepgreener/greener-cli/internal/tui/styles"
)

// SaveMsg asks for the edited profile to be saved
type SaveMsg struct {
	Request *client.EditProfileRequest
}

// Edit is the edit profile screen
type Edit struct {
	form       *forms.ProfileEdit
	customerID client.CustomerID
	huhForm    *huh.Form
	saving     bool
}

// NewEdit prefills the form from profile. The placeholder address is
// not offered as a value.
func NewEdit(profile nav.ProfileData) *Edit {
	address := profile.Address
	if address == nav.DefaultAddress {
		address = ""
	}
	e := &Edit{
		form:       &forms.ProfileEdit{FullName: profile.CustomerName, Address: address},
		customerID: profile.CustomerID,
	}
	e.huhForm = e.buildForm()
	return e
}

func (e *Edit) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				Value(&e.form.FullName).
				Validate(validateName),
			huh.NewText().
				Title("Address").
				Lines(3).
				Value(&e.form.Address),
		).Title("Edit Profile"),
	).WithTheme(styles.FormTheme())
}

func validateName(v string) error {
	f := forms.ProfileEdit{FullName: v}
	if msg, bad := f.Validate()["fullName"]; bad {
		return errors.New(msg)
	}
	return nil
}

// Form exposes the edited values
func (e *Edit) Form() *forms.ProfileEdit { return e.form }

// Saving reports whether the save request is in flight
func (e *Edit) Saving() bool { return e.saving }

// SaveFailed reopens the form with the typed values
func (e *Edit) SaveFailed() tea.Cmd {
	e.saving = false
	e.huhForm = e.buildForm()
	return e.huhForm.Init()
}

// Save validates the form and, when valid, requests the save
func (e *Edit) Save() tea.Cmd {
	if len(e.form.Validate()) > 0 || e.saving {
		return nil
	}
	e.saving = true
	req := e.form.Request(e.customerID)
	return func() tea.Msg { return SaveMsg{Request: req} }
}

// Init implements tea.Model
func (e *Edit) Init() tea.Cmd {
	return e.huhForm.Init()
}

// Update implements tea.Model
func (e *Edit) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if e.saving {
		return e, nil
	}

	form, cmd := e.huhForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.huhForm = f
	}
	if e.huhForm.State == huh.StateCompleted {
		if save := e.Save(); save != nil {
			return e, save
		}
		return e, e.SaveFailed()
	}
	return e, cmd
}

// View implements tea.Model
func (e *Edit) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Edit.String() + " Edit Profile"))
	sb.WriteString("\n\n")
	if e.saving {
		sb.WriteString("Saving...")
		return sb.String()
	}
	sb.WriteString(e.huhForm.View())
	return sb.String()
}
