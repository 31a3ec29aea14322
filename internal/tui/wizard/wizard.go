// ABOUTME: Signup wizard as a bubbletea model
// ABOUTME: Three huh form steps with a progress indicator; fields validate with the signup rules

package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/onestepgreener/greener-cli/internal/client"
	"github.com/onestepgreener/greener-cli/internal/forms"
	"github.com/onestepgreener/greener-cli/internal/nav"
	"github.com/onestepgreener/greener-cli/internal/tui/icons"
	"github.com/onestepgreener/greener-cli/internal/tui/styles"
)

// CompleteMsg is sent when the last step is confirmed
type CompleteMsg struct {
	Request *client.SignupRequest
	Errors  forms.Errors
}

// Wizard manages the signup flow as a bubbletea model
type Wizard struct {
	form       *forms.Signup
	locked     bool
	huhForm    *huh.Form
	step       int
	width      int
	submitting bool
}

// Step names for progress indicator
var stepNames = []string{"Personal", "Address", "About You"}

func choiceOptions(values []string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption(forms.SelectPlaceholder, forms.SelectPlaceholder)}
	for _, v := range values {
		opts = append(opts, huh.NewOption(v, v))
	}
	return opts
}

// New creates the wizard. A signup reached from the OTP screen arrives
// with the verified mobile number, which cannot be edited.
func New(source nav.SignupSource) *Wizard {
	w := &Wizard{
		form:   forms.NewSignup(source.Mobile()),
		locked: source.Locked(),
		step:   1,
	}
	w.huhForm = w.createStep1Form()
	return w
}

// validator checks one field with the full-form rules applied to value v
func (w *Wizard) validator(field string) func(string) error {
	return func(v string) error {
		candidate := *w.form
		setField(&candidate, field, v)
		if msg, bad := candidate.Validate()[field]; bad {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}
}

func setField(f *forms.Signup, field, v string) {
	switch field {
	case "fullName":
		f.FullName = v
	case "email":
		f.Email = v
	case "mobileNumber":
		f.MobileNumber = v
	case "houseNumber":
		f.HouseNumber = v
	case "address":
		f.Address = v
	case "city":
		f.City = v
	case "state":
		f.State = v
	case "userType":
		f.UserType = v
	case "knowAboutUs":
		f.KnowAboutUs = v
	case "expectation":
		f.Expectation = v
	}
}

func validateAlternate(v string) error {
	v = strings.TrimSpace(v)
	if v != "" && forms.ValidateMobile(v) != "" {
		return fmt.Errorf("Alternate contact must be 10 digits")
	}
	return nil
}

func (w *Wizard) createStep1Form() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Full name").
			Placeholder("Your name").
			Value(&w.form.FullName).
			Validate(w.validator("fullName")),
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&w.form.Email).
			Validate(w.validator("email")),
	}
	if w.locked {
		fields = append(fields, huh.NewNote().
			Title("Mobile number").
			Description("+91 "+w.form.MobileNumber+" (verified)"))
	} else {
		fields = append(fields, huh.NewInput().
			Title("Mobile number").
			Placeholder("10-digit mobile number").
			CharLimit(forms.MobileLength).
			Value(&w.form.MobileNumber).
			Validate(w.validator("mobileNumber")))
	}
	fields = append(fields, huh.NewInput().
		Title("Alternate contact (optional)").
		CharLimit(forms.MobileLength).
		Value(&w.form.AlternateContact).
		Validate(validateAlternate))

	return huh.NewForm(
		huh.NewGroup(fields...).
			Title("Step 1: Personal Details").
			Description("Tell us who you are"),
	).WithTheme(styles.FormTheme())
}

func (w *Wizard) createStep2Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("House number").
				Value(&w.form.HouseNumber).
				Validate(w.validator("houseNumber")),
			huh.NewInput().
				Title("Address").
				Value(&w.form.Address).
				Validate(w.validator("address")),
			huh.NewInput().
				Title("City").
				Value(&w.form.City).
				Validate(w.validator("city")),
			huh.NewInput().
				Title("State").
				Value(&w.form.State).
				Validate(w.validator("state")),
		).Title("Step 2: Address").
			Description("Where should we pick up your waste?"),
	).WithTheme(styles.FormTheme())
}

func (w *Wizard) createStep3Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("User type").
				Options(choiceOptions(forms.UserTypes)...).
				Value(&w.form.UserType).
				Validate(w.validator("userType")),
			huh.NewSelect[string]().
				Title("How did you hear about us?").
				Options(choiceOptions(forms.ReferralSources)...).
				Value(&w.form.KnowAboutUs).
				Validate(w.validator("knowAboutUs")),
			huh.NewInput().
				Title("Estimated waste quantity").
				Placeholder("e.g., 20 kg per week").
				Value(&w.form.Expectation).
				Validate(w.validator("expectation")),
		).Title("Step 3: About You").
			Description("Help us plan your pickups"),
	).WithTheme(styles.FormTheme())
}

// Step returns the current step, starting at 1
func (w *Wizard) Step() int { return w.step }

// Form exposes the collected values
func (w *Wizard) Form() *forms.Signup { return w.form }

// Locked reports whether the mobile number is fixed
func (w *Wizard) Locked() bool { return w.locked }

// Submitting reports whether the signup request is in flight
func (w *Wizard) Submitting() bool { return w.submitting }

// SubmitFailed reopens the last step so the user can correct and retry
func (w *Wizard) SubmitFailed() tea.Cmd {
	w.submitting = false
	w.step = len(stepNames)
	w.huhForm = w.createStep3Form()
	return w.huhForm.Init()
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.huhForm.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if w.submitting {
		return w, nil
	}
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = size.Width
	}

	form, cmd := w.huhForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.huhForm = f
	}

	if w.huhForm.State == huh.StateCompleted {
		return w.advanceStep()
	}
	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.step = 2
		w.huhForm = w.createStep2Form()
		return w, w.huhForm.Init()
	case 2:
		w.step = 3
		w.huhForm = w.createStep3Form()
		return w, w.huhForm.Init()
	default:
		return w, w.Complete()
	}
}

// Complete validates the whole form and reports the result. A valid form
// enters the submitting state.
func (w *Wizard) Complete() tea.Cmd {
	errs := w.form.Validate()
	if len(errs) == 0 {
		w.submitting = true
		req := w.form.Request()
		return func() tea.Msg { return CompleteMsg{Request: req} }
	}
	return func() tea.Msg { return CompleteMsg{Errors: errs} }
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.User.String() + " Create Account"))
	sb.WriteString("\n")
	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")

	if w.submitting {
		sb.WriteString("Creating your account...")
		return sb.String()
	}
	sb.WriteString(w.huhForm.View())
	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := w.width - 1
	if width < 60 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		switch {
		case stepNum < w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		case stepNum == w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}
	stepsLine := strings.Join(steps, "    ")

	barWidth := width - 5
	filledWidth := (w.step * barWidth) / len(stepNames)
	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", barWidth-filledWidth))

	styledTitle := titleStyle.Render("Progress")
	topFillWidth := max(0, width-5-lipgloss.Width("Progress"))
	topBorder := "┌─ " + styledTitle + " " + strings.Repeat("─", topFillWidth) + "┐"

	stepsPadding := max(0, width-4-lipgloss.Width(stepsLine))
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │"
	progressLinePadded := "│  " + filledBar + emptyBar + " │"
	bottomBorder := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
