// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Drives screens through the navigator and turns screen requests into API calls

package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/onestepgreener/greener-cli/internal/client"
	"github.com/onestepgreener/greener-cli/internal/forms"
	"github.com/onestepgreener/greener-cli/internal/logger"
	"github.com/onestepgreener/greener-cli/internal/nav"
	"github.com/onestepgreener/greener-cli/internal/otp"
	"github.com/onestepgreener/greener-cli/internal/tui/alert"
	"github.com/onestepgreener/greener-cli/internal/tui/dashboard"
	"github.com/onestepgreener/greener-cli/internal/tui/icons"
	"github.com/onestepgreener/greener-cli/internal/tui/login"
	"github.com/onestepgreener/greener-cli/internal/tui/menu"
	"github.com/onestepgreener/greener-cli/internal/tui/notifications"
	"github.com/onestepgreener/greener-cli/internal/tui/otpview"
	"github.com/onestepgreener/greener-cli/internal/tui/pages"
	"github.com/onestepgreener/greener-cli/internal/tui/profile"
	"github.com/onestepgreener/greener-cli/internal/tui/recent"
	"github.com/onestepgreener/greener-cli/internal/tui/styles"
	"github.com/onestepgreener/greener-cli/internal/tui/wizard"
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width the frame is drawn at
	frameOverhead    = 4  // Header, footer and their separating newlines
	bottomNavHeight  = 2
)

// API is the subset of the customer API client the screens call
type API interface {
	nav.Remote
	GenerateOTP(ctx context.Context, mobileNumber string) (*client.OTPIssued, error)
	ResendOTP(ctx context.Context, mobileNumber string) (*client.OTPIssued, error)
	VerifyOTP(ctx context.Context, mobileNumber, code string) (*client.VerifyResult, error)
	Signup(ctx context.Context, req *client.SignupRequest) (*client.Ack, error)
	EditProfile(ctx context.Context, req *client.EditProfileRequest) (*client.Customer, error)
	Notifications(ctx context.Context, customerID client.CustomerID) ([]client.Notification, error)
	MarkNotificationRead(ctx context.Context, customerID client.CustomerID, notificationID int) error
	MarkAllNotificationsRead(ctx context.Context, customerID client.CustomerID) error
}

// Request results carry the screen that sent them; a result whose screen
// is no longer showing is dropped.

// otpGeneratedMsg is sent when generate-otp returns
type otpGeneratedMsg struct {
	screen *login.Model
	mobile string
	issued *client.OTPIssued
	err    error
}

// verifyResultMsg is sent when verify-otp returns
type verifyResultMsg struct {
	screen *otpview.Model
	mobile string
	result *client.VerifyResult
	err    error
}

// resendResultMsg is sent when resend-otp returns
type resendResultMsg struct {
	screen *otpview.Model
	issued *client.OTPIssued
	err    error
}

// acceptMsg is delivered once the login acknowledgement is dismissed
type acceptMsg struct {
	customer client.Customer
}

// signupResultMsg is sent when signup returns
type signupResultMsg struct {
	err error
}

// profileSavedMsg carries the intent produced by a saved profile edit
type profileSavedMsg struct {
	intent nav.Intent
	err    error
}

// notificationsMsg is sent when the notifications fetch returns
type notificationsMsg struct {
	items []client.Notification
	err   error
}

// recentLoadedMsg carries the recently verified mobile numbers
type recentLoadedMsg struct {
	mobiles []string
}

// App is the root model for the TUI
type App struct {
	ctx     context.Context
	api     API
	flow    *nav.Flow
	nav     *nav.Navigator
	mobiles *recent.Mobiles

	width      int
	height     int
	unread     int
	lastUpdate time.Time

	alert  *alert.Alert
	bottom *menu.BottomNav

	// Child models; current is the visible one
	current tea.Model
	login   *login.Model
	otp     *otpview.Model
	signup  *wizard.Wizard
	dash    *dashboard.Dashboard
	edit    *profile.Edit
	notices *notifications.Model
	faq     *pages.FAQ
}

// New creates the TUI application
func New(api API, flow *nav.Flow, mobiles *recent.Mobiles) *App {
	return &App{
		ctx:     context.Background(),
		api:     api,
		flow:    flow,
		nav:     nav.New(),
		mobiles: mobiles,
		bottom:  menu.New(nav.ScreenDashboard),
		current: pages.NewSplash(),
	}
}

// Screen returns the current screen
func (a *App) Screen() nav.Screen { return a.nav.Current() }

// Alert returns the open dialog, nil when none is shown
func (a *App) Alert() *alert.Alert { return a.alert }

// Profile returns the profile the screens render
func (a *App) Profile() nav.ProfileData { return a.nav.Profile() }

// Close stops background work owned by the screens
func (a *App) Close() {
	if a.otp != nil {
		a.otp.Close()
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.current.Init(), a.boot())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a.forward(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)

	case alert.ChosenMsg:
		a.alert = nil
		if msg.Msg == nil {
			return a, nil
		}
		return a.Update(msg.Msg)

	case nav.Intent:
		return a.dispatch(msg)

	case menu.SelectedMsg:
		return a.dispatch(nav.Goto{Screen: msg.Screen})

	case login.SubmitMsg:
		return a, a.generateOTP(msg.Mobile)

	case login.SignupMsg:
		return a.dispatch(nav.Goto{Screen: nav.ScreenSignup})

	case otpGeneratedMsg:
		return a.handleOTPGenerated(msg)

	case otpview.VerifyMsg:
		return a, a.verifyOTP(msg.Mobile, msg.Code)

	case verifyResultMsg:
		return a.handleVerifyResult(msg)

	case acceptMsg:
		return a, a.acceptOTP(msg.customer)

	case otpview.ResendMsg:
		return a, a.resendOTP(msg.Mobile)

	case resendResultMsg:
		return a.handleResendResult(msg)

	case wizard.CompleteMsg:
		return a.handleSignupComplete(msg)

	case signupResultMsg:
		return a.handleSignupResult(msg)

	case profile.SaveMsg:
		return a, a.saveProfile(msg.Request)

	case profileSavedMsg:
		return a.handleProfileSaved(msg)

	case profile.LogoutRequestMsg:
		a.alert = profile.ConfirmLogout()
		return a, nil

	case profile.LogoutConfirmedMsg:
		return a, a.logout()

	case notifications.RefreshMsg:
		return a, a.fetchNotifications()

	case notificationsMsg:
		return a.handleNotifications(msg)

	case notifications.MarkReadMsg:
		if a.notices != nil {
			a.setUnread(a.notices.Unread())
		}
		return a, a.markRead(msg.ID)

	case notifications.ClearRequestMsg:
		a.alert = notifications.ConfirmClear()
		return a, nil

	case notifications.ClearConfirmedMsg:
		if a.notices != nil {
			a.notices.Clear()
		}
		a.setUnread(0)
		return a, nil

	case recentLoadedMsg:
		if a.login != nil {
			a.login.SetRecent(msg.mobiles)
		}
		return a, nil
	}

	return a.forward(msg)
}

// forward passes msg to the visible screen
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.current == nil {
		return a, nil
	}
	model, cmd := a.current.Update(msg)
	a.current = model
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.Close()
		return a, tea.Quit
	}

	if a.alert != nil {
		_, cmd := a.alert.Update(msg)
		return a, cmd
	}

	screen := a.nav.Current()
	switch msg.String() {
	case "esc":
		if a.nav.Can(nav.Back{}) {
			return a.dispatch(nav.Back{})
		}
		return a, nil
	case "q":
		if !acceptsText(screen) {
			a.Close()
			return a, tea.Quit
		}
	}

	if showsBottomNav(screen) {
		if cmd := a.bottom.Handle(msg); cmd != nil {
			return a, cmd
		}
	}
	return a.forward(msg)
}

// acceptsText reports whether screen has free text input
func acceptsText(s nav.Screen) bool {
	switch s {
	case nav.ScreenLogin, nav.ScreenOTP, nav.ScreenSignup, nav.ScreenEditProfile:
		return true
	}
	return false
}

// showsBottomNav reports whether the bottom bar is drawn on screen
func showsBottomNav(s nav.Screen) bool {
	return s.Lateral() || s == nav.ScreenHelp
}

// dispatch applies intent and builds the screen it leads to
func (a *App) dispatch(intent nav.Intent) (tea.Model, tea.Cmd) {
	from := a.nav.Current()
	if err := a.nav.Dispatch(intent); err != nil {
		slog.Warn("Navigation rejected", "error", err)
		return a, nil
	}
	slog.Debug("Navigated", "from", from, "to", a.nav.Current())

	cmds := []tea.Cmd{a.enter()}
	switch i := intent.(type) {
	case nav.BootResolved:
		if i.Session != nil {
			cmds = append(cmds, a.registerDevice(i.Session.CustomerID))
		}
	case nav.LoggedOut:
		a.setUnread(0)
	}
	return a, tea.Batch(cmds...)
}

// enter builds the model for the current screen
func (a *App) enter() tea.Cmd {
	if a.otp != nil {
		a.otp.Close()
	}
	a.login, a.otp, a.signup, a.dash, a.edit, a.notices, a.faq = nil, nil, nil, nil, nil, nil, nil

	screen := a.nav.Current()
	profileData := a.nav.Profile()
	var extra tea.Cmd

	switch screen {
	case nav.ScreenSplash:
		a.current = pages.NewSplash()
	case nav.ScreenOnboarding:
		a.current = pages.NewOnboarding()
	case nav.ScreenSignup:
		a.signup = wizard.New(a.nav.SignupSource())
		a.signup.SetWidth(a.contentWidth())
		a.current = a.signup
	case nav.ScreenLogin:
		a.login = login.New()
		a.current = a.login
		extra = a.loadRecent()
	case nav.ScreenOTP:
		a.otp = otpview.New(a.nav.OTPMobile())
		a.current = a.otp
	case nav.ScreenDashboard:
		a.dash = dashboard.New(profileData, a.contentWidth(), a.contentHeight())
		a.dash.SetUnread(a.unread)
		a.current = a.dash
		extra = a.fetchNotifications()
	case nav.ScreenProfile:
		a.current = profile.New(profileData, a.contentWidth())
	case nav.ScreenEditProfile:
		a.edit = profile.NewEdit(profileData)
		a.current = a.edit
	case nav.ScreenNotifications:
		a.notices = notifications.New(a.contentWidth())
		a.current = a.notices
		extra = a.fetchNotifications()
	case nav.ScreenFAQ:
		a.faq = pages.NewFAQ(a.contentWidth(), a.contentHeight()-3)
		a.current = a.faq
	case nav.ScreenPickupHistory:
		a.current = pages.NewHistory(a.contentWidth())
	case nav.ScreenGift:
		a.current = pages.NewGift()
	case nav.ScreenCart:
		a.current = pages.NewCart()
	case nav.ScreenHelp:
		a.current = pages.NewHelp()
	}

	if screen.Lateral() {
		a.bottom.SetActive(screen)
	}
	return tea.Batch(a.current.Init(), extra)
}

func (a *App) resize() {
	if a.dash != nil {
		a.dash.SetSize(a.contentWidth(), a.contentHeight())
	}
	if a.faq != nil {
		a.faq.SetSize(a.contentWidth(), a.contentHeight()-3)
	}
	if a.signup != nil {
		a.signup.SetWidth(a.contentWidth())
	}
}

func (a *App) setUnread(n int) {
	a.unread = n
	if a.dash != nil {
		a.dash.SetUnread(n)
	}
}

// Login

func (a *App) handleOTPGenerated(msg otpGeneratedMsg) (tea.Model, tea.Cmd) {
	if a.login == nil || msg.screen != a.login || a.nav.Current() != nav.ScreenLogin {
		return a, nil
	}
	a.login.SetLoading(false)

	if msg.err != nil {
		a.alert = loginFailure(msg.err)
		return a, nil
	}

	next := nav.OTPRequested{Mobile: msg.mobile}
	if msg.issued != nil && !msg.issued.SMSSent && msg.issued.OTP != "" {
		a.alert = alert.OK("OTP Generated", fmt.Sprintf(
			"Your OTP is: %s\n\nPlease use this OTP to verify.\n(Valid for 5 minutes)", msg.issued.OTP), next)
		return a, nil
	}
	return a.dispatch(next)
}

// loginFailure is the dialog for a failed generate-otp
func loginFailure(err error) *alert.Alert {
	if client.IsNetworkError(err) {
		return alert.New(otp.TitleNetworkError, client.NetworkErrorMessage)
	}
	if apiErr, ok := client.AsAPIError(err); ok && apiErr.MobileNotRegistered() {
		message := apiErr.Message
		if message == "" {
			message = otp.MessageMobileNotFound
		}
		return alert.New("Not Registered", message,
			alert.Button{Label: "Cancel"},
			alert.Button{Label: "Sign Up", Msg: nav.Goto{Screen: nav.ScreenSignup}},
		)
	}
	return alert.New("Error", client.UserMessage(err))
}

// OTP

func (a *App) handleVerifyResult(msg verifyResultMsg) (tea.Model, tea.Cmd) {
	if a.otp == nil || msg.screen != a.otp {
		return a, nil
	}

	if msg.err != nil {
		a.otp.VerifyFailed()
		title, message := otp.VerifyFailure(msg.err)
		a.alert = alert.New(title, message)
		return a, nil
	}

	serverMessage := ""
	if msg.result != nil {
		serverMessage = msg.result.Message
	}
	outcome := otp.Route(msg.result, msg.mobile)
	title, message := otp.OutcomeAlert(outcome, serverMessage)
	if _, ok := outcome.(otp.Incomplete); ok {
		slog.Warn("Verify succeeded without a customer id", "mobile", msg.mobile)
		a.otp.VerifyFailed()
		a.alert = alert.New(title, message)
		return a, nil
	}

	a.otp.Resolve()
	switch o := outcome.(type) {
	case otp.Accepted:
		a.alert = alert.OK(title, message, acceptMsg{customer: o.Customer})
	case otp.RedirectToSignup:
		a.alert = alert.OK(title, message, nav.SignupRedirect{Mobile: o.Mobile})
	}
	return a, nil
}

func (a *App) handleResendResult(msg resendResultMsg) (tea.Model, tea.Cmd) {
	if a.otp == nil || msg.screen != a.otp {
		return a, nil
	}
	a.otp.ResendDone()

	if msg.err != nil {
		title, message := otp.ResendFailure(msg.err)
		a.alert = alert.New(title, message)
		return a, nil
	}
	if msg.issued != nil && !msg.issued.SMSSent && msg.issued.OTP != "" {
		a.alert = alert.New("OTP Resent", fmt.Sprintf(
			"Your new OTP is: %s\n\n(Valid for 5 minutes)", msg.issued.OTP))
		return a, nil
	}
	a.alert = alert.New(otp.TitleSuccess, otp.MessageResent)
	return a, nil
}

// Signup

func (a *App) handleSignupComplete(msg wizard.CompleteMsg) (tea.Model, tea.Cmd) {
	if a.signup == nil {
		return a, nil
	}
	if len(msg.Errors) > 0 {
		a.alert = alert.New("Validation Error", forms.SignupValidationMessage)
		return a, a.signup.SubmitFailed()
	}
	return a, a.submitSignup(msg.Request)
}

func (a *App) handleSignupResult(msg signupResultMsg) (tea.Model, tea.Cmd) {
	if a.signup == nil {
		return a, nil
	}
	if msg.err != nil {
		a.alert = alert.New("Error", forms.SignupFailure(msg.err))
		return a, a.signup.SubmitFailed()
	}
	a.alert = alert.OK(otp.TitleSuccess, forms.SignupSuccessMessage, nav.SignupCompleted{})
	return a, nil
}

// Profile

func (a *App) handleProfileSaved(msg profileSavedMsg) (tea.Model, tea.Cmd) {
	if a.edit == nil {
		return a, nil
	}
	if msg.err != nil {
		a.alert = alert.New("Error", client.UserMessage(msg.err))
		return a, a.edit.SaveFailed()
	}
	a.alert = alert.OK(otp.TitleSuccess, "Profile updated successfully!", msg.intent)
	return a, nil
}

// Notifications

func (a *App) handleNotifications(msg notificationsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		slog.Warn("Failed to fetch notifications", "error", msg.err)
		if a.notices != nil {
			a.notices.SetError(client.UserMessage(msg.err))
		}
		return a, nil
	}

	a.lastUpdate = time.Now()
	a.setUnread(client.UnreadCount(msg.items))
	if a.notices != nil {
		a.notices.SetItems(msg.items)
	}
	return a, nil
}

// View implements tea.Model
func (a *App) View() string {
	content := ""
	if a.current != nil {
		content = a.current.View()
	}
	if a.alert != nil {
		content = lipgloss.Place(a.frameWidth(), a.contentHeight(),
			lipgloss.Center, lipgloss.Center, a.alert.View())
	}
	if showsBottomNav(a.nav.Current()) {
		content += "\n\n" + a.bottom.View()
	}
	return a.wrapWithFrame(content)
}

func (a *App) frameWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth
	}
	return a.width
}

// contentWidth is the width available inside the frame
func (a *App) contentWidth() int {
	return a.frameWidth() - 2
}

// contentHeight calculates the height available between header and footer
func (a *App) contentHeight() int {
	h := a.height - frameOverhead
	if showsBottomNav(a.nav.Current()) {
		h -= bottomNavHeight
	}
	if h < 10 {
		h = 10
	}
	return h
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("OneStepGreener"))

	rightText := ""
	screen := a.nav.Current()
	if screen.Authenticated() {
		rightText = contextStyle.Render(a.nav.Profile().Username) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// shortcuts lists the footer keys for the current state
func (a *App) shortcuts() []string {
	if a.alert != nil {
		return []string{"←→ Choose", "Enter Confirm", "Esc Cancel"}
	}

	switch a.nav.Current() {
	case nav.ScreenSplash:
		return nil
	case nav.ScreenOnboarding:
		return []string{"Enter Login", "s Sign up", "q Quit"}
	case nav.ScreenLogin:
		return []string{"Enter Get OTP", "s Sign up", "Esc Back"}
	case nav.ScreenOTP:
		return []string{"0-9 Digits", "Enter Verify", "r Resend", "Esc Change number"}
	case nav.ScreenSignup:
		return []string{"Tab Next", "Enter Confirm", "Esc Cancel"}
	case nav.ScreenEditProfile:
		return []string{"Tab Next", "Enter Save", "Esc Cancel"}
	case nav.ScreenNotifications:
		return []string{"↑↓ Navigate", "Esc Back", "q Quit"}
	case nav.ScreenDashboard:
		return []string{"1-5 Tabs", "p Profile", "n Notifications", "q Quit"}
	default:
		return []string{"1-5 Tabs", "Esc Back", "q Quit"}
	}
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	shortcuts := a.shortcuts()
	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	screen := a.nav.Current()
	if !a.lastUpdate.IsZero() && (screen == nav.ScreenDashboard || screen == nav.ScreenNotifications) {
		elapsed := formatTimeSince(time.Since(a.lastUpdate))
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"
	return borderStyle.Render(footer)
}

// formatTimeSince formats an elapsed duration in human-readable form
func formatTimeSince(d time.Duration) string {
	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh ago", int(d.Hours()))
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Commands

func (a *App) boot() tea.Cmd {
	return func() tea.Msg {
		return a.flow.Boot(a.ctx)
	}
}

func (a *App) registerDevice(id client.CustomerID) tea.Cmd {
	return func() tea.Msg {
		a.flow.RegisterDevice(a.ctx, id)
		return nil
	}
}

func (a *App) loadRecent() tea.Cmd {
	if a.mobiles == nil {
		return nil
	}
	return func() tea.Msg {
		return recentLoadedMsg{mobiles: a.mobiles.List(a.ctx)}
	}
}

func (a *App) generateOTP(mobile string) tea.Cmd {
	screen := a.login
	return func() tea.Msg {
		issued, err := a.api.GenerateOTP(a.ctx, mobile)
		return otpGeneratedMsg{screen: screen, mobile: mobile, issued: issued, err: err}
	}
}

func (a *App) verifyOTP(mobile, code string) tea.Cmd {
	screen := a.otp
	return func() tea.Msg {
		res, err := a.api.VerifyOTP(a.ctx, mobile, code)
		return verifyResultMsg{screen: screen, mobile: mobile, result: res, err: err}
	}
}

func (a *App) resendOTP(mobile string) tea.Cmd {
	screen := a.otp
	return func() tea.Msg {
		issued, err := a.api.ResendOTP(a.ctx, mobile)
		return resendResultMsg{screen: screen, issued: issued, err: err}
	}
}

// acceptOTP saves the session and remembers the number for the next login
func (a *App) acceptOTP(customer client.Customer) tea.Cmd {
	return func() tea.Msg {
		intent := a.flow.AcceptOTP(a.ctx, customer)
		if a.mobiles != nil && customer.MobileNumber != "" {
			if err := a.mobiles.Add(a.ctx, customer.MobileNumber); err != nil {
				slog.Warn("Failed to remember mobile number", "error", err)
			}
		}
		return intent
	}
}

func (a *App) submitSignup(req *client.SignupRequest) tea.Cmd {
	return func() tea.Msg {
		_, err := a.api.Signup(a.ctx, req)
		return signupResultMsg{err: err}
	}
}

func (a *App) saveProfile(req *client.EditProfileRequest) tea.Cmd {
	return func() tea.Msg {
		customer, err := a.api.EditProfile(a.ctx, req)
		if err != nil {
			return profileSavedMsg{err: err}
		}
		return profileSavedMsg{intent: a.flow.ApplyProfileUpdate(a.ctx, *customer)}
	}
}

func (a *App) logout() tea.Cmd {
	profileData := a.nav.Profile()
	return func() tea.Msg {
		return a.flow.Logout(a.ctx, profileData)
	}
}

func (a *App) fetchNotifications() tea.Cmd {
	id := a.nav.Profile().CustomerID
	if id.IsZero() {
		return nil
	}
	return func() tea.Msg {
		items, err := a.api.Notifications(a.ctx, id)
		return notificationsMsg{items: items, err: err}
	}
}

// markRead is best-effort; the list was already updated locally
func (a *App) markRead(notificationID *int) tea.Cmd {
	id := a.nav.Profile().CustomerID
	if id.IsZero() {
		return nil
	}
	return func() tea.Msg {
		var err error
		if notificationID == nil {
			err = a.api.MarkAllNotificationsRead(a.ctx, id)
		} else {
			err = a.api.MarkNotificationRead(a.ctx, id, *notificationID)
		}
		if err != nil {
			slog.Warn("Failed to mark notifications read", "customer_id", id, "error", err)
		}
		return nil
	}
}

// Run starts the TUI. Logs go to a file in configDir while it runs.
func Run(api API, flow *nav.Flow, mobiles *recent.Mobiles, configDir string) error {
	if err := logger.InitFile(configDir); err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}
	defer logger.Close()

	app := New(api, flow, mobiles)
	defer app.Close()

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
