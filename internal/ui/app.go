package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gestorpro/internal/api"
	"gestorpro/internal/config"
	"gestorpro/internal/models"
	"gestorpro/internal/ui/components"
	"gestorpro/internal/util"
)

// Model represents the UI model
type Model struct {
	Gateway       *api.Gateway
	Config        *config.Config
	BotList       components.BotListModel
	Spinner       spinner.Model
	IsLoading     bool
	StatusMessage string
	ErrorMessage  string
	QRCodes       map[string]string
	QRPending     map[string]bool
	Now           time.Time
	Width         int
	Height        int
	Ready         bool
}

// NewModel creates a new UI model
func NewModel(cfg *config.Config, gateway *api.Gateway) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		Gateway:       gateway,
		Config:        cfg,
		Spinner:       s,
		IsLoading:     true,
		StatusMessage: "Loading bots...",
		QRCodes:       map[string]string{},
		QRPending:     map[string]bool{},
		Now:           time.Now(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, loadBots(m.Gateway, false), clockTick())
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "r":
			m.IsLoading = true
			m.ErrorMessage = ""
			m.StatusMessage = "Refreshing bots..."
			return m, loadBots(m.Gateway, true)

		case "c":
			return m.submitTransition(true)

		case "d":
			return m.submitTransition(false)
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		if !m.Ready {
			m.BotList = components.NewBotListModel(msg.Width/2, msg.Height-6)
			m.Ready = true
		} else {
			m.BotList.List.SetSize(msg.Width/2, msg.Height-6)
		}

		return m, nil

	case spinner.TickMsg:
		var spinnerCmd tea.Cmd
		m.Spinner, spinnerCmd = m.Spinner.Update(msg)
		cmds = append(cmds, spinnerCmd)

	case clockTickMsg:
		m.Now = time.Time(msg)
		return m, clockTick()

	case pollTickMsg:
		return m, loadBots(m.Gateway, false)

	case botsLoadedMsg:
		m.IsLoading = false
		m.ErrorMessage = ""
		m.StatusMessage = fmt.Sprintf("%d bots, %d online", len(msg.bots), models.CountActive(msg.bots))
		m.BotList.SetBots(msg.bots)
		cmds = append(cmds, m.reconcileQRCodes(msg.bots)...)
		cmds = append(cmds, pollAfter(m.Config.BotPollInterval()))
		return m, tea.Batch(cmds...)

	case botsErrorMsg:
		m.IsLoading = false
		if msg.manual {
			m.ErrorMessage = msg.err
			m.StatusMessage = "Error"
		}
		// background poll failures wait for the next cycle
		return m, pollAfter(m.Config.BotPollInterval())

	case qrLoadedMsg:
		delete(m.QRPending, msg.builderID)
		if msg.err == "" {
			m.QRCodes[msg.builderID] = msg.qr
		}
		return m, nil

	case transitionDoneMsg:
		if msg.err != "" {
			m.ErrorMessage = msg.err
			return m, nil
		}
		m.StatusMessage = msg.label
		return m, loadBots(m.Gateway, false)
	}

	if m.Ready {
		var listCmd tea.Cmd
		m.BotList, listCmd = m.BotList.Update(msg)
		cmds = append(cmds, listCmd)
	}

	return m, tea.Batch(cmds...)
}

// submitTransition requests a connect or disconnect for the selected bot.
// Transitional states lock the keys out until the fleet settles.
func (m Model) submitTransition(connect bool) (tea.Model, tea.Cmd) {
	bot := m.BotList.Selected
	if bot == nil {
		return m, nil
	}
	if bot.BuilderBotID == "" {
		m.ErrorMessage = "This bot has no builder-bot id configured"
		return m, nil
	}
	if bot.State().IsTransitional() {
		m.ErrorMessage = fmt.Sprintf("%s is %s, hold on", bot.Name, bot.State().Label())
		return m, nil
	}

	m.ErrorMessage = ""
	if connect {
		m.StatusMessage = fmt.Sprintf("Connecting %s...", bot.Name)
		return m, transitionBot(m.Gateway, *bot, true)
	}
	m.StatusMessage = fmt.Sprintf("Disconnecting %s...", bot.Name)
	return m, transitionBot(m.Gateway, *bot, false)
}

// reconcileQRCodes fires a one-shot pairing-code fetch for every bot that
// just became ready to scan, and drops codes for bots that moved on
func (m Model) reconcileQRCodes(bots []models.Bot) []tea.Cmd {
	ready := map[string]bool{}
	var cmds []tea.Cmd

	for _, bot := range bots {
		if bot.BuilderBotID == "" {
			continue
		}
		if bot.State().IsReadyToScan() {
			ready[bot.BuilderBotID] = true
			if _, have := m.QRCodes[bot.BuilderBotID]; !have && !m.QRPending[bot.BuilderBotID] {
				m.QRPending[bot.BuilderBotID] = true
				cmds = append(cmds, fetchQR(m.Gateway, bot.BuilderBotID))
			}
		}
	}

	for id := range m.QRCodes {
		if !ready[id] {
			delete(m.QRCodes, id)
		}
	}

	return cmds
}

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Initializing..."
	}

	var status string
	if m.IsLoading {
		status = fmt.Sprintf("%s %s", m.Spinner.View(), m.StatusMessage)
	} else {
		status = m.StatusMessage
	}

	statusBar := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1).
		Render(status)

	titleBar := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Padding(0, 1).
		Render("GestorPro - Bot Fleet")

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1).
		Render("q quit - r refresh - c connect - d disconnect")

	errorView := ""
	if m.ErrorMessage != "" {
		errorView = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1).
			Render(m.ErrorMessage)
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.BotList.View(),
		m.renderDetail(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		statusBar,
		body,
		errorView,
		help,
	)
}

// renderDetail renders the pane for the selected bot
func (m Model) renderDetail() string {
	style := lipgloss.NewStyle().Padding(0, 2).Width(m.Width / 2)

	bot := m.BotList.Selected
	if bot == nil {
		return style.Render("Select a bot to see its details.")
	}

	state := bot.State()
	lines := fmt.Sprintf("%s\n\nStatus: %s\n", bot.Name, renderState(state))

	if d, ok := bot.OnlineFor(m.Now); ok {
		lines += fmt.Sprintf("Online for: %s\n", util.FormatDuration(d))
	} else if bot.LastOnlineDuration != "" {
		lines += fmt.Sprintf("Last session: %s\n", bot.LastOnlineDuration)
	}

	if bot.SystemInstruction != "" {
		lines += fmt.Sprintf("\nInstruction: %s\n", util.Truncate(bot.SystemInstruction, 120))
	}

	if state.IsReadyToScan() {
		if qr, ok := m.QRCodes[bot.BuilderBotID]; ok {
			lines += fmt.Sprintf("\nPairing payload:\n%s\n", qr)
		} else {
			lines += "\nFetching pairing code...\n"
		}
	}

	return style.Render(lines)
}

// renderState colors a status label by its kind
func renderState(state models.BotState) string {
	var c lipgloss.Color
	switch {
	case state.IsOnline():
		c = lipgloss.Color("10")
	case state.IsTransitional(), state.Kind == models.BotStateInProgress:
		c = lipgloss.Color("12")
	case state.IsReadyToScan():
		c = lipgloss.Color("13")
	case state.Kind == models.BotStateUnknown:
		c = lipgloss.Color("7")
	default:
		c = lipgloss.Color("9")
	}
	return lipgloss.NewStyle().Foreground(c).Render(state.Label())
}

// Messages
type botsLoadedMsg struct {
	bots   []models.Bot
	manual bool
}
type botsErrorMsg struct {
	err    string
	manual bool
}
type pollTickMsg struct{}
type clockTickMsg time.Time
type qrLoadedMsg struct {
	builderID string
	qr        string
	err       string
}
type transitionDoneMsg struct {
	label string
	err   string
}

// Commands
func loadBots(gateway *api.Gateway, manual bool) tea.Cmd {
	return func() tea.Msg {
		bots, err := gateway.GetBots(context.Background())
		if err != nil {
			return botsErrorMsg{err: fmt.Sprintf("Error fetching bots: %v", err), manual: manual}
		}
		return botsLoadedMsg{bots: bots, manual: manual}
	}
}

func pollAfter(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func fetchQR(gateway *api.Gateway, builderID string) tea.Cmd {
	return func() tea.Msg {
		code, err := gateway.GetBotQRCode(context.Background(), builderID)
		if err != nil {
			return qrLoadedMsg{builderID: builderID, err: err.Error()}
		}
		return qrLoadedMsg{builderID: builderID, qr: code.QR}
	}
}

func transitionBot(gateway *api.Gateway, bot models.Bot, connect bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		label := fmt.Sprintf("Connect requested for %s", bot.Name)
		if connect {
			err = gateway.ConnectBot(context.Background(), bot.ID)
		} else {
			err = gateway.DisconnectBot(context.Background(), bot.ID)
			label = fmt.Sprintf("Disconnect requested for %s", bot.Name)
		}
		if err != nil {
			return transitionDoneMsg{err: fmt.Sprintf("Error: %v", err)}
		}
		return transitionDoneMsg{label: label}
	}
}
