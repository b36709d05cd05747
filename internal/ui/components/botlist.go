package components

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gestorpro/internal/models"
)

// BotItem represents a bot item in the list
type BotItem struct {
	Bot models.Bot
}

// FilterValue returns the filter value for the bot item
func (i BotItem) FilterValue() string {
	return i.Bot.Name
}

// Title returns the title for the bot item
func (i BotItem) Title() string {
	return i.Bot.Name
}

// Description returns the description for the bot item
func (i BotItem) Description() string {
	state := i.Bot.State()
	if i.Bot.Description != "" {
		return fmt.Sprintf("%s - %s", state.Label(), i.Bot.Description)
	}
	return state.Label()
}

// BotListModel represents the bot list model
type BotListModel struct {
	List     list.Model
	Bots     []models.Bot
	Selected *models.Bot
}

// NewBotListModel creates a new bot list model
func NewBotListModel(width, height int) BotListModel {
	listModel := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	listModel.Title = "Bots"
	listModel.SetShowStatusBar(false)
	listModel.SetFilteringEnabled(true)
	listModel.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true).
		MarginLeft(2)

	return BotListModel{
		List: listModel,
		Bots: []models.Bot{},
	}
}

// SetBots replaces the list contents, preserving the cursor by bot id so a
// poll refresh does not jump the selection around
func (m *BotListModel) SetBots(bots []models.Bot) {
	selectedID := ""
	if m.Selected != nil {
		selectedID = m.Selected.ID
	}

	sort.SliceStable(bots, func(i, j int) bool {
		return bots[i].Created().After(bots[j].Created())
	})
	m.Bots = bots

	items := make([]list.Item, len(bots))
	index := -1
	for i, bot := range bots {
		items[i] = BotItem{Bot: bot}
		if bot.ID == selectedID {
			index = i
		}
	}

	m.List.SetItems(items)
	if index >= 0 {
		m.List.Select(index)
		bot := bots[index]
		m.Selected = &bot
	} else {
		m.Selected = nil
	}
}

// Update handles bot list updates
func (m BotListModel) Update(msg tea.Msg) (BotListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)

	if item, ok := m.List.SelectedItem().(BotItem); ok {
		bot := item.Bot
		m.Selected = &bot
	} else {
		m.Selected = nil
	}

	return m, cmd
}

// View renders the bot list
func (m BotListModel) View() string {
	return m.List.View()
}
