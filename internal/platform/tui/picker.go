package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/app4dog/game-play/internal/config"
	"github.com/app4dog/game-play/internal/sim"
	"github.com/app4dog/game-play/internal/storage"
)

// PickerItem represents a selectable critter in the picker.
type PickerItem struct {
	CritterID   string
	Name        string
	Species     string
	UnlockLevel int
	HighScore   int
}

// PickerModel is the Bubble Tea model for the critter picker.
type PickerModel struct {
	items    []PickerItem
	cursor   int
	width    int
	height   int
	quitting bool
	selected *PickerItem // Set when user selects a critter
}

// NewPickerModel creates a picker over the configured critter templates.
// High scores come from storage when available.
func NewPickerModel(cfg config.Config, store *storage.Store) PickerModel {
	templates := cfg.Critters
	if len(templates) == 0 {
		templates = sim.BuiltinTemplates()
	}

	items := make([]PickerItem, 0, len(templates))
	for _, t := range templates {
		item := PickerItem{
			CritterID:   t.ID,
			Name:        t.Name,
			Species:     t.Species,
			UnlockLevel: t.UnlockLevel,
		}
		if store != nil {
			if high, err := store.HighScore(t.ID); err == nil {
				item.HighScore = high
			}
		}
		items = append(items, item)
	}

	return PickerModel{items: items}
}

// Init initializes the picker model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for picker navigation.
func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "w", "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "s", "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case "enter", " ":
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit picker to start the session
		}
	}

	return m, nil
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "  P E T S I M  "
	b.WriteString("\n")
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n\n")

	subtitle := "Choose your critter"
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		extra := fmt.Sprintf(" (%s)", item.Species)
		if item.HighScore > 0 {
			extra += fmt.Sprintf("  best %d", item.HighScore)
		}
		if item.UnlockLevel > 1 {
			extra += fmt.Sprintf("  unlocks at level %d", item.UnlockLevel)
		}

		line := fmt.Sprintf("%s%s%s", cursor, item.Name, extra)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected picker item, or nil if none selected.
func (m PickerModel) Selected() *PickerItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// RunPicker runs the picker and returns the chosen critter ID, or empty if
// the user quit.
func RunPicker(cfg config.Config, store *storage.Store) (string, error) {
	model := NewPickerModel(cfg, store)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(PickerModel)
	if !ok || m.Selected() == nil {
		return "", nil
	}
	return m.Selected().CritterID, nil
}
