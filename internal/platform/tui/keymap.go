package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// HostAction is what a key press means to the terminal host.
type HostAction int

const (
	ActionNone HostAction = iota
	ActionQuit
	ActionGesture
	ActionTap
	ActionSwipeLeft
	ActionSwipeRight
	ActionHold
	ActionScan
	ActionBeep
	ActionFeed
	ActionToggleDevices
	ActionToggleMusic
	ActionVolumeUp
	ActionVolumeDown
	ActionCritterNext
)

// KeyMapper translates Bubble Tea key messages to host actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a host action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) HostAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return ActionQuit
	case "g", " ":
		return ActionGesture
	case "t", "enter":
		return ActionTap
	case "left", "a":
		return ActionSwipeLeft
	case "right", "l":
		return ActionSwipeRight
	case "h":
		return ActionHold
	case "n":
		return ActionScan
	case "b":
		return ActionBeep
	case "f":
		return ActionFeed
	case "d", "tab":
		return ActionToggleDevices
	case "m":
		return ActionToggleMusic
	case "+", "=":
		return ActionVolumeUp
	case "-", "_":
		return ActionVolumeDown
	case "c":
		return ActionCritterNext
	}
	return ActionNone
}
