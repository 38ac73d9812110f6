package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/barnyard-arcade/internal/core"
)

// KeyMapper translates Bubble Tea key messages to seat actions.
//
// Seat 1 always has the arrow cluster: arrows move, space is the special,
// "." or "/" attacks, x shoots and Enter confirms or pauses. When a second
// local player is present, WASD, q (attack), e (special) and Tab (pause)
// belong to seat 2, so q no longer quits; otherwise WASD mirrors the arrows.
type KeyMapper struct {
	versus bool
}

// NewKeyMapper creates a key mapper. versus hands the WASD cluster to seat 2.
func NewKeyMapper(versus bool) *KeyMapper {
	return &KeyMapper{versus: versus}
}

var seat1Keys = map[string]core.Action{
	"up":    core.ActionUp,
	"down":  core.ActionDown,
	"left":  core.ActionLeft,
	"right": core.ActionRight,
	" ":     core.ActionSpecial,
	".":     core.ActionAttack,
	"/":     core.ActionAttack,
	"x":     core.ActionShoot,
	"enter": core.ActionConfirm,
	"p":     core.ActionPause,
	"r":     core.ActionRestart,
}

var seat2Keys = map[string]core.Action{
	"w":   core.ActionUp,
	"s":   core.ActionDown,
	"a":   core.ActionLeft,
	"d":   core.ActionRight,
	"q":   core.ActionAttack,
	"e":   core.ActionSpecial,
	"tab": core.ActionPause,
}

// MapKey returns the seat and action for a key, or isQuit for a quit request.
// Unbound keys return ActionNone.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (seat core.PlayerID, action core.Action, isQuit bool) {
	k := msg.String()
	if k == "ctrl+c" || (k == "q" && !km.versus) {
		return core.Player1, core.ActionQuit, true
	}
	if a, ok := seat1Keys[k]; ok {
		return core.Player1, a, false
	}
	if a, ok := seat2Keys[k]; ok {
		if km.versus {
			return core.Player2, a, false
		}
		switch a {
		case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
			return core.Player1, a, false
		}
	}
	return core.Player1, core.ActionNone, false
}

// MapKeyToMultiFrame records a key in frame. Returns true for a quit request.
func (km *KeyMapper) MapKeyToMultiFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	seat, action, isQuit := km.MapKey(msg)
	if isQuit {
		return true
	}
	if action != core.ActionNone {
		f := frame.Player(seat)
		f.Set(action)
		frame.SetPlayer(seat, f)
	}
	return false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft  // previous option for the highlighted game
	MenuActionRight // next option
	MenuActionAltLeft
	MenuActionAltRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "left", "h":
		return MenuActionLeft
	case "right", "l":
		return MenuActionRight
	case "a":
		return MenuActionAltLeft
	case "d":
		return MenuActionAltRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
