package brawl

import "github.com/vovakirdan/barnyard-arcade/internal/core"

// Command is a fighter state machine entry point.
type Command int

const (
	CmdNone Command = iota
	CmdMoveLeft
	CmdMoveRight
	CmdJump
	CmdBlock
	CmdAttack
	CmdSpecial
	CmdPause
)

var commandNames = [...]string{
	CmdNone:      "none",
	CmdMoveLeft:  "moveLeft",
	CmdMoveRight: "moveRight",
	CmdJump:      "jump",
	CmdBlock:     "block",
	CmdAttack:    "attack",
	CmdSpecial:   "special",
	CmdPause:     "pause",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// ParseCommand maps a name back to a Command.
func ParseCommand(s string) (Command, bool) {
	for i, name := range commandNames {
		if name == s {
			return Command(i), true
		}
	}
	return CmdNone, false
}

// Intent is one request against a fighter. Keyboard input, the CPU policy
// and scripted policies all produce Intents, so the round cannot tell them
// apart.
type Intent struct {
	Command Command
	// Speed overrides the move impulse for CmdMoveLeft/CmdMoveRight when
	// positive. Human input leaves it zero.
	Speed float64
}

// Do builds an Intent with the default magnitude.
func Do(c Command) Intent { return Intent{Command: c} }

// Move builds a horizontal move Intent from a signed velocity.
func Move(v float64) Intent {
	if v < 0 {
		return Intent{Command: CmdMoveLeft, Speed: -v}
	}
	return Intent{Command: CmdMoveRight, Speed: v}
}

// CommandFor translates a platform action.
func CommandFor(a core.Action) Command {
	switch a {
	case core.ActionLeft:
		return CmdMoveLeft
	case core.ActionRight:
		return CmdMoveRight
	case core.ActionUp, core.ActionJump:
		return CmdJump
	case core.ActionDown, core.ActionBlock:
		return CmdBlock
	case core.ActionAttack:
		return CmdAttack
	case core.ActionSpecial:
		return CmdSpecial
	case core.ActionPause, core.ActionConfirm:
		return CmdPause
	default:
		return CmdNone
	}
}
