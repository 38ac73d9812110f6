package space

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/barnyard-arcade/internal/core"
)

const (
	HeartChar = '♥'
	StarChar  = '.'
)

const shipSprite = "/^\\"

var enemyGlyphs = [enemyKinds]rune{'ж', 'Ѫ', 'Ψ', '¤', '@'}

// Render draws the starfield, the swarm, the ship and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.campaign == nil {
		return
	}
	l := g.campaign.Level()
	w, h := dst.Width(), dst.Height()
	field := core.NewRect(0, 1, w, core.Max(1, h-1))
	sx := float64(field.W) / g.cfg.Canvas.Width
	sy := float64(field.H) / g.cfg.Canvas.Height

	// Fixed stars so the field reads as space even when it is empty.
	for i := 0; i < w*field.H/40; i++ {
		dst.SetColored((i*37+11)%w, field.Y+(i*17+5)%field.H, StarChar, core.ColorGray)
	}

	g.drawHUD(dst, l)

	for _, e := range l.Enemies() {
		r := e.Body.Box().Scale(sx, sy)
		dst.SetColored(field.X+r.X, field.Y+r.Y, enemyGlyphs[e.Kind%enemyKinds], core.ColorBrightMagenta)
	}

	ship := l.Player().Box().Scale(sx, sy)
	shipColor := core.ColorBrightCyan
	if l.Flashing() {
		shipColor = core.ColorGray
	}
	dst.DrawTextColored(field.X+ship.X, core.Min(field.Y+ship.Y, h-1), shipSprite, shipColor)

	if g.err != nil {
		dst.DrawTextColored(0, h-1, g.err.Error(), core.ColorBrightRed)
	}

	switch g.campaign.Stage() {
	case StageIntermission:
		drawCenteredMessage(dst, fmt.Sprintf("LEVEL %d COMPLETE!", l.Number()), fmt.Sprintf("Score: %d", g.campaign.Score()), "Get ready...")
	case StageWon:
		drawCenteredMessage(dst, "YOU WIN!", fmt.Sprintf("Final score: %d", g.campaign.Score()), "Press R to play again")
	case StageOver:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d", g.campaign.Score()), "Press R to restart")
	default:
		if l.Paused() {
			drawCenteredMessage(dst, "PAUSED", "Enter to resume")
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen, l *Level) {
	left := fmt.Sprintf("Level %d/%d  Time %2ds", l.Number(), g.cfg.Gameplay.Levels, l.TimeLeft())
	dst.DrawTextColored(0, 0, left, core.ColorBrightCyan)

	score := fmt.Sprintf("Score %d", g.campaign.Score())
	dst.DrawTextColored((dst.Width()-len(score))/2, 0, score, core.ColorBrightYellow)

	hearts := strings.Repeat(string(HeartChar), core.Max(0, l.Lives()))
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(hearts), 0, hearts, core.ColorBrightRed)
}

func drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	w, h := dst.Width(), dst.Height()

	boxW := utf8.RuneCountInString(title)
	for _, l := range lines {
		boxW = core.Max(boxW, utf8.RuneCountInString(l))
	}
	boxW = core.Min(boxW+4, w)
	boxH := 3 + len(lines)
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawTextColored(boxX+(boxW-utf8.RuneCountInString(title))/2, boxY+1, title, core.ColorBrightYellow)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-utf8.RuneCountInString(l))/2, boxY+2+i, l)
	}
}
