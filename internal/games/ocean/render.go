package ocean

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/barnyard-arcade/internal/core"
	"github.com/vovakirdan/barnyard-arcade/internal/sim"
)

// Visual characters for rendering
const (
	PelletChar = '•'
	BubbleChar = 'o'
	DangerChar = '~'
	HeartChar  = '♥'
	BossChar   = '▓'
)

const fishSprite = "><>"

var enemyGlyphs = [enemyKinds]rune{'ж', '§', '&', '¥', '*'}

// Render draws the sea, its inhabitants and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.campaign == nil {
		return
	}
	l := g.campaign.Level()
	w, h := dst.Width(), dst.Height()
	sea := core.NewRect(0, 1, w, core.Max(1, h-1))
	sx := float64(sea.W) / g.cfg.Canvas.Width
	sy := float64(sea.H) / g.cfg.Canvas.Height

	g.drawHUD(dst, l)

	danger := core.Box{Y: g.cfg.Canvas.Height - l.DangerHeight(), W: g.cfg.Canvas.Width, H: l.DangerHeight()}
	dangerColor := core.ColorSea
	if l.DangerActive() {
		dangerColor = core.ColorRed
	}
	dst.FillRect(project(danger, sea, sx, sy), DangerChar, dangerColor)

	for _, p := range l.Pellets() {
		x, y := cell(p, sea, sx, sy)
		dst.SetColored(x, y, PelletChar, core.ColorYellow)
	}
	for _, e := range l.Enemies() {
		x, y := cell(e.Body, sea, sx, sy)
		dst.SetColored(x, y, enemyGlyphs[e.Kind%enemyKinds], core.ColorBrightRed)
	}
	if b := l.Boss(); b != nil {
		dst.FillRect(project(b.Body.Box(), sea, sx, sy), BossChar, core.ColorGray)
		barW := core.Max(4, w/3)
		dst.DrawBar((w-barW)/2, 1, barW, float64(b.HP)/float64(b.MaxHP), core.ColorBrightRed)
	}
	for _, b := range l.Bubbles() {
		x, y := cell(b, sea, sx, sy)
		dst.SetColored(x, y, BubbleChar, core.ColorBrightCyan)
	}

	px, py := cell(l.Player(), sea, sx, sy)
	fishColor := core.ColorBrightYellow
	if l.Flashing() {
		fishColor = core.ColorGray
	}
	dst.DrawTextColored(px, py, fishSprite, fishColor)

	if g.err != nil {
		dst.DrawTextColored(0, h-1, g.err.Error(), core.ColorBrightRed)
	}

	switch g.campaign.Stage() {
	case StageCleared:
		drawCenteredMessage(dst, "LEVEL COMPLETE!", fmt.Sprintf("Score: %d", g.campaign.Score()), "Enter for the next level")
	case StagePowerUp:
		drawCenteredMessage(dst, "POWER UP!", "You can shoot bubbles now (Space)", "Enter to face the shark")
	case StageFailed:
		drawCenteredMessage(dst, "LEVEL FAILED", "Out of lives", "Enter to retry")
	case StageWon:
		drawCenteredMessage(dst, "YOU WIN!", "The shark is beaten", fmt.Sprintf("Final score: %d", g.campaign.Score()), "Press R to play again")
	default:
		if l.Paused() {
			drawCenteredMessage(dst, "PAUSED", "Enter to resume")
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen, l *Level) {
	left := fmt.Sprintf("Level %d", l.Number())
	if !l.IsBossLevel() {
		left += fmt.Sprintf("  Pellets %d/%d", l.Collected(), g.cfg.Pellets.PerLevel)
	}
	dst.DrawTextColored(0, 0, left, core.ColorBrightCyan)

	score := fmt.Sprintf("Score %d", g.campaign.Score())
	dst.DrawTextColored((dst.Width()-len(score))/2, 0, score, core.ColorBrightYellow)

	hearts := strings.Repeat(string(HeartChar), core.Max(0, l.Lives()))
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(hearts), 0, hearts, core.ColorBrightRed)
}

// cell maps a body's top-left corner into the sea rectangle.
func cell(b sim.Body, sea core.Rect, sx, sy float64) (int, int) {
	x := core.Clamp(sea.X+int(b.X*sx), sea.X, sea.Right()-1)
	y := core.Clamp(sea.Y+int(b.Y*sy), sea.Y, sea.Bottom()-1)
	return x, y
}

func project(b core.Box, sea core.Rect, sx, sy float64) core.Rect {
	r := b.Scale(sx, sy)
	r.X += sea.X
	r.Y += sea.Y
	return r
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
