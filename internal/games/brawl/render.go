package brawl

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/barnyard-arcade/internal/core"
)

// Visual characters for rendering
const (
	BodyChar   = '█'
	GrassChar  = '▀'
	FistChar   = '═'
	ShieldChar = '▐'
	WinMark    = '●'
	RoundMark  = '○'
	ReadyMark  = '★'
)

const (
	hudRows      = 3
	fighterRows  = 3
	jumpHeadroom = 250.0 // world units shown above a standing fighter
)

// Render draws the arena, both fighters and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.match == nil {
		return
	}
	r := g.match.Round()
	w, h := dst.Width(), dst.Height()
	floorY := h - 2

	g.drawHUD(dst, r)
	dst.DrawHLine(0, floorY, w, GrassChar, core.ColorGreen)

	sx := float64(w) / g.cfg.Arena.Width
	sy := float64(core.Max(1, floorY-hudRows-fighterRows)) / jumpHeadroom
	for _, f := range r.Fighters() {
		g.drawFighter(dst, f, sx, sy, floorY)
	}

	if g.err != nil {
		dst.DrawTextColored(1, h-1, g.err.Error(), core.ColorBrightRed)
	}

	switch {
	case r.Paused():
		drawCenteredMessage(dst, "PAUSED", "Enter or Tab to resume")
	case g.match.Over():
		winner := r.Fighter(g.match.Winner())
		drawCenteredMessage(dst, winner.Char.Name+" WINS!", winner.Char.VictoryQuote, "Press R to restart")
	case r.Outcome().Done():
		winner := r.Fighter(r.Winner())
		title := "K.O.!"
		if r.Reason() != ReasonKnockout {
			title = "TIME!"
		}
		drawCenteredMessage(dst, title, fmt.Sprintf("Round %d to %s", g.match.Number(), winner.Char.Name))
	}
}

func (g *Game) drawHUD(dst *core.Screen, r *Round) {
	w := dst.Width()
	p1, p2 := r.Fighter(core.Player1), r.Fighter(core.Player2)
	barW := core.Max(4, w/2-10)

	dst.DrawTextColored(1, 0, p1.Char.Name, core.SeatColor(core.Player1))
	dst.DrawTextColored(w-1-utf8.RuneCountInString(p2.Char.Name), 0, p2.Char.Name, core.SeatColor(core.Player2))

	timer := fmt.Sprintf("%02d", r.TimeLeft())
	timerColor := core.ColorBrightYellow
	if r.TimeLeft() <= 10 {
		timerColor = core.ColorBrightRed
	}
	dst.DrawTextColored((w-len(timer))/2, 0, timer, timerColor)

	full := g.cfg.Combat.MaxHealth
	f1, f2 := p1.Health/full, p2.Health/full
	dst.DrawBar(1, 1, barW, f1, core.HealthColor(f1))
	dst.DrawText(barW+2, 1, fmt.Sprintf("%3d%%", int(math.Round(p1.Health))))
	dst.DrawBar(w-1-barW, 1, barW, f2, core.HealthColor(f2))
	dst.DrawText(w-barW-7, 1, fmt.Sprintf("%3d%%", int(math.Round(p2.Health))))

	now := r.Now()
	dst.DrawText(1, 2, "SP")
	if p1.SpecialReady(now) {
		dst.SetColored(4, 2, ReadyMark, core.ColorBrightYellow)
	}
	dst.DrawText(w-5, 2, "SP")
	if p2.SpecialReady(now) {
		dst.SetColored(w-2, 2, ReadyMark, core.ColorBrightYellow)
	}

	marks := g.roundMarks(core.Player1) + fmt.Sprintf(" R%d ", g.match.Number()) + g.roundMarks(core.Player2)
	dst.DrawTextCentered(2, marks)
}

func (g *Game) roundMarks(id core.PlayerID) string {
	var sb strings.Builder
	for i := 0; i < g.cfg.Match.RoundsToWin; i++ {
		if i < g.match.Wins(id) {
			sb.WriteRune(WinMark)
		} else {
			sb.WriteRune(RoundMark)
		}
	}
	return sb.String()
}

func (g *Game) drawFighter(dst *core.Screen, f *Fighter, sx, sy float64, floorY int) {
	fw := core.Max(3, int(f.Body.W*sx+0.5))
	x := int(f.Body.X*sx + 0.5)
	lift := int(-f.Body.Y*sy + 0.5)
	top := floorY - fighterRows - lift

	color := core.SeatColor(f.ID)
	if f.Flashing() {
		color = core.ColorBrightWhite
	}
	dst.FillRect(core.NewRect(x, top, fw, fighterRows), BodyChar, color)

	glyph, _ := utf8.DecodeRuneInString(f.Char.Glyph)
	if glyph == utf8.RuneError {
		glyph = '?'
	}
	dst.SetColored(x+fw/2, top, glyph, core.ColorBrightWhite)

	front := x + fw
	if f.Body.Facing < 0 {
		front = x - 1
	}
	dir := int(core.SignF(f.Body.Facing))
	if f.Blocking() {
		for row := 0; row < fighterRows; row++ {
			dst.SetColored(front, top+row, ShieldChar, core.ColorBrightBlue)
		}
	}
	if f.Attacking() {
		dst.SetColored(front, top+1, FistChar, core.ColorOrange)
		dst.SetColored(front+dir, top+1, FistChar, core.ColorOrange)
	}

	if g.banner.seat == f.ID && g.clock != nil && g.clock.Now() < g.banner.until {
		text := g.banner.text + "!"
		bx := core.Clamp(x+fw/2-utf8.RuneCountInString(text)/2, 0, core.Max(0, dst.Width()-utf8.RuneCountInString(text)))
		dst.DrawTextColored(bx, core.Max(hudRows, top-1), text, core.ColorBrightYellow)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	w, h := dst.Width(), dst.Height()

	boxW := utf8.RuneCountInString(title)
	for _, l := range lines {
		boxW = core.Max(boxW, utf8.RuneCountInString(l))
	}
	boxW = core.Min(boxW+4, w)
	boxH := 3 + 2*len(lines)
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-utf8.RuneCountInString(title))/2, boxY+1, title, core.ColorBrightYellow)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-utf8.RuneCountInString(l))/2, boxY+3+2*i, l)
	}
}
