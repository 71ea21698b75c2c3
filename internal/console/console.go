package console

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"galaxy/internal/graphics"
	"galaxy/internal/logger"
)

const (
	BarHeight = 40
	// toggle key; its character is never typed into the bar
	ToggleKey  = rl.KeyGrave
	toggleRune = '`'
	prompt     = "> "
	fontSize   = 20
	padding    = 8
	// log lines drawn above the input bar when open
	maxLinesOnScreen = 10
	lineHeight       = fontSize + 4
	maxLineLen       = 200
)

var (
	barColor  = rl.NewColor(40, 40, 40, 255)
	lineColor = rl.NewColor(80, 80, 80, 255)
	logBg     = rl.NewColor(24, 24, 24, 220)
)

// Console is the input bar at the bottom of the window, shown and hidden with the grave key.
// While open it captures typing; viewers should skip their own key handling (see IsOpen).
// Enter passes the line to OnSubmit; the log's recent lines are drawn above the bar.
type Console struct {
	log      *logger.Logger
	inputBuf string
	open     bool
	OnSubmit func(line string)
	// Font may be nil for raylib's default font.
	Font *graphics.Font
}

// New returns a closed console showing lines from log.
func New(log *logger.Logger, onSubmit func(line string)) *Console {
	return &Console{log: log, OnSubmit: onSubmit}
}

// IsOpen returns true when the console is visible and capturing input.
func (c *Console) IsOpen() bool {
	return c.open
}

// Update handles the toggle key and, when open, typing, paste, backspace and enter. Call once per frame.
func (c *Console) Update() {
	if rl.IsKeyPressed(ToggleKey) {
		c.open = !c.open
	}
	if !c.open {
		// drain so characters typed while closed don't show up later
		for rl.GetCharPressed() != 0 {
		}
		return
	}
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			c.inputBuf += pasted
		}
	} else {
		for {
			ch := rl.GetCharPressed()
			if ch == 0 {
				break
			}
			if ch == toggleRune {
				continue
			}
			c.inputBuf += string(rune(ch))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(c.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(c.inputBuf)
		c.inputBuf = c.inputBuf[:len(c.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && c.inputBuf != "" {
		line := c.inputBuf
		c.inputBuf = ""
		if c.OnSubmit != nil {
			c.OnSubmit(line)
		}
	}
}

// Draw draws the bar and the recent log lines above it when open.
func (c *Console) Draw() {
	if !c.open {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	barY := int32(rl.GetScreenHeight()) - BarHeight

	logHeight := int32(maxLinesOnScreen * lineHeight)
	logY := barY - logHeight
	if logY < 0 {
		logHeight = barY
		logY = 0
	}
	if logHeight > 0 {
		rl.DrawRectangle(0, logY, screenW, logHeight, logBg)
	}
	for i, line := range c.log.Tail(maxLinesOnScreen) {
		if len(line) > maxLineLen {
			line = line[:maxLineLen-3] + "..."
		}
		y := logY + int32(i*lineHeight) + padding
		c.Font.Draw(line, padding, y, fontSize, rl.LightGray)
	}

	rl.DrawRectangle(0, barY, screenW, BarHeight, barColor)
	rl.DrawRectangle(0, barY, screenW, 1, lineColor)
	c.Font.Draw(prompt+c.inputBuf+"|", padding, barY+padding, fontSize, rl.White)
}
