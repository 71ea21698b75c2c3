package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the window opened by Run.
type Window struct {
	Width, Height int
	Title         string
	Background    rl.Color
	// OnClose runs after the last frame while the window still exists.
	OnClose func()
}

// Run opens the window and runs the main loop until it is closed (window button or ESC).
// Each frame it calls update (input, simulation), then clears to the background and calls draw.
func Run(win Window, update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(win.Width), int32(win.Height), win.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(win.Background)
		draw()
		rl.EndDrawing()
	}
	if win.OnClose != nil {
		win.OnClose()
	}
}

// Font draws text with a TTF font loaded on first use, since raylib can only load
// fonts once the window exists. A zero path, or a file raylib cannot load, falls
// back to the default pixel font.
type Font struct {
	path  string
	font  rl.Font
	tried bool
}

// NewFont returns a font that will load path on its first Draw.
func NewFont(path string) *Font {
	return &Font{path: path}
}

// Draw draws text at (x, y) with the given pixel size.
func (f *Font) Draw(text string, x, y, size int32, color rl.Color) {
	if f != nil && !f.tried {
		f.tried = true
		if f.path != "" {
			f.font = rl.LoadFont(f.path)
		}
	}
	if f == nil || f.font.Texture.ID == 0 {
		rl.DrawText(text, x, y, size, color)
		return
	}
	rl.DrawTextEx(f.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// Unload releases the font texture. Call before the window closes.
func (f *Font) Unload() {
	if f != nil && f.font.Texture.ID != 0 {
		rl.UnloadFont(f.font)
		f.font = rl.Font{}
	}
}
