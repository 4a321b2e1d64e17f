// SPDX-License-Identifier: MIT
package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/heatscan/game"
	"github.com/katalvlaran/heatscan/logging"
	"github.com/katalvlaran/heatscan/simulation"
)

// Tile cell geometry in terminal cells.
const (
	tileWidth  = 8
	tileHeight = 3
	boardTop   = 2
	boardLeft  = 2
	cellWidth  = 2
)

type action int

const (
	actionNone action = iota
	actionLeft
	actionRight
	actionUp
	actionDown
	actionSelect
	actionRestart
	actionFine
	actionQuit
)

// keyAction maps a key press to a board action.
func keyAction(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyLeft:
		return actionLeft
	case tcell.KeyRight:
		return actionRight
	case tcell.KeyUp:
		return actionUp
	case tcell.KeyDown:
		return actionDown
	case tcell.KeyEnter:
		return actionSelect
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'h':
			return actionLeft
		case 'l':
			return actionRight
		case 'k':
			return actionUp
		case 'j':
			return actionDown
		case ' ':
			return actionSelect
		case 'r':
			return actionRestart
		case 'f':
			return actionFine
		case 'q':
			return actionQuit
		}
	}
	return actionNone
}

// App draws a game on a tcell screen and feeds it key presses.
type App struct {
	screen tcell.Screen
	game   *game.Game
	size   int
	log    *slog.Logger

	row, col int
	message  string
	fine     bool
}

// New returns an app playing size×size boards on g. The screen must
// already be initialized; the caller owns Fini.
func New(screen tcell.Screen, g *game.Game, size int, log *slog.Logger) *App {
	return &App{
		screen: screen,
		game:   g,
		size:   size,
		log:    logging.OrDefault(log),
	}
}

// Start initializes a fresh session and draws it.
func (a *App) Start(ctx context.Context) error {
	if _, err := a.game.Initialize(ctx, a.size); err != nil {
		return err
	}
	a.row, a.col = 0, 0
	a.message = "new plate"
	a.Draw()
	return nil
}

// Run starts a session and processes events until quit or ctx ends.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}

	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			cont, err := a.Handle(ctx, ev)
			if err != nil {
				return err
			}
			if !cont {
				return nil
			}
		}
	}
}

// Handle applies one event and redraws. It reports false on quit.
func (a *App) Handle(ctx context.Context, ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		switch keyAction(ev) {
		case actionQuit:
			return false, nil
		case actionLeft:
			a.col = max(0, a.col-1)
		case actionRight:
			a.col = min(a.size-1, a.col+1)
		case actionUp:
			a.row = max(0, a.row-1)
		case actionDown:
			a.row = min(a.size-1, a.row+1)
		case actionSelect:
			a.selectTile()
		case actionFine:
			a.fine = !a.fine
		case actionRestart:
			if err := a.Start(ctx); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	a.Draw()
	return true, nil
}

// Cursor returns the 1-based tile index under the cursor.
func (a *App) Cursor() int { return a.row*a.size + a.col + 1 }

func (a *App) selectTile() {
	tile := a.Cursor()
	res := a.game.ApplyMove(tile)
	if res.Accepted {
		a.message = fmt.Sprintf("scanned tile %d", tile)
		return
	}
	a.message = fmt.Sprintf("tile %d: %s", tile, res.Reason.Message())
	if res.Reason == simulation.NotInitialized {
		a.log.Warn("move without session", "tile", tile)
	}
}

// Draw renders the board, the footer and the key help.
func (a *App) Draw() {
	a.screen.Clear()
	snap, ok := a.game.Snapshot()
	if !ok {
		a.text(boardLeft, 0, "no active plate, press r", tcell.StyleDefault)
		a.screen.Show()
		return
	}

	title := fmt.Sprintf("heatscan %d×%d  scanned %d/%d", snap.Size, snap.Size, len(snap.Selected), snap.Size*snap.Size)
	a.text(boardLeft, 0, title, tcell.StyleDefault.Bold(true))

	var height int
	if a.fine {
		height = a.drawFine(snap)
	} else {
		height = a.drawBoard(snap)
	}

	y := boardTop + height + 1
	state := "in progress"
	if snap.Status.Complete {
		state = "complete"
	}
	a.text(boardLeft, y, fmt.Sprintf("accuracy %.6f  %s", snap.Status.Accuracy, state), tcell.StyleDefault)
	a.text(boardLeft, y+1, a.message, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	a.text(boardLeft, y+3, "arrows/hjkl move  space scan  f fine view  r restart  q quit", tcell.StyleDefault.Dim(true))
	a.screen.Show()
}

// drawBoard draws the pooled s×s map and returns its height in rows.
func (a *App) drawBoard(snap game.Snapshot) int {
	selected := make(map[int]bool, len(snap.Selected))
	for _, t := range snap.Selected {
		selected[t] = true
	}
	for r, row := range snap.Status.TemperatureMap {
		for c, temp := range row {
			a.drawTile(r, c, temp, selected[r*snap.Size+c+1], snap)
		}
	}
	return snap.Size * tileHeight
}

// drawFine draws every fine cell of the mesh, marking the cells of the
// tile under the cursor, and returns its height in rows.
func (a *App) drawFine(snap game.Snapshot) int {
	field := a.game.FineField()
	if len(field) != snap.Grid.FineDim {
		return 0
	}
	cursor := a.Cursor() - 1
	for r, row := range field {
		for c, temp := range row {
			style := tcell.StyleDefault.Background(heatColor(temp, snap.Ambient, snap.Melt))
			mark := ' '
			if snap.Grid.TileOf(snap.Grid.Index(r, c)) == cursor {
				mark = '·'
				style = style.Foreground(labelColor(temp, snap.Ambient, snap.Melt))
			}
			x := boardLeft + c*cellWidth
			a.screen.SetContent(x, boardTop+r, mark, nil, style)
			a.screen.SetContent(x+1, boardTop+r, ' ', nil, style)
		}
	}
	return snap.Grid.FineDim
}

func (a *App) drawTile(r, c int, temp float64, scanned bool, snap game.Snapshot) {
	bg := heatColor(temp, snap.Ambient, snap.Melt)
	style := tcell.StyleDefault.Background(bg).Foreground(labelColor(temp, snap.Ambient, snap.Melt))
	if r == a.row && c == a.col {
		style = style.Reverse(true)
	}
	x0 := boardLeft + c*tileWidth
	y0 := boardTop + r*tileHeight
	for dy := 0; dy < tileHeight; dy++ {
		for dx := 0; dx < tileWidth-1; dx++ {
			a.screen.SetContent(x0+dx, y0+dy, ' ', nil, style)
		}
	}
	a.text(x0+1, y0+1, fmt.Sprintf("%5.0f", temp), style)
	if scanned {
		a.screen.SetContent(x0, y0, '*', nil, style)
	}
}

func (a *App) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		a.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
