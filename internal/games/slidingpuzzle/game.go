// Package slidingpuzzle implements the single-player tile puzzle: a
// setup screen for size and difficulty, then a timed, move-counted
// scramble to restore the board.
package slidingpuzzle

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pocketarcade/pocketarcade/internal/codec"
	"github.com/pocketarcade/pocketarcade/internal/games"
	"github.com/pocketarcade/pocketarcade/internal/model"
	"github.com/pocketarcade/pocketarcade/internal/render"
	"github.com/pocketarcade/pocketarcade/internal/storage"
)

// Title appears on every rendered message
const Title = "Sliding Puzzle"

// Game is the complete serialized state. The awaiting-approval phase is
// the setup screen; there is no opponent to approve anything. StartTime
// is unix seconds of the first tile move, zero while the timer has not
// started. Elapsed is filled at the moment of solving.
type Game struct {
	Phase      model.Phase      `msgpack:"phase" json:"phase"`
	Player     model.PlayerID   `msgpack:"player" json:"player"`
	Size       int              `msgpack:"size" json:"size"`
	Difficulty model.Difficulty `msgpack:"difficulty" json:"difficulty"`
	Board      *Board           `msgpack:"board" json:"board"`
	Moves      int              `msgpack:"moves" json:"moves"`
	StartTime  int64            `msgpack:"start_time" json:"start_time"`
	Elapsed    int64            `msgpack:"elapsed" json:"elapsed"`
}

type Handler struct {
	deps games.Deps
}

var _ games.Handler = (*Handler)(nil)

func New(deps games.Deps) *Handler {
	return &Handler{deps: deps}
}

func (h *Handler) Kind() model.GameKind {
	return model.KindSlidingPuzzle
}

// Command opens the setup screen with the smallest board on easy
func (h *Handler) Command(ctx context.Context, req games.CommandRequest) (*render.Message, error) {
	g := &Game{
		Phase:      model.PhaseAwaitingApproval,
		Player:     req.Player,
		Size:       3,
		Difficulty: model.DifficultyEasy,
	}
	return h.render(g)
}

func (h *Handler) Component(ctx context.Context, evt games.ComponentEvent) (*render.Message, error) {
	_, fields, err := games.SplitAction(evt.ControlID)
	if err != nil {
		return nil, err
	}
	action, err := parseAction(fields)
	if err != nil {
		return nil, &model.UnknownActionError{ID: evt.ControlID, Err: err}
	}

	var g Game
	if err := codec.ExtractInto(evt.MessageContent, &g); err != nil {
		return nil, err
	}

	if err := h.apply(ctx, &g, action, evt); err != nil {
		return nil, err
	}
	return h.render(&g)
}

func (h *Handler) apply(ctx context.Context, g *Game, action Action, evt games.ComponentEvent) error {
	if g.Phase.Terminal() {
		return model.ErrGameOver
	}
	if evt.Player != g.Player {
		return model.ErrNotYourGame
	}

	switch g.Phase {
	case model.PhaseAwaitingApproval:
		switch a := action.(type) {
		case SetSize:
			g.Size = a.Size
			return nil
		case SetDifficulty:
			g.Difficulty = a.Difficulty
			return nil
		case Start:
			g.Board = NewBoard(g.Size, g.Difficulty, h.deps.Random)
			g.Phase = model.PhaseInProgress
			return nil
		}
		return model.ErrActionNotAllowed
	case model.PhaseInProgress:
		// a decodable token can claim progress without carrying a
		// usable board
		if g.Board == nil || len(g.Board.Spaces) != g.Size*g.Size {
			return model.ErrActionNotAllowed
		}
		switch a := action.(type) {
		case MoveTile:
			return h.moveTile(ctx, g, a)
		case InvalidMove:
			// a dead cell was pressed; rerender and move on
			return nil
		}
		return model.ErrActionNotAllowed
	}
	return model.ErrActionNotAllowed
}

func (h *Handler) moveTile(ctx context.Context, g *Game, a MoveTile) error {
	// The timer starts with the first tile actually moved, not at Start
	if g.StartTime == 0 {
		g.StartTime = h.deps.Clock.Now().Unix()
	}
	if err := g.Board.SwapChecked(a.From, a.To); err != nil {
		return err
	}
	g.Moves++

	if !g.Board.Solved() {
		return nil
	}
	g.Phase = model.PhaseFinished
	g.Elapsed = h.deps.Clock.Now().Unix() - g.StartTime
	h.record(ctx, g)
	return nil
}

func (h *Handler) record(ctx context.Context, g *Game) {
	if h.deps.Store == nil {
		return
	}
	err := h.deps.Store.RecordFinishedPuzzle(ctx, storage.PuzzleScore{
		PlayerID:   g.Player,
		Name:       h.deps.Resolver.Resolve(ctx, g.Player),
		Size:       g.Size,
		Difficulty: g.Difficulty,
		Moves:      g.Moves,
		Duration:   time.Duration(g.Elapsed) * time.Second,
	})
	if err != nil {
		h.deps.Logger.Error("failed to record puzzle score",
			"game", string(model.KindSlidingPuzzle),
			"error", err)
	}
}

func sizeLabel(size int) string {
	return fmt.Sprintf("%dx%d", size, size)
}

func difficultyLabel(d model.Difficulty) string {
	switch d {
	case model.DifficultyMedium:
		return "Medium"
	case model.DifficultyHard:
		return "Hard"
	}
	return "Easy"
}

func difficultyStyle(d model.Difficulty) render.Style {
	switch d {
	case model.DifficultyMedium:
		return render.StylePrimary
	case model.DifficultyHard:
		return render.StyleDanger
	}
	return render.StyleSuccess
}

func (h *Handler) render(g *Game) (*render.Message, error) {
	card, err := codec.EncodeInto(g, Title)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(card)

	var controls [][]render.Control
	switch g.Phase {
	case model.PhaseAwaitingApproval:
		fmt.Fprintf(&b, "%s is setting up a %s.", g.Player.Mention(), Title)
		controls = h.setupControls(g)
	case model.PhaseInProgress:
		elapsed := "0s (paused)"
		if g.StartTime > 0 {
			elapsed = render.FormatDuration(
				time.Duration(h.deps.Clock.Now().Unix()-g.StartTime) * time.Second)
		}
		fmt.Fprintf(&b, "```ansi\nTime: %s\nMoves: %d\n```", elapsed, g.Moves)
		controls = h.grid(g)
	case model.PhaseFinished:
		fmt.Fprintf(&b, "%s has won!\n```ansi\nSize: %s\nDifficulty: %s\nTime: %s\nMoves: %d\n```",
			g.Player.Mention(),
			sizeLabel(g.Size),
			difficultyLabel(g.Difficulty),
			render.FormatDuration(time.Duration(g.Elapsed)*time.Second),
			g.Moves)
	}

	return &render.Message{Content: b.String(), Controls: controls}, nil
}

// setupControls renders the three setup rows: sizes, difficulties, and
// the start button. The active choice in each row is shown disabled.
func (h *Handler) setupControls(g *Game) [][]render.Control {
	var sizes []render.Control
	for _, size := range model.PuzzleSizes() {
		style := render.StyleSecondary
		if size == g.Size {
			style = render.StylePrimary
		}
		sizes = append(sizes, render.Control{
			ID:       SetSize{Size: size}.ControlID(),
			Label:    sizeLabel(size),
			Style:    style,
			Disabled: size == g.Size,
		})
	}

	var difficulties []render.Control
	for _, d := range model.Difficulties() {
		style := render.StyleSecondary
		if d == g.Difficulty {
			style = difficultyStyle(d)
		}
		difficulties = append(difficulties, render.Control{
			ID:       SetDifficulty{Difficulty: d}.ControlID(),
			Label:    difficultyLabel(d),
			Style:    style,
			Disabled: d == g.Difficulty,
		})
	}

	return [][]render.Control{
		sizes,
		difficulties,
		render.Row(render.Control{
			ID:    Start{}.ControlID(),
			Label: "Start",
			Style: render.StyleSuccess,
		}),
	}
}

// grid renders the board as one control per tile. Tiles adjacent to the
// blank carry a real move; everything else is inert. A tile sitting at
// its home position renders green.
func (h *Handler) grid(g *Game) [][]render.Control {
	blank, _ := g.Board.BlankIndex()
	rows := make([][]render.Control, 0, g.Size)
	for y := 0; y < g.Size; y++ {
		row := make([]render.Control, 0, g.Size)
		for x := 0; x < g.Size; x++ {
			i := x + y*g.Size
			v := g.Board.Spaces[i]

			c := render.Control{Style: render.StyleSecondary}
			switch {
			case v == Blank:
				c.ID = InvalidMove{Index: i}.ControlID()
				c.Label = "·"
				c.Disabled = true
			case g.Board.AdjacentToBlank(i):
				c.ID = MoveTile{From: i, To: blank}.ControlID()
				c.Label = strconv.Itoa(v)
				c.Style = render.StylePrimary
				if v == i+1 {
					c.Style = render.StyleSuccess
				}
			default:
				c.ID = InvalidMove{Index: i}.ControlID()
				c.Label = strconv.Itoa(v)
				if v == i+1 {
					c.Style = render.StyleSuccess
				}
			}
			row = append(row, c)
		}
		rows = append(rows, row)
	}
	return rows
}
