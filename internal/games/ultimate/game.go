// Package ultimate implements ultimate tic-tac-toe: nine inner boards
// arranged on a meta grid, where each placement dictates which board
// the opponent plays next.
package ultimate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pocketarcade/pocketarcade/internal/codec"
	"github.com/pocketarcade/pocketarcade/internal/command"
	"github.com/pocketarcade/pocketarcade/internal/games"
	"github.com/pocketarcade/pocketarcade/internal/model"
	"github.com/pocketarcade/pocketarcade/internal/render"
	"github.com/pocketarcade/pocketarcade/internal/storage"
	"github.com/pocketarcade/pocketarcade/internal/turn"
)

// Title appears on every rendered message
const Title = "Ultimate Tic Tac Toe"

// Game is the complete serialized state
type Game struct {
	Phase        model.Phase    `msgpack:"phase" json:"phase"`
	Invite       model.Invite   `msgpack:"invite" json:"invite"`
	Players      *turn.Cycle    `msgpack:"players" json:"players"`
	Meta         MetaBoard      `msgpack:"meta" json:"meta"`
	Result       *model.Outcome `msgpack:"result" json:"result"`
	CancelReason string         `msgpack:"cancel_reason" json:"cancel_reason"`
	LastMove     int64          `msgpack:"last_move" json:"last_move"`
}

type Handler struct {
	deps games.Deps
}

var _ games.Handler = (*Handler)(nil)

func New(deps games.Deps) *Handler {
	return &Handler{deps: deps}
}

func (h *Handler) Kind() model.GameKind {
	return model.KindUltimateTicTacToe
}

func (h *Handler) Command(ctx context.Context, req games.CommandRequest) (*render.Message, error) {
	opt, ok := command.Find(req.Options, "opponent")
	if !ok || opt.Value == "" {
		return nil, fmt.Errorf("%w: opponent", model.ErrMissingOption)
	}
	invitee := model.PlayerID(opt.Value)
	if invitee == req.Player && !h.deps.AllowSelfPlay {
		return nil, model.ErrSelfPlay
	}

	g := &Game{
		Phase:  model.PhaseAwaitingApproval,
		Invite: model.Invite{Challenger: req.Player, Invitee: invitee},
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
	switch a := action.(type) {
	case Accept:
		return h.approve(g, evt.Player, true)
	case Decline:
		return h.approve(g, evt.Player, false)
	case Place:
		return h.place(ctx, g, a, evt)
	}
	return model.ErrUnknownAction
}

func (h *Handler) approve(g *Game, player model.PlayerID, accepted bool) error {
	if g.Phase.Terminal() {
		return model.ErrGameOver
	}
	if g.Phase != model.PhaseAwaitingApproval {
		return model.ErrActionNotAllowed
	}
	if player != g.Invite.Invitee {
		return model.ErrNotInvitee
	}

	if !accepted {
		g.Phase = model.PhaseCancelled
		g.CancelReason = "Declined"
		return nil
	}

	cycle, err := turn.NewCycle([]model.Player{
		{ID: g.Invite.Challenger},
		{ID: g.Invite.Invitee},
	}, h.deps.Random)
	if err != nil {
		return err
	}
	cycle.Players[0].Piece = model.PieceX
	cycle.Players[1].Piece = model.PieceO

	g.Players = cycle
	g.Phase = model.PhaseInProgress
	g.LastMove = h.deps.Clock.Now().Unix()
	return nil
}

func (h *Handler) place(ctx context.Context, g *Game, a Place, evt games.ComponentEvent) error {
	if g.Phase.Terminal() {
		return model.ErrGameOver
	}
	if g.Phase != model.PhaseInProgress || g.Players == nil {
		return model.ErrActionNotAllowed
	}
	if !g.Players.Contains(evt.Player) {
		return model.ErrNotYourGame
	}
	current, ok := g.Players.Current()
	if !ok {
		return model.ErrNoGameData
	}
	if current.ID != evt.Player {
		return model.ErrNotYourTurn
	}

	placed, err := g.Meta.MakeMove(a.X, a.Y, current.Piece)
	if err != nil {
		return err
	}
	if !placed {
		// Board selection stays with the same player; only an actual
		// placement passes the turn
		return nil
	}

	if piece, tie, done := g.Meta.Outcome(); done {
		if tie {
			g.Result = model.Tie()
		} else if winner, found := g.Players.FindByPiece(piece); found {
			g.Result = model.Win(winner)
		} else {
			// verdict with no owner only happens in forged state; play on
			g.Result = nil
		}
		if g.Result != nil {
			h.finish(ctx, g, evt.MessageLink)
			return nil
		}
	}

	lastMove := time.Unix(g.LastMove, 0)
	g.Players.Advance()
	next, _ := g.Players.Current()
	games.PingIfIdle(ctx, h.deps, lastMove, next.ID, Title, evt.MessageLink)
	g.LastMove = h.deps.Clock.Now().Unix()
	return nil
}

func (h *Handler) finish(ctx context.Context, g *Game, link string) {
	g.Phase = model.PhaseFinished
	games.AnnounceResult(ctx, h.deps, Title, g.Players.All(), g.Result, link)
	h.record(ctx, g)
}

func (h *Handler) record(ctx context.Context, g *Game) {
	if h.deps.Store == nil || g.Result == nil || g.Result.IsTie() {
		return
	}
	participants := make([]storage.Participant, 0, len(g.Players.All()))
	for _, p := range g.Players.All() {
		participants = append(participants, storage.Participant{
			ID:   p.ID,
			Name: h.deps.Resolver.Resolve(ctx, p.ID),
			Won:  g.Result.Winner.ID == p.ID,
		})
	}
	if err := h.deps.Store.RecordFinishedMatch(ctx, model.KindUltimateTicTacToe, participants); err != nil {
		h.deps.Logger.Error("failed to record match result",
			"game", string(model.KindUltimateTicTacToe),
			"error", err)
	}
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
		fmt.Fprintf(&b, "%s has challenged %s to a game of %s!",
			g.Invite.Challenger.Mention(), g.Invite.Invitee.Mention(), Title)
		controls = [][]render.Control{render.Row(
			render.Control{ID: Accept{}.ControlID(), Label: "Accept", Style: render.StyleSuccess},
			render.Control{ID: Decline{}.ControlID(), Label: "Decline", Style: render.StyleDanger},
		)}
	case model.PhaseInProgress:
		current, _ := g.Players.Current()
		fmt.Fprintf(&b, "It's your turn, %s! You are %s.\n",
			current.ID.Mention(), current.Piece)
		if g.Meta.Selected == nil {
			b.WriteString("Choose a board to play in.\n")
		} else {
			fmt.Fprintf(&b, "Playing in board (%d, %d).\n",
				g.Meta.Selected.X+1, g.Meta.Selected.Y+1)
		}
		b.WriteString(g.Meta.stringMap())
		controls = h.grid(g, false)
	case model.PhaseFinished:
		if g.Result.IsTie() {
			b.WriteString("It's a tie!\n")
		} else {
			fmt.Fprintf(&b, "%s (%s) wins!\n",
				g.Result.Winner.ID.Mention(), g.Result.Winner.Piece)
		}
		b.WriteString(g.Meta.stringMap())
		controls = h.grid(g, true)
	case model.PhaseCancelled:
		fmt.Fprintf(&b, "%s declined the challenge.", g.Invite.Invitee.Mention())
	}

	return &render.Message{Content: b.String(), Controls: controls}, nil
}

// grid renders the 3x3 control grid. With no board selected the cells
// are the meta overview (pick a board); with one selected they are that
// board's spaces.
func (h *Handler) grid(g *Game, disabled bool) [][]render.Control {
	rows := make([][]render.Control, 0, Size)
	for y := 0; y < Size; y++ {
		row := make([]render.Control, 0, Size)
		for x := 0; x < Size; x++ {
			c := render.Control{
				ID:    Place{X: x, Y: y}.ControlID(),
				Style: render.StyleSecondary,
			}
			if g.Meta.Selected == nil {
				space := g.Meta.At(x, y)
				switch {
				case space.Tied:
					c.Label = "?"
					c.Disabled = true
				case space.Won != model.PieceNone:
					c.Label = space.Won.String()
					c.Disabled = true
				default:
					c.Label = model.PieceNone.String()
				}
				c.Style = pieceStyle(space.Won)
			} else {
				piece := g.Meta.At(g.Meta.Selected.X, g.Meta.Selected.Y).Board.At(x, y)
				c.Label = piece.String()
				c.Style = pieceStyle(piece)
				c.Disabled = piece != model.PieceNone
			}
			c.Disabled = c.Disabled || disabled
			row = append(row, c)
		}
		rows = append(rows, row)
	}
	return rows
}

func pieceStyle(p model.Piece) render.Style {
	switch p {
	case model.PieceX:
		return render.StylePrimary
	case model.PieceO:
		return render.StyleSuccess
	}
	return render.StyleSecondary
}
