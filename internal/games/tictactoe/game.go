// Package tictactoe implements the classic 3x3 game as a stateless
// handler: the whole game, challenge to verdict, rides in the message's
// state token.
package tictactoe

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
const Title = "Tic Tac Toe"

// Game is the complete serialized state. Players is nil until the
// challenge is accepted. LastMove is unix seconds of the latest
// state-changing action, used for turn reminders.
type Game struct {
	Phase        model.Phase    `msgpack:"phase" json:"phase"`
	Invite       model.Invite   `msgpack:"invite" json:"invite"`
	Players      *turn.Cycle    `msgpack:"players" json:"players"`
	Board        Board          `msgpack:"board" json:"board"`
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
	return model.KindTicTacToe
}

// Command starts a new challenge against the named opponent
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

// Component applies one control activation to the game carried in the
// message and renders the resulting state
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

// approve resolves the pending challenge. Only the invitee may answer.
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
	// Whoever the shuffle put first moves first and plays X
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

	if err := g.Board.Place(a.X, a.Y, current.Piece); err != nil {
		return err
	}

	if piece := g.Board.Winner(); piece != model.PieceNone {
		// a winning mark with no owner only happens in forged state
		if winner, found := g.Players.FindByPiece(piece); found {
			g.Result = model.Win(winner)
		} else {
			g.Result = model.Tie()
		}
		h.finish(ctx, g, evt.MessageLink)
		return nil
	}
	if g.Board.Full() {
		g.Result = model.Tie()
		h.finish(ctx, g, evt.MessageLink)
		return nil
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

// record persists a decisive result. Ties are not recorded; the
// leaderboard only counts wins and losses.
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
	if err := h.deps.Store.RecordFinishedMatch(ctx, model.KindTicTacToe, participants); err != nil {
		h.deps.Logger.Error("failed to record match result",
			"game", string(model.KindTicTacToe),
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
		fmt.Fprintf(&b, "It's your turn, %s! You are %s.",
			current.ID.Mention(), current.Piece)
		controls = h.grid(g, false)
	case model.PhaseFinished:
		if g.Result.IsTie() {
			b.WriteString("It's a tie!")
		} else {
			fmt.Fprintf(&b, "%s (%s) wins!",
				g.Result.Winner.ID.Mention(), g.Result.Winner.Piece)
		}
		controls = h.grid(g, true)
	case model.PhaseCancelled:
		fmt.Fprintf(&b, "%s declined the challenge.", g.Invite.Invitee.Mention())
	}

	return &render.Message{Content: b.String(), Controls: controls}, nil
}

func (h *Handler) grid(g *Game, disabled bool) [][]render.Control {
	rows := make([][]render.Control, 0, Size)
	for y := 0; y < Size; y++ {
		row := make([]render.Control, 0, Size)
		for x := 0; x < Size; x++ {
			piece := g.Board.At(x, y)
			style := render.StyleSecondary
			switch piece {
			case model.PieceX:
				style = render.StylePrimary
			case model.PieceO:
				style = render.StyleSuccess
			}
			row = append(row, render.Control{
				ID:       Place{X: x, Y: y}.ControlID(),
				Label:    piece.String(),
				Style:    style,
				Disabled: disabled || piece != model.PieceNone,
			})
		}
		rows = append(rows, row)
	}
	return rows
}
