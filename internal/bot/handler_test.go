package bot

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/vovakirdan/merge2048/internal/board"
	"github.com/vovakirdan/merge2048/internal/codec"
)

// lastCellSource always spawns a 2 on the last vacant cell.
type lastCellSource struct{}

func (lastCellSource) Intn(n int) int   { return n - 1 }
func (lastCellSource) Float64() float64 { return 0.5 }

type recordingSaver struct {
	results []GameResult
	err     error
}

func (r *recordingSaver) SaveGameResult(_ context.Context, result GameResult) error {
	r.results = append(r.results, result)
	return r.err
}

func buttonPress(owner, clicker, customID string, b board.Board) *discordgo.Interaction {
	r := codec.Encode(b)
	return &discordgo.Interaction{
		ID:     "press",
		Type:   discordgo.InteractionMessageComponent,
		Member: &discordgo.Member{User: &discordgo.User{ID: clicker}},
		Data: discordgo.MessageComponentInteractionData{
			CustomID:      customID,
			ComponentType: discordgo.ButtonComponent,
		},
		Message: &discordgo.Message{
			Content:     r.Content,
			Components:  r.Components,
			Interaction: &discordgo.MessageInteraction{User: &discordgo.User{ID: owner}},
		},
	}
}

func command(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:   "cmd",
		Type: discordgo.InteractionApplicationCommand,
		User: &discordgo.User{ID: "u1"},
		Data: discordgo.ApplicationCommandInteractionData{Name: name, Options: opts},
	}
}

func decodeResponse(t *testing.T, data *discordgo.InteractionResponseData) board.Board {
	t.Helper()
	if data == nil {
		t.Fatal("response has no data")
	}
	b, err := codec.Decode(&discordgo.Message{Content: data.Content, Components: data.Components})
	if err != nil {
		t.Fatalf("response does not decode: %v", err)
	}
	return b
}

func controlRow(t *testing.T, data *discordgo.InteractionResponseData) []discordgo.Button {
	t.Helper()
	buttons, ok := codec.RowButtons(data.Components[board.Size])
	if !ok {
		t.Fatal("control row is not a row of buttons")
	}
	return buttons
}

func TestHandlePing(t *testing.T) {
	h := NewHandler()
	out, err := h.Handle(context.Background(), &discordgo.Interaction{Type: discordgo.InteractionPing})
	if err != nil {
		t.Fatalf("Handle(ping) failed: %v", err)
	}
	if out.Response.Type != discordgo.InteractionResponsePong || out.Response.Data != nil {
		t.Errorf("response = %+v, want bare pong", out.Response)
	}
}

func TestHandleCommandStartsGame(t *testing.T) {
	h := NewHandler(WithSource(board.NewSource(1)))

	out, err := h.Handle(context.Background(), command(DefaultCommand))
	if err != nil {
		t.Fatalf("Handle(command) failed: %v", err)
	}
	if out.Response.Type != discordgo.InteractionResponseChannelMessageWithSource {
		t.Errorf("response type = %d, want %d", out.Response.Type, discordgo.InteractionResponseChannelMessageWithSource)
	}
	if out.Response.Data.Flags != discordgo.MessageFlagsEphemeral {
		t.Errorf("flags = %d, want ephemeral by default", out.Response.Data.Flags)
	}

	b := decodeResponse(t, out.Response.Data)
	if n := board.Size*board.Size - len(b.EmptyCells()); n != board.StartingTiles {
		t.Errorf("new game has %d tiles, want %d", n, board.StartingTiles)
	}
	if b.Score != 0 {
		t.Errorf("new game score = %d, want 0", b.Score)
	}
}

func TestHandleCommandEphemeralOption(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  discordgo.MessageFlags
	}{
		{"false", false, 0},
		{"true", true, discordgo.MessageFlagsEphemeral},
		{"not a bool", "yes", discordgo.MessageFlagsEphemeral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler()
			opt := &discordgo.ApplicationCommandInteractionDataOption{
				Name:  "ephemeral",
				Type:  discordgo.ApplicationCommandOptionBoolean,
				Value: tt.value,
			}

			out, err := h.Handle(context.Background(), command(DefaultCommand, opt))
			if err != nil {
				t.Fatalf("Handle(command) failed: %v", err)
			}
			if out.Response.Data.Flags != tt.want {
				t.Errorf("flags = %d, want %d", out.Response.Data.Flags, tt.want)
			}
		})
	}
}

func TestHandleCustomCommandName(t *testing.T) {
	h := NewHandler(WithCommand("merge"))

	if _, err := h.Handle(context.Background(), command("merge")); err != nil {
		t.Errorf("Handle(merge) failed: %v", err)
	}
	if _, err := h.Handle(context.Background(), command(DefaultCommand)); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Handle(2048) error = %v, want ErrUnknownCommand", err)
	}
}

func TestHandleMove(t *testing.T) {
	start := board.FromRows([board.Size][board.Size]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 4},
	})
	start.Score = 8

	h := NewHandler(WithSource(nil))
	out, err := h.Handle(context.Background(), buttonPress("u1", "u1", "left", start))
	if err != nil {
		t.Fatalf("Handle(left) failed: %v", err)
	}
	if out.Response.Type != discordgo.InteractionResponseUpdateMessage {
		t.Errorf("response type = %d, want %d", out.Response.Type, discordgo.InteractionResponseUpdateMessage)
	}
	if !out.Moved {
		t.Error("Moved should be true")
	}

	want := board.FromRows([board.Size][board.Size]int{
		{4, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{4, 0, 0, 0},
	})
	want.Score = 12

	if got := decodeResponse(t, out.Response.Data); got != want {
		t.Errorf("board after left = %v score %d, want %v score %d", got.Rows(), got.Score, want.Rows(), want.Score)
	}
}

func TestHandleMoveSpawns(t *testing.T) {
	start := board.FromRows([board.Size][board.Size]int{
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	h := NewHandler(WithSource(board.NewSource(9)))
	out, err := h.Handle(context.Background(), buttonPress("u1", "u1", "right", start))
	if err != nil {
		t.Fatalf("Handle(right) failed: %v", err)
	}

	got := decodeResponse(t, out.Response.Data)
	if n := board.Size*board.Size - len(got.EmptyCells()); n != 2 {
		t.Errorf("tiles after move = %d, want 2", n)
	}
	if got.Get(board.Pos{X: board.Size - 1, Y: 0}) != board.Tile(2) {
		t.Errorf("tile did not slide right: %v", got.Rows())
	}
}

func TestHandleNotYourGame(t *testing.T) {
	h := NewHandler()
	out, err := h.Handle(context.Background(), buttonPress("owner", "stranger", "up", board.New(nil)))
	if err != nil {
		t.Fatalf("Handle() failed: %v", err)
	}
	if out.Response.Type != discordgo.InteractionResponseChannelMessageWithSource {
		t.Errorf("response type = %d, want %d", out.Response.Type, discordgo.InteractionResponseChannelMessageWithSource)
	}
	if out.Response.Data.Content != NotYourGame {
		t.Errorf("content = %q, want %q", out.Response.Data.Content, NotYourGame)
	}
	if out.Response.Data.Flags != discordgo.MessageFlagsEphemeral {
		t.Error("rejection should be ephemeral")
	}
	if out.Moved {
		t.Error("Moved should be false")
	}
}

func TestHandleDirectMessageOwner(t *testing.T) {
	in := buttonPress("u1", "", "down", board.FromRows([board.Size][board.Size]int{{2}}))
	in.Member = nil
	in.User = &discordgo.User{ID: "u1"}

	out, err := staticHandler().Handle(context.Background(), in)
	if err != nil {
		t.Fatalf("Handle() failed: %v", err)
	}
	if out.Response.Type != discordgo.InteractionResponseUpdateMessage {
		t.Errorf("response type = %d, want update", out.Response.Type)
	}
}

// staticHandler never spawns, so moves are deterministic.
func staticHandler() *Handler { return NewHandler(WithSource(nil)) }

func TestHandleTileButtonDefers(t *testing.T) {
	for _, id := range []string{"0-0", "3-2", "sideways"} {
		out, err := staticHandler().Handle(context.Background(), buttonPress("u1", "u1", id, board.FromRows([board.Size][board.Size]int{{2}})))
		if err != nil {
			t.Fatalf("Handle(%q) failed: %v", id, err)
		}
		if out.Response.Type != discordgo.InteractionResponseDeferredMessageUpdate || out.Response.Data != nil {
			t.Errorf("Handle(%q) response = %+v, want deferred update", id, out.Response)
		}
	}
}

func TestHandleNoOpMoveKeepsBoard(t *testing.T) {
	start := board.FromRows([board.Size][board.Size]int{
		{2, 0, 0, 0},
		{4, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	handler := NewHandler(WithSource(lastCellSource{}))
	out, err := handler.Handle(context.Background(), buttonPress("u1", "u1", "left", start))
	if err != nil {
		t.Fatalf("Handle(left) failed: %v", err)
	}
	if out.Moved {
		t.Error("Moved should be false for a blocked move")
	}
	if got := decodeResponse(t, out.Response.Data); got != start {
		t.Errorf("board changed on blocked move: %v", got.Rows())
	}
}

func TestHandleGameOverSavesResult(t *testing.T) {
	start := board.FromRows([board.Size][board.Size]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{2, 2, 8, 16},
	})
	start.Score = 100

	saver := &recordingSaver{}
	handler := NewHandler(WithSource(lastCellSource{}), WithResultSaver(saver))

	out, err := handler.Handle(context.Background(), buttonPress("u1", "u1", "left", start))
	if err != nil {
		t.Fatalf("Handle(left) failed: %v", err)
	}
	if !out.GameOver {
		t.Fatal("GameOver should be true")
	}
	if out.Score != 104 {
		t.Errorf("Score = %d, want 104", out.Score)
	}
	if out.Response.Data.Content != "**Game Over!**\n> **Score:** 104" {
		t.Errorf("content = %q", out.Response.Data.Content)
	}
	for _, c := range controlRow(t, out.Response.Data) {
		if !c.Disabled {
			t.Errorf("control %q should be disabled", c.CustomID)
		}
	}

	if len(saver.results) != 1 {
		t.Fatalf("saved %d results, want 1", len(saver.results))
	}
	want := GameResult{Player: "u1", Score: 104, MaxTile: 16}
	if saver.results[0] != want {
		t.Errorf("saved %+v, want %+v", saver.results[0], want)
	}
}

func TestHandleSaveFailure(t *testing.T) {
	start := board.FromRows([board.Size][board.Size]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{2, 2, 8, 16},
	})

	saver := &recordingSaver{err: errors.New("disk full")}
	handler := NewHandler(WithSource(lastCellSource{}), WithResultSaver(saver))

	if _, err := handler.Handle(context.Background(), buttonPress("u1", "u1", "left", start)); err == nil {
		t.Error("Handle() should report a failed save")
	}
}

func TestHandleRequiresOwner(t *testing.T) {
	tests := []struct {
		name    string
		owner   string
		clicker string
	}{
		{"no owner and no clicker", "", ""},
		{"no owner", "", "u1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := buttonPress(tt.owner, tt.clicker, "left", board.FromRows([board.Size][board.Size]int{{0, 2}}))

			out, err := staticHandler().Handle(context.Background(), in)
			if !errors.Is(err, ErrMalformedInteraction) {
				t.Errorf("Handle() error = %v, want ErrMalformedInteraction", err)
			}
			if out.Moved {
				t.Error("an unowned board must not move")
			}
		})
	}

	// Without a clicker id the press belongs to nobody.
	in := buttonPress("u1", "", "left", board.FromRows([board.Size][board.Size]int{{0, 2}}))
	out, err := staticHandler().Handle(context.Background(), in)
	if err != nil {
		t.Fatalf("Handle() failed: %v", err)
	}
	if out.Moved || out.Response.Data == nil || out.Response.Data.Content != NotYourGame {
		t.Errorf("anonymous press = %+v, want the not-your-game reply", out.Response)
	}
}

func TestHandleOwnerFromMember(t *testing.T) {
	in := buttonPress("", "u1", "left", board.FromRows([board.Size][board.Size]int{{0, 2}}))
	in.Message.Interaction = &discordgo.MessageInteraction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "u1"}},
	}

	out, err := staticHandler().Handle(context.Background(), in)
	if err != nil {
		t.Fatalf("Handle() failed: %v", err)
	}
	if !out.Moved {
		t.Error("owner recorded as a member should be able to move")
	}
}

func TestWithSourceNilRand(t *testing.T) {
	var r *rand.Rand
	h := NewHandler(WithSource(r))

	out, err := h.Handle(context.Background(), command(DefaultCommand))
	if err != nil {
		t.Fatalf("Handle(command) failed: %v", err)
	}
	if b := decodeResponse(t, out.Response.Data); b != board.Empty() {
		t.Errorf("new game with a nil *rand.Rand = %v, want empty board", b.Rows())
	}
}

func TestHandleErrors(t *testing.T) {
	malformed := buttonPress("u1", "u1", "left", board.Empty())
	malformed.Message.Components[0] = discordgo.Button{Label: "x"}

	noMessage := buttonPress("u1", "u1", "left", board.Empty())
	noMessage.Message = nil

	noOrigin := buttonPress("u1", "u1", "left", board.Empty())
	noOrigin.Message.Interaction = nil

	selectMenu := buttonPress("u1", "u1", "left", board.Empty())
	selectMenu.Data = discordgo.MessageComponentInteractionData{
		CustomID:      "pick",
		ComponentType: discordgo.SelectMenuComponent,
	}

	tests := []struct {
		name string
		in   *discordgo.Interaction
		want error
	}{
		{"nil interaction", nil, ErrMalformedInteraction},
		{"unknown command", command("chess"), ErrUnknownCommand},
		{"command without data", &discordgo.Interaction{Type: discordgo.InteractionApplicationCommand}, ErrMalformedInteraction},
		{"button without data", &discordgo.Interaction{Type: discordgo.InteractionMessageComponent}, ErrMalformedInteraction},
		{"button without message", noMessage, ErrMalformedInteraction},
		{"button without origin", noOrigin, ErrMalformedInteraction},
		{"select menu", selectMenu, ErrUnsupportedInteraction},
		{"autocomplete", &discordgo.Interaction{Type: discordgo.InteractionApplicationCommandAutocomplete}, ErrUnsupportedInteraction},
		{"bad grid", malformed, codec.ErrMalformedGrid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := staticHandler().Handle(context.Background(), tt.in); !errors.Is(err, tt.want) {
				t.Errorf("Handle() error = %v, want %v", err, tt.want)
			}
		})
	}
}
