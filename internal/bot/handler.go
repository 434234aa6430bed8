// Package bot implements the stateless chat front end: it answers Discord
// interactions by rebuilding the board from the message that was clicked,
// applying the move and rendering the result back into the same message.
package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/vovakirdan/merge2048/internal/board"
	"github.com/vovakirdan/merge2048/internal/codec"
)

// DefaultCommand is the slash command that starts a game.
const DefaultCommand = "2048"

// NotYourGame is shown to users clicking someone else's board.
const NotYourGame = "Not your game! Start one by running `/2048`"

var (
	// ErrUnknownCommand is returned for slash commands the bot does not own.
	ErrUnknownCommand = errors.New("bot: unknown command")

	// ErrUnsupportedInteraction is returned for interaction kinds the bot
	// does not handle.
	ErrUnsupportedInteraction = errors.New("bot: unsupported interaction")

	// ErrMalformedInteraction is returned when a payload lacks required parts.
	ErrMalformedInteraction = errors.New("bot: malformed interaction")
)

// GameResult describes a finished game.
type GameResult struct {
	Player  string
	Score   int
	MaxTile int
}

// ResultSaver records finished games.
type ResultSaver interface {
	SaveGameResult(ctx context.Context, result GameResult) error
}

// Outcome is the response to an interaction plus what happened to the game.
type Outcome struct {
	Response discordgo.InteractionResponse
	Moved    bool
	GameOver bool
	Score    int
}

// Handler answers verified interactions. It keeps no per-game state.
type Handler struct {
	command string
	source  board.Source
	results ResultSaver
}

// Option configures a Handler.
type Option func(*Handler)

// WithCommand sets the slash command name.
func WithCommand(name string) Option {
	return func(h *Handler) {
		if name != "" {
			h.command = name
		}
	}
}

// WithSource sets the randomness used for spawning. nil, including a nil
// *rand.Rand, disables spawning.
func WithSource(src board.Source) Option {
	return func(h *Handler) {
		h.source = board.Normalize(src)
	}
}

// WithResultSaver records the final score of every game that ends.
func WithResultSaver(s ResultSaver) Option {
	return func(h *Handler) {
		h.results = s
	}
}

// NewHandler creates a handler using board.SharedSource unless overridden.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		command: DefaultCommand,
		source:  board.SharedSource,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle dispatches an interaction by type.
func (h *Handler) Handle(ctx context.Context, in *discordgo.Interaction) (Outcome, error) {
	if in == nil {
		return Outcome{}, fmt.Errorf("%w: empty interaction", ErrMalformedInteraction)
	}

	switch in.Type {
	case discordgo.InteractionPing:
		return Outcome{Response: discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong}}, nil

	case discordgo.InteractionApplicationCommand:
		data, ok := in.Data.(discordgo.ApplicationCommandInteractionData)
		if !ok {
			return Outcome{}, fmt.Errorf("%w: command without data", ErrMalformedInteraction)
		}
		return h.handleCommand(data)

	case discordgo.InteractionMessageComponent:
		data, ok := in.Data.(discordgo.MessageComponentInteractionData)
		if !ok {
			return Outcome{}, fmt.Errorf("%w: component without data", ErrMalformedInteraction)
		}
		if data.ComponentType != discordgo.ButtonComponent {
			return Outcome{}, fmt.Errorf("%w: component type %d", ErrUnsupportedInteraction, data.ComponentType)
		}
		return h.handleButton(ctx, in, data)

	default:
		return Outcome{}, fmt.Errorf("%w: type %d", ErrUnsupportedInteraction, in.Type)
	}
}

// handleCommand starts a new game. Games are ephemeral unless the
// "ephemeral" option is explicitly false.
func (h *Handler) handleCommand(data discordgo.ApplicationCommandInteractionData) (Outcome, error) {
	if data.Name != h.command {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownCommand, data.Name)
	}

	ephemeral := true
	for _, opt := range data.Options {
		if opt == nil || opt.Name != "ephemeral" {
			continue
		}
		if v, isBool := opt.Value.(bool); isBool {
			ephemeral = v
		}
	}

	b := board.New(h.source)
	rendered := codec.Encode(b)

	resp := &discordgo.InteractionResponseData{
		Content:    rendered.Content,
		Components: rendered.Components,
	}
	if ephemeral {
		resp.Flags = discordgo.MessageFlagsEphemeral
	}

	return Outcome{
		Response: discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: resp,
		},
		GameOver: rendered.GameOver,
		Score:    b.Score,
	}, nil
}

// handleButton applies a direction button to the board in the clicked message.
func (h *Handler) handleButton(ctx context.Context, in *discordgo.Interaction, data discordgo.MessageComponentInteractionData) (Outcome, error) {
	msg := in.Message
	if msg == nil || msg.Interaction == nil {
		return Outcome{}, fmt.Errorf("%w: button without originating message", ErrMalformedInteraction)
	}

	owner := OwnerID(msg.Interaction)
	if owner == "" {
		return Outcome{}, fmt.Errorf("%w: message has no owner", ErrMalformedInteraction)
	}

	player := AuthorID(in)
	if player != owner {
		return Outcome{
			Response: discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: NotYourGame,
					Flags:   discordgo.MessageFlagsEphemeral,
				},
			},
		}, nil
	}

	b, err := codec.Decode(msg)
	if err != nil {
		return Outcome{}, err
	}

	dir, ok := board.ParseDirection(data.CustomID)
	if !ok {
		// Tile buttons and unknown ids leave the message untouched.
		return Outcome{
			Response: discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredMessageUpdate},
			Score:    b.Score,
		}, nil
	}

	moved := b.Move(dir, h.source)
	rendered := codec.Encode(b)

	if moved && rendered.GameOver && h.results != nil {
		result := GameResult{
			Player:  player,
			Score:   b.Score,
			MaxTile: b.MaxTile(),
		}
		if err := h.results.SaveGameResult(ctx, result); err != nil {
			return Outcome{}, fmt.Errorf("bot: save result: %w", err)
		}
	}

	return Outcome{
		Response: discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Content:    rendered.Content,
				Components: rendered.Components,
			},
		},
		Moved:    moved,
		GameOver: rendered.GameOver,
		Score:    b.Score,
	}, nil
}

// AuthorID returns the id of the user who triggered the interaction:
// the member's user inside a guild, the plain user in direct messages.
func AuthorID(in *discordgo.Interaction) string {
	if in.Member != nil && in.Member.User != nil {
		return in.Member.User.ID
	}
	if in.User != nil {
		return in.User.ID
	}
	return ""
}

// OwnerID returns the id of the user whose command created a message.
func OwnerID(mi *discordgo.MessageInteraction) string {
	if mi.User != nil {
		return mi.User.ID
	}
	if mi.Member != nil && mi.Member.User != nil {
		return mi.Member.User.ID
	}
	return ""
}
