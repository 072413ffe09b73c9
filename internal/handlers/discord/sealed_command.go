package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sotiny/sotiny/internal/catalog"
	"github.com/sotiny/sotiny/internal/models"
	"github.com/sotiny/sotiny/internal/render"
	"github.com/sotiny/sotiny/internal/services/draft"
)

const defaultPoolSize = 15

// SealedCommand handles the /sealed command
type SealedCommand struct {
	BaseCommand
	draftService draft.Service
	renderer     *render.Renderer
	catalog      *catalog.Catalog
}

// NewSealedCommand creates a new sealed command handler
func NewSealedCommand(draftService draft.Service, renderer *render.Renderer, cat *catalog.Catalog) *SealedCommand {
	return &SealedCommand{
		BaseCommand: BaseCommand{
			Name:        "sealed",
			Description: "Sealed pool draft commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start a sealed session for the mentioned players",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "players",
							Description: "Mention each participating player",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "size",
							Description: "Cards per pool (default 15)",
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "seed",
							Description: "Seed for a reproducible draw",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "pool",
					Description: "Show your current pool as an image",
					Options: []*discordgo.ApplicationCommandOption{
						sessionOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "swap",
					Description: "Swap a card in your pool for another of the same rarity",
					Options: []*discordgo.ApplicationCommandOption{
						sessionOption(),
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "out",
							Description: "Card ID to remove",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "in",
							Description: "Card ID to add",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "lock",
					Description: "Lock the session; no further swaps",
					Options: []*discordgo.ApplicationCommandOption{
						sessionOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "complete",
					Description: "Complete a locked session",
					Options: []*discordgo.ApplicationCommandOption{
						sessionOption(),
					},
				},
			},
		},
		draftService: draftService,
		renderer:     renderer,
		catalog:      cat,
	}
}

func sessionOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "session",
		Description: "Session ID",
		Required:    true,
	}
}

// Handle processes a Discord interaction for the sealed command
func (c *SealedCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	userID := i.Member.User.ID

	sub := data.Options[0]
	opts := optionMap(sub.Options)

	var err error
	switch sub.Name {
	case "start":
		err = c.handleStart(s, i, opts)
	case "pool":
		err = c.handlePool(s, i, userID, opts)
	case "swap":
		err = c.handleSwap(s, i, userID, opts)
	case "lock":
		err = c.handleLock(s, i, opts)
	case "complete":
		err = c.handleComplete(s, i, opts)
	default:
		err = errors.New("unknown subcommand")
	}

	return err
}

// handleStart handles the start subcommand
func (c *SealedCommand) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	ctx := context.Background()

	playerIDs := parseMentions(opts["players"].StringValue())
	if len(playerIDs) == 0 {
		return RespondWithError(s, i, "Mention at least one player to start a session.")
	}

	poolSize := defaultPoolSize
	if opt, ok := opts["size"]; ok {
		poolSize = int(opt.IntValue())
	}

	var seed int64
	if opt, ok := opts["seed"]; ok {
		seed = opt.IntValue()
	}

	output, err := c.draftService.StartSession(ctx, &draft.StartSessionInput{
		PlayerIDs: playerIDs,
		Config: models.PoolConfig{
			PoolSize:     poolSize,
			RarityCounts: defaultRarityCounts(poolSize),
			Seed:         seed,
		},
	})
	if err != nil {
		log.Printf("Error starting session: %v", err)
		return RespondWithError(s, i, userFacingError(err))
	}

	session := output.Session
	mentions := make([]string, 0, len(session.Pools))
	for _, pool := range session.Pools {
		mentions = append(mentions, fmt.Sprintf("<@%s>", pool.PlayerID))
	}

	return RespondWithMessage(s, i, fmt.Sprintf(
		"Sealed session `%s` started for %s — %d cards each. Use `/sealed pool` to see your cards.",
		session.ID, strings.Join(mentions, ", "), session.Config.PoolSize))
}

// handlePool renders the caller's pool and attaches it as a PNG
func (c *SealedCommand) handlePool(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	ctx := context.Background()

	output, err := c.draftService.GetSession(ctx, &draft.GetSessionInput{
		SessionID: opts["session"].StringValue(),
	})
	if err != nil {
		return RespondWithError(s, i, userFacingError(err))
	}

	pool := output.Session.PoolFor(userID)
	if pool == nil {
		return RespondWithError(s, i, userFacingError(draft.ErrPlayerNotInSession))
	}

	rendered, err := c.renderer.Render(&render.RenderInput{
		Pool: pool,
	})
	if err != nil {
		log.Printf("Error rendering pool for %s: %v", userID, err)
		return RespondWithError(s, i, userFacingError(err))
	}

	return RespondWithFile(s, i,
		fmt.Sprintf("Your pool (%d cards):\n%s", len(pool.CardIDs), c.poolCardList(pool)),
		"pool.png", rendered.PNG)
}

// handleSwap handles the swap subcommand
func (c *SealedCommand) handleSwap(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	ctx := context.Background()

	output, err := c.draftService.SwapCard(ctx, &draft.SwapCardInput{
		SessionID: opts["session"].StringValue(),
		PlayerID:  userID,
		CardOut:   opts["out"].StringValue(),
		CardIn:    opts["in"].StringValue(),
	})
	if err != nil {
		return RespondWithError(s, i, userFacingError(err))
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf(
		"Swapped `%s` for `%s`. Your pool:\n%s",
		opts["out"].StringValue(), opts["in"].StringValue(), c.poolCardList(output.Pool)))
}

// handleLock handles the lock subcommand
func (c *SealedCommand) handleLock(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	ctx := context.Background()

	output, err := c.draftService.LockSession(ctx, &draft.LockSessionInput{
		SessionID: opts["session"].StringValue(),
	})
	if err != nil {
		return RespondWithError(s, i, userFacingError(err))
	}

	return RespondWithMessage(s, i, fmt.Sprintf("Session `%s` is locked. Pools are final pending completion.", output.Session.ID))
}

// handleComplete handles the complete subcommand
func (c *SealedCommand) handleComplete(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	ctx := context.Background()

	output, err := c.draftService.CompleteSession(ctx, &draft.CompleteSessionInput{
		SessionID: opts["session"].StringValue(),
	})
	if err != nil {
		return RespondWithError(s, i, userFacingError(err))
	}

	return RespondWithMessage(s, i, fmt.Sprintf("Session `%s` completed. Good luck out there!", output.Session.ID))
}

// poolCardList formats a pool's cards as display names, one per line
func (c *SealedCommand) poolCardList(pool *models.Pool) string {
	lines := make([]string, 0, len(pool.CardIDs))
	for _, cardID := range pool.CardIDs {
		card, err := c.catalog.Card(cardID)
		if err != nil {
			lines = append(lines, fmt.Sprintf("`%s`", cardID))
			continue
		}
		lines = append(lines, fmt.Sprintf("`%s` %s (%s)", card.ID, card.Name, card.Rarity))
	}
	return strings.Join(lines, "\n")
}

// optionMap indexes subcommand options by name
func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// parseMentions extracts user IDs from a string of Discord mentions
func parseMentions(raw string) []string {
	ids := make([]string, 0)
	for _, field := range strings.Fields(raw) {
		id := strings.TrimSuffix(field, ">")
		id = strings.TrimPrefix(id, "<@")
		id = strings.TrimPrefix(id, "!")
		if id != "" && id != field {
			ids = append(ids, id)
		}
	}
	return ids
}

// defaultRarityCounts approximates a booster split for the given pool
// size: one rare per fifteen cards, a fifth uncommon, the rest common
func defaultRarityCounts(poolSize int) map[models.Rarity]int {
	rare := poolSize / 15
	if rare == 0 && poolSize > 0 {
		rare = 1
	}
	uncommon := poolSize / 5
	common := poolSize - rare - uncommon

	return map[models.Rarity]int{
		models.RarityRare:     rare,
		models.RarityUncommon: uncommon,
		models.RarityCommon:   common,
	}
}
