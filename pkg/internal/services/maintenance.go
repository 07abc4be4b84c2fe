package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const maintenanceTimeout = 5 * time.Minute

// Janitor holds the timed tasks registered on the cron scheduler.
type Janitor struct {
	stories   *StoryService
	reactions *ReactionService
}

func NewJanitor(stories *StoryService, reactions *ReactionService) *Janitor {
	return &Janitor{stories: stories, reactions: reactions}
}

func (v *Janitor) DoAutoDatabaseCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), maintenanceTimeout)
	defer cancel()

	log.Debug().Time("now", time.Now()).Msg("Now cleaning up expired stories...")
	count, err := v.stories.DeleteExpiredStory(ctx)
	if err != nil {
		log.Error().Err(err).Msg("An error occurred when cleaning up expired stories...")
		return
	}
	log.Debug().Int64("affected", count).Msg("Clean up expired stories completed.")
}

func (v *Janitor) DoReactionReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), maintenanceTimeout)
	defer cancel()

	fixed, err := v.reactions.Reconcile(ctx)
	if err != nil {
		log.Error().Err(err).Msg("An error occurred when reconciling reaction counters...")
		return
	}
	if fixed > 0 {
		log.Warn().Int64("posts", fixed).Msg("Reaction counters drifted from the ledger and were repaired.")
	}
}
