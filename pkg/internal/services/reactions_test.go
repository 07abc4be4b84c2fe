package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/pingup/network/pkg/internal/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleScenario(t *testing.T) {
	db := openTestDatabase(t)
	accounts := NewAccountService(db)
	reactions := NewReactionService(db)
	ctx := context.Background()

	alice := registerUser(t, accounts, "alice@x.com", "Alice")
	bob := registerUser(t, accounts, "bob@x.com", "Bob")
	post := seedPost(t, db, alice)

	res, err := reactions.Toggle(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, ReactionToggleResult{Action: ReactionActionLike, NewCount: 1}, res)

	res, err = reactions.Toggle(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, ReactionToggleResult{Action: ReactionActionLike, NewCount: 2}, res)

	res, err = reactions.Toggle(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, ReactionToggleResult{Action: ReactionActionUnlike, NewCount: 1}, res)
}

func TestToggleTwiceRestoresState(t *testing.T) {
	db := openTestDatabase(t)
	accounts := NewAccountService(db)
	reactions := NewReactionService(db)
	ctx := context.Background()

	alice := registerUser(t, accounts, "alice@x.com", "Alice")
	post := seedPost(t, db, alice)

	_, err := reactions.Toggle(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	_, err = reactions.Toggle(ctx, post.ID, alice.ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Reaction{}).
		Where("post_id = ? AND account_id = ?", post.ID, alice.ID).
		Count(&count).Error)
	assert.Zero(t, count)

	status, err := reactions.Status(ctx, post.ID, &alice.ID)
	require.NoError(t, err)
	assert.Equal(t, ReactionStatus{Count: 0, ViewerHasReacted: false}, status)
}

func TestToggleConcurrentDistinctUsers(t *testing.T) {
	db := openTestDatabase(t)
	accounts := NewAccountService(db)
	reactions := NewReactionService(db)
	ctx := context.Background()

	const n = 12
	users := make([]models.User, n)
	for i := range users {
		users[i] = registerUser(t, accounts, fmt.Sprintf("user%d@x.com", i), "")
	}
	post := seedPost(t, db, users[0])

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, user := range users {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := reactions.Toggle(ctx, post.ID, id)
			errs <- err
		}(user.ID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	status, err := reactions.Status(ctx, post.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, n, status.Count)

	res, err := reactions.Toggle(ctx, post.ID, users[3].ID)
	require.NoError(t, err)
	assert.Equal(t, ReactionActionUnlike, res.Action)
	assert.Equal(t, n-1, res.NewCount)
}

func TestReactionStatus(t *testing.T) {
	db := openTestDatabase(t)
	accounts := NewAccountService(db)
	reactions := NewReactionService(db)
	ctx := context.Background()

	alice := registerUser(t, accounts, "alice@x.com", "Alice")
	bob := registerUser(t, accounts, "bob@x.com", "Bob")
	post := seedPost(t, db, alice)
	_, err := reactions.Toggle(ctx, post.ID, alice.ID)
	require.NoError(t, err)

	status, err := reactions.Status(ctx, post.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, ReactionStatus{Count: 1, ViewerHasReacted: false}, status)

	status, err = reactions.Status(ctx, post.ID, &alice.ID)
	require.NoError(t, err)
	assert.True(t, status.ViewerHasReacted)

	status, err = reactions.Status(ctx, post.ID, lo.ToPtr(bob.ID))
	require.NoError(t, err)
	assert.False(t, status.ViewerHasReacted)

	_, err = reactions.Status(ctx, 9999, nil)
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = reactions.Toggle(ctx, 9999, alice.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestUnlikeNeverDrivesCounterNegative(t *testing.T) {
	db := openTestDatabase(t)
	accounts := NewAccountService(db)
	reactions := NewReactionService(db)
	ctx := context.Background()

	alice := registerUser(t, accounts, "alice@x.com", "Alice")
	post := seedPost(t, db, alice)
	require.NoError(t, db.Create(&models.Reaction{PostID: post.ID, AccountID: alice.ID}).Error)

	res, err := reactions.Toggle(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, ReactionToggleResult{Action: ReactionActionUnlike, NewCount: 0}, res)
}

func TestReconcileRepairsDrift(t *testing.T) {
	db := openTestDatabase(t)
	accounts := NewAccountService(db)
	reactions := NewReactionService(db)
	ctx := context.Background()

	alice := registerUser(t, accounts, "alice@x.com", "Alice")
	bob := registerUser(t, accounts, "bob@x.com", "Bob")
	drifted := seedPost(t, db, alice)
	healthy := seedPost(t, db, alice)

	_, err := reactions.Toggle(ctx, drifted.ID, alice.ID)
	require.NoError(t, err)
	_, err = reactions.Toggle(ctx, drifted.ID, bob.ID)
	require.NoError(t, err)
	_, err = reactions.Toggle(ctx, healthy.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", drifted.ID).UpdateColumn("reaction_count", 7).Error)

	fixed, err := reactions.Reconcile(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, fixed)

	status, err := reactions.Status(ctx, drifted.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, status.Count)

	fixed, err = reactions.Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, fixed)
}
