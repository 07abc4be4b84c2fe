package services

import (
	"context"
	"testing"

	"github.com/pingup/network/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendRequestLifecycle(t *testing.T) {
	db := openTestDatabase(t)
	accounts := NewAccountService(db)
	friends := NewFriendService(db)
	ctx := context.Background()

	alice := registerUser(t, accounts, "alice@x.com", "Alice")
	bob := registerUser(t, accounts, "bob@x.com", "Bob")

	request, err := friends.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestPending, request.Status)

	status, err := friends.StatusBetween(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestPending, status)

	require.NoError(t, friends.CancelRequest(ctx, alice.ID, bob.ID))

	status, err = friends.StatusBetween(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestNone, status)

	assert.ErrorIs(t, friends.CancelRequest(ctx, alice.ID, bob.ID), ErrNoPendingRequest)
}

func TestSendRequestTwice(t *testing.T) {
	db := openTestDatabase(t)
	accounts := NewAccountService(db)
	friends := NewFriendService(db)
	ctx := context.Background()

	alice := registerUser(t, accounts, "alice@x.com", "Alice")
	bob := registerUser(t, accounts, "bob@x.com", "Bob")

	_, err := friends.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	existing, err := friends.SendRequest(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrAlreadyRequested)
	assert.Equal(t, models.FriendRequestPending, existing.Status)

	var count int64
	require.NoError(t, db.Model(&models.FriendRequest{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// The reverse direction is a separate edge
	_, err = friends.SendRequest(ctx, bob.ID, alice.ID)
	assert.NoError(t, err)

	_, err = friends.SendRequest(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfRequest)
}

func TestStatusBetweenIsSymmetric(t *testing.T) {
	db := openTestDatabase(t)
	accounts := NewAccountService(db)
	friends := NewFriendService(db)
	ctx := context.Background()

	alice := registerUser(t, accounts, "alice@x.com", "Alice")
	bob := registerUser(t, accounts, "bob@x.com", "Bob")
	carol := registerUser(t, accounts, "carol@x.com", "Carol")

	_, err := friends.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = friends.RespondRequest(ctx, alice.ID, bob.ID, true)
	require.NoError(t, err)

	forward, err := friends.StatusBetween(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	backward, err := friends.StatusBetween(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestAccepted, forward)
	assert.Equal(t, forward, backward)

	status, err := friends.StatusBetween(ctx, alice.ID, carol.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestNone, status)
}

func TestCancelOnlyUndoesPendingRequests(t *testing.T) {
	db := openTestDatabase(t)
	accounts := NewAccountService(db)
	friends := NewFriendService(db)
	ctx := context.Background()

	alice := registerUser(t, accounts, "alice@x.com", "Alice")
	bob := registerUser(t, accounts, "bob@x.com", "Bob")

	_, err := friends.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	// Wrong direction
	assert.ErrorIs(t, friends.CancelRequest(ctx, bob.ID, alice.ID), ErrNoPendingRequest)

	request, err := friends.RespondRequest(ctx, alice.ID, bob.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestDeclined, request.Status)

	assert.ErrorIs(t, friends.CancelRequest(ctx, alice.ID, bob.ID), ErrNoPendingRequest)
	status, err := friends.StatusBetween(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestDeclined, status)

	_, err = friends.RespondRequest(ctx, alice.ID, bob.ID, true)
	assert.ErrorIs(t, err, ErrNoPendingRequest)
}

func TestListIncomingPending(t *testing.T) {
	db := openTestDatabase(t)
	accounts := NewAccountService(db)
	friends := NewFriendService(db)
	ctx := context.Background()

	alice := registerUser(t, accounts, "alice@x.com", "Alice")
	bob := registerUser(t, accounts, "bob@x.com", "Bob")
	carol := registerUser(t, accounts, "carol@x.com", "Carol")
	dave := registerUser(t, accounts, "dave@x.com", "Dave")

	_, err := friends.SendRequest(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = friends.SendRequest(ctx, carol.ID, alice.ID)
	require.NoError(t, err)
	_, err = friends.SendRequest(ctx, dave.ID, alice.ID)
	require.NoError(t, err)
	_, err = friends.SendRequest(ctx, alice.ID, carol.ID)
	require.NoError(t, err)
	_, err = friends.RespondRequest(ctx, dave.ID, alice.ID, false)
	require.NoError(t, err)

	items, err := friends.ListIncomingPending(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, carol.ID, items[0].SenderID)
	assert.Equal(t, "Carol", items[0].Sender.Name)
	assert.Equal(t, "carol@x.com", items[0].Sender.Email)
	assert.Equal(t, models.FriendRequestPending, items[0].Status)
	assert.Equal(t, bob.ID, items[1].SenderID)

	items, err = friends.ListIncomingPending(ctx, bob.ID)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
