//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"unicart/internal/domain/account"
	"unicart/internal/infra"
	"unicart/internal/pkg/cache"
	"unicart/internal/pkg/clock"
	"unicart/internal/pkg/config"
	"unicart/internal/pkg/errs"
	"unicart/internal/usecase/commands"
	"unicart/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// addressBook is a stateful address backend.
type addressBook struct {
	mu      sync.Mutex
	entries []account.Address
}

func (b *addressBook) ListAddresses(context.Context, uuid.UUID) ([]account.Address, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]account.Address(nil), b.entries...), nil
}

func (b *addressBook) ClearDefaultAddresses(context.Context, uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.entries {
		b.entries[i].IsDefault = false
	}
	return nil
}

func (b *addressBook) MarkDefaultAddress(_ context.Context, _, addressID uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.entries {
		if b.entries[i].ID == addressID {
			b.entries[i].IsDefault = true
			return nil
		}
	}
	return infra.WrapRepoErr("address not found", nil, infra.KindNotFound)
}

func TestSetDefaultAddress_LeavesExactlyOneDefault(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	home := account.Address{ID: uuid.New(), Label: "Home", IsDefault: true}
	work := account.Address{ID: uuid.New(), Label: "Work"}
	book := &addressBook{entries: []account.Address{home, work}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := cache.New(clock.NewMockClock(testNow), logger)
	q := queries.NewAccountQueries(c, book, new(MockPaymentMethodGateway), new(MockProfileGateway), config.NewTestConfig())
	cmds := commands.NewAccountCommands(book, new(MockPaymentMethodGateway), c, logger)

	before, err := q.Addresses(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, home.ID, *before.DefaultID)

	require.NoError(t, cmds.SetDefaultAddress(ctx, userID, work.ID))

	after, err := q.Addresses(ctx, userID)
	require.NoError(t, err)
	assert.False(t, after.Stale)
	assert.Equal(t, 1, account.CountDefaults(after.Addresses))
	assert.Equal(t, work.ID, *after.DefaultID)
}

func TestSetDefaultAddress_UnknownID(t *testing.T) {
	e := newEnv(t)
	e.addresses.On("ListAddresses", mock.Anything, e.userID).
		Return([]account.Address{{ID: uuid.New(), IsDefault: true}}, nil)

	err := e.accountCmds.SetDefaultAddress(context.Background(), e.userID, uuid.New())

	assert.ErrorIs(t, err, account.ErrAddressNotFound)
	e.addresses.AssertNotCalled(t, "ClearDefaultAddresses", mock.Anything, mock.Anything)
}

func TestSetDefaultAddress_ListFailure(t *testing.T) {
	e := newEnv(t)
	e.addresses.On("ListAddresses", mock.Anything, e.userID).Return(nil, assert.AnError)

	err := e.accountCmds.SetDefaultAddress(context.Background(), e.userID, uuid.New())

	assert.True(t, errs.Is(err, commands.ErrBackendFailure))
}

func TestSetDefaultPaymentMethod(t *testing.T) {
	target := account.PaymentMethod{ID: uuid.New(), Kind: account.PaymentWallet}
	current := account.PaymentMethod{ID: uuid.New(), Kind: account.PaymentCard, IsDefault: true}

	t.Run("clears then marks", func(t *testing.T) {
		e := newEnv(t)
		e.methods.On("ListPaymentMethods", mock.Anything, e.userID).
			Return([]account.PaymentMethod{current, target}, nil)
		clearCall := e.methods.On("ClearDefaultPaymentMethods", mock.Anything, e.userID).Return(nil).Once()
		e.methods.On("MarkDefaultPaymentMethod", mock.Anything, e.userID, target.ID).Return(nil).Once().NotBefore(clearCall)

		err := e.accountCmds.SetDefaultPaymentMethod(context.Background(), e.userID, target.ID)

		require.NoError(t, err)
		e.methods.AssertExpectations(t)
	})

	t.Run("mark failure after clear invalidates the cache", func(t *testing.T) {
		e := newEnv(t)
		key := queries.PaymentMethodsKey(e.userID)
		_, err := cache.Get(context.Background(), e.cache, key, config.NewTestConfig().Cache.CollectionTTL,
			func(context.Context) ([]account.PaymentMethod, error) {
				return []account.PaymentMethod{current, target}, nil
			})
		require.NoError(t, err)
		require.Equal(t, 1, e.cache.Len())

		e.methods.On("ListPaymentMethods", mock.Anything, e.userID).
			Return([]account.PaymentMethod{current, target}, nil)
		e.methods.On("ClearDefaultPaymentMethods", mock.Anything, e.userID).Return(nil)
		e.methods.On("MarkDefaultPaymentMethod", mock.Anything, e.userID, target.ID).Return(assert.AnError)

		err = e.accountCmds.SetDefaultPaymentMethod(context.Background(), e.userID, target.ID)

		assert.True(t, errs.Is(err, commands.ErrBackendFailure))
		assert.Zero(t, e.cache.Len())
	})

	t.Run("target vanished between list and mark", func(t *testing.T) {
		e := newEnv(t)
		e.methods.On("ListPaymentMethods", mock.Anything, e.userID).
			Return([]account.PaymentMethod{current, target}, nil)
		e.methods.On("ClearDefaultPaymentMethods", mock.Anything, e.userID).Return(nil)
		e.methods.On("MarkDefaultPaymentMethod", mock.Anything, e.userID, target.ID).
			Return(infra.WrapRepoErr("payment method not found", nil, infra.KindNotFound))

		err := e.accountCmds.SetDefaultPaymentMethod(context.Background(), e.userID, target.ID)

		assert.ErrorIs(t, err, account.ErrPaymentMethodNotFound)
	})
}
