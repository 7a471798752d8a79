package queries

import (
	"context"

	"unicart/internal/domain/account"
	"unicart/internal/infra"
	"unicart/internal/pkg/cache"
	"unicart/internal/pkg/config"
	"unicart/internal/pkg/errs"
	"unicart/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	KindAddresses      = "addresses"
	KindPaymentMethods = "payment-methods"
	KindProfile        = "profile"
)

var (
	ErrProfileNotFound      = errs.New("profile not found")
	ErrReferenceUnavailable = errs.New("reference data unavailable")
)

func AddressesKey(userID uuid.UUID) cache.Key {
	return cache.Key{Kind: KindAddresses, Owner: userID.String()}
}

func PaymentMethodsKey(userID uuid.UUID) cache.Key {
	return cache.Key{Kind: KindPaymentMethods, Owner: userID.String()}
}

func ProfileKey(userID uuid.UUID) cache.Key {
	return cache.Key{Kind: KindProfile, Owner: userID.String()}
}

// AccountQueries serves the user's reference data through the read-through
// cache. Returned slices are shared with the cache and must not be modified.
type AccountQueries interface {
	Addresses(ctx context.Context, userID uuid.UUID) (*AddressesView, error)
	PaymentMethods(ctx context.Context, userID uuid.UUID) (*PaymentMethodsView, error)
	Profile(ctx context.Context, userID uuid.UUID) (*ProfileView, error)
}

type accountQueriesImpl struct {
	cache          *cache.Cache
	addresses      shared.AddressGateway
	paymentMethods shared.PaymentMethodGateway
	profiles       shared.ProfileGateway
	ttl            config.CacheConfig
}

func NewAccountQueries(
	c *cache.Cache,
	addresses shared.AddressGateway,
	paymentMethods shared.PaymentMethodGateway,
	profiles shared.ProfileGateway,
	cfg config.Config,
) AccountQueries {
	return &accountQueriesImpl{
		cache:          c,
		addresses:      addresses,
		paymentMethods: paymentMethods,
		profiles:       profiles,
		ttl:            cfg.Cache,
	}
}

func (q *accountQueriesImpl) Addresses(ctx context.Context, userID uuid.UUID) (*AddressesView, error) {
	res, err := cache.Get(ctx, q.cache, AddressesKey(userID), q.ttl.CollectionTTL,
		func(ctx context.Context) ([]account.Address, error) {
			return q.addresses.ListAddresses(ctx, userID)
		})
	if err != nil {
		return nil, loadErr(err)
	}

	v := &AddressesView{Addresses: res.Value, FetchedAt: res.FetchedAt, Stale: res.Stale}
	if def, ok := account.ResolveDefault(res.Value); ok {
		id := def.ID
		v.DefaultID = &id
	}
	return v, nil
}

func (q *accountQueriesImpl) PaymentMethods(ctx context.Context, userID uuid.UUID) (*PaymentMethodsView, error) {
	res, err := cache.Get(ctx, q.cache, PaymentMethodsKey(userID), q.ttl.CollectionTTL,
		func(ctx context.Context) ([]account.PaymentMethod, error) {
			return q.paymentMethods.ListPaymentMethods(ctx, userID)
		})
	if err != nil {
		return nil, loadErr(err)
	}

	v := &PaymentMethodsView{PaymentMethods: res.Value, FetchedAt: res.FetchedAt, Stale: res.Stale}
	if def, ok := account.ResolveDefault(res.Value); ok {
		id := def.ID
		v.DefaultID = &id
	}
	return v, nil
}

func (q *accountQueriesImpl) Profile(ctx context.Context, userID uuid.UUID) (*ProfileView, error) {
	res, err := cache.Get(ctx, q.cache, ProfileKey(userID), q.ttl.ProfileTTL,
		func(ctx context.Context) (account.Profile, error) {
			return q.profiles.FindProfile(ctx, userID)
		})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, loadErr(err)
	}
	return &ProfileView{Profile: res.Value, FetchedAt: res.FetchedAt, Stale: res.Stale}, nil
}

func loadErr(err error) error {
	if errs.Is(err, cache.ErrLoadFailed) {
		return errs.Mark(err, ErrReferenceUnavailable)
	}
	return err
}
