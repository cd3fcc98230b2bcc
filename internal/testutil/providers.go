package testutil

import (
	"context"

	"github.com/preston-bernstein/auction-sheets-service/internal/providers"
)

// StaticSource serves fixed tables; unknown tabs fail with a 404 FetchError.
type StaticSource struct {
	Tables map[providers.Tab]providers.Table
}

func (s StaticSource) FetchTab(ctx context.Context, tab providers.Tab) (providers.Table, error) {
	if err := ctx.Err(); err != nil {
		return providers.Table{}, &providers.FetchError{Tab: tab, Err: err}
	}
	table, ok := s.Tables[tab]
	if !ok {
		return providers.Table{}, &providers.FetchError{Tab: tab, StatusCode: 404, Message: "tab not found"}
	}
	return table, nil
}

// ErrSource always returns the provided error.
type ErrSource struct {
	Err error
}

func (s ErrSource) FetchTab(ctx context.Context, tab providers.Tab) (providers.Table, error) {
	return providers.Table{}, s.Err
}

// UnavailableSource fails every fetch with ErrProviderUnavailable.
type UnavailableSource struct{}

func (UnavailableSource) FetchTab(ctx context.Context, tab providers.Tab) (providers.Table, error) {
	return providers.Table{}, &providers.FetchError{Tab: tab, Err: providers.ErrProviderUnavailable}
}

// NotifyingSource delegates to Inner and closes Notify on the first fetch.
type NotifyingSource struct {
	Inner  providers.SheetSource
	Notify chan struct{}
}

func (s *NotifyingSource) FetchTab(ctx context.Context, tab providers.Tab) (providers.Table, error) {
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	return s.Inner.FetchTab(ctx, tab)
}
