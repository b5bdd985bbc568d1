package service

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/enicarthage/library-client/internal/domain/library"
	"github.com/enicarthage/library-client/internal/ports"
)

// DashboardService loads aggregate views.
type DashboardService struct {
	transport ports.Transport
	books     *Books
	events    *Events
}

// NewDashboardService constructs a dashboard service over transport.
func NewDashboardService(transport ports.Transport) *DashboardService {
	if transport == nil {
		panic("DashboardService requires Transport")
	}
	return &DashboardService{
		transport: transport,
		books:     NewBooks(transport),
		events:    NewEvents(transport),
	}
}

// Overview fetches the dashboard aggregate.
func (d *DashboardService) Overview(ctx context.Context) (library.DashboardOverview, error) {
	var out library.DashboardOverview
	err := d.transport.Do(ctx, ports.Request{
		Method: http.MethodGet,
		Path:   "/dashboard/overview",
		Kind:   "dashboard",
	}, &out)
	return out, err
}

// ProfileSummary is what the profile screen shows next to the identity.
type ProfileSummary struct {
	AvailableBooks []library.Book
	UpcomingEvents []library.Event
}

// ProfileSummary loads available books and upcoming events concurrently.
// The first failure cancels the other request.
func (d *DashboardService) ProfileSummary(ctx context.Context) (ProfileSummary, error) {
	var sum ProfileSummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		books, err := d.books.Available(gctx)
		if err != nil {
			return fmt.Errorf("available books: %w", err)
		}
		sum.AvailableBooks = books
		return nil
	})
	g.Go(func() error {
		events, err := d.events.Upcoming(gctx)
		if err != nil {
			return fmt.Errorf("upcoming events: %w", err)
		}
		sum.UpcomingEvents = events
		return nil
	})
	if err := g.Wait(); err != nil {
		return ProfileSummary{}, err
	}
	return sum, nil
}
