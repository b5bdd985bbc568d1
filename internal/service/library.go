package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/enicarthage/library-client/internal/domain/auth"
	"github.com/enicarthage/library-client/internal/domain/library"
	"github.com/enicarthage/library-client/internal/domain/page"
	apperrors "github.com/enicarthage/library-client/internal/errors"
	"github.com/enicarthage/library-client/internal/ports"
	"github.com/enicarthage/library-client/internal/validation"
)

// Resource definitions for the remote authority's collections.
var (
	BooksResource = Resource{
		Kind:           "books",
		SearchPath:     "/search",
		SearchParam:    "q",
		DefaultSortBy:  "title",
		DefaultSortDir: page.SortAsc,
	}
	BorrowingsResource = Resource{
		Kind:           "borrowings",
		DefaultSortBy:  "borrowDate",
		DefaultSortDir: page.SortDesc,
	}
	EventsResource = Resource{
		Kind:           "events",
		SearchPath:     "/search",
		SearchParam:    "q",
		DefaultSortBy:  "startDate",
		DefaultSortDir: page.SortAsc,
	}
	UsersResource = Resource{
		Kind:           "users",
		SearchPath:     "/search",
		SearchParam:    "name",
		DefaultSortBy:  "firstName",
		DefaultSortDir: page.SortAsc,
	}
)

// Books wraps the book catalogue.
type Books struct {
	*Collection[library.Book]
}

// NewBooks binds the book catalogue to transport.
func NewBooks(transport ports.Transport) *Books {
	return &Books{NewCollection[library.Book](transport, BooksResource)}
}

// Available lists every book with copies on the shelf.
func (b *Books) Available(ctx context.Context) ([]library.Book, error) {
	return b.All(ctx, "available")
}

// ByCategory lists every book in category.
func (b *Books) ByCategory(ctx context.Context, category library.BookCategory) ([]library.Book, error) {
	return b.All(ctx, "category/"+url.PathEscape(string(category)))
}

// UpdateStatus changes a book's circulation status.
func (b *Books) UpdateStatus(ctx context.Context, id int64, status library.BookStatus) (library.Book, error) {
	var out library.Book
	q := url.Values{"status": {string(status)}}
	err := b.do(ctx, http.MethodPatch, b.itemPath(id, "/status"), q, nil, &out)
	return out, err
}

// Borrowings wraps loans.
type Borrowings struct {
	*Collection[library.Borrowing]
}

// NewBorrowings binds loans to transport.
func NewBorrowings(transport ports.Transport) *Borrowings {
	return &Borrowings{NewCollection[library.Borrowing](transport, BorrowingsResource)}
}

// Mine lists the logged-in member's loans.
func (b *Borrowings) Mine(ctx context.Context) ([]library.Borrowing, error) {
	return b.All(ctx, "my-borrowings")
}

// ByUser lists a member's loans.
func (b *Borrowings) ByUser(ctx context.Context, userID int64) ([]library.Borrowing, error) {
	return b.All(ctx, "user/"+idParam(userID))
}

// Overdue lists loans past their due date.
func (b *Borrowings) Overdue(ctx context.Context) ([]library.Borrowing, error) {
	return b.All(ctx, "overdue")
}

// Active lists open loans.
func (b *Borrowings) Active(ctx context.Context) ([]library.Borrowing, error) {
	return b.All(ctx, "active")
}

// Borrow lends bookID to userID.
func (b *Borrowings) Borrow(ctx context.Context, bookID, userID int64) (library.Borrowing, error) {
	var out library.Borrowing
	q := url.Values{"bookId": {idParam(bookID)}, "userId": {idParam(userID)}}
	err := b.do(ctx, http.MethodPost, b.path("/borrow"), q, nil, &out)
	return out, err
}

// Return closes a loan.
func (b *Borrowings) Return(ctx context.Context, borrowingID int64) (library.Borrowing, error) {
	var out library.Borrowing
	q := url.Values{"borrowingId": {idParam(borrowingID)}}
	err := b.do(ctx, http.MethodPost, b.path("/return"), q, nil, &out)
	return out, err
}

// Extend pushes a loan's due date back by days.
func (b *Borrowings) Extend(ctx context.Context, id int64, days int) (library.Borrowing, error) {
	var out library.Borrowing
	q := url.Values{"days": {strconv.Itoa(days)}}
	err := b.do(ctx, http.MethodPatch, b.itemPath(id, "/extend"), q, nil, &out)
	return out, err
}

// UpdateFine sets a loan's fine.
func (b *Borrowings) UpdateFine(ctx context.Context, id int64, amount float64) (library.Borrowing, error) {
	var out library.Borrowing
	q := url.Values{"fineAmount": {strconv.FormatFloat(amount, 'f', 2, 64)}}
	err := b.do(ctx, http.MethodPatch, b.itemPath(id, "/fine"), q, nil, &out)
	return out, err
}

// Events wraps library events.
type Events struct {
	*Collection[library.Event]
}

// NewEvents binds events to transport.
func NewEvents(transport ports.Transport) *Events {
	return &Events{NewCollection[library.Event](transport, EventsResource)}
}

// Upcoming lists events that have not started.
func (e *Events) Upcoming(ctx context.Context) ([]library.Event, error) {
	return e.All(ctx, "upcoming")
}

// Ongoing lists events in progress.
func (e *Events) Ongoing(ctx context.Context) ([]library.Event, error) {
	return e.All(ctx, "ongoing")
}

// Create adds an event.
func (e *Events) Create(ctx context.Context, ev library.Event) (library.Event, error) {
	var out library.Event
	err := e.do(ctx, http.MethodPost, e.path(""), nil, ev, &out)
	return out, err
}

// Update replaces an event.
func (e *Events) Update(ctx context.Context, id int64, ev library.Event) (library.Event, error) {
	var out library.Event
	err := e.do(ctx, http.MethodPut, e.itemPath(id, ""), nil, ev, &out)
	return out, err
}

// Delete removes an event.
func (e *Events) Delete(ctx context.Context, id int64) error {
	return e.do(ctx, http.MethodDelete, e.itemPath(id, ""), nil, nil, nil)
}

// UpdateStatus changes an event's scheduling state.
func (e *Events) UpdateStatus(ctx context.Context, id int64, status library.EventStatus) error {
	q := url.Values{"status": {string(status)}}
	return e.do(ctx, http.MethodPatch, e.itemPath(id, "/status"), q, nil, nil)
}

// Register signs the logged-in member up for an event.
func (e *Events) Register(ctx context.Context, id int64) error {
	return e.do(ctx, http.MethodPost, e.itemPath(id, "/register"), nil, nil, nil)
}

// Unregister withdraws the logged-in member from an event.
func (e *Events) Unregister(ctx context.Context, id int64) error {
	return e.do(ctx, http.MethodDelete, e.itemPath(id, "/unregister"), nil, nil, nil)
}

// Users wraps member administration.
type Users struct {
	*Collection[library.Member]
}

// NewUsers binds member administration to transport.
func NewUsers(transport ports.Transport) *Users {
	return &Users{NewCollection[library.Member](transport, UsersResource)}
}

// ByRole lists every member holding role.
func (u *Users) ByRole(ctx context.Context, role auth.Role) ([]library.Member, error) {
	return u.All(ctx, "role/"+string(role))
}

// Update replaces a member's editable fields.
func (u *Users) Update(ctx context.Context, id int64, m library.Member) error {
	return u.do(ctx, http.MethodPut, u.itemPath(id, ""), nil, m, nil)
}

// UpdateStatus changes a member's account status. Unknown statuses are
// rejected without a request.
func (u *Users) UpdateStatus(ctx context.Context, id int64, status auth.Status) error {
	options := make([]string, 0, len(auth.Statuses()))
	for _, s := range auth.Statuses() {
		options = append(options, string(s))
	}
	if err := checkOneOf("status", "Status", string(status), options); err != nil {
		return err
	}
	q := url.Values{"status": {string(status)}}
	return u.do(ctx, http.MethodPatch, u.itemPath(id, "/status"), q, nil, nil)
}

// UpdateRole changes a member's role. Unknown roles are rejected without
// a request.
func (u *Users) UpdateRole(ctx context.Context, id int64, role auth.Role) error {
	options := make([]string, 0, len(auth.Roles()))
	for _, r := range auth.Roles() {
		options = append(options, string(r))
	}
	if err := checkOneOf("role", "Role", string(role), options); err != nil {
		return err
	}
	q := url.Values{"role": {string(role)}}
	return u.do(ctx, http.MethodPatch, u.itemPath(id, "/role"), q, nil, nil)
}

func checkOneOf(field, label, value string, options []string) error {
	fv := validation.New().Validate(field, value, validation.OneOf(label, options))
	if fv.Valid() {
		return nil
	}
	return apperrors.ValidationFields(label+" is invalid", fv.Errors())
}
