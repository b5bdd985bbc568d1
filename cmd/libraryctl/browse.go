package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/enicarthage/library-client/internal/domain/access"
	"github.com/enicarthage/library-client/internal/domain/auth"
	"github.com/enicarthage/library-client/internal/domain/library"
	"github.com/enicarthage/library-client/internal/domain/page"
	"github.com/enicarthage/library-client/internal/refine"
)

// errDenied is returned when the access guard refuses a screen.
var errDenied = errors.New("access denied")

// navigate waits for the session restore, then asks the guard for path.
func navigate(cc *commandContext, path string) error {
	if err := cc.Client.WaitReady(cc.Ctx); err != nil {
		return err
	}
	redirect, decision := cc.Client.Guard.Navigate(cc.Ctx, path)
	switch decision {
	case access.Allow:
		return nil
	case access.DenyRedirectLogin:
		return fmt.Errorf("%w: sign in first with `libraryctl login` (redirected to %s)", errDenied, redirect)
	default:
		return fmt.Errorf("%w: your role cannot open %s (redirected to %s)", errDenied, path, redirect)
	}
}

type listFlags struct {
	Query string
	Page  int
	Size  int
	Sort  string
}

func (l *listFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&l.Query, "q", "", "search text")
	fs.IntVar(&l.Page, "page", 1, "page number, starting at 1")
	fs.IntVar(&l.Size, "size", page.DefaultSize, "rows per page")
	fs.StringVar(&l.Sort, "sort", "", "sort as field[:asc|desc]")
}

func (l *listFlags) sort() (string, page.SortDir) {
	field, dir, _ := strings.Cut(l.Sort, ":")
	return strings.TrimSpace(field), page.ParseSortDir(dir)
}

// loadScreen applies search and paging to s in the order a user would:
// submit the search (or load the listing), then jump to the page.
func loadScreen[T any](cc *commandContext, s *refine.Screen[T], l listFlags) error {
	var err error
	if strings.TrimSpace(l.Query) != "" {
		err = s.SubmitSearch(cc.Ctx, l.Query)
	} else {
		err = s.Load(cc.Ctx)
	}
	if err != nil {
		return err
	}
	if l.Page > 1 {
		return s.GoTo(cc.Ctx, l.Page-1)
	}
	return nil
}

func screenOptions(kind string, l listFlags) refine.Options {
	sortBy, dir := l.sort()
	return refine.Options{Kind: kind, Size: l.Size, SortBy: sortBy, SortDir: dir}
}

func parseID(args []string, what string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: expected one %s id", errUsage, what)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s id %q", errUsage, what, args[0])
	}
	return id, nil
}

func runBooks(cc *commandContext, args []string) error {
	fs := newFlagSet("books")
	var l listFlags
	l.register(fs)
	category := fs.String("category", "", "show only this category (on the loaded page)")
	status := fs.String("status", "", "show only this status (on the loaded page)")
	author := fs.String("author", "", "show only authors containing this text (on the loaded page)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := navigate(cc, "/books"); err != nil {
		return err
	}

	screen := refine.NewScreen[library.Book](cc.Client.Books, screenOptions("books", l))
	defer screen.Close()
	if *category != "" {
		want := library.BookCategory(strings.ToUpper(*category))
		screen.SetLocalFilter("category", refine.Equals(func(b library.Book) library.BookCategory { return b.Category }, want))
	}
	if *status != "" {
		want := library.BookStatus(strings.ToUpper(*status))
		screen.SetLocalFilter("status", refine.Equals(func(b library.Book) library.BookStatus { return b.Status }, want))
	}
	if *author != "" {
		screen.SetLocalFilter("author", refine.ContainsFold(func(b library.Book) string { return b.Author }, *author))
	}
	if err := loadScreen(cc, screen, l); err != nil {
		return err
	}
	st := screen.State()
	return renderBooks(cc.Stdout, screen.Visible(), &st)
}

func runBook(cc *commandContext, args []string) error {
	id, err := parseID(args, "book")
	if err != nil {
		return err
	}
	if err := navigate(cc, "/books/"+strconv.FormatInt(id, 10)); err != nil {
		return err
	}
	book, err := cc.Client.Books.Get(cc.Ctx, id)
	if err != nil {
		return err
	}
	return renderBook(cc.Stdout, book)
}

func runBorrowings(cc *commandContext, args []string) error {
	fs := newFlagSet("borrowings")
	var l listFlags
	l.register(fs)
	status := fs.String("status", "", "show only this status (on the loaded page)")
	overdue := fs.Bool("overdue", false, "list overdue borrowings (staff)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := navigate(cc, "/borrowings"); err != nil {
		return err
	}

	var filter refine.Predicate[library.Borrowing]
	if *status != "" {
		want := library.BorrowingStatus(strings.ToUpper(*status))
		filter = refine.Equals(func(b library.Borrowing) library.BorrowingStatus { return b.Status }, want)
	}

	s := cc.Client.Sessions.Session()
	staff := s.HasAnyRole(auth.RoleAdmin, auth.RoleLibrarian)
	switch {
	case *overdue && !staff:
		return fmt.Errorf("%w: only staff can list overdue borrowings", errDenied)
	case *overdue:
		rows, err := cc.Client.Borrowings.Overdue(cc.Ctx)
		if err != nil {
			return err
		}
		return renderBorrowings(cc.Stdout, keep(rows, filter), nil)
	case !staff:
		rows, err := cc.Client.Borrowings.Mine(cc.Ctx)
		if err != nil {
			return err
		}
		return renderBorrowings(cc.Stdout, keep(rows, filter), nil)
	}

	screen := refine.NewScreen[library.Borrowing](cc.Client.Borrowings, screenOptions("borrowings", l))
	defer screen.Close()
	if filter != nil {
		screen.SetLocalFilter("status", filter)
	}
	if err := loadScreen(cc, screen, l); err != nil {
		return err
	}
	st := screen.State()
	return renderBorrowings(cc.Stdout, screen.Visible(), &st)
}

func keep[T any](rows []T, p refine.Predicate[T]) []T {
	if p == nil {
		return rows
	}
	var out []T
	for _, r := range rows {
		if p(r) {
			out = append(out, r)
		}
	}
	return out
}

func runEvents(cc *commandContext, args []string) error {
	fs := newFlagSet("events")
	var l listFlags
	l.register(fs)
	status := fs.String("status", "", "show only this status (on the loaded page)")
	upcoming := fs.Bool("upcoming", false, "list upcoming events only")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := navigate(cc, "/events"); err != nil {
		return err
	}

	if *upcoming {
		rows, err := cc.Client.Events.Upcoming(cc.Ctx)
		if err != nil {
			return err
		}
		return renderEvents(cc.Stdout, rows, nil)
	}

	screen := refine.NewScreen[library.Event](cc.Client.Events, screenOptions("events", l))
	defer screen.Close()
	if *status != "" {
		want := library.EventStatus(strings.ToUpper(*status))
		screen.SetLocalFilter("status", refine.Equals(func(e library.Event) library.EventStatus { return e.Status }, want))
	}
	if err := loadScreen(cc, screen, l); err != nil {
		return err
	}
	st := screen.State()
	return renderEvents(cc.Stdout, screen.Visible(), &st)
}

func runEvent(cc *commandContext, args []string) error {
	id, err := parseID(args, "event")
	if err != nil {
		return err
	}
	if err := navigate(cc, "/events/"+strconv.FormatInt(id, 10)); err != nil {
		return err
	}
	ev, err := cc.Client.Events.Get(cc.Ctx, id)
	if err != nil {
		return err
	}
	return renderEvent(cc.Stdout, ev)
}

func runUsers(cc *commandContext, args []string) error {
	fs := newFlagSet("users")
	var l listFlags
	l.register(fs)
	role := fs.String("role", "", "show only this role (on the loaded page)")
	status := fs.String("status", "", "show only this account status (on the loaded page)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := navigate(cc, "/users"); err != nil {
		return err
	}

	screen := refine.NewScreen[library.Member](cc.Client.Users, screenOptions("users", l))
	defer screen.Close()
	if *role != "" {
		r, err := auth.ParseRole(*role)
		if err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
		screen.SetLocalFilter("role", refine.Equals(func(m library.Member) auth.Role { return m.Role }, r))
	}
	if *status != "" {
		want := auth.Status(strings.ToUpper(*status))
		screen.SetLocalFilter("status", refine.Equals(func(m library.Member) auth.Status { return m.Status }, want))
	}
	if err := loadScreen(cc, screen, l); err != nil {
		return err
	}
	st := screen.State()
	return renderMembers(cc.Stdout, screen.Visible(), &st)
}
