package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/enicarthage/library-client/internal/domain/library"
	"github.com/enicarthage/library-client/internal/refine"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// writeFooter prints the pagination line. Totals are the server's
// unfiltered counts; local filters only narrow the rows shown.
func writeFooter(w io.Writer, shown int, st *refine.State) {
	if st == nil {
		return
	}
	pages := st.TotalPages
	current := st.Page + 1
	if pages == 0 {
		current = 0
	}
	_, _ = fmt.Fprintf(w, "page %d of %d, %d shown, %d total\n", current, pages, shown, st.Total)
}

func renderBooks(w io.Writer, books []library.Book, st *refine.State) error {
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tCATEGORY\tSTATUS\tAVAILABLE")
	for _, b := range books {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d/%d\n",
			b.ID, b.Title, b.Author, b.Category, b.Status, b.AvailableCopies, b.TotalCopies)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	writeFooter(w, len(books), st)
	return nil
}

func renderBook(w io.Writer, b library.Book) error {
	tw := newTable(w)
	_, _ = fmt.Fprintf(tw, "Title:\t%s\n", b.Title)
	_, _ = fmt.Fprintf(tw, "Author:\t%s\n", b.Author)
	if b.ISBN != "" {
		_, _ = fmt.Fprintf(tw, "ISBN:\t%s\n", b.ISBN)
	}
	_, _ = fmt.Fprintf(tw, "Publisher:\t%s (%d)\n", b.Publisher, b.PublicationYear)
	_, _ = fmt.Fprintf(tw, "Category:\t%s\n", b.Category)
	_, _ = fmt.Fprintf(tw, "Status:\t%s\n", b.Status)
	_, _ = fmt.Fprintf(tw, "Copies:\t%d of %d available\n", b.AvailableCopies, b.TotalCopies)
	if b.ShelfLocation != "" {
		_, _ = fmt.Fprintf(tw, "Shelf:\t%s\n", b.ShelfLocation)
	}
	if b.Description != "" {
		_, _ = fmt.Fprintf(tw, "Description:\t%s\n", b.Description)
	}
	return tw.Flush()
}

func renderBorrowings(w io.Writer, rows []library.Borrowing, st *refine.State) error {
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ID\tBOOK\tUSER\tBORROWED\tDUE\tSTATUS\tFINE")
	for _, b := range rows {
		_, _ = fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\t%s\t%.2f\n",
			b.ID, b.BookID, b.UserID, b.BorrowDate, b.DueDate, b.Status, b.FineAmount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	writeFooter(w, len(rows), st)
	return nil
}

func renderEvents(w io.Writer, rows []library.Event, st *refine.State) error {
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ID\tTITLE\tSTART\tLOCATION\tSTATUS\tATTENDEES")
	for _, e := range rows {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d/%d\n",
			e.ID, e.Label(), e.StartDate, e.Location, e.Status, e.CurrentAttendees, e.MaxAttendees)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	writeFooter(w, len(rows), st)
	return nil
}

func renderEvent(w io.Writer, e library.Event) error {
	tw := newTable(w)
	_, _ = fmt.Fprintf(tw, "Title:\t%s\n", e.Label())
	_, _ = fmt.Fprintf(tw, "When:\t%s", e.StartDate)
	if e.EndDate != "" {
		_, _ = fmt.Fprintf(tw, " - %s", e.EndDate)
	}
	_, _ = fmt.Fprintln(tw)
	_, _ = fmt.Fprintf(tw, "Location:\t%s\n", e.Location)
	_, _ = fmt.Fprintf(tw, "Status:\t%s\n", e.Status)
	if e.MaxAttendees > 0 {
		_, _ = fmt.Fprintf(tw, "Attendees:\t%d of %d\n", e.CurrentAttendees, e.MaxAttendees)
	}
	if e.RegistrationRequired {
		_, _ = fmt.Fprintf(tw, "Registration:\trequired by %s\n", e.RegistrationDeadline)
	}
	if e.Description != "" {
		_, _ = fmt.Fprintf(tw, "Description:\t%s\n", e.Description)
	}
	return tw.Flush()
}

func renderMembers(w io.Writer, rows []library.Member, st *refine.State) error {
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tEMAIL\tROLE\tSTATUS")
	for _, m := range rows {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s %s\t%s\t%s\t%s\n",
			m.ID, m.Username, m.FirstName, m.LastName, m.Email, m.Role, m.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	writeFooter(w, len(rows), st)
	return nil
}
