// Package library contains the entities browsed through the client:
// books, borrowings, events, members and the dashboard overview.
package library

import (
	"github.com/enicarthage/library-client/internal/domain/auth"
)

// BookCategory classifies a book.
type BookCategory string

const (
	CategoryFiction     BookCategory = "FICTION"
	CategoryNonFiction  BookCategory = "NON_FICTION"
	CategoryScience     BookCategory = "SCIENCE"
	CategoryTechnology  BookCategory = "TECHNOLOGY"
	CategoryHistory     BookCategory = "HISTORY"
	CategoryLiterature  BookCategory = "LITERATURE"
	CategoryPhilosophy  BookCategory = "PHILOSOPHY"
	CategoryMathematics BookCategory = "MATHEMATICS"
	CategoryPhysics     BookCategory = "PHYSICS"
	CategoryChemistry   BookCategory = "CHEMISTRY"
	CategoryBiology     BookCategory = "BIOLOGY"
	CategoryMedicine    BookCategory = "MEDICINE"
	CategoryEngineering BookCategory = "ENGINEERING"
	CategoryBusiness    BookCategory = "BUSINESS"
	CategoryEconomics   BookCategory = "ECONOMICS"
	CategoryPolitics    BookCategory = "POLITICS"
	CategorySociology   BookCategory = "SOCIOLOGY"
	CategoryPsychology  BookCategory = "PSYCHOLOGY"
	CategoryArt         BookCategory = "ART"
	CategoryMusic       BookCategory = "MUSIC"
	CategorySports      BookCategory = "SPORTS"
	CategoryTravel      BookCategory = "TRAVEL"
	CategoryCooking     BookCategory = "COOKING"
	CategoryReference   BookCategory = "REFERENCE"
	CategoryTextbook    BookCategory = "TEXTBOOK"
)

// BookStatus is the circulation status of a book.
type BookStatus string

const (
	BookAvailable   BookStatus = "AVAILABLE"
	BookBorrowed    BookStatus = "BORROWED"
	BookReserved    BookStatus = "RESERVED"
	BookMaintenance BookStatus = "MAINTENANCE"
	BookLost        BookStatus = "LOST"
	BookDamaged     BookStatus = "DAMAGED"
)

// Book is a catalogue entry.
type Book struct {
	ID              int64        `json:"id"`
	Title           string       `json:"title"`
	Author          string       `json:"author"`
	ISBN            string       `json:"isbn,omitempty"`
	Publisher       string       `json:"publisher"`
	PublicationYear int          `json:"publicationYear"`
	Category        BookCategory `json:"category"`
	Status          BookStatus   `json:"status"`
	Description     string       `json:"description,omitempty"`
	CoverImageURL   string       `json:"coverImageUrl,omitempty"`
	TotalCopies     int          `json:"totalCopies"`
	AvailableCopies int          `json:"availableCopies"`
	ShelfLocation   string       `json:"shelfLocation,omitempty"`
	Language        string       `json:"language,omitempty"`
	Pages           int          `json:"pages,omitempty"`
	Price           float64      `json:"price,omitempty"`
	CreatedAt       string       `json:"createdAt,omitempty"`
	UpdatedAt       string       `json:"updatedAt,omitempty"`
}

// BorrowingStatus tracks a loan's lifecycle.
type BorrowingStatus string

const (
	BorrowingActive   BorrowingStatus = "ACTIVE"
	BorrowingOverdue  BorrowingStatus = "OVERDUE"
	BorrowingReturned BorrowingStatus = "RETURNED"
)

// Borrowing is a single loan of a book to a member.
type Borrowing struct {
	ID         int64           `json:"id"`
	BookID     int64           `json:"bookId"`
	UserID     int64           `json:"userId"`
	BorrowDate string          `json:"borrowDate"`
	DueDate    string          `json:"dueDate,omitempty"`
	ReturnDate string          `json:"returnDate,omitempty"`
	Status     BorrowingStatus `json:"status"`
	FineAmount float64         `json:"fineAmount,omitempty"`
}

// EventStatus is the scheduling state of an event.
type EventStatus string

const (
	EventUpcoming  EventStatus = "UPCOMING"
	EventOngoing   EventStatus = "ONGOING"
	EventCompleted EventStatus = "COMPLETED"
	EventCancelled EventStatus = "CANCELLED"
	EventPostponed EventStatus = "POSTPONED"
)

// Event is a library event such as a workshop or author talk.
// Older API versions return Name instead of Title.
type Event struct {
	ID                   int64       `json:"id"`
	Title                string      `json:"title,omitempty"`
	Name                 string      `json:"name,omitempty"`
	Description          string      `json:"description,omitempty"`
	StartDate            string      `json:"startDate"`
	EndDate              string      `json:"endDate,omitempty"`
	Location             string      `json:"location,omitempty"`
	Type                 string      `json:"type,omitempty"`
	Status               EventStatus `json:"status,omitempty"`
	MaxAttendees         int         `json:"maxAttendees,omitempty"`
	CurrentAttendees     int         `json:"currentAttendees,omitempty"`
	RegistrationRequired bool        `json:"registrationRequired,omitempty"`
	RegistrationDeadline string      `json:"registrationDeadline,omitempty"`
	ContactInfo          string      `json:"contactInfo,omitempty"`
}

// Label returns the event's title, falling back to its legacy name.
func (e Event) Label() string {
	if e.Title != "" {
		return e.Title
	}
	return e.Name
}

// Member is a row of the user administration screen.
type Member struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      auth.Role   `json:"role"`
	Status    auth.Status `json:"status"`
	CreatedAt string      `json:"createdAt,omitempty"`
}

// DashboardOverview is the aggregate returned by /dashboard/overview.
type DashboardOverview struct {
	Books struct {
		TotalBooks     int64 `json:"totalBooks"`
		AvailableBooks int64 `json:"availableBooks"`
	} `json:"books"`
	Users struct {
		TotalUsers int64 `json:"totalUsers"`
	} `json:"users"`
	Borrowings  map[string]any `json:"borrowings,omitempty"`
	Events      map[string]any `json:"events,omitempty"`
	Reviews     map[string]any `json:"reviews,omitempty"`
	LastUpdated string         `json:"lastUpdated,omitempty"`
}
