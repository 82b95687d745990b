package model

import "time"

// Transaction records one loan of a book to a user. ReturnDate and
// RentAmount are absent while the loan is open and are always written
// together when the book comes back.
type Transaction struct {
	ID         string     `json:"id"`
	BookID     string     `json:"bookId"`
	UserID     string     `json:"userId"`
	IssueDate  time.Time  `json:"issueDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	RentAmount *float64   `json:"rentAmount,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	// Resolved references, filled only for reads that ask for them.
	// Storage always keeps just BookID/UserID.
	Book *Book `json:"book,omitempty"`
	User *User `json:"user,omitempty"`
}

// Open reports whether the book is still out on loan.
func (t *Transaction) Open() bool { return t.ReturnDate == nil }
