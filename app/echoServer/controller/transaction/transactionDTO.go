package transaction

type IssueReq struct {
	BookID    string `json:"bookId" validate:"required"`
	UserID    string `json:"userId" validate:"required"`
	IssueDate string `json:"issueDate" validate:"required"`
}

type ReturnReq struct {
	TransactionID string `json:"transactionId" validate:"required"`
	ReturnDate    string `json:"returnDate" validate:"required"`
}
