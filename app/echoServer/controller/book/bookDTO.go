package book

type CreateBookReq struct {
	Name       string  `json:"name" validate:"required"`
	Category   string  `json:"category" validate:"required"`
	RentPerDay float64 `json:"rentPerDay" validate:"required,gt=0"`
}
