package models

import "time"

type BillStatus string

const (
	BillStatusPending BillStatus = "pending"
)

// Bill — note de frais. JSON-имена полей совпадают с тем, что шлёт форма NewBill.
type Bill struct {
	ID         string     `json:"id,omitempty"`
	Email      string     `json:"email"`
	Type       string     `json:"type"`
	Name       string     `json:"name"`
	Amount     int        `json:"amount"`
	Date       string     `json:"date"`
	VAT        string     `json:"vat"`
	Pct        int        `json:"pct"`
	Commentary string     `json:"commentary"`
	FileURL    *string    `json:"fileUrl"`
	FileName   *string    `json:"fileName"`
	FilePath   string     `json:"-"`
	Status     BillStatus `json:"status"`
	CreatedAt  time.Time  `json:"createdAt,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt,omitempty"`
}

// ReceiptUpload — ответ на create: ключ созданной записи и публичный URL чека.
type ReceiptUpload struct {
	FileURL string `json:"fileUrl"`
	Key     string `json:"key"`
}

// BillDateLayout — формат поля date (input type="date").
const BillDateLayout = "2006-01-02"
