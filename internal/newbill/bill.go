package newbill

import (
	"billed/internal/models"
	"strconv"
	"strings"
	"time"
)

// DefaultPct — процент НДС, если поле пустое или равно нулю.
const DefaultPct = 20

// Fields — значения полей формы в том виде, в каком их ввёл пользователь.
type Fields struct {
	Type       string
	Name       string
	Amount     string
	Date       string
	VAT        string
	Pct        string
	Commentary string
}

// BuildBill собирает запись для update из полей формы и результата загрузки чека.
func BuildBill(email string, f Fields, up Upload) (*models.Bill, error) {
	amount, err := parseAmount(f.Amount)
	if err != nil {
		return nil, err
	}

	if _, err := time.Parse(models.BillDateLayout, f.Date); err != nil {
		return nil, ErrInvalidDate
	}

	pct, ok := parseLeadingInt(f.Pct)
	if !ok || pct == 0 {
		pct = DefaultPct
	}

	fileURL := up.FileURL
	fileName := up.FileName

	return &models.Bill{
		Email:      email,
		Type:       f.Type,
		Name:       f.Name,
		Amount:     amount,
		Date:       f.Date,
		VAT:        f.VAT,
		Pct:        pct,
		Commentary: f.Commentary,
		FileURL:    &fileURL,
		FileName:   &fileName,
		Status:     models.BillStatusPending,
	}, nil
}

// parseLeadingInt читает целое в начале строки: "12.5" -> 12, " 7€" -> 7, "abc" -> нет.
// Число, не влезающее в int, считается некорректным.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseAmount — сумма TTC: целое больше нуля.
func parseAmount(s string) (int, error) {
	n, ok := parseLeadingInt(s)
	if !ok || n <= 0 {
		return 0, ErrInvalidAmount
	}
	return n, nil
}
