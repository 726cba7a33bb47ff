package newbill

import (
	"billed/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBill(t *testing.T) {
	up := Upload{BillID: "k1", FileURL: "http://x/api/bills/k1/file", FileName: "image.jpg"}
	fields := Fields{
		Type:       "Transports",
		Name:       "Vol Paris Londres",
		Amount:     "348",
		Date:       "2004-04-04",
		VAT:        "70",
		Pct:        "",
		Commentary: "séminaire",
	}

	bill, err := BuildBill("a@a", fields, up)
	require.NoError(t, err)

	assert.Equal(t, "a@a", bill.Email)
	assert.Equal(t, 348, bill.Amount)
	assert.Equal(t, DefaultPct, bill.Pct)
	assert.Equal(t, models.BillStatusPending, bill.Status)
	require.NotNil(t, bill.FileURL)
	require.NotNil(t, bill.FileName)
	assert.Equal(t, up.FileURL, *bill.FileURL)
	assert.Equal(t, "image.jpg", *bill.FileName)
}

func TestBuildBill_Pct(t *testing.T) {
	up := Upload{FileName: "a.png"}

	bill, err := BuildBill("a@a", Fields{Amount: "1", Date: "2024-03-01", Pct: "0"}, up)
	require.NoError(t, err)
	assert.Equal(t, 20, bill.Pct)

	bill, err = BuildBill("a@a", Fields{Amount: "1", Date: "2024-03-01", Pct: "10%"}, up)
	require.NoError(t, err)
	assert.Equal(t, 10, bill.Pct)
}

func TestBuildBill_InvalidAmount(t *testing.T) {
	for _, amount := range []string{"abc", "", "0", "-5", "99999999999999999999"} {
		_, err := BuildBill("a@a", Fields{Amount: amount}, Upload{FileName: "a.png"})
		assert.ErrorIs(t, err, ErrInvalidAmount, amount)
	}
}

func TestBuildBill_InvalidDate(t *testing.T) {
	for _, date := range []string{"", "01/03/2024", "2024-13-01"} {
		_, err := BuildBill("a@a", Fields{Amount: "10", Date: date}, Upload{FileName: "a.png"})
		assert.ErrorIs(t, err, ErrInvalidDate, date)
	}
}

func TestBuildBill_PctOverflow(t *testing.T) {
	bill, err := BuildBill("a@a", Fields{Amount: "1", Date: "2024-03-01", Pct: "99999999999999999999"}, Upload{FileName: "a.png"})
	require.NoError(t, err)
	assert.Equal(t, DefaultPct, bill.Pct)
}

func TestParseLeadingInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"42", 42, true},
		{"  12.5", 12, true},
		{"-3", -3, true},
		{"+7€", 7, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{"99999999999999999999", 0, false},
		{"-99999999999999999999", 0, false},
		{"2147483647", 2147483647, true},
	}
	for _, c := range cases {
		got, ok := parseLeadingInt(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}
