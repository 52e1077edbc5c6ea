package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Blue Bottle", "blue-bottle"},
		{"  Café -- Noir!! ", "caf-noir"},
		{"Joe's #1 Coffee", "joe-s-1-coffee"},
		{"***", "business"},
		{"", "business"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.name))
		})
	}

	assert.Equal(t, "cafe", SlugCandidate("cafe", 1))
	assert.Equal(t, "cafe-3", SlugCandidate("cafe", 3))
}

func TestBusinessPatchApply(t *testing.T) {
	b := &Business{
		Name:           "Old",
		Phone:          strPtr("555"),
		PrimaryColor:   strPtr("#000"),
		CustomLinkURL:  strPtr("https://old.example"),
		CustomLinkText: strPtr("Old link"),
	}

	patch := BusinessPatch{
		Name:         strPtr(""),
		Phone:        strPtr("777"),
		PrimaryColor: nil,
	}
	assert.False(t, patch.NameChanged(b.Name))
	patch.Apply(b)

	assert.Equal(t, "Old", b.Name)
	assert.Equal(t, "777", *b.Phone)
	assert.Equal(t, "#000", *b.PrimaryColor)
	assert.Nil(t, b.CustomLinkURL)
	assert.Nil(t, b.CustomLinkText)

	assert.True(t, BusinessPatch{Name: strPtr("New")}.NameChanged("Old"))
	assert.False(t, BusinessPatch{Name: strPtr("OLD")}.NameChanged("Old"))
}

func TestNormalizeOptional(t *testing.T) {
	assert.Nil(t, NormalizeOptional(nil))
	assert.Nil(t, NormalizeOptional(strPtr("   ")))
	assert.Equal(t, "x", *NormalizeOptional(strPtr(" x ")))
}

func TestParsePrice(t *testing.T) {
	p, err := ParsePrice(" $4.50 ")
	require.NoError(t, err)
	assert.True(t, p.Equal(decimal.RequireFromString("4.5")))

	p, err = ParsePrice("0")
	require.NoError(t, err)
	assert.True(t, p.IsZero())

	p, err = ParsePrice("99999999.99")
	require.NoError(t, err)
	assert.True(t, p.Equal(MaxAmount))

	p, err = ParsePrice("0.0625")
	require.NoError(t, err)
	assert.False(t, IsWholeCents(p))

	p, err = ParsePrice("2.500")
	require.NoError(t, err)
	assert.True(t, IsWholeCents(p))

	for _, raw := range []string{"", "abc", "-1", "$", "100000000", "99999999.995", "1e9"} {
		_, err := ParsePrice(raw)
		var ve *ValidationError
		assert.True(t, errors.As(err, &ve), raw)
	}
}

func TestNewOrderComputesTotals(t *testing.T) {
	order, err := NewOrder(" Ada ", "555-0100", strPtr(""), "10:30", nil, []LineInput{
		{Name: "Latte", Price: "4.50", Quantity: 2, Category: "coffee"},
		{Name: "Scone", Price: "$3.25", Quantity: 1},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Ada", order.CustomerName)
	assert.Nil(t, order.CustomerEmail)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, "12.25", order.Subtotal.StringFixed(2))
	assert.Equal(t, "0.98", order.Tax.StringFixed(2))
	assert.Equal(t, "13.23", order.Total.StringFixed(2))
}

func TestNewOrderRoundsTax(t *testing.T) {
	order, err := NewOrder("Ada", "555", nil, "now", nil, []LineInput{{Name: "Drip", Price: "1.99", Quantity: 3}}, nil)
	require.NoError(t, err)

	// 5.97 * 0.08 = 0.4776
	assert.Equal(t, "5.97", order.Subtotal.StringFixed(2))
	assert.Equal(t, "0.48", order.Tax.StringFixed(2))
	assert.Equal(t, "6.45", order.Total.StringFixed(2))
}

func TestNewOrderTotalMatchesTaxedSubtotal(t *testing.T) {
	carts := [][]LineInput{
		{{Name: "Drip", Price: "0.06", Quantity: 1}},
		{{Name: "Drip", Price: "0.01", Quantity: 7}},
		{{Name: "Latte", Price: "4.55", Quantity: 3}, {Name: "Scone", Price: "2.19", Quantity: 1}},
		{{Name: "Beans", Price: "18.37", Quantity: 11}, {Name: "Mug", Price: "0.99", Quantity: 2}},
	}
	for _, lines := range carts {
		order, err := NewOrder("Ada", "555", nil, "now", nil, lines, nil)
		require.NoError(t, err)

		sum := decimal.Zero
		for _, l := range lines {
			sum = sum.Add(decimal.RequireFromString(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		want := sum.Mul(decimal.RequireFromString("1.08")).Round(2)
		assert.True(t, order.Total.Equal(want), "total %s want %s", order.Total, want)
		assert.True(t, order.Subtotal.Equal(sum))
		assert.True(t, order.Subtotal.Add(order.Tax).Equal(order.Total))
	}
}

func TestNewOrderRejectsSubCentPrice(t *testing.T) {
	_, err := NewOrder("Ada", "555", nil, "now", nil, []LineInput{{Name: "Drip", Price: "0.0625", Quantity: 1}}, nil)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, `Item 1: invalid price "0.0625"`, ve.Message)
}

func TestNewOrderRejectsAmountsOverColumnLimit(t *testing.T) {
	_, err := NewOrder("Ada", "555", nil, "now", nil, []LineInput{{Name: "Espresso machine", Price: "60000000", Quantity: 2}}, nil)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Item 1: line total exceeds the maximum amount", ve.Message)

	_, err = NewOrder("Ada", "555", nil, "now", nil, []LineInput{{Name: "Espresso machine", Price: "99999999.99", Quantity: 1}}, nil)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Order total exceeds the maximum amount", ve.Message)

	order, err := NewOrder("Ada", "555", nil, "now", nil, []LineInput{{Name: "Grinder", Price: "92592592.58", Quantity: 1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "99999999.99", order.Total.StringFixed(2))
}

func TestNewOrderValidation(t *testing.T) {
	line := []LineInput{{Name: "Latte", Price: "4", Quantity: 1}}

	tests := []struct {
		name    string
		build   func() (*Order, error)
		message string
	}{
		{"missing name", func() (*Order, error) { return NewOrder("", "555", nil, "10:00", nil, line, nil) }, "Missing required fields"},
		{"missing phone", func() (*Order, error) { return NewOrder("Ada", " ", nil, "10:00", nil, line, nil) }, "Missing required fields"},
		{"missing pickup", func() (*Order, error) { return NewOrder("Ada", "555", nil, "", nil, line, nil) }, "Missing required fields"},
		{"no items", func() (*Order, error) { return NewOrder("Ada", "555", nil, "10:00", nil, nil, nil) }, "Missing required fields"},
		{"zero quantity", func() (*Order, error) {
			return NewOrder("Ada", "555", nil, "10:00", nil, []LineInput{{Name: "Latte", Price: "4", Quantity: 0}}, nil)
		}, "Item 1: quantity must be at least 1"},
		{"bad price", func() (*Order, error) {
			return NewOrder("Ada", "555", nil, "10:00", nil, []LineInput{{Name: "Latte", Price: "free", Quantity: 1}}, nil)
		}, `Item 1: invalid price "free"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.message, ve.Message)
		})
	}
}

func TestOrderNumbers(t *testing.T) {
	now := time.UnixMilli(1_700_000_123_456)
	assert.Equal(t, "ORD123456", TimeOrderNumber(now))

	n, err := RandomOrderNumber()
	require.NoError(t, err)
	assert.Regexp(t, `^ORD\d{6}$`, n)
}

func TestStatus(t *testing.T) {
	s, err := ParseStatus("ready")
	require.NoError(t, err)
	assert.Equal(t, StatusReady, s)

	_, err = ParseStatus("Ready")
	assert.Error(t, err)

	order := &Order{Status: StatusCompleted}
	require.NoError(t, order.TransitionTo(StatusPending))
	assert.Equal(t, StatusPending, order.Status)
	assert.Error(t, order.TransitionTo("shipped"))
}

func TestImportRowToInput(t *testing.T) {
	in, err := ImportRow{Name: " Mocha ", Price: "$5.25", Category: "coffee", Description: " "}.ToInput(1)
	require.NoError(t, err)
	assert.Equal(t, "Mocha", in.Name)
	assert.Nil(t, in.Description)
	assert.True(t, in.IsAvailable)
	assert.True(t, in.Price.Equal(decimal.RequireFromString("5.25")))

	_, err = ImportRow{Name: "Mocha", Category: "coffee"}.ToInput(2)
	assert.EqualError(t, err, "Row 2: Missing required fields (name, price, category)")

	_, err = ImportRow{Name: "Mocha", Price: "-1", Category: "coffee"}.ToInput(3)
	assert.EqualError(t, err, `Row 3: Invalid price "-1"`)
}

func TestMenuItemInputValidate(t *testing.T) {
	price := decimal.RequireFromString("4.555")
	in := MenuItemInput{Name: " Latte ", Category: " coffee ", Price: &price, ImageURL: strPtr("")}
	require.NoError(t, in.Validate())
	assert.Nil(t, in.ImageURL)

	item := &MenuItem{BusinessID: 9}
	in.Apply(item)
	assert.Equal(t, "Latte", item.Name)
	assert.Equal(t, int64(9), item.BusinessID)
	assert.Equal(t, "4.56", item.Price.StringFixed(2))

	missing := MenuItemInput{Name: "Latte", Category: "coffee"}
	assert.EqualError(t, missing.Validate(), "Name, price, and category are required")

	huge := decimal.RequireFromString("100000000")
	tooBig := MenuItemInput{Name: "Latte", Category: "coffee", Price: &huge}
	assert.EqualError(t, tooBig.Validate(), "Price exceeds the maximum amount")
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	start, end := DayBounds(time.Date(2024, 3, 2, 2, 0, 0, 0, loc))

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}
