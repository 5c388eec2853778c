package categorize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-categorizer/internal/models"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name        string
		description string
		amount      string
		expected    string
	}{
		{"payment phrase", "Payment Thank You-Mobile", "500.00", PaymentCredit},
		{"negative amount", "RANDOM REFUND", "-12.00", PaymentCredit},
		{"negative beats merchant", "AMAZON MKTPLACE RETURN", "-23.45", PaymentCredit},
		{"membership fee", "ANNUAL MEMBERSHIP FEE", "95.00", Fees},
		{"plan fee shadows credit card fees", "PLAN FEE - AMAZON", "1.72", Fees},
		{"interest", "PURCHASE INTEREST CHARGE", "14.02", InterestCharged},
		{"amazon", "AMAZON MKTPLACE 1PL", "23.45", OnlineShoppingAmazon},
		{"amazon beats prime videos", "AMAZON PRIME VIDEOS", "8.99", OnlineShoppingAmazon},
		{"helium", "HELIUM MOBILE", "20.00", PhoneServices},
		{"google", "GOOGLE *YouTube", "13.99", DigitalGoogle},
		{"playstation", "PlayStation Network", "9.99", DigitalSony},
		{"groceries", "TRADER JOE S #123", "45.10", Groceries},
		{"farm substring", "FARMERS MARKET", "12.00", Groceries},
		{"utilities", "SQ *SMART ENERGY PROS", "120.00", Utilities},
		{"home improvement beats gas", "LANSING BP LANH GAS", "30.00", HomeImprovement},
		{"prime videos", "PRIME VIDEOS CHANNELS", "4.99", EntertainmentSubs},
		{"servers", "HETZNER ONLINE GMBH", "5.00", CryptoServers},
		{"telegram", "TELEGRAM PREMIUM", "4.99", CommunicationApp},
		{"ikea", "IKEA BALTIMORE", "150.00", HomeInventory},
		{"coffee", "THE FILLING STATION", "6.50", Coffee},
		{"clothing", "AMERICAN EAGLE OUTFITTERS", "40.00", Clothing},
		{"dining merchant", "GONGCHA ELLICOTT", "7.00", DiningOut},
		{"costco", "COSTCO WHSE #0201", "210.00", Essentials},
		{"costco gas stays essentials", "COSTCO GAS #0201", "40.00", Essentials},
		{"dining keyword", "STARBUCKS STORE 1234", "5.25", DiningOut},
		{"alcohol", "TOTAL WINES & MORE", "30.00", Alcohol},
		{"transport", "UBER *TRIP", "18.00", Transportation},
		{"gas", "SUNOCO 0363", "35.00", Gas},
		{"auto parts", "ADVANCE AUTO PARTS", "22.00", CarMaintenance},
		{"car fees", "MD MVA EZMD", "135.00", CarFees},
		{"merchandise", "TARGET 00012345", "60.00", GeneralMerchandise},
		{"health", "CVS/PHARMACY #1234", "11.00", Health},
		{"home broad match", "THE HOME DEPOT", "80.00", HomeInventory},
		{"parking", "SPOTHERO 123", "12.00", Parking},
		{"subscriptions", "LINKEDIN PREMIUM", "39.99", Subscriptions},
		{"fallback", "UNKNOWN MERCHANT", "1.00", Miscellaneous},
		{"empty description", "", "0.00", Miscellaneous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categorize(tt.description, decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCategorize_Deterministic(t *testing.T) {
	amount := decimal.RequireFromString("23.45")
	first := Categorize("AMAZON MKTPLACE 1PL", amount)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, Categorize("AMAZON MKTPLACE 1PL", amount))
	}
}

func TestCategorize_AlwaysKnownLabel(t *testing.T) {
	known := make(map[string]bool)
	for _, l := range Labels() {
		known[l] = true
	}

	inputs := []string{"", "x", "home", "plan fee", "7-eleven", "sq *smart energy pros", "ÜNICODE CAFÉ"}
	for _, in := range inputs {
		for _, amt := range []string{"-1.00", "0.00", "1.00"} {
			got := Categorize(in, decimal.RequireFromString(amt))
			assert.True(t, known[got], "unexpected label %q for %q", got, in)
		}
	}
}

func TestEngine_FirstRuleWins(t *testing.T) {
	e := NewEngine([]Rule{
		{Label: "specific", Keywords: []string{"home improvement"}},
		{Label: "broad", Keywords: []string{"home"}},
	})

	assert.Equal(t, "specific", e.Categorize("HOME IMPROVEMENT STORE", decimal.NewFromInt(1)))
	assert.Equal(t, "broad", e.Categorize("HOME GOODS", decimal.NewFromInt(1)))
	assert.Equal(t, Miscellaneous, e.Categorize("OTHER", decimal.NewFromInt(1)))
}

func TestEngine_SharedKeyword(t *testing.T) {
	e := NewEngine([]Rule{
		{Label: "first", Keywords: []string{"fee"}},
		{Label: "second", Keywords: []string{"fee", "charge"}},
	})

	assert.Equal(t, "first", e.Categorize("LATE FEE", decimal.NewFromInt(1)))
	assert.Equal(t, "second", e.Categorize("LATE CHARGE", decimal.NewFromInt(1)))
}

func TestEngine_NoRules(t *testing.T) {
	e := NewEngine(nil)
	assert.Equal(t, Miscellaneous, e.Categorize("AMAZON", decimal.NewFromInt(-1)))
}

func TestApply(t *testing.T) {
	txns := []models.Transaction{
		{Description: "AMAZON MKTPLACE 1PL", Amount: decimal.RequireFromString("23.45")},
		{Description: "Payment Thank You-Mobile", Amount: decimal.RequireFromString("-500.00")},
	}

	Apply(txns)

	assert.Equal(t, OnlineShoppingAmazon, txns[0].Category)
	assert.Equal(t, PaymentCredit, txns[1].Category)
}

func TestLabels(t *testing.T) {
	labels := Labels()
	require.NotEmpty(t, labels)
	assert.Equal(t, PaymentCredit, labels[0])
	assert.Equal(t, Miscellaneous, labels[len(labels)-1])

	seen := make(map[string]bool)
	for _, l := range labels {
		assert.False(t, seen[l], "duplicate label %q", l)
		seen[l] = true
	}
	assert.True(t, seen[CreditCardFees])
}

func TestSummarize(t *testing.T) {
	txns := []models.Transaction{
		{Category: Groceries, Amount: decimal.RequireFromString("10.00")},
		{Category: Groceries, Amount: decimal.RequireFromString("5.50")},
		{Category: DiningOut, Amount: decimal.RequireFromString("30.00")},
		{Category: PaymentCredit, Amount: decimal.RequireFromString("-100.00")},
		{Amount: decimal.RequireFromString("1.00")},
	}

	totals := Summarize(txns)
	require.Len(t, totals, 4)

	assert.Equal(t, DiningOut, totals[0].Category)
	assert.Equal(t, Groceries, totals[1].Category)
	assert.Equal(t, 2, totals[1].Count)
	assert.Equal(t, "15.50", totals[1].Total.StringFixed(2))
	assert.Equal(t, Miscellaneous, totals[2].Category)
	assert.Equal(t, PaymentCredit, totals[3].Category)
}
