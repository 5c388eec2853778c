// Package categorize assigns a spending category to statement transactions.
package categorize

// Category labels. The set is fixed; Miscellaneous is returned when no rule
// matches.
const (
	PaymentCredit        = "Payment/Credit"
	Fees                 = "Fees"
	InterestCharged      = "Interest Charged"
	OnlineShoppingAmazon = "Online Shopping - Amazon"
	PhoneServices        = "Phone services"
	DigitalGoogle        = "Digital Services / Google"
	DigitalSony          = "Digital Services/ Sony"
	Groceries            = "Groceries"
	Utilities            = "Utilities"
	HomeImprovement      = "Home improvement"
	EntertainmentSubs    = "Entertainment / Subscriptions"
	CryptoServers        = "Crypto/Servers"
	CommunicationApp     = "Communication / App"
	HomeInventory        = "Home inventory"
	Coffee               = "Coffee"
	Clothing             = "Clothing"
	DiningOut            = "Dining Out"
	Essentials           = "essentials"
	Alcohol              = "Alcohol"
	Transportation       = "Transportation"
	Gas                  = "Gas"
	CarMaintenance       = "Car maintenance"
	CarFees              = "Car fees"
	GeneralMerchandise   = "General Merchandise"
	Health               = "Health"
	Parking              = "Parking"
	CreditCardFees       = "Credit card fees"
	Subscriptions        = "subscriptions"
	Miscellaneous        = "Miscellaneous"
)

// Rule maps any of its keywords (lower case substrings of the description)
// to a label. A Credit rule also matches every negative amount.
type Rule struct {
	Label    string
	Keywords []string
	Credit   bool
}

// DefaultRules returns the built-in rule list. Order is priority: the first
// matching rule wins, so broad keywords such as "home" or "gas" sit below
// the specific merchants they would otherwise shadow.
func DefaultRules() []Rule {
	return []Rule{
		{Label: PaymentCredit, Keywords: []string{"payment thank you"}, Credit: true},
		{Label: Fees, Keywords: []string{"annual membership fee", "plan fee"}},
		{Label: InterestCharged, Keywords: []string{"purchase interest charge"}},

		// merchants
		{Label: OnlineShoppingAmazon, Keywords: []string{"amazon"}},
		{Label: PhoneServices, Keywords: []string{"helium"}},
		{Label: DigitalGoogle, Keywords: []string{"google"}},
		{Label: DigitalSony, Keywords: []string{"playstation"}},
		{Label: Groceries, Keywords: []string{
			"sun fresh produce", "js produce", "trader joe", "fresh market", "wegmans",
			"haris teeter", "aldi", "global store", "giant", "farm", "lidl",
		}},
		{Label: Utilities, Keywords: []string{"sq *smart energy pros"}},
		{Label: HomeImprovement, Keywords: []string{"lansing bp lanh"}},
		{Label: EntertainmentSubs, Keywords: []string{"prime videos"}},
		{Label: CryptoServers, Keywords: []string{"hetzner online", "contabo", "travchis"}},
		{Label: CommunicationApp, Keywords: []string{"telegram"}},
		{Label: HomeInventory, Keywords: []string{"ikea", "lowes"}},
		{Label: Coffee, Keywords: []string{"filling station", "black eyed susan"}},
		{Label: Clothing, Keywords: []string{"american eagle", "tjmax", "ross store", "j crew"}},
		{Label: DiningOut, Keywords: []string{"californiapizzakithen", "gongcha", "glyndongrill", "royal"}},
		{Label: Essentials, Keywords: []string{"costco"}},

		// general keywords
		{Label: DiningOut, Keywords: []string{
			"restaurant", "cafe", "starbucks", "pizza", "taco", "panera", "grill", "7-eleven",
		}},
		{Label: Alcohol, Keywords: []string{"wines", "beer", "liquor", "spirit"}},
		{Label: Transportation, Keywords: []string{"uber", "lyft", "taxi"}},
		{Label: Gas, Keywords: []string{"oil", "sunoco", "gas", "exxon"}},
		{Label: CarMaintenance, Keywords: []string{"auto parts"}},
		{Label: CarFees, Keywords: []string{"ezmd", "mva"}},
		{Label: GeneralMerchandise, Keywords: []string{"walmart", "target", "marshalls"}},
		{Label: Health, Keywords: []string{"pharmacy", "cvs", "walgreens"}},
		{Label: HomeInventory, Keywords: []string{"home"}},
		{Label: Parking, Keywords: []string{"spothero"}},
		// never reached: "plan fee" is already Fees above
		{Label: CreditCardFees, Keywords: []string{"plan fee"}},
		{Label: Subscriptions, Keywords: []string{"linkedin", "codecademy", "discord"}},
	}
}

// Labels returns every label Categorize can produce, in rule order,
// without duplicates and ending with Miscellaneous.
func Labels() []string {
	seen := make(map[string]bool)
	var labels []string
	for _, r := range DefaultRules() {
		if seen[r.Label] {
			continue
		}
		seen[r.Label] = true
		labels = append(labels, r.Label)
	}
	return append(labels, Miscellaneous)
}
