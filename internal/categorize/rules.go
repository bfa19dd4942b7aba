package categorize

import "github.com/ewisehart/tally/internal/model"

// defaultRules is the built-in counterparty/keyword list, evaluated in
// order. Specific multi-word entries come before the short keywords they
// contain (UBER EATS before UBER). Matching is case-sensitive, so common
// statement casings appear as separate entries.
var defaultRules = []Rule{
	// Income
	{Keyword: "PAYROLL", Category: model.CategorySalary},
	{Keyword: "Payroll", Category: model.CategorySalary},
	{Keyword: "DIRECT DEP", Category: model.CategorySalary},
	{Keyword: "Direct Deposit", Category: model.CategorySalary},
	{Keyword: "SALARY", Category: model.CategorySalary},
	{Keyword: "Salary", Category: model.CategorySalary},
	{Keyword: "salary", Category: model.CategorySalary},
	{Keyword: "paycheck", Category: model.CategorySalary},
	{Keyword: "IRS TREAS", Category: model.CategorySalary},
	{Keyword: "TAX REF", Category: model.CategorySalary},

	// Transfers and payment services
	{Keyword: "PAYPAL", Category: model.CategoryTransfers},
	{Keyword: "PayPal", Category: model.CategoryTransfers},
	{Keyword: "Paypal", Category: model.CategoryTransfers},
	{Keyword: "paypal", Category: model.CategoryTransfers},
	{Keyword: "VENMO", Category: model.CategoryTransfers},
	{Keyword: "Venmo", Category: model.CategoryTransfers},
	{Keyword: "venmo", Category: model.CategoryTransfers},
	{Keyword: "ZELLE", Category: model.CategoryTransfers},
	{Keyword: "Zelle", Category: model.CategoryTransfers},
	{Keyword: "zelle", Category: model.CategoryTransfers},
	{Keyword: "COINBASE", Category: model.CategoryTransfers},
	{Keyword: "Coinbase", Category: model.CategoryTransfers},
	{Keyword: "WIRE TRANSFER", Category: model.CategoryTransfers},
	{Keyword: "Wire Transfer", Category: model.CategoryTransfers},

	// Dining (before Transport so UBER EATS wins over UBER)
	{Keyword: "UBER EATS", Category: model.CategoryDining},
	{Keyword: "Uber Eats", Category: model.CategoryDining},
	{Keyword: "DOORDASH", Category: model.CategoryDining},
	{Keyword: "DoorDash", Category: model.CategoryDining},
	{Keyword: "GRUBHUB", Category: model.CategoryDining},
	{Keyword: "STARBUCKS", Category: model.CategoryDining},
	{Keyword: "Starbucks", Category: model.CategoryDining},
	{Keyword: "MCDONALD", Category: model.CategoryDining},
	{Keyword: "CHIPOTLE", Category: model.CategoryDining},
	{Keyword: "restaurant", Category: model.CategoryDining},
	{Keyword: "Restaurant", Category: model.CategoryDining},
	{Keyword: "coffee", Category: model.CategoryDining},
	{Keyword: "lunch", Category: model.CategoryDining},
	{Keyword: "dinner", Category: model.CategoryDining},

	// Transport
	{Keyword: "UBER", Category: model.CategoryTransport},
	{Keyword: "Uber", Category: model.CategoryTransport},
	{Keyword: "LYFT", Category: model.CategoryTransport},
	{Keyword: "Lyft", Category: model.CategoryTransport},
	{Keyword: "SHELL OIL", Category: model.CategoryTransport},
	{Keyword: "CHEVRON", Category: model.CategoryTransport},
	{Keyword: "EXXON", Category: model.CategoryTransport},
	{Keyword: "gas station", Category: model.CategoryTransport},
	{Keyword: "parking", Category: model.CategoryTransport},
	{Keyword: "taxi", Category: model.CategoryTransport},
	{Keyword: "MTA", Category: model.CategoryTransport},
	{Keyword: "TRANSIT", Category: model.CategoryTransport},

	// Travel (before Housing so RENTAL CAR wins over rent)
	{Keyword: "AIRBNB", Category: model.CategoryTravel},
	{Keyword: "Airbnb", Category: model.CategoryTravel},
	{Keyword: "RENTAL CAR", Category: model.CategoryTravel},
	{Keyword: "CAR RENTAL", Category: model.CategoryTravel},
	{Keyword: "AIRLINES", Category: model.CategoryTravel},
	{Keyword: "DELTA AIR", Category: model.CategoryTravel},
	{Keyword: "UNITED AIR", Category: model.CategoryTravel},
	{Keyword: "HOTEL", Category: model.CategoryTravel},
	{Keyword: "Hotel", Category: model.CategoryTravel},
	{Keyword: "hotel", Category: model.CategoryTravel},
	{Keyword: "flight", Category: model.CategoryTravel},

	// Groceries
	{Keyword: "WHOLE FOODS", Category: model.CategoryGroceries},
	{Keyword: "Whole Foods", Category: model.CategoryGroceries},
	{Keyword: "TRADER JOE", Category: model.CategoryGroceries},
	{Keyword: "Trader Joe", Category: model.CategoryGroceries},
	{Keyword: "SAFEWAY", Category: model.CategoryGroceries},
	{Keyword: "KROGER", Category: model.CategoryGroceries},
	{Keyword: "ALDI", Category: model.CategoryGroceries},
	{Keyword: "COSTCO", Category: model.CategoryGroceries},
	{Keyword: "grocery", Category: model.CategoryGroceries},
	{Keyword: "groceries", Category: model.CategoryGroceries},
	{Keyword: "Groceries", Category: model.CategoryGroceries},

	// Entertainment
	{Keyword: "NETFLIX", Category: model.CategoryEntertainment},
	{Keyword: "Netflix", Category: model.CategoryEntertainment},
	{Keyword: "SPOTIFY", Category: model.CategoryEntertainment},
	{Keyword: "Spotify", Category: model.CategoryEntertainment},
	{Keyword: "HULU", Category: model.CategoryEntertainment},
	{Keyword: "STEAM", Category: model.CategoryEntertainment},
	{Keyword: "movie", Category: model.CategoryEntertainment},
	{Keyword: "concert", Category: model.CategoryEntertainment},

	// Shopping
	{Keyword: "AMAZON", Category: model.CategoryShopping},
	{Keyword: "Amazon", Category: model.CategoryShopping},
	{Keyword: "AMZN", Category: model.CategoryShopping},
	{Keyword: "TARGET", Category: model.CategoryShopping},
	{Keyword: "WALMART", Category: model.CategoryShopping},
	{Keyword: "WAL-MART", Category: model.CategoryShopping},
	{Keyword: "BEST BUY", Category: model.CategoryShopping},
	{Keyword: "EBAY", Category: model.CategoryShopping},
	{Keyword: "ETSY", Category: model.CategoryShopping},

	// Utilities & Bills
	{Keyword: "COMCAST", Category: model.CategoryUtilities},
	{Keyword: "XFINITY", Category: model.CategoryUtilities},
	{Keyword: "VERIZON", Category: model.CategoryUtilities},
	{Keyword: "T-MOBILE", Category: model.CategoryUtilities},
	{Keyword: "AT&T", Category: model.CategoryUtilities},
	{Keyword: "ELECTRIC", Category: model.CategoryUtilities},
	{Keyword: "electric bill", Category: model.CategoryUtilities},
	{Keyword: "water bill", Category: model.CategoryUtilities},
	{Keyword: "internet bill", Category: model.CategoryUtilities},
	{Keyword: "phone bill", Category: model.CategoryUtilities},
	{Keyword: "utility", Category: model.CategoryUtilities},
	{Keyword: "UTILITY", Category: model.CategoryUtilities},

	// Health
	{Keyword: "CVS", Category: model.CategoryHealth},
	{Keyword: "WALGREENS", Category: model.CategoryHealth},
	{Keyword: "PHARMACY", Category: model.CategoryHealth},
	{Keyword: "pharmacy", Category: model.CategoryHealth},
	{Keyword: "DENTAL", Category: model.CategoryHealth},
	{Keyword: "dental", Category: model.CategoryHealth},
	{Keyword: "doctor", Category: model.CategoryHealth},
	{Keyword: "clinic", Category: model.CategoryHealth},
	{Keyword: "gym", Category: model.CategoryHealth},
	{Keyword: "GYM", Category: model.CategoryHealth},

	// Housing & Rent
	{Keyword: "MORTGAGE", Category: model.CategoryHousing},
	{Keyword: "Mortgage", Category: model.CategoryHousing},
	{Keyword: "RENT PYMT", Category: model.CategoryHousing},
	{Keyword: "rent payment", Category: model.CategoryHousing},
	{Keyword: "Rent", Category: model.CategoryHousing},
	{Keyword: "rent", Category: model.CategoryHousing},
	{Keyword: "landlord", Category: model.CategoryHousing},

	// Cash & ATM
	{Keyword: "ATM", Category: model.CategoryCash},
	{Keyword: "CASH WITHDRAWAL", Category: model.CategoryCash},
	{Keyword: "Cash Redemption", Category: model.CategoryCash},
	{Keyword: "cash withdrawal", Category: model.CategoryCash},
}
