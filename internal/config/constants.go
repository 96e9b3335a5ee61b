package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./librarium.db"

	// DefaultLoanPeriodDays is how long a book may be kept before it is due
	DefaultLoanPeriodDays = 14
)
