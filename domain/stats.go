package domain

// StatsRepository defines the interface for retrieving summary statistics from the snapshot store.
type StatsRepository interface {
	// CountLaunches returns the total number of stored launch records.
	CountLaunches() (int, error)
	// CountSites returns the number of distinct launch sites.
	CountSites() (int, error)
	// CountSuccesses returns the number of records with a successful outcome.
	CountSuccesses() (int, error)
	// PayloadBounds returns the smallest and largest stored payload mass.
	// Both values are 0 when the store is empty.
	PayloadBounds() (min float64, max float64, err error)
}
