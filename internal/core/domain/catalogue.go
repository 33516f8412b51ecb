package domain

// AppTitle is the product name shown in headers.
const AppTitle = "WorldPincode"

// AppDescription is the one-line product description.
const AppDescription = "Search for postal codes, zip codes, and pincodes globally."

// SuggestedQueries are example quick searches offered on an empty screen.
func SuggestedQueries() []string {
	return []string{
		"New York 10001",
		"Postcodes in London",
		"90210",
		"Pincodes for Bangalore",
		"Paris districts",
		"Zip code for Sydney Opera House",
	}
}

// CommonCountries is the fixed country list for the detailed form.
// Country is never fetched; every other level is.
func CommonCountries() []string {
	return []string{
		"United States", "United Kingdom", "Canada", "India", "Australia",
		"Germany", "France", "Japan", "China", "Brazil", "Mexico",
		"Italy", "Spain", "Russia", "South Korea", "Netherlands",
		"Turkey", "Switzerland", "Sweden", "Poland", "Belgium",
		"Argentina", "Norway", "Austria", "United Arab Emirates",
		"Singapore", "New Zealand", "Ireland", "Denmark", "Finland",
	}
}

// MajorCities are well-known cities used as quick-search hints.
func MajorCities() []string {
	return []string{
		"New York", "London", "Paris", "Tokyo", "Mumbai", "Delhi",
		"Bangalore", "Sydney", "Toronto", "Berlin", "Dubai",
		"Los Angeles", "Chicago", "Houston", "San Francisco",
		"Shanghai", "Beijing", "Moscow", "Seoul", "Sao Paulo",
		"Mexico City", "Istanbul", "Rome", "Madrid", "Amsterdam",
	}
}
