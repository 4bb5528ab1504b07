package airports

import "github.com/jengzang/flightarcs-backend-go/internal/models"

func large(iata, icao, name, city, country string, lat, lon float64) models.Airport {
	return models.Airport{
		IATA: iata, ICAO: icao, Name: name, City: city, Country: country,
		Latitude: lat, Longitude: lon,
		Type: models.AirportTypeLarge, ScheduledService: true,
	}
}

// Seed is the built-in airport set loaded into an empty database.
var Seed = []models.Airport{
	// North America
	large("LAX", "KLAX", "Los Angeles International", "Los Angeles", "US", 33.9416, -118.4085),
	large("JFK", "KJFK", "John F Kennedy International", "New York", "US", 40.6413, -73.7781),
	large("ORD", "KORD", "Chicago O'Hare International", "Chicago", "US", 41.9786, -87.9048),
	large("DFW", "KDFW", "Dallas/Fort Worth International", "Dallas", "US", 32.8998, -97.0403),
	large("SFO", "KSFO", "San Francisco International", "San Francisco", "US", 37.6213, -122.3790),
	large("YYZ", "CYYZ", "Toronto Pearson International", "Toronto", "CA", 43.6777, -79.6248),
	large("MEX", "MMMX", "Mexico City International", "Mexico City", "MX", 19.4363, -99.0721),
	{
		IATA: "MCE", ICAO: "KMCE", Name: "Merced Regional Macready Field", City: "Merced", Country: "US",
		Latitude: 37.284698, Longitude: -120.514, AltitudeM: 155 * feetToMeters,
		Type: models.AirportTypeMedium, ScheduledService: true,
	},

	// Europe
	large("LHR", "EGLL", "London Heathrow", "London", "GB", 51.4700, -0.4543),
	large("CDG", "LFPG", "Paris Charles de Gaulle", "Paris", "FR", 49.0097, 2.5479),
	large("FRA", "EDDF", "Frankfurt Airport", "Frankfurt", "DE", 50.0379, 8.5622),
	large("AMS", "EHAM", "Amsterdam Schiphol", "Amsterdam", "NL", 52.3086, 4.7639),
	large("MAD", "LEMD", "Madrid Barajas", "Madrid", "ES", 40.4983, -3.5676),
	large("BCN", "LEBL", "Barcelona El Prat", "Barcelona", "ES", 41.2974, 2.0833),

	// Asia
	large("HND", "RJTT", "Tokyo Haneda", "Tokyo", "JP", 35.5494, 139.7798),
	large("NRT", "RJAA", "Tokyo Narita", "Narita", "JP", 35.7720, 140.3929),
	large("PEK", "ZBAA", "Beijing Capital", "Beijing", "CN", 40.0799, 116.6031),
	large("DXB", "OMDB", "Dubai International", "Dubai", "AE", 25.2532, 55.3657),
	large("SIN", "WSSS", "Singapore Changi", "Singapore", "SG", 1.3644, 103.9915),
	large("BOM", "VABB", "Mumbai Chhatrapati Shivaji", "Mumbai", "IN", 19.0897, 72.8656),

	// Oceania
	large("SYD", "YSSY", "Sydney Kingsford Smith", "Sydney", "AU", -33.9399, 151.1753),
	large("AKL", "NZAA", "Auckland Airport", "Auckland", "NZ", -37.0082, 174.7850),
}
