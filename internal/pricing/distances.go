package pricing

// DefaultDistance is used when neither the city nor the country is known.
const DefaultDistance = 2500.0

// Distances from the Muğla depot in kilometres.
var cityDistances = map[string]float64{
	"Istanbul": 650,
	"Ankara":   570,
	"Izmir":    150,
	"Antalya":  280,
	"Bursa":    500,

	"Berlin":    3000,
	"Paris":     3200,
	"London":    3500,
	"Rome":      2100,
	"Madrid":    3800,
	"Vienna":    2300,
	"Amsterdam": 3300,
	"Brussels":  3250,
	"Athens":    750,
	"Sofia":     800,

	"Dubai":     3500,
	"Abu Dhabi": 3600,
	"Riyadh":    2800,
	"Kuwait":    2500,
	"Doha":      3200,

	"Tokyo":     11000,
	"Beijing":   9000,
	"Shanghai":  9500,
	"Hong Kong": 9800,
	"Singapore": 9200,
	"Bangkok":   8500,

	"New York":    9500,
	"Los Angeles": 12000,
	"Chicago":     10000,
	"Miami":       10500,
	"Toronto":     9800,

	"Sydney":    15000,
	"Melbourne": 15200,
	"Mumbai":    6500,
	"Cairo":     1800,
}

var countryDistances = map[string]float64{
	"Turkey":         400,
	"Germany":        3000,
	"France":         3200,
	"UK":             3500,
	"United Kingdom": 3500,
	"Italy":          2100,
	"Spain":          3800,
	"Netherlands":    3300,
	"Belgium":        3250,
	"Greece":         750,
	"Bulgaria":       800,
	"UAE":            3500,
	"Saudi Arabia":   2800,
	"Kuwait":         2500,
	"Qatar":          3200,
	"Japan":          11000,
	"China":          9000,
	"Singapore":      9200,
	"Thailand":       8500,
	"USA":            10000,
	"United States":  10000,
	"Canada":         9800,
	"Australia":      15000,
	"India":          6500,
	"Egypt":          1800,
}

// Distance resolves the distance to a destination: city first, then country, then DefaultDistance.
func Distance(city, country string) float64 {
	if d, ok := cityDistances[city]; ok {
		return d
	}
	if d, ok := countryDistances[country]; ok {
		return d
	}
	return DefaultDistance
}
