package catalog

var defaultCountries = []string{
	"China", "India", "United States", "Indonesia", "Pakistan",
	"Brazil", "Nigeria", "Bangladesh", "Russia", "Mexico",
	"Japan", "Ethiopia", "Philippines", "Egypt", "Vietnam",
	"DR Congo", "Turkey", "Iran", "Germany", "Thailand",
}

var defaultRegions = map[Region][]string{
	Asia: {"China", "India", "Indonesia", "Pakistan", "Bangladesh",
		"Japan", "Philippines", "Vietnam", "Iran", "Thailand"},
	Europe:       {"Russia", "Germany", "Turkey"},
	NorthAmerica: {"United States", "Mexico"},
	SouthAmerica: {"Brazil"},
	Africa:       {"Nigeria", "Ethiopia", "Egypt", "DR Congo"},
}

// 1950 populations in millions.
var defaultBaseMillions = map[string]int64{
	"China": 550, "India": 350, "United States": 150, "Indonesia": 70,
	"Pakistan": 40, "Brazil": 50, "Nigeria": 30, "Bangladesh": 40,
	"Russia": 100, "Mexico": 30, "Japan": 80, "Ethiopia": 20,
	"Philippines": 20, "Egypt": 20, "Vietnam": 25, "DR Congo": 15,
	"Turkey": 20, "Iran": 20, "Germany": 70, "Thailand": 20,
}

var defaultAged = map[string]bool{"China": true}

// Default returns the built-in 20-country catalog.
func Default() (*Catalog, error) {
	entries := make([]Entry, 0, len(defaultCountries))
	for _, name := range defaultCountries {
		// a missing base entry leaves 0 here, which New rejects
		e := Entry{Name: name, BasePopulation: defaultBaseMillions[name] * 1_000_000}
		if defaultAged[name] {
			e.AgeStructure = Aged
		}
		entries = append(entries, e)
	}
	return New(entries, defaultRegions)
}

// MustDefault is like Default but panics on malformed built-in data.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}
