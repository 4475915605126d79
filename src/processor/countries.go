package processor

// DefaultCountryISO maps the country names appearing in the traffic
// data to ISO3 codes for the map chart. An empty code keeps the
// country in the aggregates but leaves it off the map. The table is
// returned fresh on every call so callers can extend their copy
// without touching anyone else's.
func DefaultCountryISO() map[string]string {
	return map[string]string{
		"USA": "USA", "UK": "GBR", "New Zealand": "NZL", "Singapore": "SGP",
		"Japan": "JPN", "Hong Kong": "HKG", "Germany": "DEU", "Malaysia": "MYS",
		"Indonesia": "IDN", "Canada": "CAN", "Thailand": "THA", "Fiji": "FJI",
		"United Arab Emirates": "ARE", "Philippines": "PHL", "Italy": "ITA",
		"Papua New Guinea": "PNG", "France": "FRA", "India": "IND", "Korea": "KOR",
		"South Africa": "ZAF", "Netherlands": "NLD", "Taiwan": "TWN",
		"China": "CHN", "Greece": "GRC", "Switzerland": "CHE", "Ireland": "IRL",
		"Austria": "AUT", "Sweden": "SWE", "Denmark": "DNK", "Norway": "NOR",
		"Spain": "ESP", "Yugoslavia": "YUG", "Western Samoa": "WSM", "Cook Islands": "COK",
		"Vanuatu": "VUT", "Solomon Islands": "SLB", "New Caledonia": "NCL", "Tahiti": "PYF",
		"Tonga": "TON", "Nauru": "NRU", "Mauritius": "MUS", "Zimbabwe": "ZWE",
		"Bahrain": "BHR", "Saudi Arabia": "SAU", "Brunei": "BRN", "Sri Lanka": "LKA",
		"Pakistan": "PAK", "Bangladesh": "BGD", "Egypt": "EGY", "Kenya": "KEN",
		"Zambia": "ZMB", "Argentina": "ARG", "Brazil": "BRA", "Chile": "CHL",
		"Mexico": "MEX",
		"Other": "", // catch-all bucket, never mapped
	}
}
