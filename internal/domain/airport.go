package domain

type Country struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	Continent        string `json:"continent"`
	OfficialLanguage string `json:"official_language"`
	SchengenMember   bool   `json:"schengen_member"`
}

type Airport struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	CountryCode string `json:"country_code"`
	Terminals   int    `json:"terminals"`
}

type Airline struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	IATACode        string `json:"iata_code"`
	ICAOCode        string `json:"icao_code"`
	Headquarters    string `json:"headquarters"`
	YearFounded     int    `json:"year_founded"`
	BaseAirportCode string `json:"base_airport_code"`
}
