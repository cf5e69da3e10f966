package tools

// Tool inputs. Fields without omitempty are required by the generated schema.

type SearchLocationInput struct {
	Query string `json:"query" jsonschema:"place name to search for, e.g. 'Springfield' or 'Waimea, US'"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of candidates, 1 to 5 (default 5)"`
}

type PlaceInput struct {
	Location string   `json:"location,omitempty" jsonschema:"place name such as 'London, GB' or a 'lat,lon' pair"`
	Lat      *float64 `json:"lat,omitempty" jsonschema:"latitude in decimal degrees, used together with lon"`
	Lon      *float64 `json:"lon,omitempty" jsonschema:"longitude in decimal degrees, used together with lat"`
}

type PlaceUnitsInput struct {
	Location string   `json:"location,omitempty" jsonschema:"place name such as 'London, GB' or a 'lat,lon' pair"`
	Lat      *float64 `json:"lat,omitempty" jsonschema:"latitude in decimal degrees, used together with lon"`
	Lon      *float64 `json:"lon,omitempty" jsonschema:"longitude in decimal degrees, used together with lat"`
	Units    string   `json:"units,omitempty" jsonschema:"metric, imperial or standard (default metric)"`
}

type HourlyForecastInput struct {
	Location string   `json:"location,omitempty" jsonschema:"place name such as 'London, GB' or a 'lat,lon' pair"`
	Lat      *float64 `json:"lat,omitempty" jsonschema:"latitude in decimal degrees, used together with lon"`
	Lon      *float64 `json:"lon,omitempty" jsonschema:"longitude in decimal degrees, used together with lat"`
	Units    string   `json:"units,omitempty" jsonschema:"metric, imperial or standard (default metric)"`
	Cnt      int      `json:"cnt,omitempty" jsonschema:"number of hourly steps to return, up to 96"`
}

type HistoricalWeatherInput struct {
	Location string   `json:"location,omitempty" jsonschema:"place name such as 'London, GB' or a 'lat,lon' pair"`
	Lat      *float64 `json:"lat,omitempty" jsonschema:"latitude in decimal degrees, used together with lon"`
	Lon      *float64 `json:"lon,omitempty" jsonschema:"longitude in decimal degrees, used together with lat"`
	Date     string   `json:"date" jsonschema:"Unix timestamp, YYYY-MM-DD (noon local time) or RFC 3339 time"`
	Units    string   `json:"units,omitempty" jsonschema:"metric, imperial or standard (default metric)"`
}

type LocationCoordinatesInput struct {
	Location string `json:"location" jsonschema:"place name to look up"`
}

type WeatherByZipInput struct {
	ZipCode     string `json:"zip_code" jsonschema:"ZIP or postal code"`
	CountryCode string `json:"country_code,omitempty" jsonschema:"ISO 3166 two-letter country code, e.g. US, GB, CA"`
	Units       string `json:"units,omitempty" jsonschema:"metric, imperial or standard (default metric)"`
}

type WeatherMapInput struct {
	Layer string `json:"layer" jsonschema:"one of temp_new, precipitation_new, clouds_new, pressure_new, wind_new"`
	Z     int    `json:"z" jsonschema:"zoom level, 0 to 15"`
	X     int    `json:"x" jsonschema:"tile x coordinate"`
	Y     int    `json:"y" jsonschema:"tile y coordinate"`
}
