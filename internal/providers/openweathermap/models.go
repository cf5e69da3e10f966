package openweathermap

// Wire models for the OpenWeatherMap 2.5, 3.0 (One Call) and geocoding APIs.
// Optional upstream fields are pointers so that absence survives a round trip.

type Coord struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type WeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type MainReadings struct {
	Temp      float64  `json:"temp"`
	FeelsLike float64  `json:"feels_like"`
	TempMin   float64  `json:"temp_min"`
	TempMax   float64  `json:"temp_max"`
	Pressure  int      `json:"pressure"`
	Humidity  int      `json:"humidity"`
	SeaLevel  *int     `json:"sea_level,omitempty"`
	GrndLevel *int     `json:"grnd_level,omitempty"`
	TempKf    *float64 `json:"temp_kf,omitempty"`
}

type Wind struct {
	Speed float64  `json:"speed"`
	Deg   *int     `json:"deg,omitempty"`
	Gust  *float64 `json:"gust,omitempty"`
}

type Clouds struct {
	// All is cloudiness in percent.
	All *int `json:"all,omitempty"`
}

// Precipitation holds rain or snow volume in millimetres.
type Precipitation struct {
	OneHour   *float64 `json:"1h,omitempty"`
	ThreeHour *float64 `json:"3h,omitempty"`
}

type SystemData struct {
	Type    *int    `json:"type,omitempty"`
	ID      *int    `json:"id,omitempty"`
	Country *string `json:"country,omitempty"`
	Sunrise *int64  `json:"sunrise,omitempty"`
	Sunset  *int64  `json:"sunset,omitempty"`
}

// CurrentWeatherResponse is returned by /data/2.5/weather.
type CurrentWeatherResponse struct {
	Coord      Coord              `json:"coord"`
	Weather    []WeatherCondition `json:"weather"`
	Base       *string            `json:"base,omitempty"`
	Main       MainReadings       `json:"main"`
	Visibility *int               `json:"visibility,omitempty"`
	Wind       Wind               `json:"wind"`
	Clouds     Clouds             `json:"clouds"`
	Rain       *Precipitation     `json:"rain,omitempty"`
	Snow       *Precipitation     `json:"snow,omitempty"`
	Dt         int64              `json:"dt"`
	Sys        SystemData         `json:"sys"`
	Timezone   int                `json:"timezone"`
	ID         int                `json:"id"`
	Name       string             `json:"name"`
	Cod        int                `json:"cod"`
}

type ForecastItem struct {
	Dt         int64              `json:"dt"`
	Main       MainReadings       `json:"main"`
	Weather    []WeatherCondition `json:"weather"`
	Clouds     Clouds             `json:"clouds"`
	Wind       Wind               `json:"wind"`
	Visibility *int               `json:"visibility,omitempty"`
	Pop        *float64           `json:"pop,omitempty"`
	Rain       *Precipitation     `json:"rain,omitempty"`
	Snow       *Precipitation     `json:"snow,omitempty"`
	Sys        map[string]any     `json:"sys,omitempty"`
	DtTxt      *string            `json:"dt_txt,omitempty"`
}

type City struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Coord      Coord  `json:"coord"`
	Country    string `json:"country"`
	Population *int   `json:"population,omitempty"`
	Timezone   int    `json:"timezone"`
	Sunrise    int64  `json:"sunrise"`
	Sunset     int64  `json:"sunset"`
}

// ForecastResponse is returned by /data/2.5/forecast and /data/2.5/forecast/hourly.
// The upstream "cod" is a string here, unlike the current weather endpoint.
type ForecastResponse struct {
	Cod     string         `json:"cod"`
	Message *float64       `json:"message,omitempty"`
	Cnt     int            `json:"cnt"`
	List    []ForecastItem `json:"list"`
	City    City           `json:"city"`
}

type AirQualityComponents struct {
	CO   float64 `json:"co"`
	NO   float64 `json:"no"`
	NO2  float64 `json:"no2"`
	O3   float64 `json:"o3"`
	SO2  float64 `json:"so2"`
	PM25 float64 `json:"pm2_5"`
	PM10 float64 `json:"pm10"`
	NH3  float64 `json:"nh3"`
}

type AirQualityItem struct {
	Main struct {
		// AQI ranges from 1 (good) to 5 (very poor).
		AQI int `json:"aqi"`
	} `json:"main"`
	Components AirQualityComponents `json:"components"`
	Dt         int64                `json:"dt"`
}

// AirQualityResponse is returned by /data/2.5/air_pollution.
type AirQualityResponse struct {
	Coord Coord            `json:"coord"`
	List  []AirQualityItem `json:"list"`
}

// UVIndexResponse is returned by /data/2.5/uvi.
type UVIndexResponse struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	DateISO string  `json:"date_iso"`
	Date    int64   `json:"date"`
	Value   float64 `json:"value"`
}

type MinutelyForecast struct {
	Dt            int64   `json:"dt"`
	Precipitation float64 `json:"precipitation"`
}

// Conditions is a single One Call observation. It is used for "current",
// "hourly" and the timemachine "data" entries.
type Conditions struct {
	Dt         int64              `json:"dt"`
	Sunrise    *int64             `json:"sunrise,omitempty"`
	Sunset     *int64             `json:"sunset,omitempty"`
	Temp       float64            `json:"temp"`
	FeelsLike  float64            `json:"feels_like"`
	Pressure   int                `json:"pressure"`
	Humidity   int                `json:"humidity"`
	DewPoint   float64            `json:"dew_point"`
	UVI        *float64           `json:"uvi,omitempty"`
	Clouds     int                `json:"clouds"`
	Visibility *int               `json:"visibility,omitempty"`
	WindSpeed  float64            `json:"wind_speed"`
	WindDeg    int                `json:"wind_deg"`
	WindGust   *float64           `json:"wind_gust,omitempty"`
	Weather    []WeatherCondition `json:"weather"`
	Pop        *float64           `json:"pop,omitempty"`
	Rain       *Precipitation     `json:"rain,omitempty"`
	Snow       *Precipitation     `json:"snow,omitempty"`
}

type DailyTemperature struct {
	Day   float64 `json:"day"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Night float64 `json:"night"`
	Eve   float64 `json:"eve"`
	Morn  float64 `json:"morn"`
}

type DailyFeelsLike struct {
	Day   float64 `json:"day"`
	Night float64 `json:"night"`
	Eve   float64 `json:"eve"`
	Morn  float64 `json:"morn"`
}

type DailyForecast struct {
	Dt        int64              `json:"dt"`
	Sunrise   int64              `json:"sunrise"`
	Sunset    int64              `json:"sunset"`
	Moonrise  int64              `json:"moonrise"`
	Moonset   int64              `json:"moonset"`
	MoonPhase float64            `json:"moon_phase"`
	Summary   *string            `json:"summary,omitempty"`
	Temp      DailyTemperature   `json:"temp"`
	FeelsLike DailyFeelsLike     `json:"feels_like"`
	Pressure  int                `json:"pressure"`
	Humidity  int                `json:"humidity"`
	DewPoint  float64            `json:"dew_point"`
	WindSpeed float64            `json:"wind_speed"`
	WindDeg   int                `json:"wind_deg"`
	WindGust  *float64           `json:"wind_gust,omitempty"`
	Weather   []WeatherCondition `json:"weather"`
	Clouds    int                `json:"clouds"`
	Pop       float64            `json:"pop"`
	Rain      *float64           `json:"rain,omitempty"`
	Snow      *float64           `json:"snow,omitempty"`
	UVI       float64            `json:"uvi"`
}

type WeatherAlert struct {
	SenderName  string   `json:"sender_name"`
	Event       string   `json:"event"`
	Start       int64    `json:"start"`
	End         int64    `json:"end"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

// OneCallResponse is returned by /data/3.0/onecall.
type OneCallResponse struct {
	Lat            float64            `json:"lat"`
	Lon            float64            `json:"lon"`
	Timezone       string             `json:"timezone"`
	TimezoneOffset int                `json:"timezone_offset"`
	Current        *Conditions        `json:"current,omitempty"`
	Minutely       []MinutelyForecast `json:"minutely,omitempty"`
	Hourly         []Conditions       `json:"hourly,omitempty"`
	Daily          []DailyForecast    `json:"daily,omitempty"`
	Alerts         []WeatherAlert     `json:"alerts,omitempty"`
}

// TimeMachineResponse is returned by /data/3.0/onecall/timemachine.
type TimeMachineResponse struct {
	Lat            float64      `json:"lat"`
	Lon            float64      `json:"lon"`
	Timezone       string       `json:"timezone"`
	TimezoneOffset int          `json:"timezone_offset"`
	Data           []Conditions `json:"data"`
}

// GeocodingResult is one ranked candidate from /geo/1.0/direct.
type GeocodingResult struct {
	Name       string            `json:"name"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Country    string            `json:"country"`
	State      *string           `json:"state,omitempty"`
	LocalNames map[string]string `json:"local_names,omitempty"`
}
