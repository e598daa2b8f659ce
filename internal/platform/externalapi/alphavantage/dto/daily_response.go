// Package dto defines data transfer objects for the Alpha Vantage API responses.
package dto

// DailyResponse is the JSON body of the TIME_SERIES_DAILY function.
// On failure the API answers 200 with one of the message fields set instead
// of the series.
type DailyResponse struct {
	TimeSeries   map[string]DailyBar `json:"Time Series (Daily)"`
	ErrorMessage string              `json:"Error Message,omitempty"`
	Note         string              `json:"Note,omitempty"`
	Information  string              `json:"Information,omitempty"`
}

// DailyBar is one day of the series. Values are decimal strings.
type DailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}
