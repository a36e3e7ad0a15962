package alphavantage

import (
	"encoding/json"
	"strconv"
	"strings"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Quote struct {
	Symbol           string  `json:"01. symbol"`
	Open             float64 `json:"02. open,string"`
	High             float64 `json:"03. high,string"`
	Low              float64 `json:"04. low,string"`
	Price            float64 `json:"05. price,string"`
	Volume           int64   `json:"06. volume,string"`
	LatestTradingDay string  `json:"07. latest trading day"`
	PreviousClose    float64 `json:"08. previous close,string"`
	Change           float64 `json:"09. change,string"`
	ChangePercent    Percent `json:"10. change percent"`
}

// Percent is a percentage value encoded as a string with a trailing "%"
type Percent float64

type respQuote struct {
	Quote        Quote  `json:"Global Quote"`
	ErrorMessage string `json:"Error Message,omitempty"`
	Note         string `json:"Note,omitempty"`
	Information  string `json:"Information,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (q Quote) String() string {
	return types.Stringify(q)
}

///////////////////////////////////////////////////////////////////////////////
// JSON

func (p *Percent) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	str = strings.TrimSuffix(strings.TrimSpace(str), "%")
	if str == "" {
		*p = 0
		return nil
	}
	value, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return err
	}
	*p = Percent(value)
	return nil
}

func (p Percent) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatFloat(float64(p), 'f', 4, 64) + "%")
}
