package domain

type Weather struct {
	Location    string `json:"location"`
	Temperature int    `json:"temperature"`
	Condition   string `json:"condition"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"windSpeed"`
	Icon        string `json:"icon"`
}

type GeocodeResult struct {
	Query       string      `json:"query"`
	Found       bool        `json:"found"`
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
}
