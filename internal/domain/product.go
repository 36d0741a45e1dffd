package domain

// Product is the normalized Open Food Facts record. Nutriments are per 100g.
type Product struct {
	Barcode       string   `json:"barcode"`
	Name          string   `json:"name"`
	Brands        string   `json:"brands"`
	Nutriscore    string   `json:"nutriscore,omitempty"`
	NovaGroup     *int     `json:"nova_group"`
	Ecoscore      string   `json:"ecoscore,omitempty"`
	EnergyKcal    *float64 `json:"energy_kcal"`
	Proteins      *float64 `json:"proteins"`
	Carbohydrates *float64 `json:"carbohydrates"`
	Fat           *float64 `json:"fat"`
	Fiber         *float64 `json:"fiber"`
	Salt          *float64 `json:"salt"`
	Ingredients   string   `json:"ingredients,omitempty"`
	Allergens     []string `json:"allergens"`
}

// SearchHit is a condensed product row returned by name searches.
type SearchHit struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Brands     string `json:"brands"`
	Nutriscore string `json:"nutriscore"`
}
