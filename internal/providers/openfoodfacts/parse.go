package openfoodfacts

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"nutritrack/internal/domain"
)

const kjPerKcal = 4.184

// productFields is the projection requested from the product endpoint.
const productFields = "product_name,brands,nutrition_grades,nova_group,ecoscore_grade,nutriments,ingredients_text,allergens_tags"

// searchFields is the projection requested from search endpoints.
const searchFields = "code,product_name,brands,nutrition_grades"

type productResponse struct {
	Status  int        `json:"status"`
	Code    string     `json:"code"`
	Product offProduct `json:"product"`
}

type offProduct struct {
	Code           string         `json:"code"`
	ProductName    string         `json:"product_name"`
	Brands         string         `json:"brands"`
	NutritionGrade string         `json:"nutrition_grades"`
	NovaGroup      any            `json:"nova_group"`
	EcoscoreGrade  string         `json:"ecoscore_grade"`
	Nutriments     map[string]any `json:"nutriments"`
	Ingredients    string         `json:"ingredients_text"`
	Allergens      []string       `json:"allergens_tags"`
}

type searchResponse struct {
	Products []offProduct `json:"products"`
}

func toProduct(barcode string, p offProduct) *domain.Product {
	name := strings.TrimSpace(p.ProductName)
	if name == "" {
		name = "Unknown"
	}
	allergens := p.Allergens
	if allergens == nil {
		allergens = []string{}
	}
	return &domain.Product{
		Barcode:       barcode,
		Name:          name,
		Brands:        strings.TrimSpace(p.Brands),
		Nutriscore:    strings.ToUpper(strings.TrimSpace(p.NutritionGrade)),
		NovaGroup:     novaGroup(p.NovaGroup),
		Ecoscore:      strings.ToUpper(strings.TrimSpace(p.EcoscoreGrade)),
		EnergyKcal:    energyKcal(p.Nutriments),
		Proteins:      nutriment(p.Nutriments, "proteins_100g", 100),
		Carbohydrates: nutriment(p.Nutriments, "carbohydrates_100g", 100),
		Fat:           nutriment(p.Nutriments, "fat_100g", 100),
		Fiber:         nutriment(p.Nutriments, "fiber_100g", 100),
		Salt:          nutriment(p.Nutriments, "salt_100g", 100),
		Ingredients:   strings.TrimSpace(p.Ingredients),
		Allergens:     allergens,
	}
}

func toHit(p offProduct) domain.SearchHit {
	name := strings.TrimSpace(p.ProductName)
	if name == "" {
		name = "N/A"
	}
	brands := strings.TrimSpace(p.Brands)
	if brands == "" {
		brands = "N/A"
	}
	return domain.SearchHit{
		Code:       strings.TrimSpace(p.Code),
		Name:       name,
		Brands:     brands,
		Nutriscore: strings.ToUpper(strings.TrimSpace(p.NutritionGrade)),
	}
}

// energyKcal prefers energy-kcal_100g and falls back to energy-kj_100g.
func energyKcal(m map[string]any) *float64 {
	if v := nutriment(m, "energy-kcal_100g", 10000); v != nil {
		return v
	}
	if kj, ok := number(m["energy-kj_100g"]); ok {
		return bounded(kj/kjPerKcal, 10000)
	}
	return nil
}

// nutriment reads a per-100g value; missing or implausible values are nil.
func nutriment(m map[string]any, key string, max float64) *float64 {
	v, ok := number(m[key])
	if !ok {
		return nil
	}
	return bounded(v, max)
}

func bounded(v, max float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > max {
		return nil
	}
	return &v
}

func number(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func novaGroup(raw any) *int {
	f, ok := number(raw)
	if !ok || f != math.Trunc(f) || f < 1 || f > 4 {
		return nil
	}
	v := int(f)
	return &v
}
