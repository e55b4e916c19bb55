package models

type Car struct {
	ID          int64   `json:"id" yaml:"-"`
	Brand       string  `json:"brand" yaml:"brand"`
	Model       string  `json:"model" yaml:"model"`
	Year        int     `json:"year" yaml:"year"`
	Price       float64 `json:"price" yaml:"price"`
	Image       string  `json:"image,omitempty" yaml:"image"`
	Description string  `json:"description,omitempty" yaml:"description"`
	IsFavorite  bool    `json:"isFavorite,omitempty" yaml:"-"`
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggled returns the other theme. Anything unknown toggles to dark.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

type SortMode string

const (
	SortNewest    SortMode = "newest"
	SortOldest    SortMode = "oldest"
	SortPriceHigh SortMode = "price-high"
	SortPriceLow  SortMode = "price-low"
)

type Stats struct {
	Count        int     `json:"count"`
	TotalValue   float64 `json:"totalValue"`
	AveragePrice float64 `json:"averagePrice"`
}

// FindCar returns the index of the car with the given id, or -1.
func FindCar(cars []Car, id int64) int {
	for i := range cars {
		if cars[i].ID == id {
			return i
		}
	}
	return -1
}
