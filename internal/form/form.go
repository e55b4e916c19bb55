package form

import (
	"math"
	"strconv"
	"strings"

	"github.com/lehmann314159/dreamcars/internal/models"
)

const (
	MinYear = 1900
	MaxYear = 2025
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Values holds the raw text of the form fields, as submitted.
type Values struct {
	Brand       string
	Model       string
	Year        string
	Price       string
	Image       string
	Description string
}

// Errors marks the fields that failed validation.
type Errors struct {
	Brand bool
	Model bool
	Year  bool
	Price bool
}

func (e Errors) Any() bool {
	return e.Brand || e.Model || e.Year || e.Price
}

type Form struct {
	Mode     Mode
	TargetID int64
	Values   Values
	Errors   Errors
}

func (f Form) Editing() bool { return f.Mode == ModeEdit }

// Open returns an edit form pre-filled from the car with the given id, or an
// empty create form when id is 0 or does not resolve.
func Open(cars []models.Car, id int64) Form {
	if id != 0 {
		if i := models.FindCar(cars, id); i >= 0 {
			return Form{Mode: ModeEdit, TargetID: id, Values: FromCar(cars[i])}
		}
	}
	return Form{Mode: ModeCreate}
}

func FromCar(c models.Car) Values {
	return Values{
		Brand:       c.Brand,
		Model:       c.Model,
		Year:        strconv.Itoa(c.Year),
		Price:       strconv.FormatFloat(c.Price, 'f', -1, 64),
		Image:       c.Image,
		Description: c.Description,
	}
}

func (v Values) Validate() Errors {
	var e Errors
	e.Brand = strings.TrimSpace(v.Brand) == ""
	e.Model = strings.TrimSpace(v.Model) == ""
	if year, err := strconv.Atoi(strings.TrimSpace(v.Year)); err != nil || year < MinYear || year > MaxYear {
		e.Year = true
	}
	if price, err := strconv.ParseFloat(strings.TrimSpace(v.Price), 64); err != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		e.Price = true
	}
	return e
}

// Apply writes the submitted fields onto c. The id and favorite flag are
// left as they were. Values must have passed Validate.
func (v Values) Apply(c models.Car) models.Car {
	c.Brand = strings.TrimSpace(v.Brand)
	c.Model = strings.TrimSpace(v.Model)
	c.Year, _ = strconv.Atoi(strings.TrimSpace(v.Year))
	c.Price, _ = strconv.ParseFloat(strings.TrimSpace(v.Price), 64)
	c.Image = strings.TrimSpace(v.Image)
	c.Description = strings.TrimSpace(v.Description)
	return c
}
