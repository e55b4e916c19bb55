// Package state holds the catalog's application state behind an explicit
// observer: every write to a field runs the reactions registered for that
// field, synchronously and in registration order.
//
// A Store is not safe for concurrent use. Callers serialize writes; reactions
// run on the writer's goroutine and may write other fields.
package state

import (
	"slices"

	"github.com/lehmann314159/dreamcars/internal/models"
)

type Field int

const (
	FieldCars Field = iota
	FieldFiltered
	FieldCurrentCarID
	FieldTheme
	FieldSearchTerm
	FieldBrandFilter
	FieldSortMode
)

var fieldNames = [...]string{"cars", "filtered", "currentCarId", "theme", "searchTerm", "brandFilter", "sortMode"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

type State struct {
	Cars         []models.Car
	Filtered     []models.Car
	CurrentCarID int64
	Theme        models.Theme
	SearchTerm   string
	BrandFilter  string
	SortMode     models.SortMode
}

// Reaction is run after a write. It receives the store so it can read the
// new state or write further fields.
type Reaction func(s *Store)

type Store struct {
	state     State
	reactions map[Field][]Reaction
}

func New() *Store {
	return &Store{
		state: State{
			Cars:     []models.Car{},
			Filtered: []models.Car{},
			Theme:    models.ThemeLight,
			SortMode: models.SortNewest,
		},
		reactions: make(map[Field][]Reaction),
	}
}

func (s *Store) On(field Field, r Reaction) {
	s.reactions[field] = append(s.reactions[field], r)
}

// State returns a copy; the slices are cloned so readers cannot reach back
// into the store.
func (s *Store) State() State {
	st := s.state
	st.Cars = slices.Clone(s.state.Cars)
	st.Filtered = slices.Clone(s.state.Filtered)
	return st
}

// Cars returns the current collection without copying. The slice is replaced,
// never modified, on every write, so it is safe to read but must not be
// mutated.
func (s *Store) Cars() []models.Car { return s.state.Cars }

func (s *Store) Filtered() []models.Car { return s.state.Filtered }

func (s *Store) CurrentCarID() int64       { return s.state.CurrentCarID }
func (s *Store) Theme() models.Theme       { return s.state.Theme }
func (s *Store) SearchTerm() string        { return s.state.SearchTerm }
func (s *Store) BrandFilter() string       { return s.state.BrandFilter }
func (s *Store) SortMode() models.SortMode { return s.state.SortMode }

func (s *Store) SetCars(cars []models.Car) {
	if cars == nil {
		cars = []models.Car{}
	}
	s.state.Cars = cars
	s.notify(FieldCars)
}

func (s *Store) SetFiltered(cars []models.Car) {
	if cars == nil {
		cars = []models.Car{}
	}
	s.state.Filtered = cars
	s.notify(FieldFiltered)
}

func (s *Store) SetCurrentCarID(id int64) {
	s.state.CurrentCarID = id
	s.notify(FieldCurrentCarID)
}

func (s *Store) SetTheme(theme models.Theme) {
	s.state.Theme = theme
	s.notify(FieldTheme)
}

func (s *Store) SetSearchTerm(term string) {
	s.state.SearchTerm = term
	s.notify(FieldSearchTerm)
}

func (s *Store) SetBrandFilter(brand string) {
	s.state.BrandFilter = brand
	s.notify(FieldBrandFilter)
}

func (s *Store) SetSortMode(mode models.SortMode) {
	s.state.SortMode = mode
	s.notify(FieldSortMode)
}

func (s *Store) notify(field Field) {
	for _, r := range s.reactions[field] {
		r(s)
	}
}
