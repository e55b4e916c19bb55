// Package catalog is the car collection application: it owns the state
// store, installs the reactions that keep storage, derived views and
// rendering in step with it, and exposes the user actions.
package catalog

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lehmann314159/dreamcars/internal/derive"
	"github.com/lehmann314159/dreamcars/internal/form"
	"github.com/lehmann314159/dreamcars/internal/metrics"
	"github.com/lehmann314159/dreamcars/internal/models"
	"github.com/lehmann314159/dreamcars/internal/state"
)

const DefaultDeleteDelay = 500 * time.Millisecond

type Persistence interface {
	LoadCollection(ctx context.Context) (cars []models.Car, found bool, err error)
	SaveCollection(ctx context.Context, cars []models.Car) bool
	LoadTheme(ctx context.Context) (models.Theme, bool)
	SaveTheme(ctx context.Context, theme models.Theme) bool
}

type Presenter interface {
	RenderCards(cars []models.Car)
	RenderStats(stats models.Stats)
	RenderBrandOptions(brands []string, selected string)
	ApplyTheme(theme models.Theme)
}

type Option func(*Catalog)

func WithClock(now func() time.Time) Option {
	return func(c *Catalog) { c.now = now }
}

// WithDeleteDelay sets how long a confirmed delete waits before it is
// applied. Zero applies it at once.
func WithDeleteDelay(d time.Duration) Option {
	return func(c *Catalog) { c.deleteDelay = d }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Catalog) { c.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Catalog) { c.metrics = m }
}

// Catalog serializes every write to the store behind mu, so the store only
// ever sees one writer.
type Catalog struct {
	mu    sync.Mutex
	store *state.Store

	repo    Persistence
	view    Presenter
	logger  *zap.Logger
	metrics *metrics.Metrics

	// skipSave keeps the Cars reaction from writing to storage.
	skipSave bool

	now         func() time.Time
	deleteDelay time.Duration
	pending     map[int64]struct{}
	scheduled   sync.WaitGroup
}

func New(repo Persistence, view Presenter, opts ...Option) *Catalog {
	c := &Catalog{
		store:       state.New(),
		repo:        repo,
		view:        view,
		logger:      zap.NewNop(),
		now:         time.Now,
		deleteDelay: DefaultDeleteDelay,
		pending:     make(map[int64]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.installReactions()
	return c
}

func (c *Catalog) installReactions() {
	ctx := context.Background()

	c.store.On(state.FieldCars, func(s *state.Store) {
		if !c.skipSave {
			c.repo.SaveCollection(ctx, s.Cars())
		}
		c.rederive(s)
		stats := derive.Summarize(s.Cars())
		c.view.RenderStats(stats)
		c.view.RenderBrandOptions(derive.Brands(s.Cars()), s.BrandFilter())
		c.metrics.ObserveCollection(stats)
	})
	c.store.On(state.FieldFiltered, func(s *state.Store) {
		c.view.RenderCards(s.Filtered())
	})
	c.store.On(state.FieldTheme, func(s *state.Store) {
		c.view.ApplyTheme(s.Theme())
		c.repo.SaveTheme(ctx, s.Theme())
	})
	for _, f := range []state.Field{state.FieldSearchTerm, state.FieldBrandFilter, state.FieldSortMode} {
		c.store.On(f, c.rederive)
	}
}

func (c *Catalog) rederive(s *state.Store) {
	s.SetFiltered(derive.Apply(s.Cars(), s.SearchTerm(), s.BrandFilter(), s.SortMode()))
}

// Init loads the saved theme and collection. A missing or empty collection
// is replaced by the example set and saved. When the stored collection
// cannot be read, the examples are shown but the stored record is left
// alone; it is only overwritten by a later user change.
func (c *Catalog) Init(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if theme, ok := c.repo.LoadTheme(ctx); ok {
		if theme.Valid() {
			c.store.SetTheme(theme)
		} else {
			c.logger.Warn("ignoring unknown saved theme", zap.String("theme", string(theme)))
		}
	}

	cars, _, err := c.repo.LoadCollection(ctx)
	switch {
	case err != nil:
		cars = examples(c.now().UnixMilli())
		c.logger.Warn("stored collection unreadable, showing examples without saving", zap.Error(err))
		c.skipSave = true
		c.store.SetCars(cars)
		c.skipSave = false
		return
	case len(cars) == 0:
		cars = examples(c.now().UnixMilli())
		c.logger.Info("seeding example collection", zap.Int("cars", len(cars)))
	}
	c.store.SetCars(cars)
}

// Reads

func (c *Catalog) State() state.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.State()
}

func (c *Catalog) Cars() []models.Car {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.store.Cars())
}

func (c *Catalog) Car(id int64) (models.Car, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cars := c.store.Cars()
	if i := models.FindCar(cars, id); i >= 0 {
		return cars[i], true
	}
	return models.Car{}, false
}

func (c *Catalog) Visible() []models.Car {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.store.Filtered())
}

func (c *Catalog) Stats() models.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return derive.Summarize(c.store.Cars())
}

func (c *Catalog) DeleteDelay() time.Duration { return c.deleteDelay }

// Theme and filters

func (c *Catalog) ToggleTheme() models.Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.store.Theme().Toggled()
	c.store.SetTheme(next)
	return next
}

func (c *Catalog) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.SetSearchTerm(term)
}

func (c *Catalog) SetBrandFilter(brand string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.SetBrandFilter(brand)
}

func (c *Catalog) SetSortMode(mode models.SortMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.SetSortMode(mode)
}

// Form

func (c *Catalog) OpenForm(id int64) form.Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := form.Open(c.store.Cars(), id)
	c.store.SetCurrentCarID(f.TargetID)
	return f
}

func (c *Catalog) CloseForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.SetCurrentCarID(0)
}

// Submit validates v and, if it passes, updates the car the form was opened
// for or appends a new one. On failure nothing changes and the returned form
// carries the field errors.
func (c *Catalog) Submit(v form.Values) (form.Form, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := form.Form{Mode: form.ModeCreate, Values: v}
	if target := c.store.CurrentCarID(); target != 0 {
		f.Mode = form.ModeEdit
		f.TargetID = target
	}
	f.Errors = v.Validate()
	if f.Errors.Any() {
		return f, false
	}

	cars := c.store.Cars()
	if f.Editing() {
		if i := models.FindCar(cars, f.TargetID); i >= 0 {
			next := slices.Clone(cars)
			next[i] = v.Apply(next[i])
			c.store.SetCars(next)
			c.metrics.Mutation("update")
		} else {
			c.logger.Debug("edited car no longer exists", zap.Int64("id", f.TargetID))
		}
	} else {
		car := v.Apply(models.Car{ID: c.nextID(cars)})
		c.store.SetCars(append(slices.Clone(cars), car))
		c.metrics.Mutation("create")
	}
	c.store.SetCurrentCarID(0)
	return f, true
}

// nextID follows the clock but never repeats or goes backwards.
func (c *Catalog) nextID(cars []models.Car) int64 {
	id := c.now().UnixMilli()
	for _, car := range cars {
		if car.ID >= id {
			id = car.ID + 1
		}
	}
	return id
}

// Card actions

func (c *Catalog) ToggleFavorite(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	cars := c.store.Cars()
	i := models.FindCar(cars, id)
	if i < 0 {
		return false
	}
	next := slices.Clone(cars)
	next[i].IsFavorite = !next[i].IsFavorite
	c.store.SetCars(next)
	c.metrics.Mutation("favorite")
	return true
}

// RequestDelete opens a confirmation for id and returns the car it is about.
func (c *Catalog) RequestDelete(id int64) (models.Car, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cars := c.store.Cars()
	i := models.FindCar(cars, id)
	if i < 0 {
		return models.Car{}, false
	}
	c.pending[id] = struct{}{}
	return cars[i], true
}

// AnswerDelete settles the confirmation opened by RequestDelete. A yes
// removes the car, after the delete delay when its card is on screen. It
// reports whether a removal was accepted; accepted removals always happen.
func (c *Catalog) AnswerDelete(id int64, confirmed bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.pending[id]; !ok {
		return false
	}
	delete(c.pending, id)
	if !confirmed || models.FindCar(c.store.Cars(), id) < 0 {
		return false
	}

	if c.deleteDelay <= 0 || models.FindCar(c.store.Filtered(), id) < 0 {
		c.remove(id)
		return true
	}

	c.scheduled.Add(1)
	time.AfterFunc(c.deleteDelay, func() {
		defer c.scheduled.Done()
		c.mu.Lock()
		defer c.mu.Unlock()
		c.remove(id)
	})
	return true
}

func (c *Catalog) remove(id int64) {
	cars := c.store.Cars()
	next := slices.DeleteFunc(slices.Clone(cars), func(car models.Car) bool { return car.ID == id })
	if len(next) == len(cars) {
		return
	}
	c.store.SetCars(next)
	c.metrics.Mutation("delete")
}

// Close waits for scheduled removals to be applied.
func (c *Catalog) Close() {
	c.scheduled.Wait()
}
