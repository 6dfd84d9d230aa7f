package domain

import (
	"errors"
	"time"
)

type MealTime string

const (
	Lunch  MealTime = "Lunch"
	Dinner MealTime = "Dinner"
)

type DishType string

const (
	Meat       DishType = "Meat"
	Fish       DishType = "Fish"
	Vegetarian DishType = "Vegetarian"
)

var (
	ErrMenuNoMainCourse   = errors.New("a menu needs at least one main course")
	ErrMenuMissingCourses = errors.New("a menu needs both a soup and a dessert")
	ErrMealNotServed      = errors.New("menu does not serve that dish type")
)

// MenuID keys a menu by day and meal time.
type MenuID struct {
	Day  time.Time
	Time MealTime
}

// MenuDay normalizes a timestamp to the calendar day menus are keyed by.
// Every MenuID must be built through this so identity comparisons hold.
func MenuDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Menu aggregates the courses served at one meal time of one day: up to
// three main-course options plus a shared soup and dessert. It is immutable
// after construction; build one through MenuBuilder.
type Menu struct {
	id      MenuID
	meat    string
	fish    string
	veggie  string
	soup    string
	dessert string
}

type MenuBuilder struct {
	menu Menu
}

func NewMenuBuilder(day time.Time, t MealTime) *MenuBuilder {
	return &MenuBuilder{menu: Menu{id: MenuID{Day: MenuDay(day), Time: t}}}
}

func (b *MenuBuilder) MeatCourse(dish string) *MenuBuilder {
	b.menu.meat = dish
	return b
}

func (b *MenuBuilder) FishCourse(dish string) *MenuBuilder {
	b.menu.fish = dish
	return b
}

func (b *MenuBuilder) VeggieCourse(dish string) *MenuBuilder {
	b.menu.veggie = dish
	return b
}

func (b *MenuBuilder) SoupAndDessert(soup, dessert string) *MenuBuilder {
	b.menu.soup = soup
	b.menu.dessert = dessert
	return b
}

func (b *MenuBuilder) Build() (*Menu, error) {
	if b.menu.meat == "" && b.menu.fish == "" && b.menu.veggie == "" {
		return nil, ErrMenuNoMainCourse
	}
	if b.menu.soup == "" || b.menu.dessert == "" {
		return nil, ErrMenuMissingCourses
	}

	m := b.menu
	return &m, nil
}

func (m *Menu) ID() MenuID      { return m.id }
func (m *Menu) Meat() string    { return m.meat }
func (m *Menu) Fish() string    { return m.fish }
func (m *Menu) Veggie() string  { return m.veggie }
func (m *Menu) Soup() string    { return m.soup }
func (m *Menu) Dessert() string { return m.dessert }

// Meal derives the value object for one course choice. It fails when the
// menu doesn't offer that dish type.
func (m *Menu) Meal(t DishType) (Meal, error) {
	var main string
	switch t {
	case Meat:
		main = m.meat
	case Fish:
		main = m.fish
	case Vegetarian:
		main = m.veggie
	}
	if main == "" {
		return Meal{}, ErrMealNotServed
	}

	return Meal{
		Day:        m.id.Day,
		Time:       m.id.Time,
		Type:       t,
		Soup:       m.soup,
		MainCourse: main,
		Dessert:    m.dessert,
	}, nil
}

// MainCourses lists the offered dish types.
func (m *Menu) MainCourses() []DishType {
	var types []DishType
	if m.meat != "" {
		types = append(types, Meat)
	}
	if m.fish != "" {
		types = append(types, Fish)
	}
	if m.veggie != "" {
		types = append(types, Vegetarian)
	}
	return types
}

// Meal is a derived view of one course choice from a menu. It is not
// persisted on its own; ticket transactions reference it.
type Meal struct {
	Day        time.Time
	Time       MealTime
	Type       DishType
	Soup       string
	MainCourse string
	Dessert    string
}
