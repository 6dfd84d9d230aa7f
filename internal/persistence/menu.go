package persistence

import (
	"time"

	"github.com/uac/cafeteria-api/internal/domain"
)

// MenuMapper maps menus by their natural (day, meal time) key, so it
// overrides the key binding and the delete statement of the framework.
type MenuMapper = Mapper[domain.MenuID, *domain.Menu]

type menuAdapter struct{}

func newMenuMapper(st store) *MenuMapper {
	return NewMapper[domain.MenuID, *domain.Menu](st, menuAdapter{})
}

func (menuAdapter) Table() string {
	return "menus"
}

func (menuAdapter) FindStatement() string {
	return `SELECT meat, fish, veggie, soup, dessert FROM menus
		WHERE day = $1 AND meal_time = $2`
}

func (menuAdapter) InsertStatement() string {
	return `INSERT INTO menus (day, meal_time, meat, fish, veggie, soup, dessert)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING day, meal_time`
}

func (menuAdapter) UpdateStatement() string {
	return `UPDATE menus SET meat = $1, fish = $2, veggie = $3, soup = $4, dessert = $5
		WHERE day = $6 AND meal_time = $7`
}

func (menuAdapter) DeleteStatement() string {
	return `DELETE FROM menus WHERE day = $1 AND meal_time = $2`
}

func (menuAdapter) KeyArgs(id domain.MenuID) []any {
	return []any{id.Day, string(id.Time)}
}

func (menuAdapter) Scan(id domain.MenuID, row Row) (*domain.Menu, error) {
	var meat, fish, veggie, soup, dessert string
	if err := row.Scan(&meat, &fish, &veggie, &soup, &dessert); err != nil {
		return nil, err
	}

	b := domain.NewMenuBuilder(id.Day, id.Time)
	if meat != "" {
		b.MeatCourse(meat)
	}
	if fish != "" {
		b.FishCourse(fish)
	}
	if veggie != "" {
		b.VeggieCourse(veggie)
	}
	b.SoupAndDessert(soup, dessert)

	return b.Build()
}

func (menuAdapter) ScanKey(row Row) (domain.MenuID, error) {
	var (
		day      time.Time
		mealTime string
	)
	if err := row.Scan(&day, &mealTime); err != nil {
		return domain.MenuID{}, err
	}

	return domain.MenuID{Day: domain.MenuDay(day), Time: domain.MealTime(mealTime)}, nil
}

func (menuAdapter) InsertArgs(m *domain.Menu) []any {
	id := m.ID()
	return []any{id.Day, string(id.Time), m.Meat(), m.Fish(), m.Veggie(), m.Soup(), m.Dessert()}
}

func (menuAdapter) UpdateArgs(m *domain.Menu) []any {
	id := m.ID()
	return []any{m.Meat(), m.Fish(), m.Veggie(), m.Soup(), m.Dessert(), id.Day, string(id.Time)}
}

// SetKey is a no-op: the (day, meal time) key is fixed at construction.
func (menuAdapter) SetKey(*domain.Menu, domain.MenuID) {}
