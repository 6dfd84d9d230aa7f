package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/uac/cafeteria-api/internal/domain"
	"github.com/uac/cafeteria-api/internal/persistence"
)

var (
	ErrMenuNotFound = errors.New("menu not found")
	ErrMenuExists   = errors.New("menu already exists for that day and meal time")
)

type MenuMapper interface {
	Find(id domain.MenuID) (*domain.Menu, error)
	Insert(menu *domain.Menu) (domain.MenuID, error)
	Delete(id domain.MenuID) error
}

// MenuService covers menu authoring and lookup of the meals a menu serves.
type MenuService struct {
	menus MenuMapper
}

func NewMenuService(menus MenuMapper) *MenuService {
	return &MenuService{menus: menus}
}

// Create builds and persists an immutable menu for one day and meal time.
func (s *MenuService) Create(day time.Time, t domain.MealTime, meat, fish, veggie, soup, dessert string) (*domain.Menu, error) {
	b := domain.NewMenuBuilder(day, t)
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

	menu, err := b.Build()
	if err != nil {
		return nil, err
	}

	if _, err = s.menus.Insert(menu); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			return nil, ErrMenuExists
		}
		return nil, fmt.Errorf("s.menus.Insert -> %w", err)
	}

	return menu, nil
}

func (s *MenuService) Get(day time.Time, t domain.MealTime) (*domain.Menu, error) {
	menu, err := s.menus.Find(domain.MenuID{Day: domain.MenuDay(day), Time: t})
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, fmt.Errorf("s.menus.Find -> %w", err)
	}
	return menu, nil
}

// Meal resolves one course choice from the menu of a given day and time.
func (s *MenuService) Meal(day time.Time, t domain.MealTime, dish domain.DishType) (domain.Meal, error) {
	menu, err := s.Get(day, t)
	if err != nil {
		return domain.Meal{}, err
	}
	return menu.Meal(dish)
}

func (s *MenuService) Delete(day time.Time, t domain.MealTime) error {
	err := s.menus.Delete(domain.MenuID{Day: domain.MenuDay(day), Time: t})
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return ErrMenuNotFound
		}
		return fmt.Errorf("s.menus.Delete -> %w", err)
	}
	return nil
}
