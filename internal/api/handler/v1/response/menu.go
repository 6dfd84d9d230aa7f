package response

import (
	"github.com/uac/cafeteria-api/internal/domain"
)

type Menu struct {
	Day     string `json:"day"`
	Time    string `json:"time"`
	Meat    string `json:"meat,omitempty"`
	Fish    string `json:"fish,omitempty"`
	Veggie  string `json:"veggie,omitempty"`
	Soup    string `json:"soup"`
	Dessert string `json:"dessert"`
}

func NewMenu(m *domain.Menu) Menu {
	id := m.ID()
	return Menu{
		Day:     id.Day.Format("2006-01-02"),
		Time:    string(id.Time),
		Meat:    m.Meat(),
		Fish:    m.Fish(),
		Veggie:  m.Veggie(),
		Soup:    m.Soup(),
		Dessert: m.Dessert(),
	}
}
