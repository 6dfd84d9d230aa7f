package response

import (
	"github.com/uac/cafeteria-api/internal/domain"
)

type Student struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Address     Address `json:"address"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Scholarship bool    `json:"scholarship"`
	Course      string  `json:"course"`
	Archived    bool    `json:"archived"`
	Account     Account `json:"account"`
}

type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

type Enrollment struct {
	Student Student `json:"student"`
	Pin     string  `json:"pin"`
}

func NewStudent(s *domain.Student, withHistory bool) Student {
	resp := Student{
		ID:          s.ID,
		Name:        s.Name,
		Phone:       s.Phone,
		Email:       s.Email,
		Scholarship: s.Scholarship,
		Course:      s.Course,
		Archived:    s.Archived,
	}

	if s.Address != nil {
		resp.Address = Address{
			Street:     s.Address.Street,
			Number:     s.Address.Number,
			PostalCode: s.Address.PostalCode,
			City:       s.Address.City,
		}
	}
	if s.Account != nil {
		resp.Account = NewAccount(s.Account, withHistory)
	}

	return resp
}
