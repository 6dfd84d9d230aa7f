package domain

// Address is a passive holder mapped independently of the entity that
// owns it. Number is the door number, optionally with the apartment
// (e.g. "12 - 1st left").
type Address struct {
	ID         int
	Street     string
	Number     string
	PostalCode string
	City       string
}
