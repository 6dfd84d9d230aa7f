package domain

// Administrator is a staff account for the cafeteria backend. Credits and
// student management require an authenticated administrator.
type Administrator struct {
	ID           int
	Username     string
	Name         string
	PasswordHash string
}
