package domain

// Student is the owner of exactly one prepaid Account. The id is assigned
// at enrollment (year*10000 + a sequential number) and never changes.
type Student struct {
	ID          int
	Name        string
	Address     *Address
	Phone       string
	Email       string
	Scholarship bool
	Course      string
	Account     *Account

	// Archived marks a deleted student kept in the historic record. The
	// account moves with the student; neither is destroyed.
	Archived bool
}
