package domain

type Review struct {
	ID        int64
	UserID    int64
	AirlineID int64
	Rating    int
	Comment   string

	// Username is filled by listing queries that join Users.
	Username string
}
