package models

// Director owns zero or more movies. Name is unique.
type Director struct {
	ID   int64
	Name string
}

// Movie references at most one director. ReleaseDate is stored as YYYY-MM-DD text.
type Movie struct {
	ID          int64
	Title       string
	DirectorID  int64
	ReleaseDate string
	Budget      int64
}

// Genre is a unique label attached to movies through MovieGenre.
type Genre struct {
	ID   int64
	Name string
}

// MovieGenre links a movie to a genre. Pairs are not unique at the schema level.
type MovieGenre struct {
	MovieID int64
	GenreID int64
}
