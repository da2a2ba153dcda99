package model

type Genre string

const (
	GenreAction         Genre = "action"
	GenreComedy         Genre = "comedy"
	GenreDrama          Genre = "drama"
	GenreHorror         Genre = "horror"
	GenreRomance        Genre = "romance"
	GenreThriller       Genre = "thriller"
	GenreFantasy        Genre = "fantasy"
	GenreScienceFiction Genre = "science_fiction"
	GenreDocumentary    Genre = "documentary"
	GenreAnimation      Genre = "animation"
)

func (g Genre) Valid() bool {
	switch g {
	case GenreAction, GenreComedy, GenreDrama, GenreHorror, GenreRomance,
		GenreThriller, GenreFantasy, GenreScienceFiction, GenreDocumentary,
		GenreAnimation:
		return true
	}
	return false
}

// Movie carries two derived fields: Rating is the rounded mean of all the
// movie's reviews (nil when there are none, never zero) and ReviewCount is
// their number. Both are recomputed on every review write, never accepted
// from clients.
type Movie struct {
	ID              int      `json:"id"`
	Title           string   `json:"title" validate:"required,min=3,max=200"`
	Description     string   `json:"description" validate:"required,min=10,max=1000"`
	Genre           Genre    `json:"genre" validate:"required,oneof=action comedy drama horror romance thriller fantasy science_fiction documentary animation"`
	ReleaseYear     int      `json:"release_year" validate:"required,min=1888"`
	Director        string   `json:"director" validate:"required,min=2,max=100"`
	DurationMinutes int      `json:"duration_minutes" validate:"required,min=1,max=600"`
	Rating          *float64 `json:"rating"`
	ReviewCount     int      `json:"review_count"`
}
