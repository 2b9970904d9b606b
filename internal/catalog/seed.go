package catalog

import "github.com/actuallystonmai/film-recommender/internal/domain"

// SeedFilms is the built-in catalog used when no valid records are loaded.
func SeedFilms() []domain.FilmRecord {
	return []domain.FilmRecord{
		{
			Title: "The Shawshank Redemption", Year: 1994, Director: "Frank Darabont",
			Genres: []string{"Drama"}, Rating: 9.3, NumVotes: 3100000, Runtime: 142,
			Overview:   "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
			ExternalID: "tt0111161", Cast: []string{"Tim Robbins", "Morgan Freeman"},
		},
		{
			Title: "The Godfather", Year: 1972, Director: "Francis Ford Coppola",
			Genres: []string{"Crime", "Drama"}, Rating: 9.2, NumVotes: 2100000, Runtime: 175,
			Overview:   "The patriarch of a crime family transfers control to his reluctant son.",
			ExternalID: "tt0068646", Cast: []string{"Marlon Brando", "Al Pacino"},
		},
		{
			Title: "The Dark Knight", Year: 2008, Director: "Christopher Nolan",
			Genres: []string{"Action", "Crime", "Drama"}, Rating: 9.0, NumVotes: 3000000, Runtime: 152,
			Overview:   "Batman sets out to dismantle the remaining criminal organizations that plague Gotham.",
			ExternalID: "tt0468569", Cast: []string{"Christian Bale", "Heath Ledger"},
		},
		{
			Title: "12 Angry Men", Year: 1957, Director: "Sidney Lumet",
			Genres: []string{"Crime", "Drama"}, Rating: 9.0, NumVotes: 900000, Runtime: 96,
			Overview:   "A jury holdout attempts to prevent a miscarriage of justice by forcing his colleagues to reconsider the evidence.",
			ExternalID: "tt0050083", Cast: []string{"Henry Fonda", "Lee J. Cobb"},
		},
		{
			Title: "Spirited Away", Year: 2001, Director: "Hayao Miyazaki",
			Genres: []string{"Animation", "Adventure", "Family"}, Rating: 8.6, NumVotes: 900000, Runtime: 125,
			Overview:   "A sullen ten-year-old girl wanders into a world ruled by gods, witches and spirits.",
			ExternalID: "tt0245429", Cast: []string{"Rumi Hiiragi", "Miyu Irino"},
		},
		{
			Title: "Cinema Paradiso", Year: 1988, Director: "Giuseppe Tornatore",
			Genres: []string{"Drama", "Romance"}, Rating: 8.5, NumVotes: 290000, Runtime: 155,
			Overview:   "A filmmaker recalls his childhood falling in love with the pictures at the cinema of his home village.",
			ExternalID: "tt0095765", Cast: []string{"Philippe Noiret", "Salvatore Cascio"},
		},
		{
			Title: "Das Boot", Year: 1981, Director: "Wolfgang Petersen",
			Genres: []string{"Drama", "War"}, Rating: 8.4, NumVotes: 270000, Runtime: 149,
			Overview:   "The claustrophobic world of a WWII German U-boat as the crew faces the enemy and the sea.",
			ExternalID: "tt0082096", Cast: []string{"Jürgen Prochnow", "Herbert Grönemeyer"},
		},
		{
			Title: "Lawrence of Arabia", Year: 1962, Director: "David Lean",
			Genres: []string{"Adventure", "Biography", "Drama"}, Rating: 8.3, NumVotes: 320000, Runtime: 228,
			Overview:   "The story of T.E. Lawrence, the English officer who united Arab tribes against the Turks in World War I.",
			ExternalID: "tt0056172", Cast: []string{"Peter O'Toole", "Alec Guinness"},
		},
	}
}
