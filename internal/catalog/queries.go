package catalog

const (
	ExamplesName = "examples"
	ReportsName  = "reports"
)

// Examples returns the general-purpose filtering and pagination catalog.
func Examples() *Catalog {
	return New(ExamplesName,
		Entry{
			Name: "Movies with large budget and specific director",
			SQL:  "SELECT * FROM movies WHERE budget > 30000000 AND director_id = 5417",
		},
		Entry{
			Name: "Recent or highly-rated movies",
			SQL:  "SELECT * FROM movies WHERE release_date > '2015-01-01' OR vote_average > 8",
		},
		Entry{
			Name: "Movies with non-zero budget",
			SQL:  "SELECT * FROM movies WHERE budget != 0",
		},
		Entry{
			Name: "Movies released in Jan 2015",
			SQL:  "SELECT * FROM movies WHERE release_date BETWEEN '2015-01-01' AND '2015-02-01'",
		},
		Entry{
			Name: "Titles starting with 'Harry Potter'",
			SQL:  "SELECT * FROM movies WHERE title LIKE 'Harry Potter%'",
		},
		Entry{
			Name: "Movies mentioning 'programmer' in tagline",
			SQL:  "SELECT * FROM movies WHERE tagline LIKE '%programmer%'",
		},
		Entry{
			Name: "Movies with director in a list",
			SQL:  "SELECT * FROM movies WHERE director_id IN (4765, 5417)",
		},
		Entry{
			Name: "Movies that have a tagline",
			SQL:  "SELECT * FROM movies WHERE tagline IS NOT NULL",
		},
		Entry{
			Name: "First 10 movies",
			SQL:  "SELECT * FROM movies LIMIT 10",
		},
		Entry{
			Name: "Ten movies starting from row 100",
			SQL:  "SELECT * FROM movies LIMIT 10 OFFSET 100",
		},
	)
}

// Reports returns the per-director and per-movie aggregation catalog.
// Each query orders by its aggregate, descending.
func Reports() *Catalog {
	return New(ReportsName,
		Entry{
			Name: "last_release_per_director",
			SQL: `SELECT d.name, MAX(m.release_date) AS last_release_date
FROM directors d
INNER JOIN movies m ON m.director_id = d.id
GROUP BY d.id, d.name
ORDER BY last_release_date DESC;`,
		},
		Entry{
			Name: "total_budget_per_director",
			SQL: `SELECT d.name, SUM(m.budget) AS total_budget
FROM directors d
INNER JOIN movies m ON m.director_id = d.id
GROUP BY d.id, d.name
ORDER BY total_budget DESC;`,
		},
		Entry{
			Name: "num_films_per_director",
			SQL: `SELECT d.name, COUNT(m.id) AS num_films
FROM directors d
INNER JOIN movies m ON m.director_id = d.id
GROUP BY d.id, d.name
ORDER BY num_films DESC;`,
		},
		Entry{
			Name: "genre_count_per_movie",
			SQL: `SELECT m.title, COUNT(mg.genre_id) AS genre_count
FROM movies m
LEFT JOIN movie_genres mg ON mg.movie_id = m.id
GROUP BY m.id, m.title
ORDER BY genre_count DESC, m.title;`,
		},
		Entry{
			Name: "distinct_genres_per_director",
			SQL: `SELECT d.name, COUNT(DISTINCT mg.genre_id) AS distinct_genres_count
FROM directors d
LEFT JOIN movies m ON m.director_id = d.id
LEFT JOIN movie_genres mg ON mg.movie_id = m.id
GROUP BY d.id, d.name
ORDER BY distinct_genres_count DESC;`,
		},
	)
}
