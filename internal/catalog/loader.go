// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package catalog

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/tomtom215/cinelens/internal/logging"
)

// genreColumns lists the binary genre flag columns of the movie file,
// in file order. The flag columns follow the four metadata columns
// after the title.
var genreColumns = []string{
	"unknown", "Action", "Adventure", "Animation", "Children's",
	"Comedy", "Crime", "Documentary", "Drama", "Fantasy",
	"Film-Noir", "Horror", "Musical", "Mystery", "Romance",
	"Sci-Fi", "Thriller", "War", "Western",
}

const (
	// movieMetaFields covers id, title, release date, video release
	// date and URL. Genre flags follow.
	movieMetaFields = 5

	// ratingFields covers user id, movie id, score and timestamp.
	// The timestamp is ignored but tolerated when absent.
	ratingFields = 4

	minScore = 1.0
	maxScore = 5.0
)

// Load reads the pipe-delimited movie file and the tab-delimited
// rating file and returns a fully indexed Catalog.
//
// Ratings referencing unknown movies are dropped and counted, not
// fatal. Any malformed record (bad field count, unparsable id, score
// outside [1,5]) fails the whole load with a DataFormatError; no
// partial catalog is ever returned.
func Load(movieFile, ratingFile string) (*Catalog, error) {
	start := time.Now()
	logger := logging.WithComponent("catalog")

	c := &Catalog{
		movies:  make(map[int]*Movie),
		byUser:  make(map[int][]Rating),
		byMovie: make(map[int][]Rating),
	}

	if err := c.loadMovies(movieFile); err != nil {
		return nil, err
	}
	if err := c.loadRatings(ratingFile); err != nil {
		return nil, err
	}
	c.buildIndexes()
	c.fingerprint = c.computeFingerprint()

	logger.Info().
		Str("movie_file", movieFile).
		Str("rating_file", ratingFile).
		Int("movies", len(c.movieIDs)).
		Int("users", len(c.userIDs)).
		Int("ratings", len(c.ratings)).
		Int("dropped_ratings", c.dropped).
		Dur("duration", time.Since(start)).
		Msg("Catalog loaded")
	if c.dropped > 0 {
		logger.Warn().
			Int("dropped_ratings", c.dropped).
			Msg("Ratings referenced unknown movies and were dropped")
	}
	return c, nil
}

// loadMovies parses the pipe-delimited movie file. The file is
// Latin-1 encoded (movie titles carry accented characters), so lines
// are transcoded to UTF-8 before parsing.
func (c *Catalog) loadMovies(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open movie file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	r := transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	return scanLines(r, path, c.parseMovieLine)
}

func (c *Catalog) parseMovieLine(path string, lineNo int, line string) error {
	fields := strings.Split(line, "|")
	want := movieMetaFields + len(genreColumns)
	if len(fields) != want {
		return formatError(path, lineNo, line,
			fmt.Sprintf("expected %d pipe-delimited fields, got %d", want, len(fields)))
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return formatError(path, lineNo, line, "movie id is not an integer")
	}

	title := cleanTitle(fields[1])
	if title == "" {
		return formatError(path, lineNo, line, "empty movie title")
	}

	var genres []string
	for i, flag := range fields[movieMetaFields:] {
		switch flag {
		case "0":
		case "1":
			genres = append(genres, genreColumns[i])
		default:
			return formatError(path, lineNo, line,
				fmt.Sprintf("genre flag %q must be 0 or 1", flag))
		}
	}

	m := &Movie{ID: id, Title: title, Genres: genres}
	if _, exists := c.movies[id]; !exists {
		c.movieIDs = append(c.movieIDs, id)
	}
	// Duplicate ids keep the last record, matching rating semantics.
	c.movies[id] = m
	return nil
}

// cleanTitle strips the trailing parenthesized release year from a raw
// title, e.g. "Toy Story (1995)" becomes "Toy Story".
func cleanTitle(raw string) string {
	if idx := strings.Index(raw, " ("); idx >= 0 {
		raw = raw[:idx]
	}
	return strings.TrimSpace(raw)
}

// loadRatings parses the tab-delimited rating file. Duplicate
// (user, movie) pairs keep the last score seen, at the position of the
// first occurrence. Ratings for unknown movies are dropped and counted.
func (c *Catalog) loadRatings(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open rating file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	seen := make(map[[2]int]int) // (user, movie) -> index into c.ratings

	parse := func(path string, lineNo int, line string) error {
		fields := strings.Split(line, "\t")
		if len(fields) != ratingFields && len(fields) != ratingFields-1 {
			return formatError(path, lineNo, line,
				fmt.Sprintf("expected %d tab-delimited fields, got %d", ratingFields, len(fields)))
		}

		userID, err := strconv.Atoi(fields[0])
		if err != nil {
			return formatError(path, lineNo, line, "user id is not an integer")
		}
		movieID, err := strconv.Atoi(fields[1])
		if err != nil {
			return formatError(path, lineNo, line, "movie id is not an integer")
		}
		score, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return formatError(path, lineNo, line, "score is not numeric")
		}
		if score < minScore || score > maxScore {
			return formatError(path, lineNo, line,
				fmt.Sprintf("score %g outside [%g,%g]", score, minScore, maxScore))
		}

		if _, ok := c.movies[movieID]; !ok {
			c.dropped++
			return nil
		}

		key := [2]int{userID, movieID}
		if idx, dup := seen[key]; dup {
			c.ratings[idx].Score = score
			return nil
		}
		seen[key] = len(c.ratings)
		c.ratings = append(c.ratings, Rating{UserID: userID, MovieID: movieID, Score: score})
		return nil
	}

	return scanLines(f, path, parse)
}

// scanLines feeds non-empty lines of r to parse with 1-based line
// numbers.
func scanLines(r io.Reader, path string, parse func(string, int, string) error) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if err := parse(path, lineNo, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// buildIndexes derives the per-user and per-movie indexes and the
// movie aggregates from the final rating sequence.
func (c *Catalog) buildIndexes() {
	sort.Ints(c.movieIDs)

	sums := make(map[int]float64, len(c.movies))
	for _, r := range c.ratings {
		c.byUser[r.UserID] = append(c.byUser[r.UserID], r)
		c.byMovie[r.MovieID] = append(c.byMovie[r.MovieID], r)
		sums[r.MovieID] += r.Score
	}

	for id, m := range c.movies {
		if n := len(c.byMovie[id]); n > 0 {
			m.RatingCount = n
			m.MeanRating = sums[id] / float64(n)
		}
	}

	c.userIDs = make([]int, 0, len(c.byUser))
	for id := range c.byUser {
		c.userIDs = append(c.userIDs, id)
	}
	sort.Ints(c.userIDs)
}

// computeFingerprint digests the parsed records in canonical order.
// Loading identical input files always yields the same fingerprint.
func (c *Catalog) computeFingerprint() string {
	h := sha256.New()
	for _, id := range c.movieIDs {
		m := c.movies[id]
		fmt.Fprintf(h, "m:%d|%s|%s\n", m.ID, m.Title, strings.Join(m.Genres, ","))
	}
	for _, r := range c.ratings {
		fmt.Fprintf(h, "r:%d|%d|%g\n", r.UserID, r.MovieID, r.Score)
	}
	return hex.EncodeToString(h.Sum(nil))
}
