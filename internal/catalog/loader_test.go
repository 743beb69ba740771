// Cinelens - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelens

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// movieLine builds a pipe-delimited movie record with the given genre
// flags set.
func movieLine(t *testing.T, id int, title string, genres ...string) string {
	t.Helper()
	flags := make([]string, len(genreColumns))
	for i := range flags {
		flags[i] = "0"
	}
	for _, g := range genres {
		found := false
		for i, col := range genreColumns {
			if col == g {
				flags[i] = "1"
				found = true
			}
		}
		if !found {
			t.Fatalf("unknown genre column %q", g)
		}
	}
	fields := []string{
		strconv.Itoa(id), title, "01-Jan-1995", "", "http://example.invalid",
	}
	fields = append(fields, flags...)
	return strings.Join(fields, "|")
}

// writeDataset writes movie and rating files into a temp dir and
// returns their paths.
func writeDataset(t *testing.T, movieLines, ratingLines []string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	moviePath := filepath.Join(dir, "u.item")
	ratingPath := filepath.Join(dir, "u.data")
	if err := os.WriteFile(moviePath, []byte(strings.Join(movieLines, "\n")+"\n"), 0o600); err != nil {
		t.Fatalf("write movie file: %v", err)
	}
	if err := os.WriteFile(ratingPath, []byte(strings.Join(ratingLines, "\n")+"\n"), 0o600); err != nil {
		t.Fatalf("write rating file: %v", err)
	}
	return moviePath, ratingPath
}

// loadTestCatalog loads the standard small fixture used across the
// package tests: 4 movies, 3 users.
func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	movies := []string{
		movieLine(t, 1, "Heat (1995)", "Action", "Thriller"),
		movieLine(t, 2, "Rumble in the Bronx (1995)", "Action", "Comedy", "Thriller"),
		movieLine(t, 3, "Four Rooms (1995)", "Comedy"),
		movieLine(t, 4, "Silent Reel (1929)"),
	}
	ratings := []string{
		"1\t1\t5\t874965758",
		"1\t2\t4\t874965759",
		"2\t1\t4\t874965760",
		"2\t3\t3\t874965761",
		"3\t2\t2\t874965762",
		"3\t3\t5\t874965763",
		"3\t4\t4\t874965764",
	}
	moviePath, ratingPath := writeDataset(t, movies, ratings)
	c, err := Load(moviePath, ratingPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return c
}

func TestLoad(t *testing.T) {
	c := loadTestCatalog(t)

	if got := len(c.Movies()); got != 4 {
		t.Errorf("len(Movies()) = %d, want 4", got)
	}
	if got := len(c.UserIDs()); got != 3 {
		t.Errorf("len(UserIDs()) = %d, want 3", got)
	}
	if got := len(c.Ratings()); got != 7 {
		t.Errorf("len(Ratings()) = %d, want 7", got)
	}

	m, ok := c.Movie(1)
	if !ok {
		t.Fatal("Movie(1) not found")
	}
	if m.Title != "Heat" {
		t.Errorf("Movie(1).Title = %q, want %q (year suffix stripped)", m.Title, "Heat")
	}
	if len(m.Genres) != 2 || m.Genres[0] != "Action" || m.Genres[1] != "Thriller" {
		t.Errorf("Movie(1).Genres = %v, want [Action Thriller]", m.Genres)
	}
	if m.RatingCount != 2 {
		t.Errorf("Movie(1).RatingCount = %d, want 2", m.RatingCount)
	}
	if m.MeanRating != 4.5 {
		t.Errorf("Movie(1).MeanRating = %g, want 4.5", m.MeanRating)
	}

	// Movie 4 has no genres at all.
	m4, _ := c.Movie(4)
	if len(m4.Genres) != 0 {
		t.Errorf("Movie(4).Genres = %v, want empty", m4.Genres)
	}
}

func TestLoadDropsUnknownMovieRatings(t *testing.T) {
	movies := []string{movieLine(t, 1, "Heat (1995)", "Action")}
	ratings := []string{
		"1\t1\t5\t874965758",
		"1\t999\t4\t874965759", // no such movie
		"2\t998\t3\t874965760", // no such movie
	}
	moviePath, ratingPath := writeDataset(t, movies, ratings)

	c, err := Load(moviePath, ratingPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.DroppedRatings() != 2 {
		t.Errorf("DroppedRatings() = %d, want 2", c.DroppedRatings())
	}
	if len(c.Ratings()) != 1 {
		t.Errorf("len(Ratings()) = %d, want 1", len(c.Ratings()))
	}
	// User 2 only rated an unknown movie, so it must not appear.
	if c.HasUser(2) {
		t.Error("HasUser(2) = true, want false")
	}
}

func TestLoadDuplicateRatingLastWriteWins(t *testing.T) {
	movies := []string{movieLine(t, 1, "Heat (1995)", "Action")}
	ratings := []string{
		"1\t1\t2\t874965758",
		"1\t1\t5\t874965999",
	}
	moviePath, ratingPath := writeDataset(t, movies, ratings)

	c, err := Load(moviePath, ratingPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got := c.RatingsForUser(1)
	if len(got) != 1 {
		t.Fatalf("len(RatingsForUser(1)) = %d, want 1", len(got))
	}
	if got[0].Score != 5 {
		t.Errorf("duplicate score = %g, want 5 (last write wins)", got[0].Score)
	}
}

func TestLoadFormatErrors(t *testing.T) {
	validMovie := movieLine(t, 1, "Heat (1995)", "Action")

	tests := []struct {
		name    string
		movies  []string
		ratings []string
		file    string // which file the error should name: "u.item" or "u.data"
		reason  string
	}{
		{
			name:    "movie wrong field count",
			movies:  []string{"1|Heat (1995)|01-Jan-1995"},
			ratings: []string{"1\t1\t5\t874965758"},
			file:    "u.item",
			reason:  "pipe-delimited fields",
		},
		{
			name:    "movie id not integer",
			movies:  []string{strings.Replace(validMovie, "1|", "x|", 1)},
			ratings: []string{"1\t1\t5\t874965758"},
			file:    "u.item",
			reason:  "movie id is not an integer",
		},
		{
			name:    "genre flag not binary",
			movies:  []string{strings.TrimSuffix(validMovie, "0") + "2"},
			ratings: []string{"1\t1\t5\t874965758"},
			file:    "u.item",
			reason:  "must be 0 or 1",
		},
		{
			name:    "rating wrong field count",
			movies:  []string{validMovie},
			ratings: []string{"1\t1"},
			file:    "u.data",
			reason:  "tab-delimited fields",
		},
		{
			name:    "score not numeric",
			movies:  []string{validMovie},
			ratings: []string{"1\t1\tfive\t874965758"},
			file:    "u.data",
			reason:  "score is not numeric",
		},
		{
			name:    "score above range",
			movies:  []string{validMovie},
			ratings: []string{"1\t1\t6\t874965758"},
			file:    "u.data",
			reason:  "outside [1,5]",
		},
		{
			name:    "score below range",
			movies:  []string{validMovie},
			ratings: []string{"1\t1\t0.5\t874965758"},
			file:    "u.data",
			reason:  "outside [1,5]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moviePath, ratingPath := writeDataset(t, tt.movies, tt.ratings)

			_, err := Load(moviePath, ratingPath)
			if err == nil {
				t.Fatal("Load() error = nil, want DataFormatError")
			}
			var dfe *DataFormatError
			if !errors.As(err, &dfe) {
				t.Fatalf("Load() error = %v, want *DataFormatError", err)
			}
			if !strings.HasSuffix(dfe.Path, tt.file) {
				t.Errorf("error path = %q, want suffix %q", dfe.Path, tt.file)
			}
			if dfe.Line != 1 {
				t.Errorf("error line = %d, want 1", dfe.Line)
			}
			if !strings.Contains(dfe.Reason, tt.reason) {
				t.Errorf("error reason = %q, want substring %q", dfe.Reason, tt.reason)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.item"), filepath.Join(dir, "missing.data"))
	if err == nil {
		t.Fatal("Load() error = nil, want open error")
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Toy Story (1995)", "Toy Story"},
		{"Heat (1995)", "Heat"},
		{"Plain Title", "Plain Title"},
		{"  Padded (1990)  ", "Padded"},
		{"Twelve Monkeys (a.k.a. 12 Monkeys) (1995)", "Twelve Monkeys"},
	}
	for _, tt := range tests {
		if got := cleanTitle(tt.raw); got != tt.want {
			t.Errorf("cleanTitle(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	a := loadTestCatalog(t)
	b := loadTestCatalog(t)

	if a.Fingerprint() == "" {
		t.Fatal("Fingerprint() is empty")
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical inputs produced different fingerprints")
	}

	// A changed score must change the fingerprint.
	movies := []string{
		movieLine(t, 1, "Heat (1995)", "Action", "Thriller"),
		movieLine(t, 2, "Rumble in the Bronx (1995)", "Action", "Comedy", "Thriller"),
		movieLine(t, 3, "Four Rooms (1995)", "Comedy"),
		movieLine(t, 4, "Silent Reel (1929)"),
	}
	ratings := []string{
		"1\t1\t4\t874965758", // was 5
		"1\t2\t4\t874965759",
		"2\t1\t4\t874965760",
		"2\t3\t3\t874965761",
		"3\t2\t2\t874965762",
		"3\t3\t5\t874965763",
		"3\t4\t4\t874965764",
	}
	moviePath, ratingPath := writeDataset(t, movies, ratings)
	changed, err := Load(moviePath, ratingPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if changed.Fingerprint() == a.Fingerprint() {
		t.Error("changed input produced identical fingerprint")
	}
}

func TestLoadLatin1Titles(t *testing.T) {
	// 0xE9 is é in Latin-1; the loader must transcode it to UTF-8.
	raw := movieLine(t, 1, "Les Mis\xe9rables (1995)", "Drama")
	moviePath, ratingPath := writeDataset(t, []string{raw}, []string{"1\t1\t4\t874965758"})

	c, err := Load(moviePath, ratingPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	m, _ := c.Movie(1)
	if m.Title != "Les Misérables" {
		t.Errorf("Title = %q, want %q", m.Title, "Les Misérables")
	}
}
