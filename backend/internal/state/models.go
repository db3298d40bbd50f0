package state

import (
	"fmt"
	"sort"
	"time"
)

// Filmography maps a normalized person name to the film titles credited to
// that person, in the order they appeared in the source listing.
// Duplicate titles are kept; empty credit lists are never stored.
type Filmography map[string][]string

// Credit is a single (actor, movie) fact
type Credit struct {
	Actor string `json:"actor"`
	Movie string `json:"movie"`
}

func (c Credit) String() string {
	return fmt.Sprintf("Credit[actor=%s, movie=%s]", c.Actor, c.Movie)
}

// Persons returns the person keys in sorted order
func (f Filmography) Persons() []string {
	persons := make([]string, 0, len(f))
	for person := range f {
		persons = append(persons, person)
	}
	sort.Strings(persons)
	return persons
}

// Credits flattens the mapping into (actor, movie) pairs, ordered by actor and
// then by position in the actor's credit list
func (f Filmography) Credits() []Credit {
	var credits []Credit
	for _, person := range f.Persons() {
		for _, movie := range f[person] {
			credits = append(credits, Credit{Actor: person, Movie: movie})
		}
	}
	return credits
}

// CreditCount returns the total number of credits across all persons
func (f Filmography) CreditCount() int {
	total := 0
	for _, movies := range f {
		total += len(movies)
	}
	return total
}

// LoadProgress is reported after every committed batch of a graph load
type LoadProgress struct {
	Batch     int           `json:"batch"`
	Processed int           `json:"processed"`
	Total     int           `json:"total"`
	Percent   float64       `json:"percent"`
	Elapsed   time.Duration `json:"elapsed"`
}
