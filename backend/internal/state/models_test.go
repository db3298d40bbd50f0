package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilmography_Credits(t *testing.T) {
	films := Filmography{
		"Macarena Abad":   {"Conquista en Juego", "The Real Double"},
		"Carmencita Abad": {"1 2 3", "1 2 3"},
	}

	assert.Equal(t, []string{"Carmencita Abad", "Macarena Abad"}, films.Persons())
	assert.Equal(t, 4, films.CreditCount())
	assert.Equal(t, []Credit{
		{Actor: "Carmencita Abad", Movie: "1 2 3"},
		{Actor: "Carmencita Abad", Movie: "1 2 3"},
		{Actor: "Macarena Abad", Movie: "Conquista en Juego"},
		{Actor: "Macarena Abad", Movie: "The Real Double"},
	}, films.Credits())
}

func TestCredit(t *testing.T) {
	assert.Equal(t, Credit{Actor: "foo", Movie: "bar"}, Credit{Actor: "foo", Movie: "bar"})
	assert.NotEqual(t, Credit{Actor: "foo", Movie: "bar"}, Credit{Actor: "foo", Movie: "bar1"})
	assert.Equal(t, "Credit[actor=foo, movie=bar]", Credit{Actor: "foo", Movie: "bar"}.String())
}

func TestFilmography_Empty(t *testing.T) {
	var films Filmography
	assert.Empty(t, films.Persons())
	assert.Empty(t, films.Credits())
	assert.Zero(t, films.CreditCount())
}
