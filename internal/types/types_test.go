package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserIDAcceptsStringsAndNumbers(t *testing.T) {
	cases := map[string]UserID{
		`{"id":"abc"}`: "abc",
		`{"id":42}`:    "42",
		`{"id":null}`:  "",
		`{}`:           "",
	}
	for raw, want := range cases {
		var u User
		require.NoError(t, json.Unmarshal([]byte(raw), &u), raw)
		assert.Equal(t, want, u.ID, raw)
	}

	var u User
	assert.Error(t, json.Unmarshal([]byte(`{"id":true}`), &u))
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"login", "signup", "update"} {
		m, ok := ParseMode(s)
		assert.True(t, ok, s)
		assert.Equal(t, ValidationMode(s), m)
	}
	_, ok := ParseMode("admin")
	assert.False(t, ok)
}

func TestPersonTypeValid(t *testing.T) {
	assert.True(t, Individual.Valid())
	assert.True(t, Organization.Valid())
	assert.False(t, PersonType("").Valid())
	assert.False(t, PersonType("pf").Valid())
}

func TestObjectiveLabels(t *testing.T) {
	assert.Equal(t, []string{"Troca", "Doação", "Empréstimo"},
		[]string{Exchange.Label(), Donation.Label(), Loan.Label()})
	assert.Equal(t, "Venda", Objective("Venda").Label())
}

func TestHasObjective(t *testing.T) {
	b := Book{Objectives: []Objective{Exchange, Loan}}
	assert.True(t, b.HasObjective(Loan))
	assert.False(t, b.HasObjective(Donation))
}
