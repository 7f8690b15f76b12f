package catalog

import (
	"testing"

	"github.com/boraler/boraler-web/internal/types"
	"github.com/stretchr/testify/assert"
)

func sampleBooks() []types.Book {
	return []types.Book{
		{ID: 1, Title: "Dune", Genre: "SciFi", Objectives: []types.Objective{types.Loan}, UserCity: "SP", UserState: "SP"},
		{ID: 2, Title: "Clean Code", Genre: "Tech", Objectives: []types.Objective{types.Donation}, UserCity: "RJ", UserState: "RJ"},
	}
}

func ids(books []types.Book) []int {
	out := make([]int, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

func TestFilterExamples(t *testing.T) {
	books := sampleBooks()

	assert.Equal(t, []int{1}, ids(Filter(books, "dune", nil, "")))
	assert.Equal(t, []int{2}, ids(Filter(books, "", []types.Objective{types.Donation}, "")))
	assert.Equal(t, []int{1}, ids(Filter(books, "", nil, "SP-SP")))
	assert.Equal(t, []int{1, 2}, ids(Filter(books, "", nil, "")))
}

func TestFilterQueryFields(t *testing.T) {
	books := []types.Book{
		{ID: 1, Title: "O Cortiço", Genre: "Romance", Author: "Aluísio Azevedo", UserName: "Carla"},
		{ID: 2, Title: "Vidas Secas", Genre: "Romance", Author: "Graciliano Ramos", UserName: "João"},
		{ID: 3, Title: "Sapiens", Genre: "História", Author: "Harari", UserName: "Maria"},
	}

	assert.Equal(t, []int{1, 2}, ids(Filter(books, "ROMANCE", nil, "")), "genre")
	assert.Equal(t, []int{2}, ids(Filter(books, "graciliano", nil, "")), "author")
	assert.Equal(t, []int{3}, ids(Filter(books, "mar", nil, "")), "owner name")
	assert.Equal(t, []int{1}, ids(Filter(books, "CORTIÇO", nil, "")), "accented title")
	assert.Empty(t, Filter(books, "tolkien", nil, ""))
}

func TestFilterObjectivesIntersect(t *testing.T) {
	books := []types.Book{
		{ID: 1, Objectives: []types.Objective{types.Exchange, types.Loan}},
		{ID: 2, Objectives: []types.Objective{types.Donation}},
		{ID: 3, Objectives: []types.Objective{types.Loan}},
	}
	assert.Equal(t, []int{1, 3}, ids(Filter(books, "", []types.Objective{types.Loan}, "")))
	assert.Equal(t, []int{1, 2}, ids(Filter(books, "", []types.Objective{types.Exchange, types.Donation}, "")))
}

func TestFilterCityIsExact(t *testing.T) {
	books := []types.Book{
		{ID: 1, UserCity: "Santos", UserState: "SP"},
		{ID: 2, UserCity: "Santos", UserState: "SC"},
		{ID: 3, UserCity: "santos", UserState: "SP"},
	}
	assert.Equal(t, []int{1}, ids(Filter(books, "", nil, "Santos-SP")))
	assert.Empty(t, Filter(books, "", nil, "Santos"))
}

func TestFilterCombinesCriteria(t *testing.T) {
	books := append(sampleBooks(), types.Book{
		ID: 3, Title: "Dune Messiah", Objectives: []types.Objective{types.Donation}, UserCity: "SP", UserState: "SP",
	})
	assert.Equal(t, []int{3}, ids(Filter(books, "dune", []types.Objective{types.Donation}, "SP-SP")))
}

func TestApplyNormalizesAllCities(t *testing.T) {
	got := Apply(sampleBooks(), Criteria{City: AllCities})
	assert.Equal(t, []int{1, 2}, ids(got))
	assert.False(t, Criteria{City: AllCities}.Active())
	assert.True(t, Criteria{Objectives: []types.Objective{types.Loan}}.Active())
}

func TestCities(t *testing.T) {
	books := []types.Book{
		{ID: 1, UserCity: "RJ", UserState: "RJ"},
		{ID: 2, UserCity: "", UserState: "SP"},
		{ID: 3, UserCity: "Campinas", UserState: "SP"},
		{ID: 4, UserCity: "RJ", UserState: "RJ"},
	}
	assert.Equal(t, []string{"RJ-RJ", "Campinas-SP"}, Cities(books))
	assert.Empty(t, Cities(nil))
	assert.True(t, Contains(Cities(books), "Campinas-SP"))
	assert.False(t, Contains(Cities(books), "-SP"))
}

func TestPublicView(t *testing.T) {
	no, yes := false, true
	b := types.Book{UserPhone: "(11) 9", UserEmail: "a@b"}

	b.UserPublicContact = &no
	hidden := PublicView(b)
	assert.Empty(t, hidden.UserPhone)
	assert.Empty(t, hidden.UserEmail)

	b.UserPublicContact = &yes
	assert.Equal(t, "a@b", PublicView(b).UserEmail)

	b.UserPublicContact = nil
	assert.Equal(t, "(11) 9", PublicView(b).UserPhone)
}

func TestFilterQueryLowercasesWithoutFolding(t *testing.T) {
	books := []types.Book{
		{ID: 1, Title: "Straße der Bücher"},
		{ID: 2, Title: "A REVOLUÇÃO DOS BICHOS"},
	}

	assert.Empty(t, Filter(books, "ss", nil, ""))
	assert.Equal(t, []int{1}, ids(Filter(books, "STRAßE", nil, "")))
	assert.Equal(t, []int{2}, ids(Filter(books, "revolução", nil, "")))
}
