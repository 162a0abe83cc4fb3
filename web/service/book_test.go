package service

import (
	"bytes"
	"testing"

	"librairie/database"
	"librairie/database/model"
	"librairie/util/json_util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchKeyword(t *testing.T) {
	initTestDB(t)
	bookService := BookService{}

	createTestBook(t, "Le Comte de Monte-Cristo", 12.00, 5)
	createTestBook(t, "Germinal", 9.90, 5)
	zola := &model.Book{
		Title:       "Nana",
		Author:      "Emile Zola",
		Description: "A naturalist novel",
		Price:       8.50,
		Stock:       3,
	}
	require.NoError(t, bookService.CreateBook(zola))

	books, err := bookService.Search(SearchFilter{Keyword: "monte"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Le Comte de Monte-Cristo", books[0].Title)

	// Keyword matches author and description too.
	books, err = bookService.Search(SearchFilter{Keyword: "Zola"})
	require.NoError(t, err)
	require.Len(t, books, 1)

	books, err = bookService.Search(SearchFilter{Keyword: "naturalist"})
	require.NoError(t, err)
	require.Len(t, books, 1)

	// LIKE wildcards in the keyword are treated literally.
	books, err = bookService.Search(SearchFilter{Keyword: "%"})
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestSearchOrderedByTitle(t *testing.T) {
	initTestDB(t)
	bookService := BookService{}

	createTestBook(t, "Zadig", 7.00, 1)
	createTestBook(t, "Candide", 7.00, 1)

	books, err := bookService.Search(SearchFilter{})
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Candide", books[0].Title)
	assert.Equal(t, "Zadig", books[1].Title)
}

func TestSearchFilters(t *testing.T) {
	initTestDB(t)
	bookService := BookService{}

	require.NoError(t, bookService.AddCategory("Novels", ""))
	categories, err := bookService.GetCategories()
	require.NoError(t, err)
	require.Len(t, categories, 1)
	catId := categories[0].Id

	cheap := createTestBook(t, "Cheap Book", 5.00, 1)
	expensive := createTestBook(t, "Expensive Book", 50.00, 1)

	err = database.GetDB().Model(model.Book{}).
		Where("id = ?", cheap.Id).
		Update("category_id", catId).
		Error
	require.NoError(t, err)

	books, err := bookService.Search(SearchFilter{CategoryId: catId})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, cheap.Id, books[0].Id)

	min, max := 10.0, 100.0
	books, err = bookService.Search(SearchFilter{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, expensive.Id, books[0].Id)
}

func TestCreateBookValidation(t *testing.T) {
	initTestDB(t)
	bookService := BookService{}

	tests := []struct {
		name string
		book model.Book
	}{
		{"missing title", model.Book{Author: "A", Price: 1}},
		{"missing author", model.Book{Title: "T", Price: 1}},
		{"zero price", model.Book{Title: "T", Author: "A", Price: 0}},
		{"negative stock", model.Book{Title: "T", Author: "A", Price: 1, Stock: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := bookService.CreateBook(&tc.book)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUpdateBook(t *testing.T) {
	initTestDB(t)
	bookService := BookService{}

	book := createTestBook(t, "Germinal", 9.90, 5)
	book.Price = 11.50
	book.Stock = 7
	require.NoError(t, bookService.UpdateBook(book))

	updated, err := bookService.GetBookById(book.Id)
	require.NoError(t, err)
	assert.InDelta(t, 11.50, updated.Price, 0.001)
	assert.Equal(t, 7, updated.Stock)

	missing := *book
	missing.Id = 99999
	assert.ErrorIs(t, bookService.UpdateBook(&missing), ErrNotFound)
}

func TestDeleteBookRemovesCartEntries(t *testing.T) {
	initTestDB(t)
	bookService := BookService{}
	cartService := CartService{}

	user := createTestUser(t, "alice")
	book := createTestBook(t, "Germinal", 9.90, 5)
	require.NoError(t, cartService.AddItem(user.Id, book.Id, 2))

	require.NoError(t, bookService.DeleteBook(book.Id))

	_, err := bookService.GetBookById(book.Id)
	assert.ErrorIs(t, err, ErrNotFound)

	count, err := cartService.GetItemCount(user.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	assert.ErrorIs(t, bookService.DeleteBook(book.Id), ErrNotFound)
}

func TestAddCategoryConflict(t *testing.T) {
	initTestDB(t)
	bookService := BookService{}

	require.NoError(t, bookService.AddCategory("Novels", "long fiction"))
	assert.ErrorIs(t, bookService.AddCategory("Novels", ""), ErrConflict)
	assert.ErrorIs(t, bookService.AddCategory("", ""), ErrValidation)
}

func TestExportCatalog(t *testing.T) {
	initTestDB(t)
	bookService := BookService{}

	require.NoError(t, bookService.AddCategory("Novels", ""))
	createTestBook(t, "Germinal", 9.90, 5)

	var buf bytes.Buffer
	require.NoError(t, bookService.ExportCatalog(&buf))

	var out struct {
		Categories []*model.Category `json:"categories"`
		Books      []*model.Book     `json:"books"`
	}
	require.NoError(t, json_util.Unmarshal(buf.Bytes(), &out))
	assert.Len(t, out.Categories, 1)
	assert.Len(t, out.Books, 1)
	assert.Equal(t, "Germinal", out.Books[0].Title)
}
