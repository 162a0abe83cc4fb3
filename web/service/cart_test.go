package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemMergesQuantities(t *testing.T) {
	initTestDB(t)
	cartService := CartService{}

	user := createTestUser(t, "alice")
	book := createTestBook(t, "Germinal", 9.90, 10)

	require.NoError(t, cartService.AddItem(user.Id, book.Id, 2))
	require.NoError(t, cartService.AddItem(user.Id, book.Id, 3))

	count, err := cartService.GetItemCount(user.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	lines, err := cartService.GetItems(user.Id)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.InDelta(t, 49.50, lines[0].Subtotal, 0.001)
}

func TestAddItemInsufficientStock(t *testing.T) {
	initTestDB(t)
	cartService := CartService{}
	bookService := BookService{}

	user := createTestUser(t, "alice")
	book := createTestBook(t, "Germinal", 9.90, 2)

	err := cartService.AddItem(user.Id, book.Id, 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Stock is never reserved or decremented by cart operations.
	stock, err := bookService.GetStock(book.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, stock)

	count, err := cartService.GetItemCount(user.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestAddItemUnknownBook(t *testing.T) {
	initTestDB(t)
	cartService := CartService{}

	user := createTestUser(t, "alice")
	assert.ErrorIs(t, cartService.AddItem(user.Id, 99999, 1), ErrNotFound)
	assert.ErrorIs(t, cartService.AddItem(user.Id, 1, 0), ErrValidation)
}

func TestUpdateQuantity(t *testing.T) {
	initTestDB(t)
	cartService := CartService{}

	user := createTestUser(t, "alice")
	book := createTestBook(t, "Germinal", 9.90, 5)

	require.NoError(t, cartService.AddItem(user.Id, book.Id, 1))
	lines, err := cartService.GetItems(user.Id)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	cartId := lines[0].CartId

	require.NoError(t, cartService.UpdateQuantity(user.Id, cartId, 4))
	lines, err = cartService.GetItems(user.Id)
	require.NoError(t, err)
	assert.Equal(t, 4, lines[0].Quantity)

	assert.ErrorIs(t, cartService.UpdateQuantity(user.Id, cartId, 6), ErrInsufficientStock)

	// Zero quantity removes the entry.
	require.NoError(t, cartService.UpdateQuantity(user.Id, cartId, 0))
	count, err := cartService.GetItemCount(user.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestRemoveItemScopedByUser(t *testing.T) {
	initTestDB(t)
	cartService := CartService{}

	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	book := createTestBook(t, "Germinal", 9.90, 5)

	require.NoError(t, cartService.AddItem(alice.Id, book.Id, 1))
	lines, err := cartService.GetItems(alice.Id)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	// Another user's cart entry id behaves as if it did not exist.
	err = cartService.RemoveItem(bob.Id, lines[0].CartId)
	assert.ErrorIs(t, err, ErrNotFound)

	count, err := cartService.GetItemCount(alice.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, cartService.RemoveItem(alice.Id, lines[0].CartId))
	assert.ErrorIs(t, cartService.RemoveItem(alice.Id, lines[0].CartId), ErrNotFound)
}

func TestGetTotal(t *testing.T) {
	initTestDB(t)
	cartService := CartService{}

	user := createTestUser(t, "alice")

	total, err := cartService.GetTotal(user.Id)
	require.NoError(t, err)
	assert.Zero(t, total)

	novel := createTestBook(t, "Germinal", 10.00, 10)
	poems := createTestBook(t, "Les Fleurs du mal", 5.50, 10)

	require.NoError(t, cartService.AddItem(user.Id, novel.Id, 3))
	require.NoError(t, cartService.AddItem(user.Id, poems.Id, 1))

	total, err = cartService.GetTotal(user.Id)
	require.NoError(t, err)
	assert.InDelta(t, 35.50, total, 0.001)
}

func TestClear(t *testing.T) {
	initTestDB(t)
	cartService := CartService{}

	user := createTestUser(t, "alice")
	book := createTestBook(t, "Germinal", 9.90, 5)

	require.NoError(t, cartService.AddItem(user.Id, book.Id, 2))
	require.NoError(t, cartService.Clear(user.Id))

	count, err := cartService.GetItemCount(user.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// Clearing an already empty cart is not an error.
	require.NoError(t, cartService.Clear(user.Id))
}
