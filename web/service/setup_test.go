package service

import (
	"path/filepath"
	"testing"

	"librairie/database"
	"librairie/database/model"
	"librairie/logger"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/require"
)

// initTestDB opens a fresh sqlite database in a temp dir. The global handle
// is shared, so tests using it must not run in parallel.
func initTestDB(t *testing.T) {
	t.Helper()
	t.Setenv("LIB_LOG_FOLDER", t.TempDir())
	logger.InitLogger(logging.ERROR)
	err := database.InitDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, database.CloseDB())
	})
}

func createTestUser(t *testing.T, username string) *model.User {
	t.Helper()
	userService := UserService{}
	err := userService.Register(username, username+"@example.com", "secret123")
	require.NoError(t, err)
	user, err := userService.CheckUser(username, "secret123")
	require.NoError(t, err)
	return user
}

func createTestBook(t *testing.T, title string, price float64, stock int) *model.Book {
	t.Helper()
	book := &model.Book{
		Title:  title,
		Author: "Test Author",
		Price:  price,
		Stock:  stock,
	}
	bookService := BookService{}
	require.NoError(t, bookService.CreateBook(book))
	return book
}
