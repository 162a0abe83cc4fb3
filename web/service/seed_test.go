package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
[[categories]]
name = "Novels"
description = "Long fiction"

[[books]]
title = "Germinal"
author = "Emile Zola"
category = "Novels"
price = 9.90
stock = 12

[[books]]
title = "Broken Book"
author = ""
price = 5.00
stock = 1
`

func TestImportCatalog(t *testing.T) {
	initTestDB(t)
	bookService := BookService{}

	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o644))

	imported, err := bookService.ImportCatalog(path)
	require.NoError(t, err)

	// The invalid book is skipped, not fatal.
	assert.Equal(t, 1, imported)

	books, err := bookService.Search(SearchFilter{Keyword: "Germinal"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.NotNil(t, books[0].Category)
	assert.Equal(t, "Novels", books[0].Category.Name)

	// Importing again reuses the existing category.
	_, err = bookService.ImportCatalog(path)
	require.NoError(t, err)
	categories, err := bookService.GetCategories()
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}
