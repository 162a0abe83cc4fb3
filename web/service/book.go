package service

import (
	"fmt"
	"io"
	"strings"

	"librairie/database"
	"librairie/database/model"
	"librairie/util/json_util"
)

const searchLimit = 50

// BookService manages the catalog: books, categories, and search.
type BookService struct{}

// SearchFilter narrows a catalog search. Zero values mean "no filter".
type SearchFilter struct {
	Keyword    string
	CategoryId int
	MinPrice   *float64
	MaxPrice   *float64
}

// GetBooks returns a storefront page of books, newest first, with their
// category preloaded.
func (s *BookService) GetBooks(limit, offset int) ([]*model.Book, error) {
	db := database.GetDB()

	var books []*model.Book
	err := db.Model(model.Book{}).
		Preload("Category").
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&books).
		Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

// CountBooks returns the catalog size, for pagination.
func (s *BookService) CountBooks() (int64, error) {
	db := database.GetDB()

	var count int64
	err := db.Model(model.Book{}).Count(&count).Error
	return count, err
}

// GetBookById returns one book with its category, or ErrNotFound.
func (s *BookService) GetBookById(id int) (*model.Book, error) {
	db := database.GetDB()

	book := &model.Book{}
	err := db.Model(model.Book{}).
		Preload("Category").
		Where("id = ?", id).
		First(book).
		Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return book, nil
}

// GetStock returns the current stock of one book, or ErrNotFound.
func (s *BookService) GetStock(id int) (int, error) {
	db := database.GetDB()

	var stock int
	result := db.Model(model.Book{}).
		Select("stock").
		Where("id = ?", id).
		Limit(1).
		Scan(&stock)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return stock, nil
}

// Search filters the catalog. The keyword matches title, author, or
// description as a substring; results are capped and ordered by title.
func (s *BookService) Search(filter SearchFilter) ([]*model.Book, error) {
	db := database.GetDB()

	query := db.Model(model.Book{}).Preload("Category")

	if filter.Keyword != "" {
		pattern := "%" + escapeLike(filter.Keyword) + "%"
		query = query.Where(
			"title LIKE ? ESCAPE '\\' OR author LIKE ? ESCAPE '\\' OR description LIKE ? ESCAPE '\\'",
			pattern, pattern, pattern)
	}
	if filter.CategoryId > 0 {
		query = query.Where("category_id = ?", filter.CategoryId)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var books []*model.Book
	err := query.Order("title asc").
		Limit(searchLimit).
		Find(&books).
		Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

// CreateBook adds a book to the catalog. Price must be positive and stock
// non-negative.
func (s *BookService) CreateBook(book *model.Book) error {
	if err := validateBook(book); err != nil {
		return err
	}
	db := database.GetDB()
	return db.Create(book).Error
}

// UpdateBook overwrites an existing book's fields.
func (s *BookService) UpdateBook(book *model.Book) error {
	if err := validateBook(book); err != nil {
		return err
	}

	db := database.GetDB()
	result := db.Model(model.Book{}).
		Where("id = ?", book.Id).
		Updates(map[string]any{
			"title":            book.Title,
			"author":           book.Author,
			"description":      book.Description,
			"isbn":             book.Isbn,
			"publisher":        book.Publisher,
			"category_id":      book.CategoryId,
			"price":            book.Price,
			"stock":            book.Stock,
			"pages":            book.Pages,
			"publication_year": book.PublicationYear,
			"cover_image":      book.CoverImage,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBook removes a book and any cart entries pointing at it.
func (s *BookService) DeleteBook(id int) error {
	db := database.GetDB()

	if err := db.Where("book_id = ?", id).Delete(&model.CartItem{}).Error; err != nil {
		return err
	}
	result := db.Where("id = ?", id).Delete(&model.Book{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetCategories lists all categories ordered by name.
func (s *BookService) GetCategories() ([]*model.Category, error) {
	db := database.GetDB()

	var categories []*model.Category
	err := db.Model(model.Category{}).
		Order("name asc").
		Find(&categories).
		Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// AddCategory creates a category. ErrConflict when the name is taken.
func (s *BookService) AddCategory(name, description string) error {
	if name == "" {
		return fmt.Errorf("%w: category name can not be empty", ErrValidation)
	}

	db := database.GetDB()
	err := db.Create(&model.Category{Name: name, Description: description}).Error
	if database.IsDuplicate(err) {
		return ErrConflict
	}
	return err
}

// ExportCatalog writes all categories and books as indented JSON, for admin
// backups.
func (s *BookService) ExportCatalog(w io.Writer) error {
	categories, err := s.GetCategories()
	if err != nil {
		return err
	}

	db := database.GetDB()
	var books []*model.Book
	if err := db.Model(model.Book{}).Order("id asc").Find(&books).Error; err != nil {
		return err
	}

	return json_util.MarshalIndentTo(w, map[string]any{
		"categories": categories,
		"books":      books,
	})
}

func validateBook(book *model.Book) error {
	if book.Title == "" || book.Author == "" {
		return fmt.Errorf("%w: title and author are required", ErrValidation)
	}
	if book.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if book.Stock < 0 {
		return fmt.Errorf("%w: stock can not be negative", ErrValidation)
	}
	return nil
}

// escapeLike escapes LIKE wildcards in user-supplied keywords.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
