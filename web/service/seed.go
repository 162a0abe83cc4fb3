package service

import (
	"os"

	"librairie/database"
	"librairie/database/model"
	"librairie/logger"

	"github.com/pelletier/go-toml/v2"
)

// seedFile is the TOML layout accepted by the `seed` CLI command.
type seedFile struct {
	Categories []struct {
		Name        string `toml:"name"`
		Description string `toml:"description"`
	} `toml:"categories"`
	Books []struct {
		Title           string  `toml:"title"`
		Author          string  `toml:"author"`
		Description     string  `toml:"description"`
		Isbn            string  `toml:"isbn"`
		Publisher       string  `toml:"publisher"`
		Category        string  `toml:"category"`
		Price           float64 `toml:"price"`
		Stock           int     `toml:"stock"`
		Pages           int     `toml:"pages"`
		PublicationYear int     `toml:"publication_year"`
		CoverImage      string  `toml:"cover_image"`
	} `toml:"books"`
}

// ImportCatalog loads categories and books from a TOML file. Categories are
// matched by name; already-present categories are reused, and books are
// inserted as-is.
func (s *BookService) ImportCatalog(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var seed seedFile
	if err := toml.Unmarshal(data, &seed); err != nil {
		return 0, err
	}

	db := database.GetDB()

	categoryIds := make(map[string]int)
	for _, c := range seed.Categories {
		category := &model.Category{}
		err := db.Where("name = ?", c.Name).First(category).Error
		if database.IsNotFound(err) {
			category = &model.Category{Name: c.Name, Description: c.Description}
			if err := db.Create(category).Error; err != nil {
				return 0, err
			}
		} else if err != nil {
			return 0, err
		}
		categoryIds[c.Name] = category.Id
	}

	imported := 0
	for _, b := range seed.Books {
		book := &model.Book{
			Title:           b.Title,
			Author:          b.Author,
			Description:     b.Description,
			Isbn:            b.Isbn,
			Publisher:       b.Publisher,
			Price:           b.Price,
			Stock:           b.Stock,
			Pages:           b.Pages,
			PublicationYear: b.PublicationYear,
			CoverImage:      b.CoverImage,
		}
		if id, ok := categoryIds[b.Category]; ok {
			book.CategoryId = &id
		}
		if err := s.CreateBook(book); err != nil {
			logger.Warningf("skipping book %q: %v", b.Title, err)
			continue
		}
		imported++
	}
	return imported, nil
}
