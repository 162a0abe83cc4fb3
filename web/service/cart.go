package service

import (
	"fmt"

	"librairie/database"
	"librairie/database/model"
	"librairie/web/entity"

	"gorm.io/gorm"
)

// CartService manages the database-persisted shopping cart. Every query is
// scoped by user id, so a cart entry id belonging to another user behaves as
// if it did not exist.
type CartService struct {
	bookService BookService
}

// AddItem puts quantity copies of a book into the user's cart. When the book
// is already in the cart the quantities merge into the existing row via a
// single atomic increment, so two rapid adds cannot lose an update.
//
// Stock is checked against the requested quantity only, not the merged
// total, and is not reserved. This mirrors the storefront's point-in-time
// stock semantics.
func (s *CartService) AddItem(userId, bookId, quantity int) error {
	if quantity <= 0 {
		return ErrValidation
	}

	stock, err := s.bookService.GetStock(bookId)
	if err != nil {
		return err
	}
	if stock < quantity {
		return ErrInsufficientStock
	}

	db := database.GetDB()
	result := db.Model(model.CartItem{}).
		Where("user_id = ? AND book_id = ?", userId, bookId).
		Update("quantity", gorm.Expr("quantity + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	item := &model.CartItem{
		UserId:   userId,
		BookId:   bookId,
		Quantity: quantity,
	}
	err = db.Create(item).Error
	if database.IsDuplicate(err) {
		// Lost the insert race against a concurrent add; fold into that row.
		return db.Model(model.CartItem{}).
			Where("user_id = ? AND book_id = ?", userId, bookId).
			Update("quantity", gorm.Expr("quantity + ?", quantity)).
			Error
	}
	return err
}

// GetItems returns the user's cart joined with book details, most recently
// added first.
func (s *CartService) GetItems(userId int) ([]*entity.CartLine, error) {
	db := database.GetDB()

	var lines []*entity.CartLine
	err := db.Table("cart_items").
		Select("cart_items.id as cart_id, books.id as book_id, books.title, books.author, books.price, books.cover_image, cart_items.quantity, cart_items.quantity * books.price as subtotal").
		Joins("JOIN books ON cart_items.book_id = books.id").
		Where("cart_items.user_id = ?", userId).
		Order("cart_items.added_at desc, cart_items.id desc").
		Scan(&lines).
		Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// UpdateQuantity overwrites a cart entry's quantity. A quantity of zero or
// less removes the entry instead.
func (s *CartService) UpdateQuantity(userId, cartId, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(userId, cartId)
	}

	db := database.GetDB()

	item := &model.CartItem{}
	err := db.Model(model.CartItem{}).
		Where("id = ? AND user_id = ?", cartId, userId).
		First(item).
		Error
	if database.IsNotFound(err) {
		return ErrNotFound
	} else if err != nil {
		return err
	}

	stock, err := s.bookService.GetStock(item.BookId)
	if err != nil {
		return err
	}
	if stock < quantity {
		return ErrInsufficientStock
	}

	return db.Model(model.CartItem{}).
		Where("id = ? AND user_id = ?", cartId, userId).
		Update("quantity", quantity).
		Error
}

// RemoveItem deletes a cart entry owned by the user. ErrNotFound when no row
// was removed.
func (s *CartService) RemoveItem(userId, cartId int) error {
	db := database.GetDB()

	result := db.Where("id = ? AND user_id = ?", cartId, userId).
		Delete(&model.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetTotal sums quantity times price over the user's cart. Zero for an empty
// cart.
func (s *CartService) GetTotal(userId int) (float64, error) {
	db := database.GetDB()

	var total *float64
	err := db.Table("cart_items").
		Select("SUM(cart_items.quantity * books.price)").
		Joins("JOIN books ON cart_items.book_id = books.id").
		Where("cart_items.user_id = ?", userId).
		Scan(&total).
		Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// GetItemCount counts the user's cart lines (distinct entries, not summed
// quantities).
func (s *CartService) GetItemCount(userId int) (int64, error) {
	db := database.GetDB()

	var count int64
	err := db.Model(model.CartItem{}).
		Where("user_id = ?", userId).
		Count(&count).
		Error
	return count, err
}

// Clear empties the user's cart.
func (s *CartService) Clear(userId int) error {
	db := database.GetDB()
	return db.Where("user_id = ?", userId).
		Delete(&model.CartItem{}).
		Error
}

// RemoveStaleItems deletes cart entries older than the given number of days,
// across all users. Used by the daily cleanup job.
func (s *CartService) RemoveStaleItems(days int) (int64, error) {
	db := database.GetDB()
	result := db.Where("added_at < datetime('now', ?)", fmt.Sprintf("-%d days", days)).
		Delete(&model.CartItem{})
	return result.RowsAffected, result.Error
}
