// Package model defines the database models for the librairie storefront.
package model

import "time"

// Role values stored on User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a customer or administrator account. Password holds the bcrypt
// hash and is never serialized.
type User struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"column:password_hash;not null"`
	Role      string    `json:"role" gorm:"not null;default:user"`
	CreatedAt time.Time `json:"createdAt"`
}

// Book is a catalog item. CategoryId is nullable; books may be uncategorized.
type Book struct {
	Id              int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title           string    `json:"title" gorm:"not null;index"`
	Author          string    `json:"author" gorm:"not null"`
	Description     string    `json:"description"`
	Isbn            string    `json:"isbn"`
	Publisher       string    `json:"publisher"`
	CategoryId      *int      `json:"categoryId"`
	Category        *Category `json:"category,omitempty" gorm:"foreignKey:CategoryId"`
	Price           float64   `json:"price" gorm:"not null"`
	Stock           int       `json:"stock" gorm:"not null;default:0"`
	Pages           int       `json:"pages"`
	PublicationYear int       `json:"publicationYear"`
	CoverImage      string    `json:"coverImage"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Category groups books on the storefront.
type Category struct {
	Id          int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
}

// CartItem is one line of a user's cart. At most one row exists per
// (user, book) pair; adds merge into the existing row.
type CartItem struct {
	Id       int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId   int       `json:"userId" gorm:"not null;uniqueIndex:idx_cart_user_book"`
	BookId   int       `json:"bookId" gorm:"not null;uniqueIndex:idx_cart_user_book"`
	Quantity int       `json:"quantity" gorm:"not null"`
	AddedAt  time.Time `json:"addedAt" gorm:"autoCreateTime"`
}
