package types

import "time"

type Book struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string    `gorm:"column:title;size:50;not null;uniqueIndex:uq_book_title_author" json:"title"`
	PublishedDate time.Time `gorm:"column:published_date" json:"published_date"`
	// IsAvailable is derived state: false iff an open borrow record exists
	// for this book. Only the borrow service may flip it.
	IsAvailable bool    `gorm:"column:is_available;not null;default:true" json:"is_available"`
	AuthorID    uint    `gorm:"column:author_id;not null;index;uniqueIndex:uq_book_title_author" json:"author_id"`
	Author      *Author `gorm:"foreignKey:AuthorID;references:ID" json:"author,omitempty"`
}

func (Book) TableName() string { return "book" }
