package testutil

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/librisapp/library-backend/internal/types"
)

func SeedAuthor(tb testing.TB, gdb *gorm.DB, name, city string) *types.Author {
	tb.Helper()
	author := &types.Author{Name: name, Country: "Testland", City: city}
	if err := gdb.Create(author).Error; err != nil {
		tb.Fatalf("seed author %q: %v", name, err)
	}
	return author
}

func SeedBook(tb testing.TB, gdb *gorm.DB, authorID uint, title string) *types.Book {
	tb.Helper()
	book := &types.Book{
		Title:         title,
		PublishedDate: time.Date(2001, 6, 1, 0, 0, 0, 0, time.UTC),
		IsAvailable:   true,
		AuthorID:      authorID,
	}
	if err := gdb.Create(book).Error; err != nil {
		tb.Fatalf("seed book %q: %v", title, err)
	}
	return book
}

func SeedMember(tb testing.TB, gdb *gorm.DB, name, email string) *types.Member {
	tb.Helper()
	member := &types.Member{Name: name, Email: email}
	if err := gdb.Create(member).Error; err != nil {
		tb.Fatalf("seed member %q: %v", name, err)
	}
	return member
}

// SeedBorrow inserts a borrow record and keeps the book's availability flag
// consistent with it: seeding an open loan marks the book unavailable.
func SeedBorrow(tb testing.TB, gdb *gorm.DB, bookID, memberID uint, returnDate *time.Time) *types.BorrowRecord {
	tb.Helper()
	record := &types.BorrowRecord{
		BookID:     bookID,
		MemberID:   memberID,
		BorrowDate: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		ReturnDate: returnDate,
	}
	if err := gdb.Create(record).Error; err != nil {
		tb.Fatalf("seed borrow record: %v", err)
	}
	if returnDate == nil {
		if err := gdb.Model(&types.Book{}).Where("id = ?", bookID).Update("is_available", false).Error; err != nil {
			tb.Fatalf("seed borrow record: mark book unavailable: %v", err)
		}
	}
	return record
}
