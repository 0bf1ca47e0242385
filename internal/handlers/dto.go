package handlers

import (
	"time"

	"github.com/librisapp/library-backend/internal/types"
)

type BookDto struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	PublishedDate time.Time `json:"published_date"`
	IsAvailable   bool      `json:"is_available"`
	AuthorID      uint      `json:"author_id"`
	AuthorName    string    `json:"author_name,omitempty"`
}

type AuthorDto struct {
	ID      uint      `json:"id"`
	Name    string    `json:"name"`
	Country string    `json:"country"`
	City    string    `json:"city"`
	Books   []BookDto `json:"books"`
}

type MemberDto struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type BorrowDto struct {
	ID         uint       `json:"id"`
	BookID     uint       `json:"book_id"`
	BookTitle  string     `json:"book_title,omitempty"`
	MemberID   uint       `json:"member_id"`
	MemberName string     `json:"member_name,omitempty"`
	BorrowDate time.Time  `json:"borrow_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}

func toBookDto(b *types.Book) BookDto {
	dto := BookDto{
		ID:            b.ID,
		Title:         b.Title,
		PublishedDate: b.PublishedDate,
		IsAvailable:   b.IsAvailable,
		AuthorID:      b.AuthorID,
	}
	if b.Author != nil {
		dto.AuthorName = b.Author.Name
	}
	return dto
}

func toBookDtos(books []*types.Book) []BookDto {
	out := make([]BookDto, 0, len(books))
	for _, b := range books {
		out = append(out, toBookDto(b))
	}
	return out
}

func toAuthorDto(a *types.Author) AuthorDto {
	dto := AuthorDto{
		ID:      a.ID,
		Name:    a.Name,
		Country: a.Country,
		City:    a.City,
		Books:   make([]BookDto, 0, len(a.Books)),
	}
	for i := range a.Books {
		dto.Books = append(dto.Books, toBookDto(&a.Books[i]))
	}
	return dto
}

func toAuthorDtos(authors []*types.Author) []AuthorDto {
	out := make([]AuthorDto, 0, len(authors))
	for _, a := range authors {
		out = append(out, toAuthorDto(a))
	}
	return out
}

func toMemberDto(m *types.Member) MemberDto {
	return MemberDto{
		ID:      m.ID,
		Name:    m.Name,
		Email:   m.Email,
		Phone:   m.Phone,
		Address: m.Address,
	}
}

func toMemberDtos(members []*types.Member) []MemberDto {
	out := make([]MemberDto, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberDto(m))
	}
	return out
}

func toBorrowDto(r *types.BorrowRecord) BorrowDto {
	dto := BorrowDto{
		ID:         r.ID,
		BookID:     r.BookID,
		MemberID:   r.MemberID,
		BorrowDate: r.BorrowDate,
		ReturnDate: r.ReturnDate,
	}
	if r.Book != nil {
		dto.BookTitle = r.Book.Title
	}
	if r.Member != nil {
		dto.MemberName = r.Member.Name
	}
	return dto
}

func toBorrowDtos(records []*types.BorrowRecord) []BorrowDto {
	out := make([]BorrowDto, 0, len(records))
	for _, r := range records {
		out = append(out, toBorrowDto(r))
	}
	return out
}
