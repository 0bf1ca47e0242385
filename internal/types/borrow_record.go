package types

import "time"

// BorrowRecord is one lending of one physical copy. ReturnDate == nil means
// the loan is open and the book is out; at most one open record may exist per
// book (enforced by a partial unique index, see db.AutoMigrateAll).
type BorrowRecord struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	BookID     uint       `gorm:"column:book_id;not null;index" json:"book_id"`
	Book       *Book      `gorm:"foreignKey:BookID;references:ID" json:"book,omitempty"`
	MemberID   uint       `gorm:"column:member_id;not null;index" json:"member_id"`
	Member     *Member    `gorm:"foreignKey:MemberID;references:ID" json:"member,omitempty"`
	BorrowDate time.Time  `gorm:"column:borrow_date;not null;index" json:"borrow_date"`
	ReturnDate *time.Time `gorm:"column:return_date" json:"return_date,omitempty"`
}

func (BorrowRecord) TableName() string { return "borrow_record" }

// Open reports whether the loan has not been closed yet.
func (b *BorrowRecord) Open() bool { return b.ReturnDate == nil }
