package types

type Author struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"column:name;size:50;not null;uniqueIndex:uq_author_name_city" json:"name"`
	Country string `gorm:"column:country;size:50;not null" json:"country"`
	City    string `gorm:"column:city;size:50;not null;uniqueIndex:uq_author_name_city" json:"city"`
	Books   []Book `gorm:"foreignKey:AuthorID;references:ID" json:"books,omitempty"`
}

func (Author) TableName() string { return "author" }
