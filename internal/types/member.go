package types

type Member struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"column:name;size:50;not null" json:"name"`
	Email   string `gorm:"column:email;size:100;not null;uniqueIndex:uq_member_email" json:"email"`
	Phone   string `gorm:"column:phone;size:30" json:"phone,omitempty"`
	Address string `gorm:"column:address;size:200" json:"address,omitempty"`
}

func (Member) TableName() string { return "member" }
