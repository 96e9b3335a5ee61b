package entities

import (
	"time"
)

type MemberType string

const (
	MemberTypeStudent  MemberType = "STUDENT"
	MemberTypeEmployee MemberType = "EMPLOYEE"
)

// MemberTypes lists the selectable membership types in display order.
var MemberTypes = []MemberType{MemberTypeStudent, MemberTypeEmployee}

// Valid reports whether the member type is one of the known choices.
func (mt MemberType) Valid() bool {
	switch mt {
	case MemberTypeStudent, MemberTypeEmployee:
		return true
	}
	return false
}

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:100" json:"username"`
	Email        string `gorm:"uniqueIndex;size:255" json:"email"`
	FirstName    string `gorm:"size:50" json:"first_name"`
	LastName     string `gorm:"size:50" json:"last_name"`
	PasswordHash string `gorm:"size:255" json:"-"`

	// IsAdmin grants access to the librarian back-office.
	IsAdmin bool `gorm:"default:false" json:"is_admin"`

	// Login tracking and lockout
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	FailedLoginCount int        `gorm:"default:0" json:"-"`
	LockedUntil      *time.Time `json:"-"`

	Member    *Member   `gorm:"foreignKey:UserID" json:"member,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Member is the library patron profile attached to a user identity.
type Member struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"uniqueIndex" json:"user_id"`
	User       User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	MemberType MemberType `gorm:"size:20" json:"member_type"`

	IssuedBooks []IssuedBook `gorm:"foreignKey:MemberID" json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (Member) TableName() string {
	return "members"
}
