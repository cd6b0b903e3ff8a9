// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	UserName     string    `json:"userName" gorm:"uniqueIndex;size:55;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	FirstName    string    `json:"firstName" gorm:"size:100"`
	LastName     string    `json:"lastName" gorm:"size:100"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:254;not null"`
	RegisterDate time.Time `json:"registerDate" gorm:"not null;index"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// StartOfDay truncates t to midnight UTC, the granularity of registration dates.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
