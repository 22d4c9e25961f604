package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is the local profile of an identity issued by the external provider.
// SubjectID is the provider's stable user id and the join key for bearer tokens.
type User struct {
	ID           uint    `gorm:"primaryKey"`
	SubjectID    string  `gorm:"uniqueIndex;not null;size:64"`
	Email        string  `gorm:"uniqueIndex;not null"`
	Username     *string `gorm:"uniqueIndex"` // NULLs never collide
	FullName     *string
	AvatarURL    *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Recipes   []Recipe   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	MealPlans []MealPlan `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// HashPassword replaces PasswordHash with the bcrypt hash of plain.
func (u *User) HashPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
// A user without a hash never matches.
func (u *User) CheckPassword(plain string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
