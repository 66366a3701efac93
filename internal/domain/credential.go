package domain

import (
	"regexp"
	"time"
)

// AuthRecord is the cached credential bundle for one (cardnum, platform)
// pair. The raw session token and the raw password are never stored: each
// is recoverable only by presenting the other.
//
// Security notes:
//   - TokenHash is the passthrough lookup key; the raw token never touches
//     the database.
//   - TokenEncrypted is sealed under the current password, PasswordEncrypted
//     under the token. Knowing either secret yields the other; knowing
//     neither yields nothing.
//   - PasswordHash exists only to detect a password change cheaply, without
//     decrypting anything.
type AuthRecord struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	Cardnum  string `json:"cardnum" gorm:"size:32;uniqueIndex:idx_card_platform;not null"`
	Platform string `json:"platform" gorm:"size:32;uniqueIndex:idx_card_platform;not null"`

	TokenHash          string `json:"-" gorm:"size:64;index;not null"`
	TokenEncrypted     string `json:"-" gorm:"not null"`
	PasswordEncrypted  string `json:"-" gorm:"not null"`
	PasswordHash       string `json:"-" gorm:"size:64;not null"`
	GPasswordEncrypted string `json:"-" gorm:"column:gpassword_encrypted"`

	Name      string `json:"name"`
	Schoolnum string `json:"schoolnum"`

	Registered  time.Time `json:"registered"`
	LastInvoked time.Time `json:"last_invoked" gorm:"index"`
}

func (AuthRecord) TableName() string { return "auth_records" }

// Profile is what an upstream identity provider returns for a valid
// credential pair.
type Profile struct {
	Name      string
	Schoolnum string
}

// Credentials is the explicit value object handed to the gateway for
// (re)authentication. GPassword is meaningful only for graduate cardnums.
type Credentials struct {
	Cardnum   string
	Password  string
	GPassword string
}

// Graduate cardnums carry a fixed two-digit prefix and an embedded graduate
// school number after it.
var graduateCardnum = regexp.MustCompile(`^22\d{6}$`)

// IsGraduate reports whether cardnum belongs to the graduate-identity
// population that requires the secondary provider.
func IsGraduate(cardnum string) bool {
	return graduateCardnum.MatchString(cardnum)
}

// GraduateSubID extracts the graduate-system identifier embedded in a
// graduate cardnum. Empty when the cardnum is not a graduate one.
func GraduateSubID(cardnum string) string {
	if !IsGraduate(cardnum) {
		return ""
	}
	return cardnum[2:]
}
