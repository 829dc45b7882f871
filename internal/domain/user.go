// internal/domain/user.go
package domain

import "time"

// User represents an account holder on the investment platform.
// SponsorCode is the upward edge of the referral forest: it holds the
// referral code of the user who sponsored this one, or nil for roots.
type User struct {
	ID           int64     `db:"id" json:"id"`                       // Primary key, BIGSERIAL in DB
	Username     string    `db:"username" json:"username"`           // Unique username
	ReferralCode string    `db:"referral_code" json:"referral_code"` // Unique code other users reference as sponsor
	SponsorCode  *string   `db:"sponsor_code" json:"sponsor_code"`   // Referral code of the sponsor (nullable)
	CreatedAt    time.Time `db:"created_at" json:"created_at"`       // Timestamp of creation
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`       // Timestamp of last update
}

// NewUser creates a new User instance. sponsorCode may be nil for users
// who joined without a referral.
func NewUser(username, referralCode string, sponsorCode *string) *User {
	now := time.Now().UTC()
	return &User{
		Username:     username,
		ReferralCode: referralCode,
		SponsorCode:  sponsorCode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
