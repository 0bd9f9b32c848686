package domain

// Account Model
type Account struct {
	ID        uint   `gorm:"primaryKey"`                    // Primary key
	Email     string `gorm:"size:320;uniqueIndex;not null"` // Unique email, immutable after signup
	Password  string `gorm:"size:255"`                      // Stored credential (plain or bcrypt)
	Points    int64  `gorm:"not null;default:0"`            // Point balance
	Kickboard int    `gorm:"not null;default:0"`            // 1 while the account holds the kickboard
}

// TableName keeps the table name used by existing deployments
func (Account) TableName() string {
	return "users"
}

// Profile is the public view of an account
type Profile struct {
	Email     string `json:"email"`     // Account email
	Points    int64  `json:"points"`    // Point balance
	Kickboard int    `json:"kickboard"` // Kickboard flag (0/1)
}

// Profile returns the public view of the account
func (a Account) Profile() Profile {
	return Profile{Email: a.Email, Points: a.Points, Kickboard: a.Kickboard}
}

// Role names returned by authentication
const (
	RoleAdmin = "admin" // Configured administrator
	RoleUser  = "user"  // Regular account
)

// KickboardCost is the number of points debited by a kickboard purchase
const KickboardCost int64 = 1000
