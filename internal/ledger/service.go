package ledger

import (
	"context"       // Context for store and cache operations
	"crypto/subtle" // Constant time comparison
	"errors"        // Error inspection
	"fmt"           // Error wrapping
	"time"          // Cache TTL

	"kickboard_ledger/internal/config" // Application configuration
	"kickboard_ledger/internal/domain" // Domain models and error kinds
	"kickboard_ledger/internal/utils"  // Cache helpers

	mysqldriver "github.com/go-sql-driver/mysql" // MySQL error codes
	"github.com/redis/go-redis/v9"               // Redis client
	"github.com/sirupsen/logrus"                 // Logging library
	"gorm.io/gorm"                               // GORM ORM library
)

// mysqlDuplicateEntry is the MySQL error number for a unique key violation
const mysqlDuplicateEntry = 1062

// Options configures a Service
type Options struct {
	AdminEmail    string           // Administrator identity
	AdminPassword string           // Administrator secret
	PointsPolicy  string           // config.PointsPermissive or config.PointsFloor
	Verifier      PasswordVerifier // Credential verification, PlainVerifier when nil
	Cache         *redis.Client    // Read cache, nil disables caching
	CacheTTL      time.Duration    // Cache entry lifetime
}

// OptionsFromConfig derives service options from the application configuration
func OptionsFromConfig(cfg *config.Config, rdb *redis.Client) Options {
	return Options{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		PointsPolicy:  cfg.PointsPolicy,
		Verifier:      VerifierFor(cfg.PasswordScheme),
		Cache:         rdb,
		CacheTTL:      time.Duration(cfg.CacheTTL) * time.Second,
	}
}

// Service is the account ledger: signup, login, points and kickboard rental
type Service struct {
	db   *gorm.DB
	opts Options
}

// NewService creates a ledger service backed by db
func NewService(db *gorm.DB, opts Options) *Service {
	if opts.Verifier == nil {
		opts.Verifier = PlainVerifier{}
	}
	if opts.PointsPolicy == "" {
		opts.PointsPolicy = config.PointsPermissive
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Minute
	}
	return &Service{db: db, opts: opts}
}

// CreateAccount inserts a new account with zero points and no kickboard
func (s *Service) CreateAccount(ctx context.Context, email, password string) error {
	stored, err := s.opts.Verifier.Hash(password)
	if errors.Is(err, domain.ErrPasswordTooLong) {
		return err
	}
	if err != nil {
		return s.storeErr("hash password", email, err)
	}
	account := domain.Account{Email: email, Password: stored}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		if isDuplicateKey(err) || s.exists(ctx, email) {
			return domain.ErrAlreadyExists
		}
		return s.storeErr("create account", email, err)
	}
	logrus.WithFields(logrus.Fields{
		"email": email,    // Account email
		"type":  "signup", // Operation
	}).Info("Account created")
	s.invalidate(ctx, email)
	return nil
}

// Authenticate checks the credentials and returns the caller's role
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.isAdmin(email, password) {
		return domain.RoleAdmin, nil
	}
	var account domain.Account
	err := s.db.WithContext(ctx).Where("email = ?", email).Take(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domain.ErrAuthFailed
	}
	if err != nil {
		return "", s.storeErr("load account", email, err)
	}
	if !s.opts.Verifier.Verify(account.Password, password) {
		return "", domain.ErrAuthFailed
	}
	return domain.RoleUser, nil
}

// GetProfile returns the account's balance and kickboard flag, or a zero profile if it does not exist
func (s *Service) GetProfile(ctx context.Context, email string) (domain.Profile, error) {
	var profile domain.Profile
	found, err := utils.GetCache(ctx, s.opts.Cache, utils.ProfileKey(email), &profile)
	if err == nil && found {
		return profile, nil
	}
	if err != nil {
		logrus.WithError(err).Warn("Profile cache read failed")
	}
	// The version must be taken before the row so a mutation racing this read fences out the write back
	version, verErr := utils.CacheVersion(ctx, s.opts.Cache, utils.ProfileKey(email))
	var account domain.Account
	err = s.db.WithContext(ctx).Where("email = ?", email).Take(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Profile{Email: email}, nil
	}
	if err != nil {
		return domain.Profile{Email: email}, s.storeErr("load profile", email, err)
	}
	profile = account.Profile()
	if verErr == nil {
		s.writeBack(ctx, utils.ProfileKey(email), version, profile)
	}
	return profile, nil
}

// AddPoints adds a signed amount to the balance and returns the new total
func (s *Service) AddPoints(ctx context.Context, email string, amount int64) (int64, error) {
	expr := gorm.Expr("points + ?", amount)
	if s.opts.PointsPolicy == config.PointsFloor {
		expr = gorm.Expr("CASE WHEN points + ? < 0 THEN 0 ELSE points + ? END", amount, amount)
	}
	var total int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Account{}).Where("email = ?", email).UpdateColumn("points", expr)
		if res.Error != nil {
			return s.storeErr("add points", email, res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		var account domain.Account
		if err := tx.Select("points").Where("email = ?", email).Take(&account).Error; err != nil {
			return s.storeErr("read points", email, err)
		}
		total = account.Points
		return nil
	})
	if err != nil {
		return 0, s.txErr("add points", email, err)
	}
	logrus.WithFields(logrus.Fields{
		"email":  email,               // Account email
		"amount": amount,              // Points added
		"points": total,               // New balance
		"policy": s.opts.PointsPolicy, // Points policy in effect
		"type":   "add_points",        // Operation
	}).Info("Points added")
	s.invalidate(ctx, email)
	return total, nil
}

// BuyKickboard debits KickboardCost and marks the kickboard as held
func (s *Service) BuyKickboard(ctx context.Context, email string) (domain.Profile, error) {
	var profile domain.Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Account{}).
			Where("email = ? AND kickboard = ? AND points >= ?", email, 0, domain.KickboardCost).
			UpdateColumns(map[string]any{
				"points":    gorm.Expr("points - ?", domain.KickboardCost),
				"kickboard": 1,
			})
		if res.Error != nil {
			return s.storeErr("buy kickboard", email, res.Error)
		}
		account, err := s.load(tx, email)
		if err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			// Nothing matched: report the first precondition the row fails
			switch {
			case account.Points < domain.KickboardCost:
				return domain.ErrInsufficientPoints
			case account.Kickboard != 0:
				return domain.ErrAlreadyHeld
			default:
				return domain.ErrConflict
			}
		}
		profile = account.Profile()
		return nil
	})
	if err != nil {
		return domain.Profile{}, s.txErr("buy kickboard", email, err)
	}
	logrus.WithFields(logrus.Fields{
		"email":  email,                // Account email
		"cost":   domain.KickboardCost, // Points debited
		"points": profile.Points,       // Remaining balance
		"type":   "buy_kickboard",      // Operation
	}).Info("Kickboard purchased")
	s.invalidate(ctx, email)
	return profile, nil
}

// ReturnKickboard clears the kickboard flag, leaving points unchanged
func (s *Service) ReturnKickboard(ctx context.Context, email string) (domain.Profile, error) {
	var profile domain.Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Account{}).
			Where("email = ? AND kickboard = ?", email, 1).
			UpdateColumn("kickboard", 0)
		if res.Error != nil {
			return s.storeErr("return kickboard", email, res.Error)
		}
		account, err := s.load(tx, email)
		if err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			if account.Kickboard != 1 {
				return domain.ErrNotHeld
			}
			return domain.ErrConflict
		}
		profile = account.Profile()
		return nil
	})
	if err != nil {
		return domain.Profile{}, s.txErr("return kickboard", email, err)
	}
	logrus.WithFields(logrus.Fields{
		"email":  email,              // Account email
		"points": profile.Points,     // Unchanged balance
		"type":   "return_kickboard", // Operation
	}).Info("Kickboard returned")
	s.invalidate(ctx, email)
	return profile, nil
}

// ListAccounts returns every account in store order
func (s *Service) ListAccounts(ctx context.Context) ([]domain.Profile, error) {
	profiles := []domain.Profile{}
	found, err := utils.GetCache(ctx, s.opts.Cache, utils.AccountsListKey, &profiles)
	if err == nil && found {
		return profiles, nil
	}
	if err != nil {
		logrus.WithError(err).Warn("Account list cache read failed")
	}
	version, verErr := utils.CacheVersion(ctx, s.opts.Cache, utils.AccountsListKey)
	var accounts []domain.Account
	if err := s.db.WithContext(ctx).Find(&accounts).Error; err != nil {
		return []domain.Profile{}, s.storeErr("list accounts", "", err)
	}
	profiles = make([]domain.Profile, len(accounts))
	for i, a := range accounts {
		profiles[i] = a.Profile()
	}
	if verErr == nil {
		s.writeBack(ctx, utils.AccountsListKey, version, profiles)
	}
	return profiles, nil
}

// AdminAdjust overwrites points and kickboard without any precondition; unknown emails are a no-op
func (s *Service) AdminAdjust(ctx context.Context, email string, points int64, kickboard int) error {
	res := s.db.WithContext(ctx).Model(&domain.Account{}).
		Where("email = ?", email).
		UpdateColumns(map[string]any{"points": points, "kickboard": kickboard})
	if res.Error != nil {
		return s.storeErr("adjust account", email, res.Error)
	}
	logrus.WithFields(logrus.Fields{
		"email":     email,            // Account email
		"points":    points,           // Balance set
		"kickboard": kickboard,        // Flag set
		"matched":   res.RowsAffected, // Rows matched
		"type":      "admin_adjust",   // Operation
	}).Info("Account adjusted")
	s.invalidate(ctx, email)
	return nil
}

// AdminDelete removes the account; deleting an unknown email succeeds
func (s *Service) AdminDelete(ctx context.Context, email string) error {
	res := s.db.WithContext(ctx).Where("email = ?", email).Delete(&domain.Account{})
	if res.Error != nil {
		return s.storeErr("delete account", email, res.Error)
	}
	logrus.WithFields(logrus.Fields{
		"email":   email,            // Account email
		"deleted": res.RowsAffected, // Rows removed
		"type":    "admin_delete",   // Operation
	}).Info("Account deleted")
	s.invalidate(ctx, email)
	return nil
}

// load reads an account inside tx, mapping a missing row to ErrNotFound
func (s *Service) load(tx *gorm.DB, email string) (domain.Account, error) {
	var account domain.Account
	err := tx.Where("email = ?", email).Take(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return account, domain.ErrNotFound
	}
	if err != nil {
		return account, s.storeErr("load account", email, err)
	}
	return account, nil
}

// exists reports whether an account row is present, false on any error
func (s *Service) exists(ctx context.Context, email string) bool {
	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// isAdmin checks the configured administrator credentials
func (s *Service) isAdmin(email, password string) bool {
	if s.opts.AdminEmail == "" || email != s.opts.AdminEmail {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.opts.AdminPassword)) == 1
}

// invalidate drops cached views touched by a mutation of email
func (s *Service) invalidate(ctx context.Context, email string) {
	if err := utils.InvalidateCache(ctx, s.opts.Cache, utils.ProfileKey(email), utils.AccountsListKey); err != nil {
		logrus.WithFields(logrus.Fields{
			"email": email,       // Account email
			"error": err.Error(), // Error message
		}).Warn("Cache invalidation failed")
	}
}

// writeBack caches a freshly read value unless a mutation invalidated key since version was taken
func (s *Service) writeBack(ctx context.Context, key, version string, value any) {
	err := utils.SetCache(ctx, s.opts.Cache, key, version, value, s.opts.CacheTTL)
	if errors.Is(err, utils.ErrStaleCache) {
		logrus.WithField("key", key).Debug("Skipped cache write after concurrent mutation")
		return
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"key":   key,         // Cache key
			"error": err.Error(), // Error message
		}).Warn("Cache write failed")
	}
}

// storeErr logs a persistence failure and wraps it as ErrStore
func (s *Service) storeErr(op, email string, err error) error {
	logrus.WithFields(logrus.Fields{
		"email": email,       // Account email
		"op":    op,          // Failed operation
		"error": err.Error(), // Error message
	}).Error("Store operation failed")
	return fmt.Errorf("failed to %s: %w: %w", op, domain.ErrStore, err)
}

// txErr passes rule and already wrapped errors through and wraps anything else, such as a failed commit
func (s *Service) txErr(op, email string, err error) error {
	if domain.IsRuleError(err) || errors.Is(err, domain.ErrStore) {
		return err
	}
	return s.storeErr(op, email, err)
}

// isDuplicateKey reports whether err is a unique constraint violation
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}
