package db

import (
	"regexp"
	"strings"
	"testing"

	"kickboard_ledger/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMigrate(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, Migrate(gdb))

	m := gdb.Migrator()
	assert.True(t, m.HasTable("users"))
	for _, col := range []string{"email", "password", "points", "kickboard"} {
		assert.True(t, m.HasColumn(&domain.Account{}, col), col)
	}
	assert.True(t, m.HasIndex(&domain.Account{}, "idx_users_email"))

	// defaults come from the schema
	require.NoError(t, gdb.Exec("INSERT INTO users (email, password) VALUES (?, ?)", "a@x.com", "p1").Error)
	var a domain.Account
	require.NoError(t, gdb.Where("email = ?", "a@x.com").Take(&a).Error)
	assert.Equal(t, int64(0), a.Points)
	assert.Equal(t, 0, a.Kickboard)
}

func TestMigrate_EmailIsCaseSensitive(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()
	require.NoError(t, Migrate(gdb))

	require.NoError(t, gdb.Create(&domain.Account{Email: "a@x.com"}).Error)
	require.NoError(t, gdb.Create(&domain.Account{Email: "A@x.com"}).Error)
	assert.Error(t, gdb.Create(&domain.Account{Email: "a@x.com"}).Error)

	// addresses up to the 320 character column size are stored
	long := strings.Repeat("a", 300) + "@x.com"
	require.NoError(t, gdb.Create(&domain.Account{Email: long}).Error)
}

func TestBinaryEmail_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("ALTER TABLE `users` MODIFY `email` VARCHAR(320) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, binaryEmail(gdb))
	assert.NoError(t, mock.ExpectationsWereMet())
}
