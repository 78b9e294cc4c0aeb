package repositories

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func rawDB(t *testing.T, db *gorm.DB) *sql.DB {
	t.Helper()
	sqlDB, err := db.DB()
	require.NoError(t, err, "unwrap sql.DB")
	return sqlDB
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		phone TEXT NOT NULL,
		email TEXT,
		name TEXT,
		address TEXT,
		role TEXT NOT NULL DEFAULT 'customer',
		status TEXT NOT NULL DEFAULT 'active',
		kyc_status TEXT NOT NULL DEFAULT 'pending',
		aadhaar TEXT,
		profile_image TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX uq_users_phone ON users(phone);`)
	mustExec(t, db, `CREATE UNIQUE INDEX uq_users_email ON users(email);`)
}

func createMerchantTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE merchants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER,
		merchant_code TEXT,
		store_name TEXT NOT NULL,
		owner_name TEXT NOT NULL,
		phone TEXT NOT NULL,
		email TEXT,
		address TEXT,
		city TEXT NOT NULL,
		category TEXT NOT NULL,
		gst TEXT,
		fssai TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		approved_at DATETIME,
		is_open BOOLEAN NOT NULL DEFAULT 1,
		profile_image TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX uq_merchants_phone ON merchants(phone);`)
	mustExec(t, db, `CREATE UNIQUE INDEX uq_merchants_email ON merchants(email);`)
	mustExec(t, db, `CREATE UNIQUE INDEX uq_merchants_gst ON merchants(gst);`)
	mustExec(t, db, `CREATE UNIQUE INDEX uq_merchants_fssai ON merchants(fssai);`)
}

func createPromotionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE promotions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		subtitle TEXT,
		type TEXT NOT NULL,
		media_url TEXT NOT NULL,
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		status TEXT NOT NULL DEFAULT 'Active',
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createDeliveryBoyTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE delivery_boys (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL UNIQUE,
		vehicle TEXT NOT NULL DEFAULT 'Bike',
		vehicle_number TEXT,
		license_no TEXT,
		aadhaar TEXT,
		bank_name TEXT,
		account_no TEXT,
		ifsc TEXT,
		upi TEXT,
		area TEXT,
		online_status TEXT NOT NULL DEFAULT 'offline',
		kyc_status TEXT NOT NULL DEFAULT 'pending',
		approval_status TEXT NOT NULL DEFAULT 'pending',
		rejected_reason TEXT,
		approved_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
