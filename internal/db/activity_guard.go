package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrActivityLogImmutable is returned when any code path attempts to delete
// rows from the activity log.
var ErrActivityLogImmutable = errors.New("activity_logs rows cannot be deleted")

const activityLogTable = "activity_logs"

// RegisterActivityLogGuard installs a GORM delete callback that rejects
// deletes against the activity log before they reach the database. This is
// the in-process half of the protection; InstallActivityLogTrigger installs
// the storage-level half so that even direct SQL cannot bypass it.
func RegisterActivityLogGuard(db *gorm.DB) error {
	return db.Callback().Delete().Before("gorm:delete").Register("fintrack:activity_log_guard", func(tx *gorm.DB) {
		if tx.Statement != nil && tx.Statement.Table == activityLogTable {
			_ = tx.AddError(fmt.Errorf("%w: DELETE on %s", ErrActivityLogImmutable, activityLogTable))
		}
	})
}

// InstallActivityLogTrigger creates a BEFORE DELETE trigger that makes the
// database itself reject deletes on activity_logs, and a guard table whose
// foreign key reference blocks TRUNCATE. Run after AutoMigrate; both
// statements are idempotent.
func InstallActivityLogTrigger(db *gorm.DB) error {
	if err := db.Exec("DROP TRIGGER IF EXISTS activity_logs_no_delete").Error; err != nil {
		return fmt.Errorf("drop activity log trigger: %w", err)
	}
	trigger := `CREATE TRIGGER activity_logs_no_delete
BEFORE DELETE ON activity_logs
FOR EACH ROW
SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = 'DELETE rejected: activity_logs is append-only'`
	if err := db.Exec(trigger).Error; err != nil {
		return fmt.Errorf("create activity log trigger: %w", err)
	}

	// MySQL refuses TRUNCATE on tables referenced by a foreign key, so an
	// empty child table referencing activity_logs(id) blocks truncation too.
	guard := `CREATE TABLE IF NOT EXISTS activity_log_guard (
	log_id char(36) NOT NULL,
	PRIMARY KEY (log_id),
	CONSTRAINT fk_activity_log_guard FOREIGN KEY (log_id) REFERENCES activity_logs (id)
)`
	if err := db.Exec(guard).Error; err != nil {
		return fmt.Errorf("create activity log guard table: %w", err)
	}
	return nil
}
