// Package repository implements the MySQL persistence layer.  Each
// table gets a repo struct bound to a *sql.DB; methods that must be
// atomic run their own transaction with a committed flag and a deferred
// rollback.  Sentinel errors declared here let handlers and the booking
// engine distinguish failure scenarios without parsing driver messages.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicateHoliday is returned when an active holiday entry already
// exists for the same (date, court) pair.
var ErrDuplicateHoliday = errors.New("holiday entry already exists for this date")

// ErrTemplateOverlap is returned when a new or updated slot template
// would overlap an existing active template of the same court and day
// of week.
var ErrTemplateOverlap = errors.New("slot template overlaps an existing template")

// ErrHasHistory is returned when a delete is refused because the row
// carries reservation history; callers should deactivate instead.
var ErrHasHistory = errors.New("record has reservation history")

// mysqlDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062).  The reservation repo relies on this to turn the unique
// index over the active slot key into a typed conflict.
func mysqlDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
