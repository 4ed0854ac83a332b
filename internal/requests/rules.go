package requests

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Checker runs database-backed rules (exists, unique). The first query error
// stops further checks and is reported by Err.
type Checker struct {
	db   *gorm.DB
	errs Errors
	err  error
}

func NewChecker(ctx context.Context, db *gorm.DB, errs Errors) *Checker {
	return &Checker{db: db.WithContext(ctx), errs: errs}
}

func (c *Checker) Err() error {
	return c.err
}

// Exists adds "The selected <field> is invalid." when no row of model has id.
// Fields that already failed a rule are skipped.
func (c *Checker) Exists(field string, model any, id uint) {
	if c.err != nil || c.errs.Has(field) {
		return
	}
	var count int64
	if err := c.db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		c.err = fmt.Errorf("exists rule on %s: %w", field, err)
		return
	}
	if count == 0 {
		c.errs.Add(field, fmt.Sprintf("The selected %s is invalid.", label(field)))
	}
}

// Unique adds "The <field> has already been taken." when another row already
// holds value in column. ignoreID excludes the row being updated.
func (c *Checker) Unique(field string, model any, column string, value any, ignoreID uint) {
	if c.err != nil || c.errs.Has(field) {
		return
	}
	var count int64
	query := c.db.Model(model).Where(column+" = ?", value)
	if ignoreID != 0 {
		query = query.Where("id <> ?", ignoreID)
	}
	if err := query.Count(&count).Error; err != nil {
		c.err = fmt.Errorf("unique rule on %s: %w", field, err)
		return
	}
	if count > 0 {
		c.errs.Add(field, fmt.Sprintf("The %s has already been taken.", label(field)))
	}
}

// Checkable is implemented by every request that needs database rules.
type Checkable interface {
	Check(chk *Checker, ignoreID uint)
}

// Check runs req's database rules, adding failures to errs.
func Check(ctx context.Context, db *gorm.DB, errs Errors, req Checkable, ignoreID uint) error {
	chk := NewChecker(ctx, db, errs)
	req.Check(chk, ignoreID)
	return chk.Err()
}
