package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// generateDailyOrderNumber generates the next order number in the table for
// today, in the form PREFIX + yyyymmdd + NNN (e.g. CG20260831001). The
// sequence restarts at 001 each day. The highest existing number for the day
// is read and incremented; a uniqueness probe guards against a concurrent
// generator having claimed the same number between read and insert.
func generateDailyOrderNumber(ctx context.Context, db *gorm.DB, tableName, prefix string) (string, error) {
	datePart := time.Now().Format("20060102")
	dayPrefix := prefix + datePart

	var lastNumber string
	err := db.WithContext(ctx).
		Table(tableName).
		Select("order_number").
		Where("order_number LIKE ?", dayPrefix+"%").
		Order("order_number DESC").
		Limit(1).
		Scan(&lastNumber).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	nextSeq := 1
	if len(lastNumber) > len(dayPrefix) {
		if seq, parseErr := strconv.Atoi(lastNumber[len(dayPrefix):]); parseErr == nil {
			nextSeq = seq + 1
		}
	}

	orderNumber := fmt.Sprintf("%s%03d", dayPrefix, nextSeq)

	// Probe for collisions in case another generator raced us
	for i := 0; i < 100; i++ {
		var count int64
		if err := db.WithContext(ctx).
			Table(tableName).
			Where("order_number = ?", orderNumber).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return orderNumber, nil
		}
		nextSeq++
		orderNumber = fmt.Sprintf("%s%03d", dayPrefix, nextSeq)
	}

	return "", fmt.Errorf("could not generate a unique order number with prefix %s", dayPrefix)
}
