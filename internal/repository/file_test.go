package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoRows(t *testing.T) {
	assert.True(t, noRows(sql.ErrNoRows))
	assert.True(t, noRows(fmt.Errorf("get file: %w", sql.ErrNoRows)), "wrapped no-rows must still map to not-found")
	assert.False(t, noRows(nil))
	assert.False(t, noRows(errors.New("connection reset")))
}
