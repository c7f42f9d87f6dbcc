package dberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, IsDuplicateKey(fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062})))
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.False(t, IsDuplicateKey(&mysql.MySQLError{Number: 1452}))
	assert.False(t, IsDuplicateKey(errors.New("x")))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("get: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFound(nil))
}

func TestIsDuplicateIndex(t *testing.T) {
	assert.True(t, IsDuplicateIndex(fmt.Errorf("exec: %w", &mysql.MySQLError{Number: 1061})))
	assert.False(t, IsDuplicateIndex(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsDuplicateIndex(nil))
}
