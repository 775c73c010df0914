package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTrim(t *testing.T) {
	assert.Equal(t, []string{"Kim", "Lee"}, SplitTrim("Kim, Lee", ","))
	assert.Equal(t, []string{"fiction", "drama"}, SplitTrim(" fiction ,, drama, ", ","))
	assert.Nil(t, SplitTrim("", ","))
	assert.Nil(t, SplitTrim(" , ,", ","))
}

func TestHasPrefixes(t *testing.T) {
	assert.True(t, HasPrefixes("postgres://db/books", "postgres://", "postgresql://"))
	assert.False(t, HasPrefixes("/var/opt/booksync/booksync.db", "postgres://", "postgresql://"))
}
