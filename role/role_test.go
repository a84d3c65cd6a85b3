package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Admin, Normalize(" ADMIN "))
	assert.Equal(t, User, Normalize("user"))
	assert.Equal(t, User, Normalize("superuser"))
	assert.Equal(t, User, Normalize(""))
}
