package logfields

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHelperKeyNames(t *testing.T) {
	until := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, KeyPath, Path("/tmp/x").Key)
	assert.Equal(t, KeyFormat, Format("json").Key)
	assert.Equal(t, KeyUntil, Until(until).Key)
	assert.Equal(t, until, Until(until).Value.Time())
	assert.Equal(t, KeyStrict, Strict(true).Key)
	assert.True(t, Strict(true).Value.Bool())
	assert.Equal(t, KeyDuration, Duration(time.Minute).Key)
	assert.Equal(t, KeyTransition, Transition("start").Key)
}

func TestSitesJoinsInOrder(t *testing.T) {
	attr := Sites([]string{"a.com", "b.com"})

	assert.Equal(t, KeySites, attr.Key)
	assert.Equal(t, "a.com, b.com", attr.Value.String())
}

func TestErrorHandlesNil(t *testing.T) {
	assert.Equal(t, "", Error(nil).Value.String())
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
}
