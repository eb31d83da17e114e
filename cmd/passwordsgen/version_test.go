package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	v := Version()
	assert.NotEmpty(t, v)
	if strings.HasPrefix(v, "devel-") {
		assert.Contains(t, v, strings.TrimSpace(embeddedVersion))
	}
}
