package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorizeWrapsOnlyWhenRequested(t *testing.T) {
	assert.Equal(t, "error", Colorize("error", ColorRed, false))
	assert.Equal(t, ColorRed+"error"+ColorReset, Colorize("error", ColorRed, true))
}

func TestShouldUseColorHonorsExplicitNoColorFlag(t *testing.T) {
	assert.False(t, ShouldUseColor(true))
}

func TestShouldUseColorHonorsNoColorEnvVar(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ShouldUseColor(false))
}

func TestSeverityColorPicksRedForErrors(t *testing.T) {
	assert.Equal(t, ColorRed, severityColor("error"))
	assert.Equal(t, ColorYellow, severityColor("warning"))
}
