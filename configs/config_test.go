package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("MOCK_INTERVIEW_TEST_KEY", "value-1")

	assert.Equal(t, "value-1", Config("MOCK_INTERVIEW_TEST_KEY"))
	assert.Equal(t, "", Config("MOCK_INTERVIEW_MISSING_KEY"))
}
