package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_UnknownKey_Suggestion(t *testing.T) {
	path := writeTestConfig(t, `folder = "abc"`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown config key "folder"`)
	assert.Contains(t, err.Error(), `did you mean "folder_id"`)
}

func TestLoad_UnknownKey_NoSuggestion(t *testing.T) {
	path := writeTestConfig(t, `completely_unrelated = true`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown config key "completely_unrelated"`)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestLoad_UnknownKey_InTable(t *testing.T) {
	path := writeTestConfig(t, "[logging]\nlog_levl = \"debug\"\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"logging.log_levl"`)
	assert.Contains(t, err.Error(), `did you mean "log_level"`)
}

func TestLoad_UnknownKeys_AllReported(t *testing.T) {
	path := writeTestConfig(t, "log_levl = \"debug\"\ndelete_falure = \"abort\"\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "delete_failure")
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"folder_id", "folder_id", 0},
		{"folder", "folder_id", 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestClosestMatch(t *testing.T) {
	assert.Equal(t, "call_timeout", closestMatch("cal_timeout", configKeys))
	assert.Empty(t, closestMatch("zzzzzzzzzz", configKeys))
}

func TestConfigKeys_FromTags(t *testing.T) {
	assert.Equal(t, []string{
		"call_timeout", "credentials_file", "delete_failure", "folder_id",
		"log_format", "log_level", "transfer_timeout",
	}, configKeys)
}
