package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonimelisma/gdrive-go/internal/memdrive"
)

func TestConfigShow_Text(t *testing.T) {
	out, err := runCLI(t, memdrive.New(testFolder), "config", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "[drive]")
	assert.Contains(t, out, `folder_id        = "`+testFolder+`"`)
	assert.Contains(t, out, `call_timeout     = "30s"`)
	assert.Contains(t, out, `delete_failure   = "abort"`)
}

func TestConfigShow_JSON(t *testing.T) {
	out, err := runCLI(t, memdrive.New(testFolder), "--json", "config", "show")
	require.NoError(t, err)

	assert.Contains(t, out, `"folder_id": "`+testFolder+`"`)
	assert.Contains(t, out, `"transfer_timeout": "0s"`)
	assert.Contains(t, out, `"log_format": "auto"`)
}
