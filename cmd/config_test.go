// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatten(t *testing.T) {
	got := flatten("", map[string]any{
		"base_url": "http://localhost:8080",
		"keyring": map[string]any{
			"backends": []any{"file", "pass"},
			"password": "hunter2",
			"file_dir": "",
		},
		"log": map[string]any{"level": "warn"},
	})
	assert.Equal(t, map[string]string{
		"base_url":         "http://localhost:8080",
		"keyring.backends": "file,pass",
		"keyring.password": "***",
		"keyring.file_dir": "",
		"log.level":        "warn",
	}, got)
}
