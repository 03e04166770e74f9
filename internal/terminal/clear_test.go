// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinesFor(t *testing.T) {
	assert.Equal(t, 2, LinesFor(0, 80))
	assert.Equal(t, 2, LinesFor(80, 80))
	assert.Equal(t, 3, LinesFor(81, 80))
	assert.Equal(t, 3, LinesFor(100, 0), "zero width falls back to 80")
}

func TestClearLines(t *testing.T) {
	var buf bytes.Buffer
	clearLines(&buf, 3)
	assert.Equal(t, 3, strings.Count(buf.String(), "\x1b[2K"))
	assert.Equal(t, 2, strings.Count(buf.String(), "\x1b[1A"))
}
