package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0.00 B"},
		{1023, "1023.00 B"},
		{1536, "1.50 KB"},
		{1 << 30, "1.00 GB"},
		{-1, "-"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSize(tt.bytes), "formatSize(%d)", tt.bytes)
	}
}

func TestFormatTime(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", formatTime(time.Time{}))

	old := time.Date(2019, time.March, 4, 10, 30, 0, 0, time.Local)
	assert.Equal(t, "Mar  4  2019", formatTime(old))

	recent := time.Date(time.Now().Year(), time.January, 15, 8, 5, 0, 0, time.Local)
	assert.Equal(t, "Jan 15 08:05", formatTime(recent))
}

func TestPrintTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	printTable(&buf, []string{"NAME", "SIZE"}, [][]string{
		{"a-long-name.txt", "1.00 KB"},
		{"b", "0.00 B"},
	})

	want := "NAME             SIZE\n" +
		"a-long-name.txt  1.00 KB\n" +
		"b                0.00 B\n"
	assert.Equal(t, want, buf.String())
}
