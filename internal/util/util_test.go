package util

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		value    string
		fallback int
		want     int
	}{
		{"5", 0, 5},
		{"-5", 0, -5},
		{"5.0", 0, 5},
		{"3.7", 0, 3},
		{"  42", 0, 42},
		{"12abc", 0, 12},
		{"", 1, 1},
		{"test", 1, 1},
		{"NaN", 5, 5},
		{"-", 9, 9},
		{"", 0, 0},
		{"99999999999999999999999", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInt(tt.value, tt.fallback))
		})
	}
}

func TestParseInt_NeverPanics(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "value")
		fallback := rapid.Int().Draw(t, "fallback")
		_ = ParseInt(s, fallback)
	})
}

func TestParseInt_RoundTripsIntegers(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(-1_000_000, 1_000_000).Draw(t, "n")
		if got := ParseInt(strconv.Itoa(n), 12345678); got != n {
			t.Fatalf("ParseInt(%d) = %d", n, got)
		}
	})
}

func TestIsLink(t *testing.T) {
	assert.True(t, IsLink("http://test.com"))
	assert.True(t, IsLink("https://test.com"))
	assert.False(t, IsLink("not a link"))
	assert.False(t, IsLink("HTTP://x"))
	assert.False(t, IsLink(""))
}

func TestNiceDate(t *testing.T) {
	assert.Equal(t, "2 September 2016", NiceDate(time.Date(2016, time.September, 2, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "31 December 1999", NiceDate(time.Date(1999, time.December, 31, 23, 0, 0, 0, time.Local)))

	d, err := ParseDate("2015-10-03")
	require.NoError(t, err)
	assert.Equal(t, "3 October 2015", NiceDate(d))

	d, err = ParseDate("2017-11-07T12:19:02.635Z")
	require.NoError(t, err)
	assert.Equal(t, "7 November 2017", NiceDate(d))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2020-02-29T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 2020, d.Year())
	assert.Equal(t, time.February, d.Month())

	_, err = ParseDate("yesterday")
	assert.Error(t, err)
}

func TestRemoveIndentation(t *testing.T) {
	input := "  some\n    indented\n       text"
	assert.Equal(t, "some\nindented\ntext", RemoveIndentation(input))

	assert.Equal(t, "a  b\nc\td", RemoveIndentation("a  b\n  c\td"))
}

func TestParseLimit(t *testing.T) {
	n, ok := ParseLimit("false")
	assert.False(t, ok)
	assert.Zero(t, n)

	n, ok = ParseLimit("3")
	assert.True(t, ok)
	assert.Equal(t, 3, n)
}
