package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhoneNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"4165551234", "+14165551234"},
		{"14165551234", "+14165551234"},
		{"+1 (416) 555-1234", "+14165551234"},
		{"416-555-1234", "+14165551234"},
		{"555-1234", ""},
		{"+44 20 7946 0958", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePhoneNumber(tc.in), "input %q", tc.in)
	}
}

func TestFormatPhoneNumber(t *testing.T) {
	assert.Equal(t, "(416) 555-1234", FormatPhoneNumber("+14165551234"))
	assert.Equal(t, "(416) 555-1234", FormatPhoneNumber("4165551234"))
	assert.Equal(t, "garbage", FormatPhoneNumber("garbage"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("jane.doe@example.com"))
	assert.True(t, IsValidEmail("  jane+tag@sub.example.co  "))
	assert.False(t, IsValidEmail("jane@"))
	assert.False(t, IsValidEmail("example.com"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidPostalCode(t *testing.T) {
	assert.True(t, IsValidPostalCode("M5V 2T6"))
	assert.True(t, IsValidPostalCode("m5v2t6"))
	assert.True(t, IsValidPostalCode("90210"))
	assert.True(t, IsValidPostalCode("90210-1234"))
	assert.False(t, IsValidPostalCode("ABC 123"))
	assert.False(t, IsValidPostalCode("1234"))
}
