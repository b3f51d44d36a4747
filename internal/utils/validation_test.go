package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "CAB 1234", NormalizePlate("cab  1234"))
	assert.Equal(t, "WP-5678", NormalizePlate(" wp-5678 "))
	assert.Equal(t, "ABC 12 34", NormalizePlate("abc\t12  34"))
	assert.Equal(t, "", NormalizePlate("   "))
}

func TestIsValidLicensePlate(t *testing.T) {
	assert.True(t, IsValidLicensePlate("CAB 1234"))
	assert.True(t, IsValidLicensePlate("wp-5678"))
	assert.False(t, IsValidLicensePlate("A"))
	assert.False(t, IsValidLicensePlate("PLATE#1"))
	assert.False(t, IsValidLicensePlate("WAY TOO LONG PLATE"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("nimal@example.com"))
	assert.True(t, IsValidEmail("a.b+tag@sub.example.lk"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
}

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("Nimal Perera"))
	assert.True(t, IsValidName("Anne-Marie O'Neil"))
	assert.False(t, IsValidName("X"))
	assert.False(t, IsValidName("Robert; DROP TABLE"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  "))
	assert.Equal(t, "hello", SanitizeString("<b>hello</b>"))
	assert.Equal(t, "alert('x')", SanitizeString("<script>alert('x')</script>"))
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://cdn.example.com/photo.jpg"))
	assert.True(t, IsValidURL("http://localhost:8080/uploads/a.png"))
	assert.False(t, IsValidURL("ftp://example.com/file"))
	assert.False(t, IsValidURL("not a url"))
}
