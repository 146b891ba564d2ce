package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_profile", "UserProfile"},
		{"api-client", "ApiClient"},
		{"pet.store", "PetStore"},
		{"PetStore", "PetStore"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToPascalCase(tt.input))
		})
	}
}

func TestToCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_profile", "userProfile"},
		{"UserProfile", "userProfile"},
		{"pet-id", "petId"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToCamelCase(tt.input))
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"UserProfile", "user_profile"},
		{"WildDog", "wild_dog"},
		{"already_snake", "already_snake"},
		{"kebab-case", "kebab_case"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToSnakeCase(tt.input))
		})
	}
}

func TestSanitizeTypeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"pet", "Pet"},
		{"pet-store", "PetStore"},
		{"123abc", "T123abc"},
		{"", "Type"},
		{"---", "Type"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeTypeName(tt.input))
		})
	}
}

func TestSanitizeParamName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"petId", "petId"},
		{"PetId", "petId"},
		{"pet-id", "petId"},
		{"X-Request-ID", "xRequestID"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeParamName(tt.input))
		})
	}
}

func TestEnumMemberName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"in-progress", "InProgress"},
		{"active", "Active"},
		{"NOT_FOUND", "NOTFOUND"},
		{"404", "Value404"},
		{"", "Empty"},
		{"--", "Empty"},
		{"v1.2", "V12"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, EnumMemberName(tt.input))
		})
	}
}

func TestIsReservedTypeName(t *testing.T) {
	assert.True(t, IsReservedTypeName("String"))
	assert.True(t, IsReservedTypeName("Object"))
	assert.False(t, IsReservedTypeName("Pet"))
	assert.False(t, IsReservedTypeName("string"), "check is case-sensitive on the PascalCase form")
}

func TestDedupe(t *testing.T) {
	taken := map[string]bool{"Pet": true, "Pet2": true}
	assert.Equal(t, "Pet3", Dedupe("Pet", taken))
	assert.Equal(t, "Store", Dedupe("Store", taken))
}
