// internal/app/system/normalize/normalize.go

// Package normalize holds the canonical forms for values that cross the
// CSV/HTTP boundary. Every store write and duplicate check goes through
// these so that "A@X.COM " and "a@x.com" are the same officer.
package normalize

import (
	"strings"

	"github.com/dalemusser/surveytrack/internal/domain/models"
)

// Email lowercases and trims an email address. It does not validate
// syntax; rows without a usable email are rejected during pre-scan.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Code trims a geographic code (block/district number or division name).
func Code(s string) string {
	return strings.TrimSpace(s)
}

// Role maps the role spellings that appear in upload requests and user
// records onto the canonical models.Role values. SME is matched
// case-insensitively because the user directory stores it uppercased.
// Unknown values return "" (invalid).
func Role(s string) models.Role {
	switch v := strings.TrimSpace(s); {
	case strings.EqualFold(v, string(models.RoleBlock)):
		return models.RoleBlock
	case strings.EqualFold(v, string(models.RoleDistrict)):
		return models.RoleDistrict
	case strings.EqualFold(v, string(models.RoleDivision)):
		return models.RoleDivision
	case strings.EqualFold(v, string(models.RoleSME)):
		return models.RoleSME
	}
	return ""
}
