package constants

import "fmt"

// Role bersifat tertutup: hanya tiga ini yang dikenal sistem.
const (
	RoleStaff       = "staff"
	RoleSocialMedia = "socialmedia"
	RoleAdmin       = "admin"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyStaffCanAccess  = "❌ Hanya staff terdaftar yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStaff,
		RoleSocialMedia,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

// IsKnownRole memeriksa apakah role termasuk himpunan tertutup.
func IsKnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// CanFillSocialLink: hanya role sosmed yang boleh mengisi kolom Link Sosmed.
func CanFillSocialLink(role string) bool {
	return role == RoleSocialMedia
}
