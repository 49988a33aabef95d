package config

// SeedConfig holds the staff accounts created by cmd/seed. An empty email
// skips that account.
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	StaffEmail    string
	StaffPassword string
}

// LoadSeedConfig reads the SEED_* keys. An empty email skips that account.
func LoadSeedConfig() SeedConfig {
	return SeedConfig{
		AdminEmail:    envStr("SEED_ADMIN_EMAIL", ""),
		AdminPassword: envStr("SEED_ADMIN_PASSWORD", ""),
		StaffEmail:    envStr("SEED_STAFF_EMAIL", ""),
		StaffPassword: envStr("SEED_STAFF_PASSWORD", ""),
	}
}
