package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.SupabaseJWTSecret) < 32 {
		return fmt.Errorf("auth.supabase_jwt_secret must be at least 32 characters (got %d)", len(c.Auth.SupabaseJWTSecret))
	}

	if c.Leads.DefaultPageSize <= 0 {
		return fmt.Errorf("leads.default_page_size must be > 0 (got %d)", c.Leads.DefaultPageSize)
	}
	if c.Leads.MaxPageSize < c.Leads.DefaultPageSize {
		return fmt.Errorf("leads.max_page_size must be >= default_page_size (got %d < %d)",
			c.Leads.MaxPageSize, c.Leads.DefaultPageSize)
	}

	if c.Server.RateLimitPerMin < 0 {
		return fmt.Errorf("server.rate_limit_per_min must be >= 0 (got %d)", c.Server.RateLimitPerMin)
	}

	return nil
}
