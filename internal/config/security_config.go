package config

type SecurityLevel int

const (
	SecurityPublic  SecurityLevel = iota // No session needed
	SecuritySession                      // Signed-in session required
)

// RouteSecurityConfig maps local route templates to their required security level.
// Routes missing from the map require a session.
var RouteSecurityConfig = map[string]SecurityLevel{
	"/healthz": SecurityPublic,
	"/metrics": SecurityPublic,

	// Client-local preferences
	"/api/theme":    SecurityPublic,
	"/api/currency": SecurityPublic,

	// Backend-backed views
	"/api/cars":                           SecuritySession,
	"/api/cars/{id}":                      SecuritySession,
	"/api/views/cars/{id}":                SecuritySession,
	"/api/bookings":                       SecuritySession,
	"/api/bookings/estimate":              SecuritySession,
	"/api/bookings/{id}":                  SecuritySession,
	"/api/bookings/{id}/actions/{action}": SecuritySession,
}

// RequiredSecurity returns the level for a route template
func RequiredSecurity(template string) SecurityLevel {
	if level, ok := RouteSecurityConfig[template]; ok {
		return level
	}
	return SecuritySession
}
