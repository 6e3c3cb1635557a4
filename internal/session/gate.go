package session

import (
	"strings"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"

	LoginPath        = "/login"
	AdminLandingPath = "/admin/articles"
	UserLandingPath  = "/user/content"
)

// protectedPrefixes are the path trees that require a signed-in session.
var protectedPrefixes = []string{"/admin", "/user"}

type GateAction string

const (
	GateAllow    GateAction = "allow"
	GateRedirect GateAction = "redirect"
)

type GateDecision struct {
	Action   GateAction `json:"action"`
	Location string     `json:"location,omitempty"`
}

// Gate is the per-navigation decision table: unauthenticated access to a
// protected path goes to the login screen, an authenticated visit to the
// login screen goes to the role's landing page, everything else passes.
func Gate(path string, s *Session) GateDecision {
	loggedIn := s != nil && s.Token != ""

	if loggedIn && path == LoginPath {
		return GateDecision{Action: GateRedirect, Location: LandingPath(s.Role)}
	}

	if !loggedIn && isProtected(path) {
		return GateDecision{Action: GateRedirect, Location: LoginPath}
	}

	return GateDecision{Action: GateAllow}
}

// LandingPath maps a role to its post-login screen.
func LandingPath(role string) string {
	if role == RoleAdmin {
		return AdminLandingPath
	}
	return UserLandingPath
}

func isProtected(path string) bool {
	for _, prefix := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
