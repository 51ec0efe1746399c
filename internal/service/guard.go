package service

import (
	"net/url"

	"github.com/storez/storefront/internal/domain/auth"
)

// GuardAction is the outcome kind of a route guard evaluation.
type GuardAction int

const (
	// GuardWait means the session is still bootstrapping and no
	// decision can be made yet. Callers must hold the request rather
	// than redirect.
	GuardWait GuardAction = iota
	// GuardRender allows the request through.
	GuardRender
	// GuardRedirect denies the request and names where to send the
	// caller instead.
	GuardRedirect
)

// GuardDecision is the result of evaluating a session against a route's
// access rule. Target is set only for GuardRedirect.
type GuardDecision struct {
	Action GuardAction
	Target string
}

// Decide evaluates access to a protected route. An unresolved session
// always yields GuardWait so that a slow credential check never bounces
// a legitimately signed-in caller to the login page. An anonymous
// session is sent to login with the attempted path preserved, and an
// authenticated caller with the wrong role is sent to their own home
// rather than login. An empty role list admits any authenticated
// session.
func Decide(sess auth.Session, required []auth.Role, currentPath string) GuardDecision {
	switch sess.State {
	case auth.StateBootstrapping:
		return GuardDecision{Action: GuardWait}
	case auth.StateUnauthenticated:
		return GuardDecision{Action: GuardRedirect, Target: loginTarget(currentPath)}
	}
	if len(required) == 0 {
		return GuardDecision{Action: GuardRender}
	}
	for _, role := range required {
		if sess.Identity.Role == role {
			return GuardDecision{Action: GuardRender}
		}
	}
	return GuardDecision{Action: GuardRedirect, Target: auth.HomeRoute(sess.Identity.Role)}
}

// DecidePublic evaluates access to shopper-facing public routes such as
// the landing, login and registration pages. Anonymous callers and
// shoppers render; privileged roles are bounced to their dashboards so
// an admin never works from the storefront surface.
func DecidePublic(sess auth.Session) GuardDecision {
	switch sess.State {
	case auth.StateBootstrapping:
		return GuardDecision{Action: GuardWait}
	case auth.StateUnauthenticated:
		return GuardDecision{Action: GuardRender}
	}
	switch sess.Identity.Role {
	case auth.RoleAdmin, auth.RoleSupplier:
		return GuardDecision{Action: GuardRedirect, Target: auth.HomeRoute(sess.Identity.Role)}
	}
	return GuardDecision{Action: GuardRender}
}

func loginTarget(currentPath string) string {
	if currentPath == "" || currentPath == "/" || currentPath == auth.RouteLogin {
		return auth.RouteLogin
	}
	return auth.RouteLogin + "?next=" + url.QueryEscape(currentPath)
}
