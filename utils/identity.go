package utils

import (
	"medibook/globals"
	"net/http"
)

func GetUserIDFromRequest(r *http.Request) string {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

func GetRolesFromRequest(r *http.Request) []string {
	roles, ok := r.Context().Value(globals.RoleKey).([]string)
	if !ok {
		return nil
	}
	return roles
}

// GetVisitorIDFromRequest reads the anonymous-session header. It does not
// touch the database; resolution against the visitors collection happens in
// the visitor package.
func GetVisitorIDFromRequest(r *http.Request) string {
	return r.Header.Get("X-Visitor-ID")
}
