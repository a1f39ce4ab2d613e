package session

import (
	"net/http"
	"net/url"
)

// SameOrigin rejects state-changing requests sent by pages of another
// origin. Browsers report the initiator in Sec-Fetch-Site; older ones only
// send Origin. Requests carrying neither header come from non-browser
// clients and pass.
func SameOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !safeMethod(r.Method) && crossOrigin(r) {
			http.Error(w, "cross-origin request refused", http.StatusForbidden)

			return
		}

		next.ServeHTTP(w, r)
	})
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}

	return false
}

func crossOrigin(r *http.Request) bool {
	switch r.Header.Get("Sec-Fetch-Site") {
	case "same-origin", "none":
		return false
	case "":
	default:
		return true
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		return false
	}

	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return true
	}

	return u.Host != r.Host
}
