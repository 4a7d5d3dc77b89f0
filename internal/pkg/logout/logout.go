package logout

import (
	"net/url"
	"strings"
)

// URL builds the identity provider logout address:
//
//	https://{domain}/logout?returnTo={escaped root}&client_id={client id}
//
// Empty values are left out of the query; an empty domain yields "".
func URL(domain, clientID, returnTo string) string {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return ""
	}

	params := []struct{ key, value string }{
		{"returnTo", returnTo},
		{"client_id", clientID},
	}

	pairs := make([]string, 0, len(params))
	for _, p := range params {
		if p.value == "" {
			continue
		}
		pairs = append(pairs, p.key+"="+url.QueryEscape(p.value))
	}

	u := url.URL{
		Scheme:   "https",
		Host:     domain,
		Path:     "/logout",
		RawQuery: strings.Join(pairs, "&"),
	}
	return u.String()
}
