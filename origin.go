package sitepdf

import (
	"net"
	"net/url"
	"path"
	"strings"
)

// defaultPorts are dropped from origins so that "https://a.com:443" and
// "https://a.com" compare equal.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// Origin returns the scheme://host[:port] part of rawURL. Scheme and host
// are lowercased and the scheme's default port is omitted.
func Origin(rawURL string) (string, error) {
	u, err := parseAbsolute(rawURL)
	if err != nil {
		return "", err
	}
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if port == defaultPorts[scheme] {
		port = ""
	}
	switch {
	case port != "":
		host = net.JoinHostPort(host, port)
	case strings.Contains(host, ":"):
		host = "[" + host + "]"
	}
	return scheme + "://" + host, nil
}

// SameOrigin reports whether a and b share scheme, host and port.
// Unparseable URLs never match.
func SameOrigin(a, b string) bool {
	oa, err := Origin(a)
	if err != nil {
		return false
	}
	ob, err := Origin(b)
	if err != nil {
		return false
	}
	return strings.EqualFold(oa, ob)
}

// MapURLToOrigin moves rawURL onto targetOrigin. Scheme, host and port come
// from targetOrigin; path, query and fragment are kept exactly.
//
//	MapURLToOrigin("https://docs.example.com/guide/intro", "http://localhost:3000")
//	  == "http://localhost:3000/guide/intro"
func MapURLToOrigin(rawURL, targetOrigin string) (string, error) {
	u, err := parseAbsolute(rawURL)
	if err != nil {
		return "", err
	}
	target, err := parseAbsolute(targetOrigin)
	if err != nil {
		return "", err
	}

	mapped := *u
	mapped.Scheme = target.Scheme
	mapped.Host = target.Host
	mapped.User = target.User
	return mapped.String(), nil
}

// IsPrintTarget reports whether rawURL points at an already printed
// document (a PDF). Such URLs are never navigated to or fetched.
func IsPrintTarget(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(path.Ext(u.Path), ".pdf")
}

func parseAbsolute(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, Errorf(EINVALID, "URL %q is not absolute", rawURL)
	}
	return u, nil
}
