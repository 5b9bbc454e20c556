package logging

import (
	"regexp"
)

var (
	// tokenParamPattern matches credentials passed as query parameters,
	// e.g. the GNews "token" parameter inside a *url.Error message.
	tokenParamPattern = regexp.MustCompile(`(?i)\b(token|apikey|api_key|access_token)=([^&\s"]+)`)

	// bearerPattern matches Authorization header values.
	bearerPattern = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._~+/-]+=*`)

	// userinfoPattern matches the password part of URL userinfo.
	userinfoPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)
)

// Sanitize masks credentials in s so that it can be written to logs.
func Sanitize(s string) string {
	s = tokenParamPattern.ReplaceAllString(s, "$1=****")
	s = bearerPattern.ReplaceAllString(s, "Bearer ****")
	s = userinfoPattern.ReplaceAllString(s, "://$1:****@")
	return s
}

// SanitizeError returns the sanitized message of err, or "" for a nil error.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return Sanitize(err.Error())
}
