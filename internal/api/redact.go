package api

import (
	"net/http"
	"regexp"

	"github.com/go-resty/resty/v2"
)

const redacted = "[REDACTED]"

var (
	formSecretPattern = regexp.MustCompile(`((?:^|&)password=)[^&\s]*`)
	jsonSecretPattern = regexp.MustCompile(`("(?:password|access_token)"\s*:\s*")[^"]*(")`)
)

func redactRequestLog(rl *resty.RequestLog) error {
	redactHeader(rl.Header)
	rl.Body = redactBody(rl.Body)
	return nil
}

func redactResponseLog(rl *resty.ResponseLog) error {
	redactHeader(rl.Header)
	rl.Body = redactBody(rl.Body)
	return nil
}

func redactHeader(header http.Header) {
	if len(header.Get("Authorization")) > 0 {
		header.Set("Authorization", authScheme+" "+redacted)
	}
}

// redactBody blanks passwords in form and JSON bodies and access tokens in
// JSON responses.
func redactBody(body string) string {
	body = formSecretPattern.ReplaceAllString(body, "${1}"+redacted)
	return jsonSecretPattern.ReplaceAllString(body, "${1}"+redacted+"${2}")
}
