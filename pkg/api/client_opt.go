package api

import (
	"net/http"
)

type headerOpt struct {
	name  string
	value string
}

func OAuth2(prefix, token string) *headerOpt {
	return &headerOpt{name: "Authorization", value: prefix + " " + token}
}

// APIKey sends key in the given header, e.g. X-API-KEY.
func APIKey(header, key string) *headerOpt {
	return &headerOpt{name: header, value: key}
}

func (opt *headerOpt) Do(req *http.Request) {
	req.Header.Set(opt.name, opt.value)
}
