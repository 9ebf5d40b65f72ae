package router

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/mitchellh/mapstructure"
)

// bind fills req from the query string for GET requests, and from either a
// json body or a url-encoded form for POST requests. Fields are matched by
// their json tag.
func bind(r *http.Request, req any) error {
	switch r.Method {
	case http.MethodGet, http.MethodDelete:
		return decodeValues(r.URL.Query(), req)

	case http.MethodPost, http.MethodPut, http.MethodPatch:
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType == "application/json" {
			b, err := io.ReadAll(r.Body)
			if err != nil {
				return err
			}

			if len(b) == 0 {
				return nil
			}

			return json.Unmarshal(b, req)
		}

		if err := r.ParseForm(); err != nil {
			return err
		}

		return decodeValues(r.PostForm, req)
	}

	return fmt.Errorf("unsupported method %s", r.Method)
}

func decodeValues(values url.Values, req any) error {
	input := make(map[string]any, len(values))
	for key, value := range values {
		if len(value) > 0 {
			input[key] = value[0]
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           req,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}
