package http

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
)

const (
	maxBodyBytes     = 1 << 20
	maxMultipartSize = 1 << 20
)

// bindForm decodes a JSON, urlencoded or multipart body into T. Form fields
// are matched against the json tags of T.
func bindForm[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var form T

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return form, fmt.Errorf("%w: %w", ErrUnsupportedContentType, err)
		}
		mediaType = parsed
	}

	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			return form, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
		return form, nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartSize); err != nil {
			return form, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
	case "application/x-www-form-urlencoded", "":
		if err := r.ParseForm(); err != nil {
			return form, fmt.Errorf("%w: %w", ErrInvalidBody, err)
		}
	default:
		return form, fmt.Errorf("%w: %s", ErrUnsupportedContentType, mediaType)
	}

	fields := make(map[string]string, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return form, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	if err = json.Unmarshal(raw, &form); err != nil {
		return form, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	return form, nil
}
