package util

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDataURL = errors.New("invalid base64 payload")

// DecodeDataURL accepts either a "data:<mime>;base64,<payload>" URL or a bare
// base64 string. For bare payloads the returned MIME type is fallbackMIME.
func DecodeDataURL(s, fallbackMIME string) ([]byte, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, "", nil
	}

	mime := fallbackMIME
	payload := s
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		header, data, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(header, ";base64") {
			return nil, "", ErrInvalidDataURL
		}
		if m := strings.TrimSuffix(header, ";base64"); m != "" {
			mime = m
		}
		payload = data
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return raw, mime, nil
}

func EncodeDataURL(mime string, data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}
