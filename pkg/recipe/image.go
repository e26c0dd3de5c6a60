package recipe

import (
	"encoding/base64"
	"foodgram/domain"
	"strings"
)

const dataURIPrefix = "data:image/"

// decodeImage splits a "data:image/<ext>;base64,<payload>" URI into the file
// extension (with the leading dot) and the decoded bytes.
func decodeImage(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, dataURIPrefix) {
		return "", nil, domain.ErrInvalidImageFormat
	}

	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, dataURIPrefix), ",")
	if !ok {
		return "", nil, domain.ErrInvalidImageFormat
	}

	ext, ok := strings.CutSuffix(header, ";base64")
	if !ok || ext == "" {
		return "", nil, domain.ErrInvalidImageFormat
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return "", nil, domain.ErrInvalidImageFormat
	}
	return "." + strings.ToLower(ext), data, nil
}
