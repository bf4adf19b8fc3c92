package export

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/jpeg" // register decoders for DecodeConfig
	_ "image/png"
	"strings"

	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
)

// decodeDataURL extracts an embeddable picture from a data URL
// ("data:image/png;base64,...") or a bare base64 string.
// It reports false when the payload is not a PNG or JPEG image.
func decodeDataURL(s string) ([]byte, extension.Type, bool) {
	if s == "" {
		return nil, "", false
	}
	payload := s
	if strings.HasPrefix(s, "data:") {
		comma := strings.IndexByte(s, ',')
		if comma < 0 || !strings.Contains(s[:comma], ";base64") {
			return nil, "", false
		}
		payload = s[comma+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", false
	}
	_, kind, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, "", false
	}
	switch kind {
	case "png":
		return raw, extension.Png, true
	case "jpeg":
		return raw, extension.Jpg, true
	}
	return nil, "", false
}
