package types

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/jordanvasquez/threadline-backend/pkg/enums"
)

// Image is a single product shot keyed by its view angle.
type Image struct {
	View enums.ImageView `json:"view"`
	Src  string          `json:"src"`
}

// ImageList stores the product gallery as JSONB.
type ImageList []Image

// Value serializes the images to JSON.
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan decodes JSONB into the image slice.
func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded ImageList
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*l = decoded
	return nil
}

// Primary returns the default-view image source, falling back to the first
// entry when no default exists.
func (l ImageList) Primary() string {
	for _, img := range l {
		if img.View == enums.ImageViewDefault {
			return img.Src
		}
	}
	if len(l) > 0 {
		return l[0].Src
	}
	return ""
}
