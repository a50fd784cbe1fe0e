package enums

import "fmt"

// ImageView identifies which angle a product image was shot from.
type ImageView string

const (
	ImageViewDefault ImageView = "default"
	ImageViewSearch  ImageView = "search"
	ImageViewFront   ImageView = "front"
	ImageViewBack    ImageView = "back"
	ImageViewLeft    ImageView = "left"
	ImageViewRight   ImageView = "right"
	ImageViewTop     ImageView = "top"
	ImageViewBottom  ImageView = "bottom"
)

var validImageViews = []ImageView{
	ImageViewDefault,
	ImageViewSearch,
	ImageViewFront,
	ImageViewBack,
	ImageViewLeft,
	ImageViewRight,
	ImageViewTop,
	ImageViewBottom,
}

// String implements fmt.Stringer.
func (v ImageView) String() string {
	return string(v)
}

// IsValid reports whether the value is a known ImageView.
func (v ImageView) IsValid() bool {
	for _, candidate := range validImageViews {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseImageView converts raw input into an ImageView.
func ParseImageView(value string) (ImageView, error) {
	for _, candidate := range validImageViews {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid image view %q", value)
}
