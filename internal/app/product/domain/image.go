package domain

import (
	"encoding/json"
	"fmt"
)

// ImageRef is an image already stored remotely.
type ImageRef struct {
	ID      string
	URL     string
	AltText *string
}

// ImageBlob is an image pending upload. It has no identifier until the remote
// service assigns one. Src is either a data URL or a publicly reachable URL.
type ImageBlob struct {
	Src     string `json:"src" validate:"required"`
	AltText string `json:"altText,omitempty"`
}

// UnmarshalJSON accepts either a bare string (the source) or an object with
// src and altText.
func (b *ImageBlob) UnmarshalJSON(data []byte) error {
	var src string
	if err := json.Unmarshal(data, &src); err == nil {
		*b = ImageBlob{Src: src}
		return nil
	}

	type plain ImageBlob
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("image blob: %w", err)
	}
	*b = ImageBlob(p)
	return nil
}

// ImageDelta is the set of remote image operations needed to reach the
// desired image state. It is derived per invocation and never persisted.
type ImageDelta struct {
	// ToDelete holds ids of existing images to remove, in manifest order.
	ToDelete []string
	// ToCreate holds new images in caller-supplied order.
	ToCreate []ImageBlob
}

// IsEmpty reports whether the delta requires no image operations.
func (d ImageDelta) IsEmpty() bool {
	return len(d.ToDelete) == 0 && len(d.ToCreate) == 0
}

// ValidateImageManifest checks that ids are unique within a product's image set.
func ValidateImageManifest(images []ImageRef) error {
	seen := make(map[string]struct{}, len(images))
	for _, img := range images {
		if _, ok := seen[img.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateImageID, img.ID)
		}
		seen[img.ID] = struct{}{}
	}
	return nil
}
