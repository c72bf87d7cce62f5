package services

import (
	domain "github.com/murkotick/product-sync-service/internal/app/product/domain"
)

// DiffImages computes the image operations that turn existing into the desired
// set: every existing image whose id is not in remainingIDs is deleted, and
// every new blob is created in the order given.
//
// Ids in remainingIDs that do not match an existing image are ignored. The
// function is pure: equal inputs always produce equal deltas.
func DiffImages(existing []domain.ImageRef, remainingIDs []string, newBlobs []domain.ImageBlob) domain.ImageDelta {
	keep := make(map[string]struct{}, len(remainingIDs))
	for _, id := range remainingIDs {
		keep[id] = struct{}{}
	}

	delta := domain.ImageDelta{
		ToDelete: make([]string, 0),
		ToCreate: make([]domain.ImageBlob, 0, len(newBlobs)),
	}

	scheduled := make(map[string]struct{}, len(existing))
	for _, img := range existing {
		if _, ok := keep[img.ID]; ok {
			continue
		}
		if _, dup := scheduled[img.ID]; dup {
			continue
		}
		scheduled[img.ID] = struct{}{}
		delta.ToDelete = append(delta.ToDelete, img.ID)
	}

	delta.ToCreate = append(delta.ToCreate, newBlobs...)
	return delta
}
