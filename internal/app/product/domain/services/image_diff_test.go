package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	domain "github.com/murkotick/product-sync-service/internal/app/product/domain"
)

func refs(ids ...string) []domain.ImageRef {
	out := make([]domain.ImageRef, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.ImageRef{ID: id, URL: "https://cdn.example.com/" + id})
	}
	return out
}

func TestDiffImages_KeepOneReplaceOne(t *testing.T) {
	x := domain.ImageBlob{Src: "data:image/png;base64,X"}

	delta := DiffImages(refs("A", "B"), []string{"B"}, []domain.ImageBlob{x})

	assert.Equal(t, []string{"A"}, delta.ToDelete)
	assert.Equal(t, []domain.ImageBlob{x}, delta.ToCreate)
}

func TestDiffImages_NoOp(t *testing.T) {
	delta := DiffImages(refs("A", "B"), []string{"A", "B"}, nil)

	assert.Empty(t, delta.ToDelete)
	assert.Empty(t, delta.ToCreate)
	assert.True(t, delta.IsEmpty())
}

func TestDiffImages_UnknownRemainingIDsAreIgnored(t *testing.T) {
	delta := DiffImages(refs("A"), []string{"A", "ghost"}, nil)
	assert.Empty(t, delta.ToDelete)
}

func TestDiffImages_PreservesOrder(t *testing.T) {
	blobs := []domain.ImageBlob{{Src: "3"}, {Src: "1"}, {Src: "2"}}
	delta := DiffImages(refs("C", "A", "B"), nil, blobs)

	assert.Equal(t, []string{"C", "A", "B"}, delta.ToDelete)
	assert.Equal(t, blobs, delta.ToCreate)
}

func TestDiffImages_DuplicateExistingIDDeletedOnce(t *testing.T) {
	delta := DiffImages(refs("A", "A"), nil, nil)
	assert.Equal(t, []string{"A"}, delta.ToDelete)
}

func TestDiffImages_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		idGen := rapid.SampledFrom([]string{"a", "b", "c", "d", "e", "f"})
		existingIDs := rapid.SliceOfDistinct(idGen, rapid.ID[string]).Draw(t, "existing")
		remaining := rapid.SliceOf(idGen).Draw(t, "remaining")
		blobs := rapid.SliceOf(rapid.Custom(func(t *rapid.T) domain.ImageBlob {
			return domain.ImageBlob{Src: rapid.StringMatching(`data:image/png;base64,[A-Z]{1,4}`).Draw(t, "src")}
		})).Draw(t, "blobs")

		existing := refs(existingIDs...)
		first := DiffImages(existing, remaining, blobs)
		second := DiffImages(existing, remaining, blobs)

		// pure
		assert.Equal(t, first, second)

		// nothing the caller keeps is deleted
		keep := map[string]bool{}
		for _, id := range remaining {
			keep[id] = true
		}
		for _, id := range first.ToDelete {
			if keep[id] {
				t.Fatalf("kept id %q scheduled for deletion", id)
			}
		}

		// everything not kept is deleted
		deleted := map[string]bool{}
		for _, id := range first.ToDelete {
			deleted[id] = true
		}
		for _, id := range existingIDs {
			if !keep[id] && !deleted[id] {
				t.Fatalf("existing id %q neither kept nor deleted", id)
			}
		}

		assert.Equal(t, len(blobs), len(first.ToCreate))
		for i := range blobs {
			assert.Equal(t, blobs[i], first.ToCreate[i])
		}
	})
}
