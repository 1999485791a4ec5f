package app

import (
	"testing"

	"shopadmin/pkg/domain"
)

func TestNewProductDraftFromExistingProduct(t *testing.T) {
	red := "color-red"
	p := &domain.Product{
		Name:       "Shirt",
		Price:      25,
		CategoryID: "cat-1",
		Sizes:      []domain.Size{{ID: "size-s"}},
		Colors:     []domain.Color{{ID: red}},
		Images: []domain.Image{
			{URL: "http://x/a.png", ColorID: &red},
		},
		IsFeatured: true,
	}
	d := NewProductDraft(p)
	if d.Name != "Shirt" || d.Price != 25 || d.CategoryID != "cat-1" || !d.IsFeatured {
		t.Fatalf("draft = %+v", d)
	}
	if len(d.SizeIDs) != 1 || len(d.ColorIDs) != 1 || len(d.Images) != 1 {
		t.Fatalf("draft collections = %+v", d)
	}
	if d.Images[0].ColorID == nil || *d.Images[0].ColorID != red {
		t.Fatalf("image color tag lost: %+v", d.Images[0])
	}
}

func TestDraftTransitionsArePure(t *testing.T) {
	base := ProductDraft{}.WithImageAdded("http://x/a.png").WithSizeToggled("size-s")
	next := base.WithImageRemoved("http://x/a.png").WithSizeToggled("size-s")

	if len(base.Images) != 1 || len(base.SizeIDs) != 1 {
		t.Fatalf("base draft mutated: %+v", base)
	}
	if len(next.Images) != 0 || len(next.SizeIDs) != 0 {
		t.Fatalf("next draft = %+v", next)
	}
}

func TestWithImageColorRequiresSelectedColor(t *testing.T) {
	red := "color-red"
	d := ProductDraft{}.WithImageAdded("http://x/a.png")

	// Tagging with an unselected color is a no-op.
	unchanged := d.WithImageColor(0, &red)
	if unchanged.Images[0].ColorID != nil {
		t.Fatalf("unselected color must not tag an image")
	}

	tagged := d.WithColorSelected(red).WithImageColor(0, &red)
	if tagged.Images[0].ColorID == nil || *tagged.Images[0].ColorID != red {
		t.Fatalf("tagged image = %+v", tagged.Images[0])
	}

	cleared := tagged.WithImageColor(0, nil)
	if cleared.Images[0].ColorID != nil {
		t.Fatalf("nil should clear the tag")
	}

	// Out of range index is a no-op.
	if got := d.WithImageColor(5, nil); len(got.Images) != 1 {
		t.Fatalf("out of range tag changed the draft: %+v", got)
	}
}

func TestWithColorDeselectedClearsImageTags(t *testing.T) {
	red := "color-red"
	blue := "color-blue"
	d := ProductDraft{}.
		WithColorSelected(red).
		WithColorSelected(blue).
		WithImageAdded("http://x/a.png").
		WithImageAdded("http://x/b.png")
	d = d.WithImageColor(0, &red).WithImageColor(1, &blue)

	next := d.WithColorDeselected(red)
	if contains(next.ColorIDs, red) {
		t.Fatalf("red should be deselected: %v", next.ColorIDs)
	}
	if next.Images[0].ColorID != nil {
		t.Fatalf("red tag should be cleared from image 0")
	}
	if next.Images[1].ColorID == nil || *next.Images[1].ColorID != blue {
		t.Fatalf("blue tag must survive: %+v", next.Images[1])
	}
	// Original draft untouched.
	if d.Images[0].ColorID == nil {
		t.Fatalf("deselect mutated the source draft")
	}
}

func TestAvailableColorsIntersection(t *testing.T) {
	all := []domain.Color{
		{ID: "c1", Name: "Red"},
		{ID: "c2", Name: "Blue"},
		{ID: "c3", Name: "Green"},
	}
	d := ProductDraft{}.WithColorSelected("c3").WithColorSelected("c1")

	got := d.AvailableColors(all)
	if len(got) != 2 {
		t.Fatalf("available = %+v", got)
	}
	// Store order wins over selection order.
	if got[0].ID != "c1" || got[1].ID != "c3" {
		t.Fatalf("available order = %+v", got)
	}

	if empty := (ProductDraft{}).AvailableColors(all); len(empty) != 0 {
		t.Fatalf("no selection should offer no colors: %+v", empty)
	}
}

func TestDraftValidateAndInput(t *testing.T) {
	d := ProductDraft{
		Name:       "  Runner  ",
		Price:      10,
		CategoryID: "cat-1",
	}
	if err := d.Validate(); !IsValidation(err) {
		t.Fatalf("imageless draft err = %v, want validation error", err)
	}

	d = d.WithImageAdded("http://x/a.png").
		WithSizeToggled("size-s").
		WithColorSelected("color-red")
	if err := d.Validate(); err != nil {
		t.Fatalf("complete draft should validate: %v", err)
	}

	in := d.Input()
	if in.Name != "Runner" {
		t.Fatalf("input name = %q, want trimmed", in.Name)
	}
	if len(in.Images) != 1 || len(in.SizeIDs) != 1 || len(in.ColorIDs) != 1 {
		t.Fatalf("input = %+v", in)
	}
}
