package app

import (
	"strings"

	"shopadmin/pkg/domain"
)

// ImageDraft is one image row on the product form: the uploaded URL plus an
// optional color-variant tag.
type ImageDraft struct {
	URL     string
	ColorID *string
}

// ProductDraft is the product form's state. All transitions are pure: they
// return a new draft and never mutate the receiver, so derived view state is
// recomputed from the current value instead of tracked separately.
type ProductDraft struct {
	Name       string
	Price      float64
	CategoryID string
	SizeIDs    []string
	ColorIDs   []string
	Images     []ImageDraft
	IsFeatured bool
	IsArchived bool
}

// NewProductDraft initializes form state from an existing product when
// editing, or from empty defaults when creating.
func NewProductDraft(initial *domain.Product) ProductDraft {
	if initial == nil {
		return ProductDraft{}
	}
	d := ProductDraft{
		Name:       initial.Name,
		Price:      initial.Price,
		CategoryID: initial.CategoryID,
		IsFeatured: initial.IsFeatured,
		IsArchived: initial.IsArchived,
	}
	for _, sz := range initial.Sizes {
		d.SizeIDs = append(d.SizeIDs, sz.ID)
	}
	for _, c := range initial.Colors {
		d.ColorIDs = append(d.ColorIDs, c.ID)
	}
	for _, img := range initial.Images {
		d.Images = append(d.Images, ImageDraft{URL: img.URL, ColorID: img.ColorID})
	}
	return d
}

func (d ProductDraft) clone() ProductDraft {
	d.SizeIDs = append([]string{}, d.SizeIDs...)
	d.ColorIDs = append([]string{}, d.ColorIDs...)
	d.Images = append([]ImageDraft{}, d.Images...)
	return d
}

// WithImageAdded appends a freshly uploaded image without a color tag.
func (d ProductDraft) WithImageAdded(url string) ProductDraft {
	next := d.clone()
	next.Images = append(next.Images, ImageDraft{URL: url})
	return next
}

// WithImageRemoved drops every image with the given URL.
func (d ProductDraft) WithImageRemoved(url string) ProductDraft {
	next := d.clone()
	kept := next.Images[:0]
	for _, img := range next.Images {
		if img.URL != url {
			kept = append(kept, img)
		}
	}
	next.Images = kept
	return next
}

// WithImageColor tags the image at index with a color. A color that is not
// currently selected for the product cannot be used as a tag; nil clears it.
func (d ProductDraft) WithImageColor(index int, colorID *string) ProductDraft {
	if index < 0 || index >= len(d.Images) {
		return d
	}
	if colorID != nil && !contains(d.ColorIDs, *colorID) {
		return d
	}
	next := d.clone()
	next.Images[index].ColorID = colorID
	return next
}

// WithSizeToggled selects the size if absent, deselects it if present.
func (d ProductDraft) WithSizeToggled(sizeID string) ProductDraft {
	next := d.clone()
	if contains(next.SizeIDs, sizeID) {
		next.SizeIDs = remove(next.SizeIDs, sizeID)
		return next
	}
	next.SizeIDs = append(next.SizeIDs, sizeID)
	return next
}

// WithColorSelected adds the color to the selection.
func (d ProductDraft) WithColorSelected(colorID string) ProductDraft {
	if contains(d.ColorIDs, colorID) {
		return d
	}
	next := d.clone()
	next.ColorIDs = append(next.ColorIDs, colorID)
	return next
}

// WithColorDeselected removes the color from the selection and clears its
// tag from every image, including images the user never touched.
func (d ProductDraft) WithColorDeselected(colorID string) ProductDraft {
	next := d.clone()
	next.ColorIDs = remove(next.ColorIDs, colorID)
	for i, img := range next.Images {
		if img.ColorID != nil && *img.ColorID == colorID {
			next.Images[i].ColorID = nil
		}
	}
	return next
}

// AvailableColors filters the store's colors down to the ones currently
// selected on the draft, in store order. Only these may tag an image.
func (d ProductDraft) AvailableColors(all []domain.Color) []domain.Color {
	res := []domain.Color{}
	for _, c := range all {
		if contains(d.ColorIDs, c.ID) {
			res = append(res, c)
		}
	}
	return res
}

// Validate mirrors the form schema's minimum constraints, naming the first
// field that fails.
func (d ProductDraft) Validate() error {
	return d.Input().validate()
}

// Input converts the draft to the submission payload.
func (d ProductDraft) Input() ProductInput {
	images := make([]ImageInput, 0, len(d.Images))
	for _, img := range d.Images {
		images = append(images, ImageInput{URL: img.URL, ColorID: img.ColorID})
	}
	return ProductInput{
		Name:       strings.TrimSpace(d.Name),
		Price:      d.Price,
		CategoryID: d.CategoryID,
		SizeIDs:    append([]string{}, d.SizeIDs...),
		ColorIDs:   append([]string{}, d.ColorIDs...),
		Images:     images,
		IsFeatured: d.IsFeatured,
		IsArchived: d.IsArchived,
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func remove(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}
