package render

import (
	"fmt"
	"image"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"dzone/internal/sheet"
)

// SheetImages holds the actor sheet image and its role color variants.
type SheetImages struct {
	sheet  *sheet.Sheet
	base   *ebiten.Image
	tinted map[string]*ebiten.Image // keyed by role color string
	log    *zap.Logger
}

// NewSheetImages loads the sheet image at path. An empty path, or one that
// cannot be decoded, falls back to a generated placeholder sized for s.
func NewSheetImages(s *sheet.Sheet, path string, talkPhases int, log *zap.Logger) *SheetImages {
	if log == nil {
		log = zap.NewNop()
	}
	si := &SheetImages{
		sheet:  s,
		tinted: make(map[string]*ebiten.Image),
		log:    log,
	}
	if path != "" {
		img, err := loadImage(path)
		if err == nil {
			si.base = ebiten.NewImageFromImage(img)
			return si
		}
		log.Warn("sheet image unavailable, using placeholder", zap.String("path", path), zap.Error(err))
	}
	si.base = ebiten.NewImageFromImage(PlaceholderSheet(s, talkPhases))
	return si
}

func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// Variant returns the sheet tinted with roleColor, building it on first use.
// Unparsable colors fall back to the plain sheet.
func (si *SheetImages) Variant(roleColor string) *ebiten.Image {
	if roleColor == "" {
		return si.base
	}
	if img, ok := si.tinted[roleColor]; ok {
		return img
	}

	c, err := ParseRoleColor(roleColor)
	if err != nil {
		si.log.Debug("role color ignored", zap.String("color", roleColor), zap.Error(err))
		si.tinted[roleColor] = si.base
		return si.base
	}

	img := ebiten.NewImage(si.base.Bounds().Dx(), si.base.Bounds().Dy())
	op := &ebiten.DrawImageOptions{}
	r, g, b := TintScale(c, si.sheet.Tint.Alpha)
	op.ColorScale.Scale(r, g, b, 1)
	img.DrawImage(si.base, op)

	// Weaker tint over regions such as the offline poses.
	for _, tr := range si.sheet.Tint.Regions {
		rect := regionRect(tr.Region)
		sub, ok := si.base.SubImage(rect).(*ebiten.Image)
		if !ok {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.Blend = ebiten.BlendCopy
		op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
		r, g, b := TintScale(c, tr.Alpha)
		op.ColorScale.Scale(r, g, b, 1)
		img.DrawImage(sub, op)
	}

	si.tinted[roleColor] = img
	return img
}

// Region cuts one pose out of a sheet variant.
func (si *SheetImages) Region(roleColor string, r sheet.Region) *ebiten.Image {
	return si.Variant(roleColor).SubImage(regionRect(r)).(*ebiten.Image)
}
