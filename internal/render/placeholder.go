package render

import (
	"image"
	"image/color"
	"image/draw"

	"dzone/internal/geometry"
	"dzone/internal/sheet"
)

var (
	placeholderBody    = color.RGBA{236, 236, 236, 255}
	placeholderOutline = color.RGBA{48, 48, 48, 255}
	placeholderEye     = color.RGBA{16, 16, 16, 255}
	placeholderMouth   = color.RGBA{200, 64, 64, 255}
)

// PlaceholderSheet draws a sheet image covering every region of s, used when
// no sheet image is configured. Poses are light blobs so role tints show
// through; the facing is marked by where the eye sits.
func PlaceholderSheet(s *sheet.Sheet, talkPhases int) *image.RGBA {
	w, h := s.Size(talkPhases)
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))

	for _, st := range sheet.States {
		for _, f := range geometry.Facings {
			r, ok := s.Lookup(st, f)
			if !ok {
				continue
			}
			switch st {
			case sheet.Hopping:
				for i := 0; i < s.Animation.Frames; i++ {
					frame := r
					frame.X += i * r.W
					lift := hopLift(i, s.Animation.Frames, r.H)
					drawPose(img, frame, f, lift, false)
				}
			case sheet.Online:
				for p := 0; p < max(talkPhases, 1); p++ {
					phase := r
					phase.Y += p * r.H
					drawPose(img, phase, f, 0, p%2 == 1)
				}
			default:
				drawPose(img, r, f, 0, false)
			}
		}
	}
	return img
}

// hopLift raises the middle of the hop strip a few pixels.
func hopLift(frame, frames, height int) int {
	if frames <= 1 {
		return 0
	}
	mid := frames / 2
	d := frame - mid
	if d < 0 {
		d = -d
	}
	return max(height/4-d*height/4/max(mid, 1), 0)
}

func drawPose(img *image.RGBA, r sheet.Region, f geometry.Facing, lift int, talking bool) {
	body := image.Rect(r.X+2, r.Y+3-lift, r.X+r.W-2, r.Y+r.H-1-lift).Intersect(regionRect(r))
	draw.Draw(img, body, image.NewUniform(placeholderOutline), image.Point{}, draw.Src)
	draw.Draw(img, body.Inset(1), image.NewUniform(placeholderBody), image.Point{}, draw.Src)

	// The eye slides toward the side the pose looks at.
	ex, ey := body.Min.X+body.Dx()/2, body.Min.Y+body.Dy()/3
	switch f {
	case geometry.East:
		ex = body.Max.X - 3
	case geometry.West:
		ex = body.Min.X + 2
	case geometry.North:
		ey = body.Min.Y + 1
	}
	img.SetRGBA(ex, ey, placeholderEye)
	if talking {
		img.SetRGBA(ex, ey+2, placeholderMouth)
	}
}

func regionRect(r sheet.Region) image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}
