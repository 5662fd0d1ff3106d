package heatmap

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

// Point is one click position in page coordinates.
type Point struct {
	X int
	Y int
}

// Renderer accumulates click points onto a fixed-size grid, smooths the
// counts, and writes the result as a PNG. Three box-blur passes
// approximate a Gaussian of the configured sigma.
type Renderer struct {
	width  int
	height int
	sigma  int
}

func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = 1920
	}
	if height <= 0 {
		height = 1080
	}
	return &Renderer{width: width, height: height, sigma: 5}
}

func (r *Renderer) Render(points []Point, w io.Writer) error {
	grid := make([]float64, r.width*r.height)
	for _, p := range points {
		if p.X < 0 || p.X >= r.width || p.Y < 0 || p.Y >= r.height {
			continue
		}
		grid[p.Y*r.width+p.X]++
	}

	radius := boxRadius(r.sigma)
	for i := 0; i < 3; i++ {
		grid = blurHorizontal(grid, r.width, r.height, radius)
		grid = blurVertical(grid, r.width, r.height, radius)
	}

	peak := 0.0
	for _, v := range grid {
		if v > peak {
			peak = v
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			t := 0.0
			if peak > 0 {
				t = grid[y*r.width+x] / peak
			}
			img.SetRGBA(x, y, ramp(t))
		}
	}
	return png.Encode(w, img)
}

// boxRadius picks a box width so three passes match a Gaussian of the
// given sigma.
func boxRadius(sigma int) int {
	r := (sigma*3)/2 - 1
	if r < 1 {
		r = 1
	}
	return r
}

func blurHorizontal(src []float64, width, height, radius int) []float64 {
	dst := make([]float64, len(src))
	window := float64(2*radius + 1)
	for y := 0; y < height; y++ {
		row := src[y*width : (y+1)*width]
		sum := 0.0
		for x := -radius; x <= radius; x++ {
			sum += at(row, x, width)
		}
		for x := 0; x < width; x++ {
			dst[y*width+x] = sum / window
			sum += at(row, x+radius+1, width) - at(row, x-radius, width)
		}
	}
	return dst
}

func blurVertical(src []float64, width, height, radius int) []float64 {
	dst := make([]float64, len(src))
	window := float64(2*radius + 1)
	for x := 0; x < width; x++ {
		sum := 0.0
		for y := -radius; y <= radius; y++ {
			sum += atCol(src, x, y, width, height)
		}
		for y := 0; y < height; y++ {
			dst[y*width+x] = sum / window
			sum += atCol(src, x, y+radius+1, width, height) - atCol(src, x, y-radius, width, height)
		}
	}
	return dst
}

func at(row []float64, x, width int) float64 {
	if x < 0 || x >= width {
		return 0
	}
	return row[x]
}

func atCol(grid []float64, x, y, width, height int) float64 {
	if y < 0 || y >= height {
		return 0
	}
	return grid[y*width+x]
}

// ramp maps a normalized intensity onto a cool-to-warm gradient, blue
// through white to red.
func ramp(t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	cold := [3]float64{59, 76, 192}
	mid := [3]float64{221, 221, 221}
	warm := [3]float64{180, 4, 38}

	var from, to [3]float64
	var f float64
	if t < 0.5 {
		from, to, f = cold, mid, t*2
	} else {
		from, to, f = mid, warm, (t-0.5)*2
	}
	return color.RGBA{
		R: uint8(from[0] + (to[0]-from[0])*f),
		G: uint8(from[1] + (to[1]-from[1])*f),
		B: uint8(from[2] + (to[2]-from[2])*f),
		A: 255,
	}
}
