package imaging

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Info is the descriptive metadata of a decoded file.
type Info struct {
	ByteSize  int64
	Width     int
	Height    int
	ColorMode string
	Format    string
}

// Image is a decoded file with RGBA and grayscale planes.
type Image struct {
	Path string
	Info Info
	RGBA *image.RGBA
	Gray *image.Gray
}

// Area returns the pixel area of the image.
func (im *Image) Area() int {
	return im.Info.Width * im.Info.Height
}

type cacheKey struct {
	path    string
	size    int64
	modTime int64
}

// Loader decodes image files and memoizes the decoded pixels. The key includes
// file size and modification time so a rewritten file is decoded again.
type Loader struct {
	cache *lru.Cache[cacheKey, *Image]
}

// NewLoader returns a loader keeping up to size decoded images in memory.
func NewLoader(size int) (*Loader, error) {
	if size <= 0 {
		size = 1
	}
	cache, err := lru.New[cacheKey, *Image](size)
	if err != nil {
		return nil, fmt.Errorf("create image cache: %w", err)
	}
	return &Loader{cache: cache}, nil
}

// Load decodes the file at path.
func (l *Loader) Load(path string) (*Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("decode %s: is a directory", path)
	}
	key := cacheKey{path: path, size: info.Size(), modTime: info.ModTime().UnixNano()}
	if l != nil && l.cache != nil {
		if img, ok := l.cache.Get(key); ok {
			return img, nil
		}
	}

	img, err := decodeFile(path, info.Size())
	if err != nil {
		return nil, err
	}
	if l != nil && l.cache != nil {
		l.cache.Add(key, img)
	}
	return img, nil
}

// Probe returns the metadata of the file at path.
func (l *Loader) Probe(path string) (Info, error) {
	img, err := l.Load(path)
	if err != nil {
		return Info{}, err
	}
	return img.Info, nil
}

func decodeFile(path string, size int64) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	src, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("decode %s: empty image", path)
	}
	rgba := EnsureRGBA(src)
	return &Image{
		Path: path,
		Info: Info{
			ByteSize:  size,
			Width:     bounds.Dx(),
			Height:    bounds.Dy(),
			ColorMode: ColorModeName(src.ColorModel()),
			Format:    strings.ToUpper(format),
		},
		RGBA: rgba,
		Gray: ToGray(rgba),
	}, nil
}

// ColorModeName maps a Go colour model onto the conventional mode names
// ("RGB", "RGBA", "L", "P", "CMYK").
func ColorModeName(model color.Model) string {
	if _, ok := model.(color.Palette); ok {
		return "P"
	}
	switch model {
	case color.RGBAModel, color.RGBA64Model, color.YCbCrModel:
		return "RGB"
	case color.NRGBAModel, color.NRGBA64Model, color.NYCbCrAModel:
		return "RGBA"
	case color.GrayModel:
		return "L"
	case color.Gray16Model:
		return "I;16"
	case color.CMYKModel:
		return "CMYK"
	case color.AlphaModel, color.Alpha16Model:
		return "A"
	default:
		return "RGB"
	}
}

// EnsureRGBA converts any image to an *image.RGBA anchored at the origin.
func EnsureRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

// ToGray converts an image to 8-bit luma anchored at the origin.
func ToGray(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok && gray.Rect.Min == (image.Point{}) {
		return gray
	}
	bounds := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

// ScaleGray resizes src by factor with bilinear filtering. Each side is at
// least one pixel. A factor of 1 or more returns src unchanged.
func ScaleGray(src *image.Gray, factor float64) *image.Gray {
	if factor >= 1 {
		return src
	}
	bounds := src.Bounds()
	w := max(1, int(float64(bounds.Dx())*factor+0.5))
	h := max(1, int(float64(bounds.Dy())*factor+0.5))
	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	return dst
}
