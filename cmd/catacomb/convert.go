package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Decoders for the formats convert accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/spf13/cobra"
	xdraw "golang.org/x/image/draw"
)

var (
	flagConvertWidth  int
	flagConvertHeight int
	flagConvertSprite bool
	flagConvertOut    string
)

var convertCmd = &cobra.Command{
	Use:   "convert <image>",
	Short: "Convert an image into a text texture",
	Long: `Convert a PNG, JPEG or GIF image into the digit-grid texture format
used by level files.

The image is scaled down to the target size and each pixel becomes an
intensity digit from 0 (darkest) to 9 (brightest). With --sprite,
pixels that are mostly transparent become '.' cells instead, which the
renderer skips when drawing the sprite.

Paste the result into the textures or sprite_textures section of a
level file.

Examples:
  catacomb convert wall.png                     # 16x16 wall texture
  catacomb convert pillar.png --width 12 --sprite
  catacomb convert brick.jpg --width 24 --height 32 -o brick.txt`,
	Args: cobra.ExactArgs(1),
	Run:  runConvert,
}

func init() {
	convertCmd.Flags().IntVar(&flagConvertWidth, "width", 16, "Texture width in cells")
	convertCmd.Flags().IntVar(&flagConvertHeight, "height", 0, "Texture height in cells (0 matches width)")
	convertCmd.Flags().BoolVar(&flagConvertSprite, "sprite", false, "Emit '.' for transparent pixels (sprite textures)")
	convertCmd.Flags().StringVarP(&flagConvertOut, "out", "o", "", "Output file (default: input name with .txt)")
}

func runConvert(_ *cobra.Command, args []string) {
	width := flagConvertWidth
	height := flagConvertHeight
	if height <= 0 {
		height = width
	}
	if width <= 0 {
		fmt.Fprintf(os.Stderr, "Error: width must be positive\n")
		os.Exit(1)
	}

	text, err := convertImage(args[0], width, height, flagConvertSprite)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out := flagConvertOut
	if out == "" {
		base := filepath.Base(args[0])
		out = strings.TrimSuffix(base, filepath.Ext(base)) + ".txt"
	}
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %dx%d texture to %s\n", width, height, out)
}

// convertImage decodes the image at path, scales it to w x h and quantizes
// each pixel to a digit. With sprite set, mostly-transparent pixels come
// out as '.' cells.
func convertImage(path string, w, h int, sprite bool) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	var sb strings.Builder
	sb.Grow(h * (w + 1))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := scaled.At(x, y).RGBA()
			if sprite && a < 0x8000 {
				sb.WriteByte('.')
				continue
			}
			// Rec. 601 luma over the 16-bit channels
			lum := (299*r + 587*g + 114*b) / 1000
			sb.WriteByte('0' + byte(lum*9/0xffff))
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
