package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeeshanabi97/kmseg/internal/colour"
	"github.com/zeeshanabi97/kmseg/internal/imageio"
	"github.com/zeeshanabi97/kmseg/internal/palette"
	"github.com/zeeshanabi97/kmseg/internal/segment"
)

var (
	// Palette command flags
	paletteColours   int
	paletteAlgorithm string
	paletteFormat    string
	paletteOutput    string
	paletteSort      bool
	palettePreview   bool
	paletteSeed      int64
)

// paletteCmd represents the palette command
var paletteCmd = &cobra.Command{
	Use:   "palette <image>",
	Short: "Extract a colour palette from an image",
	Long: `Extract a colour palette from an image without a full segmentation.

The kmeans algorithm clusters a sample of pixels; the dominant algorithm
picks the most dominant colors directly. Unlike segment, the palette
command places no upper bound of 10 on the colour count.

Examples:
  # Extract 8 colours
  kmseg palette -c 8 wallpaper.jpg

  # Dominant colors as JSON
  kmseg palette --algorithm dominant --format json wallpaper.png

  # Reproducible kmeans palette with terminal previews
  kmseg palette --seed 42 --preview wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runPalette,
}

func init() {
	paletteCmd.Flags().IntVarP(&paletteColours, "colours", "c", 8, "number of colours to extract (1-256)")
	paletteCmd.Flags().StringVarP(&paletteAlgorithm, "algorithm", "a", "kmeans", "extraction algorithm (kmeans, dominant)")
	paletteCmd.Flags().StringVarP(&paletteFormat, "format", "f", "hex", "output format (hex, rgb, json)")
	paletteCmd.Flags().StringVarP(&paletteOutput, "output", "o", "", "output file (default: stdout)")
	paletteCmd.Flags().BoolVar(&paletteSort, "sort", false, "sort colours darkest to brightest")
	paletteCmd.Flags().BoolVar(&palettePreview, "preview", false, "show colour previews in terminal")
	paletteCmd.Flags().Int64Var(&paletteSeed, "seed", 0, "random seed for kmeans (0 = non-deterministic)")
}

// runPalette executes the palette command.
func runPalette(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)
	imagePath := args[0]

	if err := imageio.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	alg := palette.Algorithm(paletteAlgorithm)
	if !palette.IsValidAlgorithm(alg) {
		return fmt.Errorf("invalid algorithm: %s (valid: kmeans, dominant)", paletteAlgorithm)
	}

	loader := imageio.NewFileLoader()
	img, err := loader.Load(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	rng := segment.NewRand(segment.RandomSeed())
	if cmd.Flags().Changed("seed") {
		rng = segment.NewRand(paletteSeed)
	}

	extractor, err := palette.NewExtractor(alg, rng)
	if err != nil {
		return err
	}
	logger.Debug("extracting palette", "algorithm", alg, "colours", paletteColours)

	pal, err := extractor.Extract(img, paletteColours)
	if err != nil {
		return fmt.Errorf("failed to extract colors: %w", err)
	}
	logger.Debug("extraction complete", "colours", pal.Len())

	if paletteSort {
		colour.SortByBrightness(pal.Colors)
	}

	output, err := formatPalette(pal, paletteFormat, palettePreview)
	if err != nil {
		return err
	}

	if paletteOutput != "" {
		if err := os.WriteFile(paletteOutput, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("wrote palette", "path", paletteOutput)
	} else {
		fmt.Print(output)
	}
	return nil
}
