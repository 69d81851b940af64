// Kmseg - K-means image color segmentation
//
// Kmseg segments images into K color clusters, exports per-cluster masks
// and composites, and extracts colour palettes.
package main

import (
	"github.com/zeeshanabi97/kmseg/internal/cli"
)

func main() {
	cli.Execute()
}
