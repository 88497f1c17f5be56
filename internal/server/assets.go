package server

import (
	"fmt"

	"github.com/shashiranjanraj/launchpad/pkg/storage"
)

// placeholderSVG is the stand-in product/avatar image the seed data points
// at. Real catalogues would upload per-product shots to the same disk.
const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="400" viewBox="0 0 400 400">
  <rect width="400" height="400" fill="#e2e8f0"/>
  <circle cx="200" cy="160" r="56" fill="#94a3b8"/>
  <rect x="104" y="248" width="192" height="20" rx="10" fill="#94a3b8"/>
  <rect x="136" y="284" width="128" height="14" rx="7" fill="#cbd5e1"/>
</svg>
`

// assetPaths lists every file the seed data references under /storage/.
var assetPaths = []string{
	"products/placeholder.svg",
	"avatars/john.jpg",
	"avatars/jane.jpg",
	"avatars/demo.jpg",
}

// SeedAssets writes the demo images to the configured storage disk so the
// /storage/ routes resolve. Existing files are left alone.
func SeedAssets() error {
	for _, path := range assetPaths {
		if storage.Exists(path) {
			continue
		}
		if err := storage.Put(path, []byte(placeholderSVG)); err != nil {
			return fmt.Errorf("seed asset %q: %w", path, err)
		}
	}
	return nil
}
