package render

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

const maxFontFileSize = 32 << 20

// preferredFamilies is the lookup order when resolving a face. The first
// installed family wins, so a deck renders with the same face in every
// context on one host.
var preferredFamilies = []string{
	"inter", "dejavu sans", "liberation sans", "noto sans", "arial", "helvetica",
}

type faceKey struct {
	family string
	size   float64
	bold   bool
}

// FontCache loads TrueType/OpenType fonts from disk and caches faces.
// Measurement faces use HintingNone so glyph advances, and therefore line
// wrapping decisions, are identical no matter what scale the frame is later
// painted at.
type FontCache struct {
	mu       sync.RWMutex
	dirs     []string
	fonts    map[string]*opentype.Font // lowercase family name -> parsed font
	faces    map[faceKey]font.Face     // render faces, HintingFull
	measures map[faceKey]font.Face     // measure faces, HintingNone
	scanned  bool
}

// NewFontCache creates a cache that searches extraDirs plus the OS font
// directories.
func NewFontCache(extraDirs ...string) *FontCache {
	return &FontCache{
		dirs:     append(systemFontDirs(), extraDirs...),
		fonts:    make(map[string]*opentype.Font),
		faces:    make(map[faceKey]font.Face),
		measures: make(map[faceKey]font.Face),
	}
}

var (
	defaultCache     *FontCache
	defaultCacheOnce sync.Once
)

// DefaultFontCache returns the shared process-wide cache.
func DefaultFontCache() *FontCache {
	defaultCacheOnce.Do(func() { defaultCache = NewFontCache() })
	return defaultCache
}

// Face returns a render face at sizePt, falling back to basicfont when no
// TrueType font is installed.
func (fc *FontCache) Face(sizePt float64, bold bool) font.Face {
	if face := fc.lookup(fc.faces, sizePt, bold, font.HintingFull); face != nil {
		return face
	}
	return basicfont.Face7x13
}

// MeasureFace returns an unhinted face at sizePt for layout measurement.
func (fc *FontCache) MeasureFace(sizePt float64, bold bool) font.Face {
	if face := fc.lookup(fc.measures, sizePt, bold, font.HintingNone); face != nil {
		return face
	}
	return basicfont.Face7x13
}

// MeasureString returns the advance width of s in logical pixels at sizePt.
func (fc *FontCache) MeasureString(s string, sizePt float64, bold bool) int {
	return font.MeasureString(fc.MeasureFace(sizePt, bold), s).Ceil()
}

func (fc *FontCache) lookup(cache map[faceKey]font.Face, sizePt float64, bold bool, hinting font.Hinting) font.Face {
	fc.ensureScanned()

	family, f := fc.findPreferred(bold)
	if f == nil {
		return nil
	}
	key := faceKey{family: family, size: sizePt, bold: bold}

	fc.mu.RLock()
	if face, ok := cache[key]; ok {
		fc.mu.RUnlock()
		return face
	}
	fc.mu.RUnlock()

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePt,
		DPI:     72,
		Hinting: hinting,
	})
	if err != nil {
		return nil
	}

	fc.mu.Lock()
	cache[key] = face
	fc.mu.Unlock()
	return face
}

func (fc *FontCache) findPreferred(bold bool) (string, *opentype.Font) {
	fc.mu.RLock()
	defer fc.mu.RUnlock()

	for _, family := range preferredFamilies {
		if bold {
			for _, suffix := range []string{" bold", "bd", "b"} {
				if f, ok := fc.fonts[family+suffix]; ok {
					return family + suffix, f
				}
			}
		}
		if f, ok := fc.fonts[family]; ok {
			return family, f
		}
	}
	return "", nil
}

// RegisterFontData registers a font from raw bytes under the given family
// name, bypassing the directory scan. Used by tests and embedded fonts.
func (fc *FontCache) RegisterFontData(family string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return err
	}
	fc.mu.Lock()
	fc.fonts[strings.ToLower(family)] = f
	fc.scanned = true
	fc.mu.Unlock()
	return nil
}

func (fc *FontCache) ensureScanned() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.scanned {
		return
	}
	fc.scanned = true

	for _, dir := range fc.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if ext != ".ttf" && ext != ".otf" {
				continue
			}
			fc.loadFontFileLocked(filepath.Join(dir, e.Name()))
		}
	}
}

func (fc *FontCache) loadFontFileLocked(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() > maxFontFileSize {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return
	}

	base := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	fc.fonts[base] = f
	if family := familyName(f); family != "" && family != base {
		if _, exists := fc.fonts[family]; !exists {
			fc.fonts[family] = f
		}
	}
}

func familyName(f *opentype.Font) string {
	var buf sfnt.Buffer
	name, err := f.Name(&buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(name))
}

func systemFontDirs() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"/System/Library/Fonts", "/Library/Fonts", filepath.Join(os.Getenv("HOME"), "Library/Fonts")}
	case "windows":
		return []string{filepath.Join(os.Getenv("WINDIR"), "Fonts")}
	default:
		return []string{
			"/usr/share/fonts/truetype/dejavu",
			"/usr/share/fonts/truetype/liberation",
			"/usr/share/fonts/truetype",
			"/usr/share/fonts",
			"/usr/local/share/fonts",
			filepath.Join(os.Getenv("HOME"), ".fonts"),
		}
	}
}
