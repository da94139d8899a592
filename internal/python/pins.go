// SPDX-License-Identifier: MPL-2.0

package python

import (
	"fmt"
	"slices"
	"strings"
)

// MinVersion is the oldest interpreter version the application supports.
var MinVersion = Version{Major: 3, Minor: 8}

// Pin is one entry in the embedded dependency catalog.
type Pin struct {
	Name       string
	Constraint string
}

// String returns the pin in pip specifier form.
func (p Pin) String() string {
	return p.Name + p.Constraint
}

// requiredPins is the dependency set the application is tested against.
// Exact pins keep every install reproducible; the handful of ranged
// entries are packages that ship fixes faster than the app does.
var requiredPins = []Pin{
	// web framework
	{"fastapi", "==0.128.3"},
	{"uvicorn", "==0.40.0"},
	{"python-dotenv", "==1.2.1"},
	{"loguru", "==0.7.3"},

	// http clients
	{"httpx", "==0.28.1"},
	{"aiohttp", "==3.13.3"},
	{"requests", "==2.32.5"},
	{"requests-aws4auth", "==1.3.1"},

	// templating
	{"Jinja2", "==3.1.6"},

	// video
	{"opencv-python", "==4.13.0.92"},
	{"moviepy", "==2.2.1"},
	{"ffmpeg-python", "==0.2.0"},
	{"imageio-ffmpeg", "==0.6.0"},

	// speech and audio
	{"speechrecognition", "==3.10.4"},
	{"openai-whisper", "==20250625"},
	{"pydub", "==0.25.1"},
	{"torchaudio", "==2.10.0"},

	// subtitles
	{"pysubs2", "==1.8.0"},

	// ocr
	{"easyocr", "==1.7.2"},
	{"pyclipper", "==1.4.0"},
	{"shapely", "==2.1.2"},

	// browser automation
	{"playwright", "==1.58.0"},

	// numeric stack; torch and torchaudio must share a major version
	{"numpy", "==2.3.0"},
	{"scipy", "==1.17.0"},
	{"torch", "==2.10.0"},
	{"torchvision", "==0.25.0"},
	{"numba", ">=0.63.1"},

	// imaging
	{"Pillow", "==11.3.0"},
	{"imageio", "==2.37.2"},
	{"scikit-image", "==0.26.0"},

	// downloaders
	{"yt-dlp", ">=2024.1.1"},

	// packaging
	{"pyinstaller", "==6.18.0"},

	// misc tooling
	{"pydantic", "==2.12.5"},
	{"tqdm", "==4.67.3"},
	{"colorama", "==0.4.6"},

	// text processing
	{"jieba", ">=0.42.0"},
	{"beautifulsoup4", ">=4.12.0"},
}

// optionalPins are installed only when an operator opts in; the app
// runs without them.
var optionalPins = []Pin{
	{"pyautogui", ">=0.9.0"},
	{"selenium", ">=4.10.0"},
}

// unversionedPins are installed by name alone.
var unversionedPins = []Pin{
	{Name: "python-multipart"},
}

// RequiredPins returns the pinned required dependency set.
func RequiredPins() []Pin {
	return slices.Clone(requiredPins)
}

// OptionalPins returns the opt-in dependency set.
func OptionalPins() []Pin {
	return slices.Clone(optionalPins)
}

// UnversionedPins returns the dependencies installed without a version
// constraint.
func UnversionedPins() []Pin {
	return slices.Clone(unversionedPins)
}

// GenerateRequirements renders the catalog in requirements file form:
// required pins first, then the unversioned names.
func GenerateRequirements() string {
	var b strings.Builder
	for _, p := range requiredPins {
		b.WriteString(p.String())
		b.WriteString("\n")
	}
	for _, p := range unversionedPins {
		b.WriteString(p.Name)
		b.WriteString("\n")
	}
	return b.String()
}

// FindPin looks up name in pins using PyPI name normalization.
func FindPin(pins []Pin, name string) (Pin, bool) {
	want := NormalizeDistName(name)
	for _, p := range pins {
		if NormalizeDistName(p.Name) == want {
			return p, true
		}
	}
	return Pin{}, false
}

// NormalizeDistName lowers a distribution name and folds underscores
// and dots into hyphens, per PyPI naming rules.
func NormalizeDistName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "-")
	name = strings.ReplaceAll(name, ".", "-")
	return name
}

// ValidatePins checks a pin set against the catalog's compatibility
// rules: the torch trio must all be present, and torch and torchaudio
// must share a major version. torchvision tracks its own 0.x series,
// so it is exempt from the major match.
func ValidatePins(pins []Pin) error {
	trio := []string{"torch", "torchvision", "torchaudio"}
	found := make(map[string]Pin, len(trio))
	for _, name := range trio {
		p, ok := FindPin(pins, name)
		if !ok {
			return fmt.Errorf("%w: %s missing", ErrPinsIncoherent, name)
		}
		found[name] = p
	}
	torchMajor := constraintMajor(found["torch"].Constraint)
	audioMajor := constraintMajor(found["torchaudio"].Constraint)
	if torchMajor == "" || audioMajor == "" {
		return nil
	}
	if torchMajor != audioMajor {
		return fmt.Errorf("%w: torch %s and torchaudio %s differ in major version",
			ErrPinsIncoherent, found["torch"].Constraint, found["torchaudio"].Constraint)
	}
	return nil
}

// constraintMajor extracts the major version from an exact constraint,
// tolerating a +cpu build suffix. Ranged constraints yield "".
func constraintMajor(constraint string) string {
	v, ok := strings.CutPrefix(constraint, "==")
	if !ok {
		return ""
	}
	v = strings.TrimSuffix(v, "+cpu")
	major, _, _ := strings.Cut(v, ".")
	return major
}
