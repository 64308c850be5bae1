package domain

import (
	"fmt"
	"strings"
)

// Platform is the marketplace a product is listed on.
type Platform int

const (
	PlatformAmazon Platform = iota
	PlatformFlipkart
	PlatformMyntra

	platformCount
)

// PlatformInfo is the display metadata the UI renders for a platform.
type PlatformInfo struct {
	Platform       Platform `json:"id"`
	DisplayName    string   `json:"display_name"`
	LoyaltyProgram string   `json:"loyalty_program"`
	Color          string   `json:"color"`
	Logo           string   `json:"logo"`
}

var platformTable = [...]PlatformInfo{
	PlatformAmazon: {
		Platform:       PlatformAmazon,
		DisplayName:    "Amazon",
		LoyaltyProgram: "Prime",
		Color:          "#FF9900",
		Logo:           "/logos/amazon.svg",
	},
	PlatformFlipkart: {
		Platform:       PlatformFlipkart,
		DisplayName:    "Flipkart",
		LoyaltyProgram: "Plus",
		Color:          "#2874F0",
		Logo:           "/logos/flipkart.svg",
	},
	PlatformMyntra: {
		Platform:       PlatformMyntra,
		DisplayName:    "Myntra",
		LoyaltyProgram: "Insider",
		Color:          "#FF3F6C",
		Logo:           "/logos/myntra.svg",
	},
}

// Adding a Platform constant without a platformTable entry fails to compile.
var (
	_ [len(platformTable) - int(platformCount)]struct{}
	_ [int(platformCount) - len(platformTable)]struct{}
)

// Platforms returns every platform in declaration order.
func Platforms() []Platform {
	out := make([]Platform, 0, platformCount)
	for p := Platform(0); p < platformCount; p++ {
		out = append(out, p)
	}
	return out
}

// Valid reports whether p is a declared platform.
func (p Platform) Valid() bool {
	return p >= 0 && p < platformCount
}

// Info returns the display metadata for p. It panics on an undeclared value,
// which can only be produced by an unchecked conversion.
func (p Platform) Info() PlatformInfo {
	return platformTable[p]
}

// String returns the lower-case wire name, e.g. "flipkart".
func (p Platform) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Platform(%d)", int(p))
	}
	return strings.ToLower(platformTable[p].DisplayName)
}

// ParsePlatform resolves a platform by wire or display name, ignoring case.
func ParsePlatform(s string) (Platform, error) {
	s = strings.TrimSpace(s)
	for p := Platform(0); p < platformCount; p++ {
		if strings.EqualFold(s, platformTable[p].DisplayName) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown platform %q", s)
}

// IsValidPlatform reports whether s names a platform.
func IsValidPlatform(s string) bool {
	_, err := ParsePlatform(s)
	return err == nil
}

func (p Platform) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("marshal platform: invalid value %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Platform) UnmarshalText(text []byte) error {
	parsed, err := ParsePlatform(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
