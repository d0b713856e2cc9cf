// Package zxingraster renders encoded barcode symbols into pixel buffers.
//
// A Symbol accumulates the module rows produced by encoders, then Buffer
// resolves the geometry, lays out the human-readable text and paints the
// result at the requested scale and rotation.
package zxingraster

import (
	"fmt"
	"strings"

	"github.com/ericlevine/zxingraster/geometry"
)

// Symbology identifies a barcode type.
type Symbology int

const (
	Code128 Symbology = iota
	Code39
	EAN13
	EAN8
	UPCA
	UPCE
	EANAddOn
	ITF14
	CodablockF
	Code16K
	PDF417
	QRCode
	DataMatrix
	Aztec
)

// String returns the name of the symbology.
func (s Symbology) String() string {
	switch s {
	case Code128:
		return "CODE_128"
	case Code39:
		return "CODE_39"
	case EAN13:
		return "EAN_13"
	case EAN8:
		return "EAN_8"
	case UPCA:
		return "UPC_A"
	case UPCE:
		return "UPC_E"
	case EANAddOn:
		return "EAN_ADDON"
	case ITF14:
		return "ITF_14"
	case CodablockF:
		return "CODABLOCK_F"
	case Code16K:
		return "CODE_16K"
	case PDF417:
		return "PDF_417"
	case QRCode:
		return "QR_CODE"
	case DataMatrix:
		return "DATA_MATRIX"
	case Aztec:
		return "AZTEC"
	default:
		return "UNKNOWN"
	}
}

// ParseSymbology maps a name such as "CODE_128", "code-128" or "qr_code" to
// its Symbology.
func ParseSymbology(name string) (Symbology, error) {
	key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for s := range profiles {
		if s.String() == key {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown symbology %q: %w", name, ErrConfiguration)
}

var linearProfile = geometry.Profile{
	Class:            geometry.Linear,
	Stackable:        true,
	CompositeCapable: true,
	DefaultHeight:    50,
}

var profiles = map[Symbology]geometry.Profile{
	Code128: linearProfile,
	Code39: {
		Class:         geometry.Linear,
		Stackable:     true,
		DefaultHeight: 50,
	},
	EAN13: {
		Class:            geometry.Linear,
		CompositeCapable: true,
		Quiet:            geometry.Quiet{Left: 11, Right: 7},
		QuietAddOn:       5,
		UPCEAN:           true,
		DefaultHeight:    50,
	},
	EAN8: {
		Class:            geometry.Linear,
		CompositeCapable: true,
		Quiet:            geometry.Quiet{Left: 7, Right: 7},
		QuietAddOn:       7,
		UPCEAN:           true,
		DefaultHeight:    50,
	},
	UPCA: {
		Class:            geometry.Linear,
		CompositeCapable: true,
		Quiet:            geometry.Quiet{Left: 9, Right: 9},
		QuietAddOn:       5,
		UPCEAN:           true,
		DefaultHeight:    50,
	},
	UPCE: {
		Class:            geometry.Linear,
		CompositeCapable: true,
		Quiet:            geometry.Quiet{Left: 9, Right: 7},
		QuietAddOn:       5,
		UPCEAN:           true,
		DefaultHeight:    50,
	},
	EANAddOn: {
		Class:         geometry.Linear,
		Quiet:         geometry.Quiet{Left: 7, Right: 5},
		UPCEAN:        true,
		DefaultHeight: 50,
	},
	ITF14: {
		Class:         geometry.Linear,
		Quiet:         geometry.Quiet{Left: 10, Right: 10},
		Border:        geometry.BorderBox,
		BorderWidth:   5,
		Bearer:        true,
		DefaultHeight: 50,
	},
	CodablockF: {
		Class:           geometry.Stacked,
		Quiet:           geometry.Quiet{Left: 10, Right: 10},
		Border:          geometry.BorderBind,
		BorderWidth:     1,
		InsetSeparators: true,
		Align:           geometry.AlignLeft,
	},
	Code16K: {
		Class:           geometry.Stacked,
		Quiet:           geometry.Quiet{Left: 10, Right: 1},
		Border:          geometry.BorderBind,
		BorderWidth:     1,
		InsetSeparators: true,
	},
	PDF417: {
		Class: geometry.Stacked,
	},
	QRCode: {
		Class:         geometry.Matrix,
		DottyEligible: true,
	},
	DataMatrix: {
		Class:         geometry.Matrix,
		DottyEligible: true,
	},
	Aztec: {
		Class:         geometry.Matrix,
		DottyEligible: true,
	},
}

// Profile returns the geometry profile of s.
func (s Symbology) Profile() (geometry.Profile, bool) {
	p, ok := profiles[s]
	return p, ok
}
