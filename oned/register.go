package oned

import "github.com/ericlevine/zxingraster"

func init() {
	zxingraster.RegisterEncoder(zxingraster.Code128, func() zxingraster.Encoder { return NewCode128Encoder() })
	zxingraster.RegisterEncoder(zxingraster.Code39, func() zxingraster.Encoder { return NewCode39Encoder() })
	zxingraster.RegisterEncoder(zxingraster.EAN13, func() zxingraster.Encoder { return NewEAN13Encoder() })
	zxingraster.RegisterEncoder(zxingraster.EAN8, func() zxingraster.Encoder { return NewEAN8Encoder() })
	zxingraster.RegisterEncoder(zxingraster.UPCA, func() zxingraster.Encoder { return NewUPCAEncoder() })
	zxingraster.RegisterEncoder(zxingraster.UPCE, func() zxingraster.Encoder { return NewUPCEEncoder() })
	zxingraster.RegisterEncoder(zxingraster.EANAddOn, func() zxingraster.Encoder { return NewEANAddOnEncoder() })
	zxingraster.RegisterEncoder(zxingraster.ITF14, func() zxingraster.Encoder { return NewITF14Encoder() })
}
