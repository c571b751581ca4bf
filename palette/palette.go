// Package palette holds the NES/Famicom master (NTSC) color table and
// resolves a background tidbit (2-bit palette index) plus a palette-RAM
// entry into an RGB color.
package palette

import "image/color"

// System is the 64-entry NTSC master palette, indexed by the 6-bit color
// value a palette-RAM byte stores.
var System [64]color.RGBA

// systemRGB is the FCEUX-derived NTSC master palette, one packed
// 0xRRGGBB triple per entry.
var systemRGB = [64]uint32{
	0x747474, 0x24188c, 0x0000a8, 0x44009c, 0x8c0074, 0xa80010, 0xa40000, 0x7c0800,
	0x402c00, 0x004400, 0x005000, 0x003c14, 0x183c5c, 0x000000, 0x000000, 0x000000,
	0xbcbcbc, 0x0070ec, 0x2038ec, 0x8000f0, 0xbc00bc, 0xe40058, 0xd82800, 0xc84c0c,
	0x887000, 0x009400, 0x00a800, 0x009038, 0x008088, 0x000000, 0x000000, 0x000000,
	0xfcfcfc, 0x3cbcfc, 0x5c94fc, 0xcc88fc, 0xf478fc, 0xfc74b4, 0xfc7460, 0xfc9838,
	0xf0bc3c, 0x80d010, 0x4cdc48, 0x58f898, 0x00e8d8, 0x787878, 0x000000, 0x000000,
	0xfcfcfc, 0xa8e4fc, 0xc4d4fc, 0xd4c8fc, 0xfcc4fc, 0xfcc4d8, 0xfcbcb0, 0xfcd8a8,
	0xfce4a0, 0xe0fca0, 0xa8f0bc, 0xb0fccc, 0x9cfcf0, 0xc4c4c4, 0x000000, 0x000000,
}

func init() {
	for i, c := range systemRGB {
		System[i] = color.RGBA{
			R: uint8(c >> 16),
			G: uint8(c >> 8),
			B: uint8(c),
			A: 0xFF,
		}
	}
}

// Tidbit is a 2-bit palette index into one of the four background palettes.
type Tidbit uint8

// Resolve looks up the color a tidbit resolves to, given the palette-RAM
// byte at 0x3F00+paletteIndex*4+tidbit (universal background color at
// tidbit 0, regardless of paletteIndex, per NES hardware).
func Resolve(entry uint8) color.RGBA {
	return System[entry&0x3F]
}
