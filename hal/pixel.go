package hal

// RGB565 packs an 8-bit-per-channel color into rrrrrggggggbbbbb.
func RGB565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

// PixelAt reads the RGB565 pixel at (x, y) of fb, widened to 8 bits per channel.
// ok is false outside the framebuffer or for other pixel formats.
func PixelAt(fb Framebuffer, x, y int) (r, g, b uint8, ok bool) {
	if fb == nil || fb.Format() != PixelFormatRGB565 {
		return 0, 0, 0, false
	}
	if x < 0 || y < 0 || x >= fb.Width() || y >= fb.Height() {
		return 0, 0, 0, false
	}
	buf := fb.Buffer()
	off := y*fb.StrideBytes() + x*2
	if off+1 >= len(buf) {
		return 0, 0, 0, false
	}
	r, g, b = rgb888From565(uint16(buf[off]) | uint16(buf[off+1])<<8)
	return r, g, b, true
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// convertRGB565 expands little-endian RGB565 pixels from src into RGBA bytes in dst.
func convertRGB565(dst, src []byte) {
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, g, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = g
		dst[j+2] = b
		dst[j+3] = 0xFF
	}
}
