// Copyright © 2017 Zellyn Hunter <zellyn@gmail.com>

package bitmap

import (
	"encoding/binary"
)

// fileHeaderSize and infoHeaderSize are the classic Windows BMP
// BITMAPFILEHEADER and BITMAPINFOHEADER sizes.
const (
	fileHeaderSize = 14
	infoHeaderSize = 40
	pixelOffset    = fileHeaderSize + infoHeaderSize
)

// rowPad returns the row-padding byte count the original export tool
// uses: width&3. For a 3-byte pixel this equals the general BMP pad
// formula (4-(3*width)%4)%4 for every width, so each row's stride is a
// multiple of 4; the same stride is used for the header's size fields
// below.
func rowPad(width int) int {
	return width & 3
}

func stride(width int) int {
	return width*3 + rowPad(width)
}

// Encode writes img as an uncompressed 24-bit Windows BMP.
func Encode(img *Image) []byte {
	rowBytes := stride(img.Width)
	pixelDataSize := rowBytes * img.Height
	fileSize := pixelOffset + pixelDataSize

	out := make([]byte, fileSize)

	// BITMAPFILEHEADER
	out[0] = 'B'
	out[1] = 'M'
	binary.LittleEndian.PutUint32(out[2:6], uint32(fileSize))
	binary.LittleEndian.PutUint32(out[6:10], 0) // reserved
	binary.LittleEndian.PutUint32(out[10:14], uint32(pixelOffset))

	// BITMAPINFOHEADER
	h := out[fileHeaderSize:]
	binary.LittleEndian.PutUint32(h[0:4], infoHeaderSize)
	binary.LittleEndian.PutUint32(h[4:8], uint32(img.Width))
	binary.LittleEndian.PutUint32(h[8:12], uint32(img.Height))
	binary.LittleEndian.PutUint16(h[12:14], 1)  // planes
	binary.LittleEndian.PutUint16(h[14:16], 24) // bit count
	binary.LittleEndian.PutUint32(h[16:20], 0)  // compression
	binary.LittleEndian.PutUint32(h[20:24], uint32(pixelDataSize))
	binary.LittleEndian.PutUint32(h[24:28], 0) // x pixels per meter
	binary.LittleEndian.PutUint32(h[28:32], 0) // y pixels per meter
	binary.LittleEndian.PutUint32(h[32:36], 0) // colors used
	binary.LittleEndian.PutUint32(h[36:40], 0) // important colors

	// Pixel data: rows bottom-up, B,G,R per pixel, row-padded.
	pix := out[pixelOffset:]
	for row := 0; row < img.Height; row++ {
		srcRow := img.Height - 1 - row
		src := img.Pixels[srcRow*img.Width*3 : (srcRow+1)*img.Width*3]
		dst := pix[row*rowBytes : row*rowBytes+img.Width*3]
		copy(dst, src)
	}

	return out
}
