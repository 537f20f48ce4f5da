package graphics

import (
	"bufio"
	"fmt"
	"io"
)

// EncodePPM writes the canvas as a PPM image: ASCII P3 when ascii is set,
// binary P6 otherwise. Binary channel values take one byte when the depth
// fits in 8 bits and two big-endian bytes otherwise.
func EncodePPM(w io.Writer, img *Image, ascii bool) error {
	bw := bufio.NewWriter(w)

	magic := "P6"
	if ascii {
		magic = "P3"
	}
	if _, err := fmt.Fprintf(bw, "%s\n%d %d %d\n", magic, img.width, img.height, img.depth); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	switch {
	case ascii:
		for _, p := range img.data {
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", p.R, p.G, p.B); err != nil {
				return fmt.Errorf("failed to write PPM pixel: %w", err)
			}
		}
	case img.depth < 256:
		for _, p := range img.data {
			if _, err := bw.Write([]byte{byte(p.R), byte(p.G), byte(p.B)}); err != nil {
				return fmt.Errorf("failed to write PPM pixel: %w", err)
			}
		}
	default:
		for _, p := range img.data {
			buf := [6]byte{
				byte(p.R >> 8), byte(p.R),
				byte(p.G >> 8), byte(p.G),
				byte(p.B >> 8), byte(p.B),
			}
			if _, err := bw.Write(buf[:]); err != nil {
				return fmt.Errorf("failed to write PPM pixel: %w", err)
			}
		}
	}

	return bw.Flush()
}

// DecodePPM reads a P3 or P6 image back into a canvas. Header comments and
// arbitrary whitespace are tolerated.
func DecodePPM(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	magic, err := readToken(br)
	if err != nil {
		return nil, fmt.Errorf("failed to read PPM magic: %w", err)
	}
	if magic != "P3" && magic != "P6" {
		return nil, fmt.Errorf("unsupported PPM magic %q", magic)
	}

	width, err := readIntToken(br, "width")
	if err != nil {
		return nil, err
	}
	height, err := readIntToken(br, "height")
	if err != nil {
		return nil, err
	}
	maxval, err := readIntToken(br, "maxval")
	if err != nil {
		return nil, err
	}

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid PPM dimensions %dx%d", width, height)
	}
	if maxval < 1 || maxval > 65535 {
		return nil, fmt.Errorf("invalid PPM maxval %d", maxval)
	}

	img := New(width, height, uint16(maxval))

	if magic == "P3" {
		for i := range img.data {
			rv, err := readIntToken(br, "red sample")
			if err != nil {
				return nil, err
			}
			gv, err := readIntToken(br, "green sample")
			if err != nil {
				return nil, err
			}
			bv, err := readIntToken(br, "blue sample")
			if err != nil {
				return nil, err
			}
			img.data[i] = RGB{R: uint16(rv), G: uint16(gv), B: uint16(bv)}
		}
		return img, nil
	}

	// P6 raster starts right after the single whitespace byte the header
	// tokenizer already consumed.
	bytesPerSample := 1
	if maxval > 255 {
		bytesPerSample = 2
	}
	raster := make([]byte, width*height*3*bytesPerSample)
	if _, err := io.ReadFull(br, raster); err != nil {
		return nil, fmt.Errorf("failed to read PPM raster: %w", err)
	}

	if bytesPerSample == 1 {
		for i := range img.data {
			o := i * 3
			img.data[i] = RGB{R: uint16(raster[o]), G: uint16(raster[o+1]), B: uint16(raster[o+2])}
		}
	} else {
		for i := range img.data {
			o := i * 6
			img.data[i] = RGB{
				R: uint16(raster[o])<<8 | uint16(raster[o+1]),
				G: uint16(raster[o+2])<<8 | uint16(raster[o+3]),
				B: uint16(raster[o+4])<<8 | uint16(raster[o+5]),
			}
		}
	}
	return img, nil
}

// readToken skips whitespace and '#' comment lines, then reads characters up
// to and including the next whitespace byte, which is consumed.
func readToken(br *bufio.Reader) (string, error) {
	var token []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(token) > 0 {
				return string(token), nil
			}
			return "", err
		}
		switch {
		case b == '#' && len(token) == 0:
			if _, err := br.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			if len(token) > 0 {
				return string(token), nil
			}
		default:
			token = append(token, b)
		}
	}
}

func readIntToken(br *bufio.Reader, what string) (int, error) {
	token, err := readToken(br)
	if err != nil {
		return 0, fmt.Errorf("failed to read PPM %s: %w", what, err)
	}
	v := 0
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid PPM %s %q", what, token)
		}
		v = v*10 + int(c-'0')
	}
	if len(token) == 0 {
		return 0, fmt.Errorf("missing PPM %s", what)
	}
	return v, nil
}
