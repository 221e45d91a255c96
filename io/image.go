package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LoadImage parses a memory image from text: whitespace-separated hex
// bytes, with ';' starting a comment that runs to end of line. This is
// the file format of the board's programming front end.
func LoadImage(input io.Reader) (image []uint8, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		lineno++

		line := scanner.Text()
		line, _, _ = strings.Cut(line, ";")

		for _, word := range strings.Fields(line) {
			value, perr := strconv.ParseUint(word, 16, 8)
			if perr != nil {
				err = &ErrImageByte{LineNo: lineno, Word: word}
				return
			}
			image = append(image, uint8(value))
		}
	}

	err = scanner.Err()

	return
}

// SaveImage writes a memory image in the format LoadImage parses, one
// byte per line with its address as a comment.
func SaveImage(output io.Writer, image []uint8) (err error) {
	for addr, value := range image {
		_, err = fmt.Fprintf(output, "%02x ; 0x%x\n", value, addr)
		if err != nil {
			return
		}
	}

	return
}
