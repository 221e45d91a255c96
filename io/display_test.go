package io

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	assert := assert.New(t)

	rec := &Recorder{}
	rec.Show(3)
	rec.Show(0)
	rec.Show(255)

	assert.Equal([]uint8{3, 0, 255}, rec.Values)

	rec.Reset()
	assert.Empty(rec.Values)

	rec.Show(42)
	assert.Equal([]uint8{42}, rec.Values)
}

func TestPrinter(t *testing.T) {
	assert := assert.New(t)

	builder := &strings.Builder{}
	pr := &Printer{Output: builder}

	pr.Show(0)
	pr.Show(127)
	pr.Show(128)
	pr.Show(255)

	assert.Equal("0\n127\n128\n255\n", builder.String())
}

func TestPrinterSigned(t *testing.T) {
	assert := assert.New(t)

	builder := &strings.Builder{}
	pr := &Printer{Output: builder, Signed: true}

	pr.Show(0)
	pr.Show(127)
	pr.Show(128)
	pr.Show(255)

	assert.Equal("0\n127\n-128\n-1\n", builder.String())
}
