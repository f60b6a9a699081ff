package exporter

import (
	"compress/gzip"
	"io"

	jsoniter "github.com/json-iterator/go"
	linecat "github.com/meetuparchive/git-linecat"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Exporter is a linecat.Sink with a Close that flushes whatever the
// implementation buffered. Emit is called once per change, in order.
type Exporter interface {
	Emit(change *linecat.Change) error
	Close() error
}

// JSONExporter collects every change and writes them as one JSON array on
// Close.
type JSONExporter struct {
	elements []*linecat.Change
	encoder  *jsoniter.Encoder
}

func NewJSONExporter(output io.Writer) *JSONExporter {
	return &JSONExporter{
		elements: []*linecat.Change{},
		encoder:  json.NewEncoder(output),
	}
}

func (e *JSONExporter) Emit(change *linecat.Change) error {
	e.elements = append(e.elements, change)

	return nil
}

func (e *JSONExporter) Close() error {
	return e.encoder.Encode(e.elements)
}

// JSONLExporter writes one JSON object per line as changes arrive. This is
// the default output format.
type JSONLExporter struct {
	encoder *jsoniter.Encoder
}

func NewJSONLExporter(output io.Writer) *JSONLExporter {
	return &JSONLExporter{
		encoder: json.NewEncoder(output),
	}
}

func (e *JSONLExporter) Emit(change *linecat.Change) error {
	return e.encoder.Encode(change)
}

func (e *JSONLExporter) Close() error {
	return nil
}

// gzipExporter compresses whatever the wrapped exporter writes.
type gzipExporter struct {
	Exporter
	compressor *gzip.Writer
}

func (e *gzipExporter) Close() error {
	if err := e.Exporter.Close(); err != nil {
		return err
	}

	return e.compressor.Close()
}

func NewGzipJSONExporter(output io.Writer) Exporter {
	compressor := gzip.NewWriter(output)

	return &gzipExporter{Exporter: NewJSONExporter(compressor), compressor: compressor}
}

func NewGzipJSONLExporter(output io.Writer) Exporter {
	compressor := gzip.NewWriter(output)

	return &gzipExporter{Exporter: NewJSONLExporter(compressor), compressor: compressor}
}
