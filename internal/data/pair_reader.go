package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// StreamingPairReader reads (text, summary) pairs from a CSV file in
// batches, locating the columns by header name.
type StreamingPairReader struct {
	file       *os.File
	reader     *csv.Reader
	headers    []string
	textCol    int
	summaryCol int
}

func NewStreamingPairReader(filename string) (*StreamingPairReader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to read headers: %w", err)
	}

	textCol, summaryCol := 0, 1
	for i, header := range headers {
		switch strings.ToLower(strings.TrimSpace(header)) {
		case "text", "article", "document":
			textCol = i
		case "summary", "highlights", "abstract":
			summaryCol = i
		}
	}

	return &StreamingPairReader{
		file:       file,
		reader:     reader,
		headers:    headers,
		textCol:    textCol,
		summaryCol: summaryCol,
	}, nil
}

func (r *StreamingPairReader) GetHeaders() []string {
	return r.headers
}

// ReadPairs reads up to count pairs, returning io.EOF once the file is
// exhausted and no pairs were read. Records with an empty text or
// summary are skipped.
func (r *StreamingPairReader) ReadPairs(count int) ([]Pair, error) {
	pairs := make([]Pair, 0, count)

	for len(pairs) < count {
		record, err := r.reader.Read()
		if err == io.EOF {
			if len(pairs) == 0 {
				return nil, io.EOF
			}
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}

		if r.textCol >= len(record) || r.summaryCol >= len(record) {
			continue
		}
		text := strings.TrimSpace(record[r.textCol])
		summary := strings.TrimSpace(record[r.summaryCol])
		if text == "" || summary == "" {
			continue
		}

		pairs = append(pairs, Pair{Text: text, Summary: summary})
	}

	return pairs, nil
}

func (r *StreamingPairReader) Close() error {
	return r.file.Close()
}

// LoadPairs reads all pairs from a CSV file.
func LoadPairs(filename string) ([]Pair, error) {
	reader, err := NewStreamingPairReader(filename)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var pairs []Pair
	for {
		batch, err := reader.ReadPairs(1000)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, batch...)
	}

	if len(pairs) == 0 {
		return nil, fmt.Errorf("no usable pairs in %s", filename)
	}
	return pairs, nil
}
