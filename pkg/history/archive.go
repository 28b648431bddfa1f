package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// WriteArchive writes entries as a zstd-compressed stream of JSON lines,
// the format used for offline dumps of the log.
func WriteArchive(w io.Writer, entries []Entry) error {
	compWriter, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %v", err)
	}

	encoder := json.NewEncoder(compWriter)
	for i := range entries {
		if err := encoder.Encode(&entries[i]); err != nil {
			compWriter.Close()
			return fmt.Errorf("failed to encode history entry: %v", err)
		}
	}

	if err := compWriter.Close(); err != nil {
		return fmt.Errorf("failed to close zstd writer: %v", err)
	}
	return nil
}

// ReadArchive reads an archive produced by WriteArchive.
func ReadArchive(r io.Reader) ([]Entry, error) {
	compReader, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer compReader.Close()

	var entries []Entry
	decoder := json.NewDecoder(compReader)
	for seq := int64(0); ; seq++ {
		entry := Entry{}
		if err := decoder.Decode(&entry); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to decode history entry: %v", err)
		}
		entry.Seq = seq
		entries = append(entries, entry)
	}
	return entries, nil
}
