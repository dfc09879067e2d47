package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"routeanalyzer.g11.org/internal/utils"
)

// WriteJSON encodes v as indented JSON to w.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// WriteJSONFile writes v as indented JSON to path, creating the parent
// directory when needed. An existing file is overwritten.
func WriteJSONFile(path string, v any, logger *slog.Logger) error {
	return writeFile(path, logger, func(w io.Writer) error {
		return WriteJSON(w, v)
	})
}

// writeFile encodes into memory first so a failed encode leaves no
// partial file behind.
func writeFile(path string, logger *slog.Logger, encode func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return err
	}

	if err := utils.EnsureDirectory(filepath.Dir(path), logger); err != nil {
		return fmt.Errorf("failed to prepare output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logger.Info("Results written", "path", path)
	return nil
}
