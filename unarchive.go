package main

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

func noCleanup() {}

// unpackArchive returns a path to a plain data file. Archived files (.zip,
// .gz, .lz4) are extracted into a temporary file under destDir; the returned
// cleanup removes it. The archive itself is never modified.
func unpackArchive(filePath string, destDir string) (string, func(), error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".zip":
		return unpackZipArchive(filePath, destDir)
	case ".gz":
		return unpackStream(filePath, destDir, func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		})
	case ".lz4":
		return unpackStream(filePath, destDir, func(r io.Reader) (io.Reader, error) {
			return lz4.NewReader(r), nil
		})
	}
	return filePath, noCleanup, nil
}

func unpackZipArchive(filePath string, destDir string) (string, func(), error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return "", noCleanup, err
	}
	defer r.Close()

	// the largest entry is the data file
	var largestFile *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if largestFile == nil || f.UncompressedSize64 > largestSize {
			largestFile = f
			largestSize = f.UncompressedSize64
		}
	}
	if largestFile == nil {
		return "", noCleanup, fmt.Errorf("zip archive %s is empty", filePath)
	}

	rc, err := largestFile.Open()
	if err != nil {
		return "", noCleanup, err
	}
	defer rc.Close()
	return extractTo(destDir, filepath.Base(largestFile.Name), rc)
}

func unpackStream(filePath string, destDir string, decompress func(io.Reader) (io.Reader, error)) (string, func(), error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", noCleanup, err
	}
	defer file.Close()

	dr, err := decompress(file)
	if err != nil {
		return "", noCleanup, fmt.Errorf("open %s: %w", filePath, err)
	}
	if closer, ok := dr.(io.Closer); ok {
		defer closer.Close()
	}
	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	return extractTo(destDir, name, dr)
}

func extractTo(destDir string, name string, src io.Reader) (string, func(), error) {
	if destDir == "" {
		destDir = os.TempDir()
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", noCleanup, err
	}
	outFile, err := os.CreateTemp(destDir, "*_"+name)
	if err != nil {
		return "", noCleanup, err
	}
	destPath := outFile.Name()
	cleanup := func() { os.Remove(destPath) }

	if _, err = io.Copy(outFile, src); err != nil {
		outFile.Close()
		cleanup()
		return "", noCleanup, err
	}
	if err = outFile.Close(); err != nil {
		cleanup()
		return "", noCleanup, err
	}
	return destPath, cleanup, nil
}
