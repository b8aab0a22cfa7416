// BYZRA ⸻ internal/util/fileops.go
// file operation utilities

package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// extensions exiftool can write EXIF/XMP into
var ImageExtensions = []string{
	".jpg", ".jpeg", ".tif", ".tiff", ".png", ".heic", ".heif", ".webp",
	".dng", ".cr2", ".cr3", ".nef", ".arw", ".orf", ".rw2", ".raf",
}

func IsImage(path string) bool {
	return slices.Contains(ImageExtensions, strings.ToLower(filepath.Ext(path)))
}

// Expands files and directories into a sorted, de-duplicated file list.
//
// Directories are walked recursively and only image files are kept; files
// named explicitly are kept whatever their extension.
func ExpandTargets(paths []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string

	add := func(p string) {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = filepath.Clean(p)
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, abs)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("path validation failed: %w", err)
		}

		if !info.IsDir() {
			add(p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsImage(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
	}

	slices.Sort(files)
	return files, nil
}

// file exists, is regular, readable and writable
func ValidatePath(path string) error {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, expected a file: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file is not readable: %w", err)
	}
	file.Close()

	file, err = os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("file is not writable: %w", err)
	}
	file.Close()

	return nil
}

// copies a file with integrity verification
func SafeCopy(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	if _, err = io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	if err = dstFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync destination file: %w", err)
	}

	return verifyFileIntegrity(src, dst)
}

// <path>.bak, left alone when it already exists
func CreateBackup(path string) (string, error) {
	backupPath := path + ".bak"

	if _, err := os.Stat(backupPath); err == nil {
		return backupPath, nil
	}

	if err := SafeCopy(path, backupPath); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	return backupPath, nil
}

func verifyFileIntegrity(file1, file2 string) error {
	hash1, err := calculateSHA256(file1)
	if err != nil {
		return err
	}

	hash2, err := calculateSHA256(file2)
	if err != nil {
		return err
	}

	if hash1 != hash2 {
		return fmt.Errorf("integrity verification failed: file checksums don't match")
	}

	return nil
}

func calculateSHA256(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file for hashing: %w", err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate file hash: %w", err)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
