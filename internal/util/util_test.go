package util

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"mirage/internal/metadata"
)

func TestExpandTargets(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "trip")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"b.JPG", "a.png", "notes.txt", "trip/c.heic"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	explicit := filepath.Join(dir, "notes.txt")
	got, err := ExpandTargets([]string{dir, explicit, filepath.Join(dir, "a.png")})
	if err != nil {
		t.Fatalf("ExpandTargets: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.JPG"),
		explicit,
		filepath.Join(sub, "c.heic"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v\nwant %v", got, want)
	}

	if _, err := ExpandTargets([]string{filepath.Join(dir, "missing.jpg")}); err == nil {
		t.Fatalf("missing path should fail")
	}
}

func TestCreateBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := CreateBackup(path)
	if err != nil {
		t.Fatalf("CreateBackup: %v", err)
	}
	if backup != path+".bak" {
		t.Fatalf("backup path = %s", backup)
	}

	if err := os.WriteFile(path, []byte("changed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateBackup(path); err != nil {
		t.Fatalf("second CreateBackup: %v", err)
	}

	data, _ := os.ReadFile(backup)
	if string(data) != "original" {
		t.Fatalf("existing backup must not be overwritten, got %q", data)
	}
}

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	if err := ValidatePath(dir); err == nil {
		t.Fatalf("directory should be rejected")
	}

	path := filepath.Join(dir, "a.jpg")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ValidatePath(path); err != nil {
		t.Fatalf("ValidatePath: %v", err)
	}
}

func TestLogger_LevelsAndNil(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriterLogger(&buf, LevelInfo)

	log.Debug("hidden")
	log.Info("applied a.jpg")
	log.Error("failed b.jpg")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line below threshold was written")
	}
	if !strings.Contains(out, "INFO: applied a.jpg") || !strings.Contains(out, "ERROR: failed b.jpg") {
		t.Fatalf("unexpected log output:\n%s", out)
	}

	var nilLog *Logger
	if err := nilLog.Info("ignored"); err != nil {
		t.Fatalf("nil logger should discard: %v", err)
	}
}

func TestLogger_Rotate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mirage.log")
	log, err := NewLogger(path, LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	defer log.Close()

	log.Info("before")
	if err := log.Rotate(); err != nil {
		t.Fatalf("Rotate: %v", err)
	}

	matches, _ := filepath.Glob(path + ".*")
	if len(matches) != 1 {
		t.Fatalf("expected one archived log, got %v", matches)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "Log rotated") {
		t.Fatalf("new log should record the rotation, got %q", data)
	}
}

func TestIsSensitiveField(t *testing.T) {
	for _, name := range []string{"GPSLatitude", "Creator", "SerialNumber", "LensModel"} {
		if !IsSensitiveField(name) {
			t.Fatalf("%s should be sensitive", name)
		}
	}
	if IsSensitiveField("ImageWidth") {
		t.Fatalf("ImageWidth is not sensitive")
	}
}

// stand-in for exiftool -stay_open: logs every argument line and answers
// each -execute like a successful write
func fakeExifTool(t *testing.T) (bin, argLog string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake exiftool is a shell script")
	}

	dir := t.TempDir()
	bin = filepath.Join(dir, "exiftool")
	argLog = filepath.Join(dir, "args.log")
	script := fmt.Sprintf(`#!/bin/sh
while IFS= read -r line; do
  printf '%%s\n' "$line" >> %q
  if [ "$line" = "-execute" ]; then
    printf '    1 image files updated\n{ready}\n'
  fi
done
`, argLog)
	if err := os.WriteFile(bin, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return bin, argLog
}

func TestExifTool_WriteRejectsLineBreaks(t *testing.T) {
	bin, argLog := fakeExifTool(t)

	dir := t.TempDir()
	img := filepath.Join(dir, "a.jpg")
	if err := os.WriteFile(img, []byte("jpeg"), 0644); err != nil {
		t.Fatal(err)
	}

	et, err := OpenExifTool(bin)
	if err != nil {
		t.Fatalf("OpenExifTool: %v", err)
	}
	t.Cleanup(func() { _ = et.Close() })

	var rec metadata.Record
	rec.SetText(metadata.Description, "one line")
	if err := et.Write(img, rec); err != nil {
		t.Fatalf("Write: %v", err)
	}

	for _, desc := range []string{"first line\n-all=", "first line\r-all="} {
		rec.SetText(metadata.Description, desc)
		if err := et.Write(img, rec); !errors.Is(err, metadata.ErrExternalProcess) {
			t.Fatalf("Write(%q) = %v, want ErrExternalProcess", desc, err)
		}
	}

	rec.SetText(metadata.Description, "one line")
	if err := et.Write(filepath.Join(dir, "b.jpg\n-all="), rec); !errors.Is(err, metadata.ErrExternalProcess) {
		t.Fatalf("file name with a line break = %v, want ErrExternalProcess", err)
	}
	if _, err := et.Read(img + "\n-all="); !errors.Is(err, metadata.ErrExternalProcess) {
		t.Fatalf("Read with a line break = %v, want ErrExternalProcess", err)
	}

	data, err := os.ReadFile(argLog)
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	want := []string{"-overwrite_original", "-Description=one line", img, "-execute"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("exiftool received %q\nwant %q", got, want)
	}
}
